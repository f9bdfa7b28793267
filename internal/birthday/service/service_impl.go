package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/smallbiznis/togetherbot/internal/birthday/domain"
	"github.com/smallbiznis/togetherbot/internal/clock"
	obslogger "github.com/smallbiznis/togetherbot/internal/observability/logger"
	"github.com/smallbiznis/togetherbot/internal/occurrence"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("birthday.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Add(ctx context.Context, req domain.AddRequest) (*domain.Birthday, error) {
	if req.UserID == 0 {
		return nil, domain.ErrInvalidUser
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	md, err := occurrence.ParseMonthDay(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	today := s.clock.Now()
	record := &domain.Birthday{
		UserID: req.UserID,
		Name:   name,
		Date:   md.In(md.StorageYear(today.Year())),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		previous, err := s.repo.Find(ctx, tx, req.UserID, name)
		if err != nil {
			return err
		}
		if previous != nil {
			obslogger.WithContext(ctx, s.log).Info("replacing birthday",
				zap.String("name", name),
				zap.String("previous", previous.MonthDay().String()),
				zap.String("date", md.String()),
			)
		}
		return s.repo.Upsert(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Upcoming, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	items, err := s.repo.ListByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	today := s.clock.Now()
	out := make([]domain.Upcoming, 0, len(items))
	for _, item := range items {
		md := item.MonthDay()
		out = append(out, domain.Upcoming{
			Name:      item.Name,
			Date:      md,
			Next:      occurrence.Next(md, today),
			DaysUntil: occurrence.DaysUntil(md, today),
		})
	}
	return out, nil
}

// Delete removes the birthday and reports whether it existed.
func (s *Service) Delete(ctx context.Context, userID int64, name string) (bool, error) {
	if userID == 0 {
		return false, domain.ErrInvalidUser
	}
	name, err := normalizeName(name)
	if err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, s.db, userID, name)
}

func normalizeName(raw string) (string, error) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" || utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", domain.ErrInvalidName
	}
	return name, nil
}
