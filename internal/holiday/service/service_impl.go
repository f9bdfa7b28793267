package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/smallbiznis/togetherbot/internal/clock"
	entdomain "github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	"github.com/smallbiznis/togetherbot/internal/holiday/catalog"
	"github.com/smallbiznis/togetherbot/internal/holiday/domain"
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
	Table *domain.StaticTable
	Gate  entdomain.Gate
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
	table *domain.StaticTable
	gate  entdomain.Gate
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("holiday.service"),
		clock: p.Clock,
		repo:  p.Repo,
		table: p.Table,
		gate:  p.Gate,
	}
}

func (s *Service) Upcoming(ctx context.Context, userID int64, limit int) ([]domain.Entry, error) {
	holidays, err := s.merged(ctx, userID)
	if err != nil {
		return nil, err
	}
	return catalog.Upcoming(holidays, s.clock.Now(), limit), nil
}

func (s *Service) Search(ctx context.Context, userID int64, query string) ([]domain.Entry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	holidays, err := s.merged(ctx, userID)
	if err != nil {
		return nil, err
	}
	found := catalog.Search(holidays, s.clock.Now(), query)
	if len(found) == 0 {
		return nil, domain.ErrNoMatches
	}
	return found, nil
}

func (s *Service) Nearest(ctx context.Context, userID int64) (*domain.Entry, error) {
	holidays, err := s.merged(ctx, userID)
	if err != nil {
		return nil, err
	}
	entry, ok := catalog.Nearest(holidays, s.clock.Now())
	if !ok {
		return nil, domain.ErrNoMatches
	}
	return &entry, nil
}

// AllByMonth covers the global table only.
func (s *Service) AllByMonth(ctx context.Context) ([]domain.MonthGroup, error) {
	return catalog.ByMonth(s.table.All(), s.clock.Now()), nil
}

func (s *Service) BotBirthday(ctx context.Context) domain.Entry {
	today := s.clock.Now()
	return domain.Entry{
		Holiday:   domain.Holiday{Name: "День создания бота", Date: domain.BotBirthday},
		Next:      occurrence.Next(domain.BotBirthday, today),
		DaysUntil: occurrence.DaysUntil(domain.BotBirthday, today),
	}
}

// AddPersonal stores a user holiday. The entitlement check runs before any
// validation so a denied user never touches the store.
func (s *Service) AddPersonal(ctx context.Context, req domain.AddPersonalRequest) (*domain.Entry, error) {
	if req.UserID == 0 {
		return nil, domain.ErrInvalidUser
	}
	if err := s.gate.Require(ctx, req.UserID, entdomain.FeatureAddHoliday); err != nil {
		return nil, err
	}

	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	md, err := occurrence.ParseMonthDay(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	record := &domain.PersonalHoliday{UserID: req.UserID, Name: name, Date: md.String()}
	if err := s.repo.Upsert(ctx, s.db, record); err != nil {
		return nil, err
	}
	obslogger.WithContext(ctx, s.log).Info("personal holiday saved", zap.String("date", record.Date))

	entries := catalog.Resolve([]domain.Holiday{{Name: name, Date: md, Personal: true}}, s.clock.Now())
	return &entries[0], nil
}

func (s *Service) ListPersonal(ctx context.Context, userID int64) ([]domain.Entry, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	personal, err := s.personal(ctx, userID)
	if err != nil {
		return nil, err
	}
	return catalog.Resolve(personal, s.clock.Now()), nil
}

func (s *Service) DeletePersonal(ctx context.Context, userID int64, name string) (bool, error) {
	if userID == 0 {
		return false, domain.ErrInvalidUser
	}
	name, err := normalizeName(name)
	if err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, s.db, userID, name)
}

// merged is the global table followed by the user's personal holidays.
func (s *Service) merged(ctx context.Context, userID int64) ([]domain.Holiday, error) {
	holidays := s.table.All()
	if userID == 0 {
		return holidays, nil
	}
	personal, err := s.personal(ctx, userID)
	if err != nil {
		return nil, err
	}
	return append(holidays, personal...), nil
}

func (s *Service) personal(ctx context.Context, userID int64) ([]domain.Holiday, error) {
	records, err := s.repo.ListByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Holiday, 0, len(records))
	for _, rec := range records {
		h, err := rec.Holiday()
		if err != nil {
			s.log.Warn("skipping corrupt personal holiday",
				zap.Int64("user_id", rec.UserID),
				zap.String("date", rec.Date),
				zap.Error(err),
			)
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func normalizeName(raw string) (string, error) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" || utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", domain.ErrInvalidName
	}
	return name, nil
}
