package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/togetherbot/internal/clock"
	entdomain "github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	"github.com/smallbiznis/togetherbot/internal/keylock"
	obslogger "github.com/smallbiznis/togetherbot/internal/observability/logger"
	"github.com/smallbiznis/togetherbot/internal/occurrence"
	"github.com/smallbiznis/togetherbot/internal/relationship/domain"
	"github.com/smallbiznis/togetherbot/internal/relationship/duration"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	Locker     keylock.Locker
	Repo       domain.Repository
	Gate       entdomain.Gate
	Milestones duration.Milestones `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	locker     keylock.Locker
	repo       domain.Repository
	gate       entdomain.Gate
	milestones duration.Milestones
}

func New(p Params) domain.Service {
	milestones := p.Milestones
	if milestones == nil {
		milestones = duration.DefaultMilestones
	}
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("relationship.service"),
		clock:      p.Clock,
		locker:     p.Locker,
		repo:       p.Repo,
		gate:       p.Gate,
		milestones: milestones,
	}
}

// SetStart validates the date against today and replaces the user's record.
func (s *Service) SetStart(ctx context.Context, req domain.SetStartRequest) (*domain.Relationship, error) {
	if req.UserID == 0 {
		return nil, domain.ErrInvalidUser
	}
	raw := strings.TrimSpace(req.StartDate)
	if raw == "" {
		return nil, domain.ErrMissingDate
	}
	start, err := occurrence.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}
	if start.After(occurrence.Day(s.clock.Now())) {
		return nil, domain.ErrFutureDate
	}

	record := &domain.Relationship{UserID: req.UserID, StartDate: start}
	if partner := strings.Join(strings.Fields(req.PartnerName), " "); partner != "" {
		record.PartnerName = &partner
	}

	unlock, err := s.locker.Lock(ctx, lockKey(req.UserID))
	if err != nil {
		return nil, fmt.Errorf("lock relationship: %w", err)
	}
	defer unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		previous, err := s.repo.FindByUserID(ctx, tx, req.UserID)
		if err != nil {
			return err
		}
		if previous != nil {
			obslogger.WithContext(ctx, s.log).Info("replacing relationship start",
				zap.Time("previous", previous.StartDate),
				zap.Time("start", start),
			)
		}
		return s.repo.Upsert(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.Relationship, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	rel, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, domain.ErrNotSet
	}
	rel.StartDate = occurrence.Day(rel.StartDate.UTC())
	return rel, nil
}

func (s *Service) Report(ctx context.Context, userID int64) (*domain.Report, error) {
	rel, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.report(rel, s.clock.Now()), nil
}

// Advanced is the premium view. The entitlement check runs first.
func (s *Service) Advanced(ctx context.Context, userID int64) (*domain.AdvancedReport, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	if err := s.gate.Require(ctx, userID, entdomain.FeatureAdvancedStats); err != nil {
		return nil, err
	}
	rel, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	base := s.report(rel, now)
	days := base.Stats.Days

	hours := int64(days)*24 + int64(now.Hour())
	out := &domain.AdvancedReport{
		Report:       *base,
		Hours:        hours,
		Minutes:      hours*60 + int64(now.Minute()),
		StartWeekday: rel.StartDate.Weekday(),
	}

	start := occurrence.FromDate(rel.StartDate)
	next := occurrence.Next(start, base.Today)
	if next.Year() <= rel.StartDate.Year() {
		next = start.In(rel.StartDate.Year() + 1)
	}
	out.NextAnniversary = next
	out.AnniversaryYears = next.Year() - rel.StartDate.Year()
	out.DaysToAnniversary = occurrence.DaysBetween(base.Today, next)

	out.NextMilestone = s.milestones.Next(days)
	out.DaysToNextMilestone = out.NextMilestone - days
	return out, nil
}

func (s *Service) report(rel *domain.Relationship, now time.Time) *domain.Report {
	today := occurrence.Day(now)
	stats := duration.Elapsed(rel.StartDate, today)
	note, _ := s.milestones.Lookup(stats.Days)
	return &domain.Report{
		Relationship: *rel,
		Today:        today,
		Stats:        stats,
		Milestone:    note,
	}
}

func lockKey(userID int64) string {
	return "relationship:" + strconv.FormatInt(userID, 10)
}
