package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/togetherbot/internal/relationship/duration"
)

type Service interface {
	SetStart(ctx context.Context, req SetStartRequest) (*Relationship, error)
	Get(ctx context.Context, userID int64) (*Relationship, error)
	Report(ctx context.Context, userID int64) (*Report, error)
	Advanced(ctx context.Context, userID int64) (*AdvancedReport, error)
}

type SetStartRequest struct {
	UserID      int64
	StartDate   string
	PartnerName string
}

// Report is the basic elapsed-time view used by count and stats.
type Report struct {
	Relationship Relationship
	Today        time.Time
	Stats        duration.Stats
	Milestone    string
}

// AdvancedReport extends Report for the advanced_stats feature.
type AdvancedReport struct {
	Report

	Hours   int64
	Minutes int64

	StartWeekday      time.Weekday
	NextAnniversary   time.Time
	AnniversaryYears  int
	DaysToAnniversary int

	NextMilestone       int
	DaysToNextMilestone int
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrMissingDate = errors.New("missing_date")
	ErrInvalidDate = errors.New("invalid_date")
	ErrFutureDate  = errors.New("future_date")
	ErrNotSet      = errors.New("relationship_not_set")
)
