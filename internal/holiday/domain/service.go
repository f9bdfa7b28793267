package domain

import (
	"context"
	"errors"
)

type Service interface {
	Upcoming(ctx context.Context, userID int64, limit int) ([]Entry, error)
	Search(ctx context.Context, userID int64, query string) ([]Entry, error)
	Nearest(ctx context.Context, userID int64) (*Entry, error)
	AllByMonth(ctx context.Context) ([]MonthGroup, error)
	BotBirthday(ctx context.Context) Entry

	AddPersonal(ctx context.Context, req AddPersonalRequest) (*Entry, error)
	ListPersonal(ctx context.Context, userID int64) ([]Entry, error)
	DeletePersonal(ctx context.Context, userID int64, name string) (bool, error)
}

type AddPersonalRequest struct {
	UserID int64
	Name   string
	Date   string
}

// UpcomingLimit caps the near-term holiday view.
const UpcomingLimit = 10

const MaxNameLength = 64

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidDate = errors.New("invalid_date")
	ErrEmptyQuery  = errors.New("empty_query")
	ErrNoMatches   = errors.New("no_matches")
)
