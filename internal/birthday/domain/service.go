package domain

import (
	"context"
	"errors"
)

type Service interface {
	Add(ctx context.Context, req AddRequest) (*Birthday, error)
	List(ctx context.Context, userID int64) ([]Upcoming, error)
	Delete(ctx context.Context, userID int64, name string) (bool, error)
}

type AddRequest struct {
	UserID int64
	Name   string
	Date   string
}

const MaxNameLength = 64

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidDate = errors.New("invalid_date")
)
