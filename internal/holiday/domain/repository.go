package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, h *PersonalHoliday) error
	ListByUserID(ctx context.Context, db *gorm.DB, userID int64) ([]PersonalHoliday, error)
	Delete(ctx context.Context, db *gorm.DB, userID int64, name string) (bool, error)
}
