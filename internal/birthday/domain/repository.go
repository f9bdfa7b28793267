package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, b *Birthday) error
	Find(ctx context.Context, db *gorm.DB, userID int64, name string) (*Birthday, error)
	ListByUserID(ctx context.Context, db *gorm.DB, userID int64) ([]Birthday, error)
	Delete(ctx context.Context, db *gorm.DB, userID int64, name string) (bool, error)
}
