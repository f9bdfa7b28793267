package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*Relationship, error)
	Upsert(ctx context.Context, db *gorm.DB, rel *Relationship) error
}
