package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*domain.Entitlement, error) {
	var e domain.Entitlement
	err := db.WithContext(ctx).Where("user_id = ?", userID).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, e *domain.Entitlement) error {
	if e == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(e).Error
}
