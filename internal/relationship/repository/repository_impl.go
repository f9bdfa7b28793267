package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/togetherbot/internal/relationship/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*domain.Relationship, error) {
	var rel domain.Relationship
	err := db.WithContext(ctx).Where("user_id = ?", userID).Take(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// Upsert replaces every column of the row, so a nil partner clears a
// previously stored one.
func (r *repo) Upsert(ctx context.Context, db *gorm.DB, rel *domain.Relationship) error {
	if rel == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_date", "partner_name"}),
	}).Create(rel).Error
}
