package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/togetherbot/internal/birthday/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, b *domain.Birthday) error {
	if b == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		UpdateAll: true,
	}).Create(b).Error
}

func (r *repo) Find(ctx context.Context, db *gorm.DB, userID int64, name string) (*domain.Birthday, error) {
	var b domain.Birthday
	err := db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUserID returns the user's birthdays in insertion order. An upsert
// keeps the original position of the row.
func (r *repo) ListByUserID(ctx context.Context, db *gorm.DB, userID int64) ([]domain.Birthday, error) {
	var items []domain.Birthday
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("rowid ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, userID int64, name string) (bool, error) {
	res := db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Delete(&domain.Birthday{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
