package repository

import (
	"context"

	"github.com/smallbiznis/togetherbot/internal/holiday/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, h *domain.PersonalHoliday) error {
	if h == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		UpdateAll: true,
	}).Create(h).Error
}

func (r *repo) ListByUserID(ctx context.Context, db *gorm.DB, userID int64) ([]domain.PersonalHoliday, error) {
	var items []domain.PersonalHoliday
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
		Delete(&domain.PersonalHoliday{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
