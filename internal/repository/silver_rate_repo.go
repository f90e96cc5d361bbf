package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"gorm.io/gorm"
)

type SilverRateRepository interface {
	Create(ctx context.Context, rate *model.SilverRate) error
	FindCurrent(ctx context.Context, asOf time.Time) (*model.SilverRate, error)
	FindByDate(ctx context.Context, date time.Time) (*model.SilverRate, error)
	History(ctx context.Context, limit int) ([]model.SilverRate, error)
}

type silverRateRepository struct {
	db *gorm.DB
}

func NewSilverRateRepository(db *gorm.DB) SilverRateRepository {
	return &silverRateRepository{db: db}
}

func (r *silverRateRepository) Create(ctx context.Context, rate *model.SilverRate) error {
	return GetDB(ctx, r.db).Create(rate).Error
}

// FindCurrent returns the most recent rate effective on or before asOf.
// Same temporal lookup shape as a dated tax-rate query.
func (r *silverRateRepository) FindCurrent(ctx context.Context, asOf time.Time) (*model.SilverRate, error) {
	var rate model.SilverRate
	err := GetDB(ctx, r.db).
		Where("effective_date <= ?", asOf).
		Order("effective_date DESC").
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *silverRateRepository) FindByDate(ctx context.Context, date time.Time) (*model.SilverRate, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	var rate model.SilverRate
	if err := GetDB(ctx, r.db).First(&rate, "effective_date = ?", day).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *silverRateRepository) History(ctx context.Context, limit int) ([]model.SilverRate, error) {
	var rates []model.SilverRate
	err := GetDB(ctx, r.db).
		Order("effective_date DESC").
		Limit(limit).
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}
