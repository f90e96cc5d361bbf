package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleListFilter narrows the sale listing within one billing type.
type SaleListFilter struct {
	BillingType string // REGULAR or WHOLESALE, required
	CustomerID  *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	Limit       int
}

// DailyTotals is the raw aggregate row behind the daily analysis view.
type DailyTotals struct {
	SaleCount         int64
	TotalNetWeight    float64
	TotalSilverWeight float64
	TotalLabor        float64
	TotalAmount       float64
	TotalPaid         float64
	TotalBalance      float64
}

type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter SaleListFilter) ([]model.Sale, int64, error)
	ListForExport(ctx context.Context, filter SaleListFilter) ([]model.Sale, error)
	Update(ctx context.Context, sale *model.Sale) error
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
	DailyTotals(ctx context.Context, billingType string, day time.Time) (DailyTotals, error)
	AddPayment(ctx context.Context, payment *model.SalePayment) error
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *model.Sale) error {
	return GetDB(ctx, r.db).Create(sale).Error
}

func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := GetDB(ctx, r.db).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := GetDB(ctx, r.db).
		Preload("Items").
		Preload("Payments").
		Preload("Customer").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) applyFilter(q *gorm.DB, filter SaleListFilter) *gorm.DB {
	q = q.Where("billing_type = ?", filter.BillingType)
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.StartDate != nil {
		q = q.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("created_at <= ?", *filter.EndDate)
	}
	return q
}

func (r *saleRepository) List(ctx context.Context, filter SaleListFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	db := GetDB(ctx, r.db)
	if err := r.applyFilter(db.Model(&model.Sale{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := r.applyFilter(db.Preload("Customer"), filter).
		Order("created_at desc").
		Offset(offset).
		Limit(filter.Limit)
	if err := query.Find(&sales).Error; err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// ListForExport skips pagination and preloads items so the Excel
// exporter can stream every matching sale.
func (r *saleRepository) ListForExport(ctx context.Context, filter SaleListFilter) ([]model.Sale, error) {
	var sales []model.Sale
	db := GetDB(ctx, r.db)
	query := r.applyFilter(db.Preload("Items").Preload("Payments").Preload("Customer"), filter).
		Order("created_at asc")
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *saleRepository) Update(ctx context.Context, sale *model.Sale) error {
	return GetDB(ctx, r.db).Save(sale).Error
}

func (r *saleRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Sale{}).
		Where("sale_no LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}

func (r *saleRepository) DailyTotals(ctx context.Context, billingType string, day time.Time) (DailyTotals, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var row struct {
		SaleCount         int64
		TotalNetWeight    float64
		TotalSilverWeight float64
		TotalLabor        float64
		TotalAmount       float64
		TotalPaid         float64
		TotalBalance      float64
	}

	err := GetDB(ctx, r.db).Model(&model.Sale{}).
		Select(`COUNT(*) as sale_count,
			COALESCE(SUM(total_net_weight), 0) as total_net_weight,
			COALESCE(SUM(total_silver_weight), 0) as total_silver_weight,
			COALESCE(SUM(total_labor), 0) as total_labor,
			COALESCE(SUM(total_amount), 0) as total_amount,
			COALESCE(SUM(paid_amount + paid_silver_value), 0) as total_paid,
			COALESCE(SUM(balance_amount), 0) as total_balance`).
		Where("billing_type = ? AND created_at >= ? AND created_at < ?", billingType, start, end).
		Scan(&row).Error
	if err != nil {
		return DailyTotals{}, err
	}

	return DailyTotals(row), nil
}

func (r *saleRepository) AddPayment(ctx context.Context, payment *model.SalePayment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}
