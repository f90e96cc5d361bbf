package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerListFilter narrows a billing book's customer listing.
type CustomerListFilter struct {
	Scope  string // WHOLESALE or REGULAR, required
	Search string // partial match on name or phone
	Page   int
	Limit  int
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, filter CustomerListFilter) ([]model.Customer, int64, error)
	CountByScope(ctx context.Context, scope string) (int64, error)
	AddToBalance(ctx context.Context, id uuid.UUID, amount, silver decimal.Decimal) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return GetDB(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return GetDB(ctx, r.db).Save(customer).Error
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := GetDB(ctx, r.db).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, filter CustomerListFilter) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	db := GetDB(ctx, r.db)
	applyFilter := func(q *gorm.DB) *gorm.DB {
		q = q.Where("scope = ?", filter.Scope)
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			q = q.Where("name ILIKE ? OR phone ILIKE ?", like, like)
		}
		return q
	}

	if err := applyFilter(db.Model(&model.Customer{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := applyFilter(db).Order("name asc").Offset(offset).Limit(filter.Limit).Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *customerRepository) CountByScope(ctx context.Context, scope string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Customer{}).Where("scope = ?", scope).Count(&count).Error
	return count, err
}

// AddToBalance atomically shifts the running balances. Callers pass
// negative values to reduce (payments), positive to grow (new sales).
func (r *customerRepository) AddToBalance(ctx context.Context, id uuid.UUID, amount, silver decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance_amount": gorm.Expr("balance_amount + ?", amount),
			"balance_silver": gorm.Expr("balance_silver + ?", silver),
		}).Error
}
