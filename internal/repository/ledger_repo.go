package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerListFilter selects one Jama/Kharch book page.
type LedgerListFilter struct {
	Scope     string // WHOLESALE or REGULAR, required
	Account   string // CASH or SILVER, required
	EntryType string // JAMA, KHARCH or empty for both
	Page      int
	Limit     int
}

type LedgerRepository interface {
	Create(ctx context.Context, entry *model.LedgerEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LedgerEntry, error)
	List(ctx context.Context, filter LedgerListFilter) ([]model.LedgerEntry, int64, error)
	ListByParty(ctx context.Context, scope, partyName string) ([]model.LedgerEntry, error)
	SumByType(ctx context.Context, scope, account, entryType string) (float64, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *model.LedgerEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *ledgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.LedgerEntry{}).Error
}

func (r *ledgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	if err := GetDB(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ledgerRepository) List(ctx context.Context, filter LedgerListFilter) ([]model.LedgerEntry, int64, error) {
	var entries []model.LedgerEntry
	var total int64

	db := GetDB(ctx, r.db)
	applyFilter := func(q *gorm.DB) *gorm.DB {
		q = q.Where("scope = ? AND account = ?", filter.Scope, filter.Account)
		if filter.EntryType != "" {
			q = q.Where("entry_type = ?", filter.EntryType)
		}
		return q
	}

	if err := applyFilter(db.Model(&model.LedgerEntry{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := applyFilter(db).
		Order("entry_date desc, created_at desc").
		Offset(offset).
		Limit(filter.Limit)
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// ListByParty pulls every book entry recorded against a party name. The
// paper jama/kharch book references parties by name, so the customer
// ledger view matches on it.
func (r *ledgerRepository) ListByParty(ctx context.Context, scope, partyName string) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := GetDB(ctx, r.db).
		Where("scope = ? AND party_name = ?", scope, partyName).
		Order("entry_date asc, created_at asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *ledgerRepository) SumByType(ctx context.Context, scope, account, entryType string) (float64, error) {
	var row struct {
		Total float64
	}
	err := GetDB(ctx, r.db).Model(&model.LedgerEntry{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("scope = ? AND account = ? AND entry_type = ?", scope, account, entryType).
		Scan(&row).Error
	return row.Total, err
}
