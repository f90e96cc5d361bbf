package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductListFilter narrows the catalog listing.
type ProductListFilter struct {
	Search     string // partial match on name or sku
	CategoryID *uuid.UUID
	Featured   *bool
	Page       int
	Limit      int
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter ProductListFilter) ([]model.Product, int64, error)
	Count(ctx context.Context) (int64, error)

	ListCategories(ctx context.Context) ([]model.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductListFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db)
	applyFilter := func(q *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			q = q.Where("name ILIKE ? OR sku ILIKE ?", like, like)
		}
		if filter.CategoryID != nil {
			q = q.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.Featured != nil {
			q = q.Where("is_featured = ?", *filter.Featured)
		}
		return q
	}

	if err := applyFilter(db.Model(&model.Product{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := applyFilter(db.Preload("Category")).
		Order("created_at desc").
		Offset(offset).
		Limit(filter.Limit)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := GetDB(ctx, r.db).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *productRepository) FindCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := GetDB(ctx, r.db).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *productRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	return GetDB(ctx, r.db).Create(category).Error
}
