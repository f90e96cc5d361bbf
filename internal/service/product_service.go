package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateProductRequest struct {
	SKU         string `json:"sku" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	Price       string `json:"price" binding:"required"`
	WeightGrams string `json:"weight_grams"`
	ImageURL    string `json:"image_url"`
	IsFeatured  bool   `json:"is_featured"`
	InStock     *bool  `json:"in_stock"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id"`
	Price       *string `json:"price"`
	WeightGrams *string `json:"weight_grams"`
	ImageURL    *string `json:"image_url"`
	IsFeatured  *bool   `json:"is_featured"`
	InStock     *bool   `json:"in_stock"`
}

type ProductFilter struct {
	Search   string
	Category string // category slug
	Featured *bool
	Page     int
	Limit    int
}

type ProductResponse struct {
	ID          string  `json:"id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CategoryID  *string `json:"category_id"`
	Category    *string `json:"category"`
	Price       string  `json:"price"`
	WeightGrams string  `json:"weight_grams"`
	ImageURL    string  `json:"image_url"`
	IsFeatured  bool    `json:"is_featured"`
	InStock     bool    `json:"in_stock"`
	CreatedAt   string  `json:"created_at"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// --- Interface ---

type ProductService interface {
	CreateProduct(ctx context.Context, userID string, req CreateProductRequest) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, userID string, id string, req UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, userID string, id string) error
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]ProductResponse, int64, error)
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
	CreateCategory(ctx context.Context, name string) (*CategoryResponse, error)
}

type productService struct {
	repo      repository.ProductRepository
	auditRepo repository.AuditRepository
}

func NewProductService(repo repository.ProductRepository, auditRepo repository.AuditRepository) ProductService {
	return &productService{repo: repo, auditRepo: auditRepo}
}

// --- Implementation ---

func toProductResponse(p model.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		WeightGrams: p.WeightGrams.StringFixed(3),
		ImageURL:    p.ImageURL,
		IsFeatured:  p.IsFeatured,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	if p.Category != nil {
		resp.Category = &p.Category.Name
	}
	return resp
}

func (s *productService) CreateProduct(ctx context.Context, userID string, req CreateProductRequest) (*ProductResponse, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}

	weight := decimal.Zero
	if req.WeightGrams != "" {
		weight, err = decimal.NewFromString(req.WeightGrams)
		if err != nil {
			return nil, fmt.Errorf("invalid weight_grams: %w", err)
		}
	}

	product := model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		WeightGrams: weight,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
		InStock:     true,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if req.CategoryID != "" {
		catID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id: %w", err)
		}
		product.CategoryID = &catID
	}

	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionCreateProduct, product.ID.String(), product.Name, req)

	reloaded, err := s.repo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	resp := toProductResponse(*reloaded)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, userID string, id string, req UpdateProductRequest) (*ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			product.CategoryID = nil
		} else {
			catID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				return nil, fmt.Errorf("invalid category_id: %w", err)
			}
			product.CategoryID = &catID
		}
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %w", err)
		}
		product.Price = price
	}
	if req.WeightGrams != nil {
		weight, err := decimal.NewFromString(*req.WeightGrams)
		if err != nil {
			return nil, fmt.Errorf("invalid weight_grams: %w", err)
		}
		product.WeightGrams = weight
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionUpdateProduct, product.ID.String(), product.Name, req)

	resp := toProductResponse(*product)
	return &resp, nil
}

func (s *productService) DeleteProduct(ctx context.Context, userID string, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("product not found: %w", err)
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionDeleteProduct, id, product.Name, nil)
	return nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	resp := toProductResponse(*product)
	return &resp, nil
}

func (s *productService) ListProducts(ctx context.Context, filter ProductFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter := repository.ProductListFilter{
		Search:   filter.Search,
		Featured: filter.Featured,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}

	if filter.Category != "" {
		category, err := s.repo.FindCategoryBySlug(ctx, filter.Category)
		if err != nil {
			// Unknown category yields an empty page, not an error.
			return []ProductResponse{}, 0, nil
		}
		repoFilter.CategoryID = &category.ID
	}

	products, total, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponse(p))
	}
	return result, total, nil
}

func (s *productService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	result := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, CategoryResponse{ID: c.ID.String(), Name: c.Name, Slug: c.Slug})
	}
	return result, nil
}

func (s *productService) CreateCategory(ctx context.Context, name string) (*CategoryResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	category := model.Category{
		Name: name,
		Slug: slugify(name),
	}
	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CategoryResponse{ID: category.ID.String(), Name: category.Name, Slug: category.Slug}, nil
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
