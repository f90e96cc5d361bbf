package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

// BillingStatsResponse is the billing dashboard header for one book.
type BillingStatsResponse struct {
	BillingType   string `json:"billing_type"`
	CustomerCount int64  `json:"customer_count"`
	TodaySales    int64  `json:"today_sales"`
	TodayAmount   string `json:"today_amount"`
	TodayPaid     string `json:"today_paid"`
	TodayBalance  string `json:"today_balance"`
}

// DailyAnalysisResponse aggregates one day's sales for a book.
type DailyAnalysisResponse struct {
	Date              string `json:"date"`
	BillingType       string `json:"billing_type"`
	SaleCount         int64  `json:"sale_count"`
	TotalNetWeight    string `json:"total_net_weight"`
	TotalSilverWeight string `json:"total_silver_weight"`
	TotalLabor        string `json:"total_labor"`
	TotalAmount       string `json:"total_amount"`
	TotalPaid         string `json:"total_paid"`
	TotalBalance      string `json:"total_balance"`
}

// AdminDashboardResponse backs the storefront admin landing page.
type AdminDashboardResponse struct {
	ProductCount       int64  `json:"product_count"`
	WholesaleCustomers int64  `json:"wholesale_customers"`
	RegularCustomers   int64  `json:"regular_customers"`
	CurrentSilverRate  string `json:"current_silver_rate"`
}

// --- Interface ---

type StatsService interface {
	BillingStats(ctx context.Context, billingType string) (*BillingStatsResponse, error)
	DailyAnalysis(ctx context.Context, billingType string, date time.Time) (*DailyAnalysisResponse, error)
	AdminDashboard(ctx context.Context) (*AdminDashboardResponse, error)
}

type statsService struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	rateRepo     repository.SilverRateRepository
}

func NewStatsService(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	rateRepo repository.SilverRateRepository,
) StatsService {
	return &statsService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		rateRepo:     rateRepo,
	}
}

// --- Implementation ---

func scopeForBillingType(billingType string) string {
	if billingType == model.BillingWholesale {
		return model.ScopeWholesale
	}
	return model.ScopeRegular
}

func (s *statsService) BillingStats(ctx context.Context, billingType string) (*BillingStatsResponse, error) {
	customerCount, err := s.customerRepo.CountByScope(ctx, scopeForBillingType(billingType))
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	today, err := s.saleRepo.DailyTotals(ctx, billingType, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate today's sales: %w", err)
	}

	return &BillingStatsResponse{
		BillingType:   billingType,
		CustomerCount: customerCount,
		TodaySales:    today.SaleCount,
		TodayAmount:   decimal.NewFromFloat(today.TotalAmount).StringFixed(2),
		TodayPaid:     decimal.NewFromFloat(today.TotalPaid).StringFixed(2),
		TodayBalance:  decimal.NewFromFloat(today.TotalBalance).StringFixed(2),
	}, nil
}

func (s *statsService) DailyAnalysis(ctx context.Context, billingType string, date time.Time) (*DailyAnalysisResponse, error) {
	totals, err := s.saleRepo.DailyTotals(ctx, billingType, date)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	return &DailyAnalysisResponse{
		Date:              date.Format(dateLayout),
		BillingType:       billingType,
		SaleCount:         totals.SaleCount,
		TotalNetWeight:    decimal.NewFromFloat(totals.TotalNetWeight).StringFixed(3),
		TotalSilverWeight: decimal.NewFromFloat(totals.TotalSilverWeight).StringFixed(3),
		TotalLabor:        decimal.NewFromFloat(totals.TotalLabor).StringFixed(2),
		TotalAmount:       decimal.NewFromFloat(totals.TotalAmount).StringFixed(2),
		TotalPaid:         decimal.NewFromFloat(totals.TotalPaid).StringFixed(2),
		TotalBalance:      decimal.NewFromFloat(totals.TotalBalance).StringFixed(2),
	}, nil
}

func (s *statsService) AdminDashboard(ctx context.Context) (*AdminDashboardResponse, error) {
	productCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	wholesale, err := s.customerRepo.CountByScope(ctx, model.ScopeWholesale)
	if err != nil {
		return nil, fmt.Errorf("failed to count wholesale customers: %w", err)
	}
	regular, err := s.customerRepo.CountByScope(ctx, model.ScopeRegular)
	if err != nil {
		return nil, fmt.Errorf("failed to count regular customers: %w", err)
	}

	resp := &AdminDashboardResponse{
		ProductCount:       productCount,
		WholesaleCustomers: wholesale,
		RegularCustomers:   regular,
	}
	if rate, err := s.rateRepo.FindCurrent(ctx, time.Now()); err == nil {
		resp.CurrentSilverRate = rate.RatePerGram.StringFixed(2)
	}
	return resp, nil
}
