package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin"`
}

type CustomerResponse struct {
	ID            string `json:"id"`
	Scope         string `json:"scope"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	GSTIN         string `json:"gstin,omitempty"`
	BalanceAmount string `json:"balance_amount"`
	BalanceSilver string `json:"balance_silver"`
	CreatedAt     string `json:"created_at"`
}

// LedgerEventResponse is one row of a customer's merged statement:
// sales add to the outstanding balance, payments reduce it.
type LedgerEventResponse struct {
	Date           string `json:"date"`
	Type           string `json:"type"` // SALE, PAYMENT, JAMA, KHARCH
	Reference      string `json:"reference,omitempty"`
	Description    string `json:"description"`
	Debit          string `json:"debit"`
	Credit         string `json:"credit"`
	SilverDebit    string `json:"silver_debit"`
	SilverCredit   string `json:"silver_credit"`
	RunningBalance string `json:"running_balance"`
	RunningSilver  string `json:"running_silver"`
}

type CustomerLedgerResponse struct {
	Customer CustomerResponse      `json:"customer"`
	Events   []LedgerEventResponse `json:"events"`
}

// --- Interface ---

type CustomerService interface {
	CreateCustomer(ctx context.Context, userID, scope string, req CreateCustomerRequest) (*CustomerResponse, error)
	UpdateCustomer(ctx context.Context, userID, id string, req UpdateCustomerRequest) (*CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*CustomerResponse, error)
	ListCustomers(ctx context.Context, scope, search string, page, limit int) ([]CustomerResponse, int64, error)
	GetCustomerLedger(ctx context.Context, id string) (*CustomerLedgerResponse, error)
}

type customerService struct {
	repo       repository.CustomerRepository
	saleRepo   repository.SaleRepository
	ledgerRepo repository.LedgerRepository
	auditRepo  repository.AuditRepository
}

func NewCustomerService(
	repo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	ledgerRepo repository.LedgerRepository,
	auditRepo repository.AuditRepository,
) CustomerService {
	return &customerService{
		repo:       repo,
		saleRepo:   saleRepo,
		ledgerRepo: ledgerRepo,
		auditRepo:  auditRepo,
	}
}

// --- Implementation ---

func toCustomerResponse(c model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID.String(),
		Scope:         c.Scope,
		Name:          c.Name,
		Phone:         c.Phone,
		Address:       c.Address,
		GSTIN:         c.GSTIN,
		BalanceAmount: c.BalanceAmount.StringFixed(2),
		BalanceSilver: c.BalanceSilver.StringFixed(3),
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}

func validScope(scope string) bool {
	return scope == model.ScopeWholesale || scope == model.ScopeRegular
}

func (s *customerService) CreateCustomer(ctx context.Context, userID, scope string, req CreateCustomerRequest) (*CustomerResponse, error) {
	if !validScope(scope) {
		return nil, fmt.Errorf("invalid scope %q", scope)
	}

	customer := model.Customer{
		Scope:   scope,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		GSTIN:   req.GSTIN,
	}
	if err := s.repo.Create(ctx, &customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionCreateCustomer, customer.ID.String(), customer.Name, req)

	resp := toCustomerResponse(customer)
	return &resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, userID, id string, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", err)
	}

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.GSTIN != nil {
		customer.GSTIN = *req.GSTIN
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionUpdateCustomer, customer.ID.String(), customer.Name, req)

	resp := toCustomerResponse(*customer)
	return &resp, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", err)
	}

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}

	resp := toCustomerResponse(*customer)
	return &resp, nil
}

func (s *customerService) ListCustomers(ctx context.Context, scope, search string, page, limit int) ([]CustomerResponse, int64, error) {
	if !validScope(scope) {
		return nil, 0, fmt.Errorf("invalid scope %q", scope)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	customers, total, err := s.repo.List(ctx, repository.CustomerListFilter{
		Scope:  scope,
		Search: search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	result := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		result = append(result, toCustomerResponse(c))
	}
	return result, total, nil
}

// ledgerEvent is the unformatted form of one statement row.
type ledgerEvent struct {
	at           time.Time
	kind         string
	reference    string
	description  string
	debit        decimal.Decimal
	credit       decimal.Decimal
	silverDebit  decimal.Decimal
	silverCredit decimal.Decimal
}

// GetCustomerLedger merges the customer's sales, their appended payments
// and any jama/kharch book entries recorded against the customer's name
// into one chronological statement with running balances.
func (s *customerService) GetCustomerLedger(ctx context.Context, id string) (*CustomerLedgerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", err)
	}

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}

	billingType := model.BillingRegular
	if customer.Scope == model.ScopeWholesale {
		billingType = model.BillingWholesale
	}

	sales, err := s.saleRepo.ListForExport(ctx, repository.SaleListFilter{
		BillingType: billingType,
		CustomerID:  &customerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	bookEntries, err := s.ledgerRepo.ListByParty(ctx, customer.Scope, customer.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger entries: %w", err)
	}

	var events []ledgerEvent
	for _, sale := range sales {
		events = append(events, ledgerEvent{
			at:          sale.CreatedAt,
			kind:        "SALE",
			reference:   sale.SaleNo,
			description: fmt.Sprintf("Sale %s (%d items)", sale.SaleNo, len(sale.Items)),
			debit:        sale.TotalAmount,
			credit:       sale.PaidAmount.Add(sale.PaidSilverValue),
			silverCredit: sale.PaidSilver,
		})
		for _, p := range sale.Payments {
			events = append(events, ledgerEvent{
				at:           p.CreatedAt,
				kind:         "PAYMENT",
				reference:    sale.SaleNo,
				description:  "Payment against " + sale.SaleNo,
				credit:       p.Amount.Add(p.SilverGrams.Mul(p.SilverRate)),
				silverCredit: p.SilverGrams,
			})
		}
	}
	for _, e := range bookEntries {
		ev := ledgerEvent{
			at:          e.EntryDate,
			kind:        e.EntryType,
			description: e.Notes,
		}
		if ev.description == "" {
			ev.description = e.EntryType + " entry"
		}
		switch {
		case e.Account == model.LedgerAccountCash && e.EntryType == model.EntryJama:
			ev.credit = e.Amount
		case e.Account == model.LedgerAccountCash && e.EntryType == model.EntryKharch:
			ev.debit = e.Amount
		case e.Account == model.LedgerAccountSilver && e.EntryType == model.EntryJama:
			ev.silverCredit = e.Amount
		default:
			ev.silverDebit = e.Amount
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})

	// Running balance is a fold over the events; the stored customer
	// balances are not consulted.
	var balance, silver decimal.Decimal
	rows := make([]LedgerEventResponse, 0, len(events))
	for _, ev := range events {
		balance = balance.Add(ev.debit).Sub(ev.credit)
		silver = silver.Add(ev.silverDebit).Sub(ev.silverCredit)
		rows = append(rows, LedgerEventResponse{
			Date:           ev.at.Format(time.RFC3339),
			Type:           ev.kind,
			Reference:      ev.reference,
			Description:    ev.description,
			Debit:          ev.debit.StringFixed(2),
			Credit:         ev.credit.StringFixed(2),
			SilverDebit:    ev.silverDebit.StringFixed(3),
			SilverCredit:   ev.silverCredit.StringFixed(3),
			RunningBalance: balance.StringFixed(2),
			RunningSilver:  silver.StringFixed(3),
		})
	}

	return &CustomerLedgerResponse{
		Customer: toCustomerResponse(*customer),
		Events:   rows,
	}, nil
}
