package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/billing"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// SaleItemRequest mirrors the billing form's line row. Numeric fields
// arrive as strings so decimal precision survives the JSON round trip.
type SaleItemRequest struct {
	Description    string `json:"description"`
	Pieces         *int   `json:"pieces"`
	GrossWeight    string `json:"gross_weight"`
	StoneWeight    string `json:"stone_weight"`
	Wastage        string `json:"wastage"`
	Touch          string `json:"touch"`
	LaborRatePerKg string `json:"labor_rate_per_kg"`
}

type CreateSaleRequest struct {
	CustomerID  string            `json:"customer_id"`
	SilverRate  string            `json:"silver_rate"`
	Items       []SaleItemRequest `json:"items"`
	GSTEnabled  *bool             `json:"gst_enabled"`  // wholesale only
	CGSTPercent string            `json:"cgst_percent"` // defaults to 1.5
	SGSTPercent string            `json:"sgst_percent"` // defaults to 1.5
	PaidAmount  string            `json:"paid_amount"`
	PaidSilver  string            `json:"paid_silver"`
	PaymentMode string            `json:"payment_mode"`
	Notes       string            `json:"notes"`
}

type SaleFilter struct {
	CustomerID string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

type RecordPaymentRequest struct {
	Amount      string `json:"amount" binding:"required"`
	PaymentMode string `json:"payment_mode"`
	Notes       string `json:"notes"`
}

type RecordSilverPaymentRequest struct {
	SilverGrams string `json:"silver_grams" binding:"required"`
	SilverRate  string `json:"silver_rate"` // defaults to the current rate
	Notes       string `json:"notes"`
}

type SaleItemResponse struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	Pieces         int    `json:"pieces"`
	GrossWeight    string `json:"gross_weight"`
	StoneWeight    string `json:"stone_weight"`
	NetWeight      string `json:"net_weight"`
	Wastage        string `json:"wastage"`
	Touch          string `json:"touch"`
	LaborRatePerKg string `json:"labor_rate_per_kg"`
	SilverWeight   string `json:"silver_weight"`
	LaborCharge    string `json:"labor_charge"`
	Amount         string `json:"amount"`
}

type SalePaymentResponse struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	SilverGrams string `json:"silver_grams"`
	SilverRate  string `json:"silver_rate"`
	PaymentMode string `json:"payment_mode"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type SaleResponse struct {
	ID           string `json:"id"`
	SaleNo       string `json:"sale_no"`
	BillingType  string `json:"billing_type"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name,omitempty"`
	SilverRate   string `json:"silver_rate"`

	TotalNetWeight    string `json:"total_net_weight"`
	TotalWastage      string `json:"total_wastage"`
	TotalSilverWeight string `json:"total_silver_weight"`
	TotalLabor        string `json:"total_labor"`
	Subtotal          string `json:"subtotal"`

	GSTApplicable bool   `json:"gst_applicable"`
	CGSTPercent   string `json:"cgst_percent"`
	SGSTPercent   string `json:"sgst_percent"`
	CGST          string `json:"cgst"`
	SGST          string `json:"sgst"`
	TotalAmount   string `json:"total_amount"`

	PaidAmount      string `json:"paid_amount"`
	PaidSilver      string `json:"paid_silver"`
	PaidSilverValue string `json:"paid_silver_value"`
	BalanceAmount   string `json:"balance_amount"`

	PaymentMode string                `json:"payment_mode"`
	Notes       string                `json:"notes,omitempty"`
	Items       []SaleItemResponse    `json:"items,omitempty"`
	Payments    []SalePaymentResponse `json:"payments,omitempty"`
	CreatedAt   string                `json:"created_at"`
}

// --- Interface ---

// SaleService handles both billing books; billingType selects the book
// (WHOLESALE enables GST, REGULAR never applies it).
type SaleService interface {
	CreateSale(ctx context.Context, userID, billingType string, req CreateSaleRequest) (*SaleResponse, error)
	GetSale(ctx context.Context, billingType, id string) (*SaleResponse, error)
	ListSales(ctx context.Context, billingType string, filter SaleFilter) ([]SaleResponse, int64, error)
	RecordPayment(ctx context.Context, userID, billingType, id string, req RecordPaymentRequest) (*SaleResponse, error)
	RecordSilverPayment(ctx context.Context, userID, billingType, id string, req RecordSilverPaymentRequest) (*SaleResponse, error)
}

type saleService struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	rateRepo     repository.SilverRateRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	rateRepo repository.SilverRateRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		rateRepo:     rateRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

// --- Implementation ---

func parseDecimalField(value, field string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", field, err)
	}
	return d, nil
}

// buildDraft converts the request into a billing draft, filling the same
// defaults the billing form pre-fills on a new row.
func buildDraft(req CreateSaleRequest, gst billing.GSTConfig) (billing.Draft, error) {
	rate, err := parseDecimalField(req.SilverRate, "silver_rate")
	if err != nil {
		return billing.Draft{}, err
	}
	paidAmount, err := parseDecimalField(req.PaidAmount, "paid_amount")
	if err != nil {
		return billing.Draft{}, err
	}
	paidSilver, err := parseDecimalField(req.PaidSilver, "paid_silver")
	if err != nil {
		return billing.Draft{}, err
	}

	items := make([]billing.LineItem, 0, len(req.Items))
	for i, itemReq := range req.Items {
		item := billing.DefaultLineItem()
		item.Description = itemReq.Description
		if itemReq.Pieces != nil {
			item.Pieces = *itemReq.Pieces
		}
		if item.GrossWeight, err = parseDecimalField(itemReq.GrossWeight, fmt.Sprintf("items[%d].gross_weight", i)); err != nil {
			return billing.Draft{}, err
		}
		if item.StoneWeight, err = parseDecimalField(itemReq.StoneWeight, fmt.Sprintf("items[%d].stone_weight", i)); err != nil {
			return billing.Draft{}, err
		}
		if item.Wastage, err = parseDecimalField(itemReq.Wastage, fmt.Sprintf("items[%d].wastage", i)); err != nil {
			return billing.Draft{}, err
		}
		if itemReq.Touch != "" {
			if item.Touch, err = parseDecimalField(itemReq.Touch, fmt.Sprintf("items[%d].touch", i)); err != nil {
				return billing.Draft{}, err
			}
		}
		if itemReq.LaborRatePerKg != "" {
			if item.LaborRatePerKg, err = parseDecimalField(itemReq.LaborRatePerKg, fmt.Sprintf("items[%d].labor_rate_per_kg", i)); err != nil {
				return billing.Draft{}, err
			}
		}
		items = append(items, item)
	}

	return billing.Draft{
		CustomerID: req.CustomerID,
		SilverRate: rate,
		Items:      items,
		GST:        gst,
		Payment:    billing.Payment{PaidAmount: paidAmount, PaidSilver: paidSilver},
	}, nil
}

func gstConfigFromRequest(billingType string, req CreateSaleRequest) (billing.GSTConfig, error) {
	if billingType != model.BillingWholesale {
		return billing.GSTConfig{}, nil
	}

	gst := billing.WholesaleGST()
	if req.GSTEnabled != nil {
		gst.Applicable = *req.GSTEnabled
	}
	if req.CGSTPercent != "" {
		pct, err := parseDecimalField(req.CGSTPercent, "cgst_percent")
		if err != nil {
			return billing.GSTConfig{}, err
		}
		gst.CGSTPercent = pct
	}
	if req.SGSTPercent != "" {
		pct, err := parseDecimalField(req.SGSTPercent, "sgst_percent")
		if err != nil {
			return billing.GSTConfig{}, err
		}
		gst.SGSTPercent = pct
	}
	return gst, nil
}

// CreateSale validates the draft, recomputes every total server-side
// (client-sent totals are never trusted) and persists the sale, its
// items and the customer balance shift in one transaction.
func (s *saleService) CreateSale(ctx context.Context, userID, billingType string, req CreateSaleRequest) (*SaleResponse, error) {
	gst, err := gstConfigFromRequest(billingType, req)
	if err != nil {
		return nil, err
	}

	draft, err := buildDraft(req, gst)
	if err != nil {
		return nil, err
	}

	if errs := billing.ValidateDraft(draft); len(errs) > 0 {
		return nil, errs
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id: %w", err)
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	expectedScope := model.ScopeRegular
	if billingType == model.BillingWholesale {
		expectedScope = model.ScopeWholesale
	}
	if customer.Scope != expectedScope {
		return nil, fmt.Errorf("customer belongs to the %s book", customer.Scope)
	}

	comp := billing.ComputeTotals(draft.Items, draft.SilverRate, draft.GST, draft.Payment)

	paymentMode := req.PaymentMode
	if paymentMode == "" {
		paymentMode = model.PayModeCash
	}

	saleNo, err := s.generateSaleNo(ctx, billingType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sale number: %w", err)
	}

	sale := model.Sale{
		SaleNo:      saleNo,
		BillingType: billingType,
		CustomerID:  customerID,
		SilverRate:  draft.SilverRate,

		TotalNetWeight:    comp.TotalNetWeight,
		TotalWastage:      comp.TotalWastage,
		TotalSilverWeight: comp.TotalSilverWeight,
		TotalLabor:        comp.TotalLabor,
		Subtotal:          comp.Subtotal,

		GSTApplicable: gst.Applicable,
		CGSTPercent:   gst.CGSTPercent,
		SGSTPercent:   gst.SGSTPercent,
		CGST:          comp.CGST,
		SGST:          comp.SGST,
		TotalAmount:   comp.TotalAmount,

		PaidAmount:      draft.Payment.PaidAmount,
		PaidSilver:      draft.Payment.PaidSilver,
		PaidSilverValue: comp.PaidSilverValue,
		BalanceAmount:   comp.BalanceAmount,

		PaymentMode: paymentMode,
		Notes:       req.Notes,
	}

	for i, item := range draft.Items {
		ic := comp.Items[i]
		sale.Items = append(sale.Items, model.SaleItem{
			Description:    item.Description,
			Pieces:         item.Pieces,
			GrossWeight:    item.GrossWeight,
			StoneWeight:    item.StoneWeight,
			NetWeight:      ic.NetWeight,
			Wastage:        item.Wastage,
			Touch:          item.Touch,
			LaborRatePerKg: item.LaborRatePerKg,
			SilverWeight:   ic.SilverWeight,
			LaborCharge:    ic.LaborCharge,
			Amount:         ic.Amount,
		})
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.saleRepo.Create(txCtx, &sale); err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		// Outstanding balance (sign preserved) and silver received feed
		// the customer's running totals.
		if err := s.customerRepo.AddToBalance(txCtx, customerID, comp.BalanceAmount, draft.Payment.PaidSilver.Neg()); err != nil {
			return fmt.Errorf("failed to update customer balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionCreateSale, sale.ID.String(), saleNo, comp.Formatted())

	reloaded, err := s.saleRepo.FindByIDWithItems(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload sale: %w", err)
	}
	resp := toSaleResponse(*reloaded)
	return &resp, nil
}

func (s *saleService) GetSale(ctx context.Context, billingType, id string) (*SaleResponse, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid sale id: %w", err)
	}

	sale, err := s.saleRepo.FindByIDWithItems(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("sale not found: %w", err)
	}
	if sale.BillingType != billingType {
		return nil, fmt.Errorf("sale not found in the %s book", billingType)
	}

	resp := toSaleResponse(*sale)
	return &resp, nil
}

func (s *saleService) ListSales(ctx context.Context, billingType string, filter SaleFilter) ([]SaleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter := repository.SaleListFilter{
		BillingType: billingType,
		StartDate:   filter.StartDate,
		EndDate:     filter.EndDate,
		Page:        filter.Page,
		Limit:       filter.Limit,
	}
	if filter.CustomerID != "" {
		customerID, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid customer_id: %w", err)
		}
		repoFilter.CustomerID = &customerID
	}

	sales, total, err := s.saleRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch sales: %w", err)
	}

	result := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		result = append(result, toSaleResponse(sale))
	}
	return result, total, nil
}

// RecordPayment appends a cash settlement to a sale, reducing both the
// sale balance and the customer's running balance.
func (s *saleService) RecordPayment(ctx context.Context, userID, billingType, id string, req RecordPaymentRequest) (*SaleResponse, error) {
	amount, err := parseDecimalField(req.Amount, "amount")
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero")
	}

	paymentMode := req.PaymentMode
	if paymentMode == "" {
		paymentMode = model.PayModeCash
	}

	return s.applyPayment(ctx, userID, billingType, id, model.SalePayment{
		Amount:      amount,
		PaymentMode: paymentMode,
		Notes:       req.Notes,
	}, amount, decimal.Zero)
}

// RecordSilverPayment appends a silver-in-kind settlement valued at the
// supplied rate, or the current rate when none is given.
func (s *saleService) RecordSilverPayment(ctx context.Context, userID, billingType, id string, req RecordSilverPaymentRequest) (*SaleResponse, error) {
	grams, err := parseDecimalField(req.SilverGrams, "silver_grams")
	if err != nil {
		return nil, err
	}
	if !grams.IsPositive() {
		return nil, fmt.Errorf("silver_grams must be greater than zero")
	}

	rate, err := parseDecimalField(req.SilverRate, "silver_rate")
	if err != nil {
		return nil, err
	}
	if rate.IsZero() {
		current, err := s.rateRepo.FindCurrent(ctx, time.Now())
		if err != nil {
			return nil, fmt.Errorf("no silver rate available: %w", err)
		}
		rate = current.RatePerGram
	}

	value := grams.Mul(rate)
	return s.applyPayment(ctx, userID, billingType, id, model.SalePayment{
		SilverGrams: grams,
		SilverRate:  rate,
		PaymentMode: model.PayModeCash,
		Notes:       req.Notes,
	}, value, grams)
}

func (s *saleService) applyPayment(ctx context.Context, userID, billingType, id string, payment model.SalePayment, value, silverGrams decimal.Decimal) (*SaleResponse, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid sale id: %w", err)
	}

	var sale *model.Sale
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		sale, findErr = s.saleRepo.FindByID(txCtx, saleID)
		if findErr != nil {
			return fmt.Errorf("sale not found: %w", findErr)
		}
		if sale.BillingType != billingType {
			return fmt.Errorf("sale not found in the %s book", billingType)
		}

		payment.SaleID = sale.ID
		if err := s.saleRepo.AddPayment(txCtx, &payment); err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		sale.PaidAmount = sale.PaidAmount.Add(payment.Amount)
		sale.PaidSilver = sale.PaidSilver.Add(payment.SilverGrams)
		sale.PaidSilverValue = sale.PaidSilverValue.Add(payment.SilverGrams.Mul(payment.SilverRate))
		// Sign preserved: overpaying flips the balance negative (credit).
		sale.BalanceAmount = sale.BalanceAmount.Sub(value)
		if err := s.saleRepo.Update(txCtx, sale); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}

		if err := s.customerRepo.AddToBalance(txCtx, sale.CustomerID, value.Neg(), silverGrams.Neg()); err != nil {
			return fmt.Errorf("failed to update customer balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionRecordPayment, sale.ID.String(), sale.SaleNo, map[string]string{
		"value":        value.StringFixed(2),
		"silver_grams": silverGrams.StringFixed(3),
	})

	reloaded, err := s.saleRepo.FindByIDWithItems(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload sale: %w", err)
	}
	resp := toSaleResponse(*reloaded)
	return &resp, nil
}

func (s *saleService) generateSaleNo(ctx context.Context, billingType string) (string, error) {
	tag := "REG"
	if billingType == model.BillingWholesale {
		tag = "WHL"
	}
	prefix := fmt.Sprintf("%s-%s-", tag, time.Now().Format("20060102"))

	count, err := s.saleRepo.CountByPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}

// --- Mapping ---

func toSaleResponse(sale model.Sale) SaleResponse {
	resp := SaleResponse{
		ID:          sale.ID.String(),
		SaleNo:      sale.SaleNo,
		BillingType: sale.BillingType,
		CustomerID:  sale.CustomerID.String(),
		SilverRate:  sale.SilverRate.StringFixed(2),

		TotalNetWeight:    sale.TotalNetWeight.StringFixed(3),
		TotalWastage:      sale.TotalWastage.StringFixed(3),
		TotalSilverWeight: sale.TotalSilverWeight.StringFixed(3),
		TotalLabor:        sale.TotalLabor.StringFixed(2),
		Subtotal:          sale.Subtotal.StringFixed(2),

		GSTApplicable: sale.GSTApplicable,
		CGSTPercent:   sale.CGSTPercent.StringFixed(2),
		SGSTPercent:   sale.SGSTPercent.StringFixed(2),
		CGST:          sale.CGST.StringFixed(2),
		SGST:          sale.SGST.StringFixed(2),
		TotalAmount:   sale.TotalAmount.StringFixed(2),

		PaidAmount:      sale.PaidAmount.StringFixed(2),
		PaidSilver:      sale.PaidSilver.StringFixed(3),
		PaidSilverValue: sale.PaidSilverValue.StringFixed(2),
		BalanceAmount:   sale.BalanceAmount.StringFixed(2),

		PaymentMode: sale.PaymentMode,
		Notes:       sale.Notes,
		CreatedAt:   sale.CreatedAt.Format(time.RFC3339),
	}

	if sale.Customer != nil {
		resp.CustomerName = sale.Customer.Name
	}

	for _, item := range sale.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:             item.ID.String(),
			Description:    item.Description,
			Pieces:         item.Pieces,
			GrossWeight:    item.GrossWeight.StringFixed(3),
			StoneWeight:    item.StoneWeight.StringFixed(3),
			NetWeight:      item.NetWeight.StringFixed(3),
			Wastage:        item.Wastage.StringFixed(3),
			Touch:          item.Touch.StringFixed(2),
			LaborRatePerKg: item.LaborRatePerKg.StringFixed(2),
			SilverWeight:   item.SilverWeight.StringFixed(3),
			LaborCharge:    item.LaborCharge.StringFixed(2),
			Amount:         item.Amount.StringFixed(2),
		})
	}

	for _, p := range sale.Payments {
		resp.Payments = append(resp.Payments, SalePaymentResponse{
			ID:          p.ID.String(),
			Amount:      p.Amount.StringFixed(2),
			SilverGrams: p.SilverGrams.StringFixed(3),
			SilverRate:  p.SilverRate.StringFixed(2),
			PaymentMode: p.PaymentMode,
			Notes:       p.Notes,
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp
}
