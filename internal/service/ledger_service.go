package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateLedgerEntryRequest struct {
	EntryType string `json:"entry_type" binding:"required,oneof=JAMA KHARCH"`
	PartyName string `json:"party_name" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Notes     string `json:"notes"`
	EntryDate string `json:"entry_date"` // YYYY-MM-DD, defaults to today
}

type LedgerEntryResponse struct {
	ID        string `json:"id"`
	Scope     string `json:"scope"`
	Account   string `json:"account"`
	EntryType string `json:"entry_type"`
	PartyName string `json:"party_name"`
	Amount    string `json:"amount"`
	Notes     string `json:"notes,omitempty"`
	EntryDate string `json:"entry_date"`
	CreatedAt string `json:"created_at"`
}

// LedgerPageResponse is one book page: the entries plus the jama/kharch
// totals and their net for the whole account.
type LedgerPageResponse struct {
	Entries     []LedgerEntryResponse `json:"entries"`
	TotalJama   string                `json:"total_jama"`
	TotalKharch string                `json:"total_kharch"`
	Net         string                `json:"net"`
}

// --- Interface ---

type LedgerService interface {
	CreateEntry(ctx context.Context, userID, scope, account string, req CreateLedgerEntryRequest) (*LedgerEntryResponse, error)
	DeleteEntry(ctx context.Context, userID, scope, account, id string) error
	ListEntries(ctx context.Context, scope, account, entryType string, page, limit int) (*LedgerPageResponse, int64, error)
}

type ledgerService struct {
	repo      repository.LedgerRepository
	auditRepo repository.AuditRepository
}

func NewLedgerService(repo repository.LedgerRepository, auditRepo repository.AuditRepository) LedgerService {
	return &ledgerService{repo: repo, auditRepo: auditRepo}
}

// --- Implementation ---

func ledgerAmountPrecision(account string) int32 {
	if account == model.LedgerAccountSilver {
		return 3 // grams
	}
	return 2 // currency
}

func toLedgerResponse(e model.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:        e.ID.String(),
		Scope:     e.Scope,
		Account:   e.Account,
		EntryType: e.EntryType,
		PartyName: e.PartyName,
		Amount:    e.Amount.StringFixed(ledgerAmountPrecision(e.Account)),
		Notes:     e.Notes,
		EntryDate: e.EntryDate.Format(dateLayout),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func validAccount(account string) bool {
	return account == model.LedgerAccountCash || account == model.LedgerAccountSilver
}

func (s *ledgerService) CreateEntry(ctx context.Context, userID, scope, account string, req CreateLedgerEntryRequest) (*LedgerEntryResponse, error) {
	if !validScope(scope) {
		return nil, fmt.Errorf("invalid scope %q", scope)
	}
	if !validAccount(account) {
		return nil, fmt.Errorf("invalid account %q", account)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than zero")
	}

	entryDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.EntryDate != "" {
		entryDate, err = time.Parse(dateLayout, req.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid entry_date: %w", err)
		}
	}

	entry := model.LedgerEntry{
		Scope:     scope,
		Account:   account,
		EntryType: req.EntryType,
		PartyName: req.PartyName,
		Amount:    amount,
		Notes:     req.Notes,
		EntryDate: entryDate,
	}
	if uid, err := uuid.Parse(userID); err == nil {
		entry.CreatedBy = &uid
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionCreateLedger, entry.ID.String(), entry.PartyName, req)

	resp := toLedgerResponse(entry)
	return &resp, nil
}

func (s *ledgerService) DeleteEntry(ctx context.Context, userID, scope, account, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid entry id: %w", err)
	}

	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("ledger entry not found: %w", err)
	}
	if entry.Scope != scope || entry.Account != account {
		return fmt.Errorf("ledger entry not found in this book")
	}

	if err := s.repo.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionDeleteLedger, id, entry.PartyName, nil)
	return nil
}

func (s *ledgerService) ListEntries(ctx context.Context, scope, account, entryType string, page, limit int) (*LedgerPageResponse, int64, error) {
	if !validScope(scope) {
		return nil, 0, fmt.Errorf("invalid scope %q", scope)
	}
	if !validAccount(account) {
		return nil, 0, fmt.Errorf("invalid account %q", account)
	}
	if entryType != "" && entryType != model.EntryJama && entryType != model.EntryKharch {
		return nil, 0, fmt.Errorf("invalid entry type %q", entryType)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	entries, total, err := s.repo.List(ctx, repository.LedgerListFilter{
		Scope:     scope,
		Account:   account,
		EntryType: entryType,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch ledger entries: %w", err)
	}

	totalJama, err := s.repo.SumByType(ctx, scope, account, model.EntryJama)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to total jama: %w", err)
	}
	totalKharch, err := s.repo.SumByType(ctx, scope, account, model.EntryKharch)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to total kharch: %w", err)
	}

	precision := ledgerAmountPrecision(account)
	jama := decimal.NewFromFloat(totalJama)
	kharch := decimal.NewFromFloat(totalKharch)

	resp := &LedgerPageResponse{
		Entries:     make([]LedgerEntryResponse, 0, len(entries)),
		TotalJama:   jama.StringFixed(precision),
		TotalKharch: kharch.StringFixed(precision),
		Net:         jama.Sub(kharch).StringFixed(precision),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toLedgerResponse(e))
	}

	return resp, total, nil
}
