package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateSilverRateRequest struct {
	RatePerGram   string `json:"rate_per_gram" binding:"required"`
	EffectiveDate string `json:"effective_date"` // YYYY-MM-DD, defaults to today
}

// SilverRateResponse carries the rate plus the change against the
// previous recorded day.
type SilverRateResponse struct {
	ID            string `json:"id"`
	RatePerGram   string `json:"rate_per_gram"`
	EffectiveDate string `json:"effective_date"`
	Change        string `json:"change"`
	CreatedAt     string `json:"created_at"`
}

// --- Interface ---

type SilverRateService interface {
	CreateRate(ctx context.Context, userID string, req CreateSilverRateRequest) (*SilverRateResponse, error)
	CurrentRate(ctx context.Context) (*SilverRateResponse, error)
	History(ctx context.Context, limit int) ([]SilverRateResponse, error)
}

type silverRateService struct {
	repo      repository.SilverRateRepository
	auditRepo repository.AuditRepository
	hub       *websocket.Hub
}

func NewSilverRateService(repo repository.SilverRateRepository, auditRepo repository.AuditRepository, hub *websocket.Hub) SilverRateService {
	return &silverRateService{repo: repo, auditRepo: auditRepo, hub: hub}
}

// --- Implementation ---

const dateLayout = "2006-01-02"

// rateChange computes today − previous; an empty string means there is
// no previous entry to compare against.
func rateChange(current decimal.Decimal, previous *model.SilverRate) string {
	if previous == nil {
		return ""
	}
	return current.Sub(previous.RatePerGram).StringFixed(2)
}

func toRateResponse(rate model.SilverRate, change string) SilverRateResponse {
	return SilverRateResponse{
		ID:            rate.ID.String(),
		RatePerGram:   rate.RatePerGram.StringFixed(2),
		EffectiveDate: rate.EffectiveDate.Format(dateLayout),
		Change:        change,
		CreatedAt:     rate.CreatedAt.Format(time.RFC3339),
	}
}

func (s *silverRateService) CreateRate(ctx context.Context, userID string, req CreateSilverRateRequest) (*SilverRateResponse, error) {
	rateValue, err := decimal.NewFromString(req.RatePerGram)
	if err != nil {
		return nil, fmt.Errorf("invalid rate_per_gram: %w", err)
	}
	if !rateValue.IsPositive() {
		return nil, fmt.Errorf("rate_per_gram must be greater than zero")
	}

	effectiveDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.EffectiveDate != "" {
		effectiveDate, err = time.Parse(dateLayout, req.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("invalid effective_date: %w", err)
		}
	}

	// Previous entry before this date drives the day-over-day change.
	previous, _ := s.repo.FindCurrent(ctx, effectiveDate.AddDate(0, 0, -1))

	rate := model.SilverRate{
		RatePerGram:   rateValue,
		EffectiveDate: effectiveDate,
	}
	if uid, err := uuid.Parse(userID); err == nil {
		rate.CreatedBy = &uid
	}

	if err := s.repo.Create(ctx, &rate); err != nil {
		return nil, fmt.Errorf("failed to create silver rate: %w", err)
	}

	change := rateChange(rateValue, previous)
	resp := toRateResponse(rate, change)

	writeAuditLog(ctx, s.auditRepo, userID, model.ActionCreateSilverRate, rate.ID.String(), resp.EffectiveDate, resp)
	s.broadcast(resp)

	return &resp, nil
}

func (s *silverRateService) CurrentRate(ctx context.Context) (*SilverRateResponse, error) {
	current, err := s.repo.FindCurrent(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("no silver rate recorded: %w", err)
	}

	previous, _ := s.repo.FindCurrent(ctx, current.EffectiveDate.AddDate(0, 0, -1))
	resp := toRateResponse(*current, rateChange(current.RatePerGram, previous))
	return &resp, nil
}

func (s *silverRateService) History(ctx context.Context, limit int) ([]SilverRateResponse, error) {
	if limit <= 0 || limit > 365 {
		limit = 30
	}

	// Fetch one extra so the oldest row still gets a change value.
	rates, err := s.repo.History(ctx, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate history: %w", err)
	}

	result := make([]SilverRateResponse, 0, len(rates))
	for i, rate := range rates {
		if i == limit {
			break
		}
		change := ""
		if i+1 < len(rates) {
			change = rate.RatePerGram.Sub(rates[i+1].RatePerGram).StringFixed(2)
		}
		result = append(result, toRateResponse(rate, change))
	}
	return result, nil
}

// broadcast pushes the new rate to every connected billing screen.
func (s *silverRateService) broadcast(resp SilverRateResponse) {
	if s.hub == nil {
		return
	}

	payload, err := json.Marshal(map[string]string{
		"type":   "silver_rate",
		"rate":   resp.RatePerGram,
		"date":   resp.EffectiveDate,
		"change": resp.Change,
	})
	if err != nil {
		return
	}
	s.hub.Broadcast <- payload
}
