package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SilverRate is the per-gram silver rate for a given day. The current
// rate is the most recent entry with effective_date <= today; older
// entries stay for the day-over-day history view.
type SilverRate struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RatePerGram   decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"rate_per_gram"`
	EffectiveDate time.Time       `gorm:"type:date;not null;uniqueIndex" json:"effective_date"`
	CreatedBy     *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}
