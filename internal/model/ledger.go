package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerAccount enum constants — cash and silver books are tracked
// separately in both billing scopes.
const (
	LedgerAccountCash   = "CASH"
	LedgerAccountSilver = "SILVER"
)

// LedgerEntryType enum constants. Jama is incoming (credit), Kharch is
// outgoing (debit).
const (
	EntryJama   = "JAMA"
	EntryKharch = "KHARCH"
)

// LedgerEntry is one Jama/Kharch book row. Amount is currency for the
// CASH account and grams for the SILVER account.
type LedgerEntry struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Scope     string          `gorm:"type:varchar(20);not null;index" json:"scope"`      // WHOLESALE, REGULAR
	Account   string          `gorm:"type:varchar(10);not null;index" json:"account"`    // CASH, SILVER
	EntryType string          `gorm:"type:varchar(10);not null;index" json:"entry_type"` // JAMA, KHARCH
	PartyName string          `gorm:"type:varchar(255);not null" json:"party_name"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"amount"`
	Notes     string          `gorm:"type:text" json:"notes"`
	EntryDate time.Time       `gorm:"type:date;not null;index" json:"entry_date"`
	CreatedBy *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}
