package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillingScope enum constants — the wholesale and regular billing books
// are kept fully separate.
const (
	ScopeWholesale = "WHOLESALE"
	ScopeRegular   = "REGULAR"
)

// Customer is a billing-book customer. BalanceAmount is the running
// cash ledger (positive = customer owes the shop); BalanceSilver tracks
// silver in grams owed in kind. Each completed sale's balance feeds in.
type Customer struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Scope         string          `gorm:"type:varchar(20);not null;index" json:"scope"` // WHOLESALE, REGULAR
	Name          string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Phone         string          `gorm:"type:varchar(20);index" json:"phone"`
	Address       string          `gorm:"type:text" json:"address"`
	GSTIN         string          `gorm:"type:varchar(20)" json:"gstin"` // wholesale customers only
	BalanceAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"balance_amount"`
	BalanceSilver decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"balance_silver"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}
