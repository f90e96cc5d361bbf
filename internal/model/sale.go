package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingType enum constants
const (
	BillingRegular   = "REGULAR"   // no GST, silver return allowed
	BillingWholesale = "WHOLESALE" // GST applicable at configurable percents
)

// PaymentMode enum constants
const (
	PayModeCash         = "CASH"
	PayModeCard         = "CARD"
	PayModeUPI          = "UPI"
	PayModeBankTransfer = "BANK_TRANSFER"
	PayModeCheque       = "CHEQUE"
)

// Sale is a billed invoice. All computed columns are denormalized from
// the billing calculator at creation time; the calculator output is the
// single source of truth (client-sent totals are ignored).
type Sale struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SaleNo      string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"sale_no"`
	BillingType string    `gorm:"type:varchar(20);not null;index" json:"billing_type"` // REGULAR, WHOLESALE
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer    *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	SilverRate decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"silver_rate"` // per gram, frozen at sale time

	TotalNetWeight    decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"total_net_weight"`
	TotalWastage      decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"total_wastage"`
	TotalSilverWeight decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"total_silver_weight"`
	TotalLabor        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_labor"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`

	GSTApplicable bool            `gorm:"not null;default:false" json:"gst_applicable"`
	CGSTPercent   decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0" json:"cgst_percent"`
	SGSTPercent   decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0" json:"sgst_percent"`
	CGST          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"cgst"`
	SGST          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"sgst"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`

	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"paid_amount"`
	PaidSilver      decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"paid_silver"`
	PaidSilverValue decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"paid_silver_value"`
	BalanceAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance_amount"` // may be negative (credit)

	PaymentMode string `gorm:"type:varchar(20);not null;default:'CASH'" json:"payment_mode"`
	Notes       string `gorm:"type:text" json:"notes"`

	Items    []SaleItem    `gorm:"foreignKey:SaleID" json:"items"`
	Payments []SalePayment `gorm:"foreignKey:SaleID" json:"payments,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaleItem is one line of a sale with its computed silver weight, labor
// and amount stored alongside the raw measurements.
type SaleItem struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SaleID uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`

	Description    string          `gorm:"type:varchar(255);not null" json:"description"`
	Pieces         int             `gorm:"type:int;not null;default:1" json:"pieces"`
	GrossWeight    decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"gross_weight"`
	StoneWeight    decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"stone_weight"`
	NetWeight      decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"net_weight"` // gross - stone, recomputed at save
	Wastage        decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"wastage"`
	Touch          decimal.Decimal `gorm:"type:decimal(8,3);not null" json:"touch"`
	LaborRatePerKg decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"labor_rate_per_kg"`

	SilverWeight decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"silver_weight"`
	LaborCharge  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"labor_charge"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
}

// SalePayment records a settlement appended after the sale was created
// (the regular flow's /payment and /silver-payment endpoints).
type SalePayment struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amount"`       // cash portion
	SilverGrams decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"silver_grams"` // silver-in-kind portion
	SilverRate  decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"silver_rate"`  // rate used to value the silver
	PaymentMode string          `gorm:"type:varchar(20);not null;default:'CASH'" json:"payment_mode"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
}
