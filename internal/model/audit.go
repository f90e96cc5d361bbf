package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateProduct    = "CREATE_PRODUCT"
	ActionUpdateProduct    = "UPDATE_PRODUCT"
	ActionDeleteProduct    = "DELETE_PRODUCT"
	ActionCreateCustomer   = "CREATE_CUSTOMER"
	ActionUpdateCustomer   = "UPDATE_CUSTOMER"
	ActionCreateSale       = "CREATE_SALE"
	ActionRecordPayment    = "RECORD_PAYMENT"
	ActionCreateSilverRate = "CREATE_SILVER_RATE"
	ActionCreateLedger     = "CREATE_LEDGER_ENTRY"
	ActionDeleteLedger     = "DELETE_LEDGER_ENTRY"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
