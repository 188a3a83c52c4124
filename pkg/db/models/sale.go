package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xmxsystem/webhook-backend/pkg/enums"
)

// Sale is the canonical record built from a CartPanda sale event. The
// unique index on ExternalID is what makes ingestion idempotent:
// concurrent duplicate deliveries race on the constraint, not on any
// in-process lock.
type Sale struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ExternalID      string           `gorm:"column:external_id;not null;uniqueIndex"`
	CustomerEmail   string           `gorm:"column:customer_email;not null"`
	CustomerName    string           `gorm:"column:customer_name;not null"`
	ProductID       string           `gorm:"column:product_id;not null"`
	ProductName     string           `gorm:"column:product_name;not null"`
	Price           decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	Currency        string           `gorm:"column:currency;not null;default:'BRL'"`
	Status          enums.SaleStatus `gorm:"column:status;not null"`
	AffiliateCode   *string          `gorm:"column:affiliate_code"`
	AffiliateName   *string          `gorm:"column:affiliate_name"`
	CommissionValue *decimal.Decimal `gorm:"column:commission_value;type:numeric(12,2)"`
	PaymentMethod   string           `gorm:"column:payment_method;not null"`
	TransactionID   string           `gorm:"column:transaction_id;not null"`
	Metadata        json.RawMessage  `gorm:"column:metadata;type:jsonb"`
	ReceivedAt      time.Time        `gorm:"column:received_at;autoCreateTime"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
