package cartpandawebhook

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xmxsystem/webhook-backend/pkg/db/models"
	pkgerrors "github.com/xmxsystem/webhook-backend/pkg/errors"
)

// Event is the CartPanda webhook envelope. It is transient: the nested
// payload is flattened into a Sale record before anything is stored.
type Event struct {
	ID   string    `json:"id" validate:"required"`
	Type string    `json:"type" validate:"required"`
	Data EventData `json:"data" validate:"required"`
}

type EventData struct {
	SaleID    string     `json:"sale_id" validate:"required"`
	Customer  Customer   `json:"customer" validate:"required"`
	Product   Product    `json:"product" validate:"required"`
	Affiliate *Affiliate `json:"affiliate,omitempty"`
	Payment   Payment    `json:"payment" validate:"required"`
	CreatedAt time.Time  `json:"created_at" validate:"required"`
}

type Customer struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

type Product struct {
	ID    string          `json:"id" validate:"required"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

type Affiliate struct {
	Code       *string          `json:"code,omitempty"`
	Name       *string          `json:"name,omitempty"`
	Commission *decimal.Decimal `json:"commission,omitempty"`
}

type Payment struct {
	Method        string `json:"method" validate:"required"`
	TransactionID string `json:"transaction_id" validate:"required"`
	Status        string `json:"status"`
}

type eventMetadata struct {
	WebhookID         string `json:"webhook_id"`
	WebhookType       string `json:"webhook_type"`
	OriginalCreatedAt string `json:"original_created_at"`
}

// buildSale flattens the envelope into the canonical sale record. The
// original webhook id/type/timestamp are preserved in the record's
// metadata for delivery-log correlation.
func buildSale(event *Event) (*models.Sale, error) {
	if event.Data.Product.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be non-negative")
	}

	metadata, err := json.Marshal(eventMetadata{
		WebhookID:         event.ID,
		WebhookType:       event.Type,
		OriginalCreatedAt: event.Data.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode event metadata")
	}

	sale := &models.Sale{
		ExternalID:    event.Data.SaleID,
		CustomerEmail: event.Data.Customer.Email,
		CustomerName:  event.Data.Customer.Name,
		ProductID:     event.Data.Product.ID,
		ProductName:   event.Data.Product.Name,
		Price:         event.Data.Product.Price.Round(2),
		Currency:      "BRL",
		PaymentMethod: event.Data.Payment.Method,
		TransactionID: event.Data.Payment.TransactionID,
		Metadata:      metadata,
	}

	if aff := event.Data.Affiliate; aff != nil {
		sale.AffiliateCode = aff.Code
		sale.AffiliateName = aff.Name
		if aff.Commission != nil {
			rounded := aff.Commission.Round(2)
			sale.CommissionValue = &rounded
		}
	}

	return sale, nil
}
