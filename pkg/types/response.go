package types

// WebhookEnvelope is the uniform response body for every outcome of the
// webhook endpoint: {success, message, data?}.
type WebhookEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// SaleResult is the data payload returned after a webhook mutated (or
// idempotently re-observed) a sale record.
type SaleResult struct {
	SaleID string `json:"sale_id"`
}
