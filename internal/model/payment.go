package model

import "time"

// PaymentStatus is the gateway-facing state of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusExpired PaymentStatus = "expired"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusExpired:
		return true
	}
	return false
}

// Payment is the single authoritative payment row for an order.
// order_id carries a unique constraint; writes from reconciliation go
// through an upsert so retried callbacks never produce a second row.
type Payment struct {
	ID            int           `json:"id" db:"id"`
	OrderID       string        `json:"order_id" db:"order_id"`
	TransactionID *string       `json:"transaction_id,omitempty" db:"transaction_id"`
	Amount        int64         `json:"amount" db:"amount"`
	PaymentMethod string        `json:"payment_method" db:"payment_method"`
	Status        PaymentStatus `json:"status" db:"status"`
	PaymentData   []byte        `json:"-" db:"payment_data"`
	PaidAt        *time.Time    `json:"paid_at,omitempty" db:"paid_at"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// GatewayCallbackRequest is the inbound webhook payload.
type GatewayCallbackRequest struct {
	Order       CallbackOrder       `json:"order" binding:"required"`
	Transaction CallbackTransaction `json:"transaction" binding:"required"`
}

type CallbackOrder struct {
	InvoiceNumber string `json:"invoice_number" binding:"required"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
}

type CallbackTransaction struct {
	Status            string `json:"status" binding:"required"`
	OriginalRequestID string `json:"original_request_id"`
	Date              string `json:"date"`
	PaymentMethod     string `json:"payment_method"`
}
