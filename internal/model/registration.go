package model

import "time"

// RegistrationStatus is the lifecycle state of a registration.
type RegistrationStatus string

const (
	RegistrationStatusPending RegistrationStatus = "pending"
	RegistrationStatusPaid    RegistrationStatus = "paid"
	RegistrationStatusFailed  RegistrationStatus = "failed"
	RegistrationStatusExpired RegistrationStatus = "expired"
)

func (s RegistrationStatus) IsValid() bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusPaid, RegistrationStatusFailed, RegistrationStatusExpired:
		return true
	}
	return false
}

// CanTransitionTo enforces forward-only transitions. Once paid, a
// registration never moves again; failed and expired orders may still
// become paid when the gateway retries a late success callback.
func (s RegistrationStatus) CanTransitionTo(target RegistrationStatus) bool {
	transitions := map[RegistrationStatus][]RegistrationStatus{
		RegistrationStatusPending: {RegistrationStatusPaid, RegistrationStatusFailed, RegistrationStatusExpired},
		RegistrationStatusFailed:  {RegistrationStatusPaid},
		RegistrationStatusExpired: {RegistrationStatusPaid},
		RegistrationStatusPaid:    {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// Registration is one order: a registrant, a quantity and the amount
// charged. Keyed externally by OrderID.
type Registration struct {
	ID             int                `json:"id" db:"id"`
	OrderID        string             `json:"order_id" db:"order_id"`
	Name           string             `json:"name" db:"name"`
	Email          string             `json:"email" db:"email"`
	Phone          string             `json:"phone" db:"phone"`
	TicketQuantity int                `json:"ticket_quantity" db:"ticket_quantity"`
	Amount         int64              `json:"amount" db:"amount"`
	VoucherCode    *string            `json:"voucher_code,omitempty" db:"voucher_code"`
	Status         RegistrationStatus `json:"status" db:"status"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" db:"updated_at"`
}

// CreateRegistrationRequest is the public registration payload.
type CreateRegistrationRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	VoucherCode string `json:"voucher_code"`
}

// RegistrationResult is returned from payment initiation.
type RegistrationResult struct {
	Registration *Registration `json:"registration"`
	PaymentURL   string        `json:"payment_url"`
	Subtotal     int64         `json:"subtotal"`
	Discount     int64         `json:"discount"`
}

// OrderStatusResponse is the public polling view of an order.
type OrderStatusResponse struct {
	OrderID       string             `json:"order_id"`
	Status        RegistrationStatus `json:"status"`
	PaymentStatus PaymentStatus      `json:"payment_status"`
	TicketIssued  bool               `json:"ticket_issued"`
}
