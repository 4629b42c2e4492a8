package model

import "time"

// TicketStatus tracks email delivery of an issued ticket.
type TicketStatus string

const (
	TicketStatusActive      TicketStatus = "active"
	TicketStatusEmailSent   TicketStatus = "email_sent"
	TicketStatusEmailFailed TicketStatus = "email_failed"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusActive, TicketStatusEmailSent, TicketStatusEmailFailed:
		return true
	}
	return false
}

// ValidationStatus is the door check-in state. used is terminal.
type ValidationStatus string

const (
	ValidationStatusUnused ValidationStatus = "unused"
	ValidationStatusUsed   ValidationStatus = "used"
)

func (s ValidationStatus) IsValid() bool {
	switch s {
	case ValidationStatusUnused, ValidationStatusUsed:
		return true
	}
	return false
}

// Ticket is the e-ticket for an order. TicketCode doubles as the QR
// payload and the public validation key.
type Ticket struct {
	ID               int              `json:"id" db:"id"`
	TicketCode       string           `json:"ticket_code" db:"ticket_code"`
	OrderID          string           `json:"order_id" db:"order_id"`
	ParticipantName  string           `json:"participant_name" db:"participant_name"`
	ParticipantEmail string           `json:"participant_email" db:"participant_email"`
	ParticipantPhone string           `json:"participant_phone" db:"participant_phone"`
	QRCode           string           `json:"qr_code" db:"qr_code"`
	Status           TicketStatus     `json:"status" db:"status"`
	ValidationStatus ValidationStatus `json:"validation_status" db:"validation_status"`
	UsedCount        int              `json:"used_count" db:"used_count"`
	ValidatedAt      *time.Time       `json:"validated_at,omitempty" db:"validated_at"`
	Complimentary    bool             `json:"complimentary" db:"complimentary"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// Type reports the ticket kind shown to door staff.
func (t *Ticket) Type() string {
	if t.Complimentary {
		return "complimentary"
	}
	return "regular"
}

// ValidateTicketRequest is the door check-in payload. TicketID is the
// ticket code, either typed or read out of the QR.
type ValidateTicketRequest struct {
	TicketID string `json:"ticketId" binding:"required"`
}

// ValidationResult is the door check-in outcome. Valid is true for at
// most one scan per ticket; rejections carry the reason and, for
// already-used tickets, the prior validation details.
type ValidationResult struct {
	Valid            bool         `json:"valid"`
	Reason           string       `json:"reason,omitempty"`
	ParticipantName  string       `json:"participantName,omitempty"`
	ParticipantEmail string       `json:"participantEmail,omitempty"`
	Type             string       `json:"type,omitempty"`
	ValidatedAt      *time.Time   `json:"validatedAt,omitempty"`
	UsedCount        int          `json:"usedCount"`
	Status           TicketStatus `json:"status,omitempty"`
}

const (
	ValidationReasonAlreadyUsed         = "already used"
	ValidationReasonNotFound            = "not found"
	ValidationReasonPaymentNotConfirmed = "payment not confirmed"
)

// ComplimentaryTicketRequest is the admin payload for issuing a
// zero-cost ticket that bypasses the gateway.
type ComplimentaryTicketRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}
