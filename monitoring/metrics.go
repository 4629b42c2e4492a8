package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaymentCallbacks counts gateway callbacks by reconciliation
	// outcome: confirmed, duplicate, marked_failed, marked_expired,
	// order_not_found, error.
	PaymentCallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "summit_payment_callbacks_total",
		Help: "Payment gateway callbacks processed, by outcome",
	}, []string{"outcome"})

	TicketsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "summit_tickets_issued_total",
		Help: "E-tickets issued",
	})

	TicketEmails = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "summit_ticket_emails_total",
		Help: "Ticket delivery emails, by outcome (sent, failed)",
	}, []string{"outcome"})

	TicketValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "summit_ticket_validations_total",
		Help: "Door check-in attempts, by result (valid, already_used, not_found, payment_not_confirmed)",
	}, []string{"result"})
)
