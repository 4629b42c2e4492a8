package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"summit-registration/internal/database"
	"summit-registration/internal/mailer"
	"summit-registration/internal/model"
	"summit-registration/internal/repository"
	"summit-registration/monitoring"
	"summit-registration/pkg/apperrors"
	"summit-registration/pkg/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Reconciliation outcomes, also used as metric labels.
const (
	OutcomeConfirmed     = "confirmed"
	OutcomeDuplicate     = "duplicate"
	OutcomeMarkedFailed  = "marked_failed"
	OutcomeMarkedExpired = "marked_expired"
	OutcomeOrderNotFound = "order_not_found"
)

// ReconcileResult reports what a callback did. OrderNotFound and
// duplicate deliveries are outcomes, not errors: the handler still
// acks them with a 200 so the gateway stops retrying.
type ReconcileResult struct {
	Outcome string        `json:"outcome"`
	Ticket  *model.Ticket `json:"ticket,omitempty"`
}

// ReconciliationService aligns internal state with the gateway's
// reported payment outcome and issues the e-ticket.
type ReconciliationService interface {
	// ProcessCallback is idempotent: redelivering a terminal callback
	// never creates a second ticket, sends a second email, or moves a
	// paid order backward. An error return means a persistence failure
	// the gateway should retry with a 5xx.
	ProcessCallback(ctx context.Context, cb model.GatewayCallbackRequest) (*ReconcileResult, error)
	// ResendTicketEmail retries delivery for a ticket whose email
	// previously failed.
	ResendTicketEmail(ctx context.Context, ticketCode string) error
}

type ReconciliationServiceImpl struct {
	db         database.TxBeginner
	regRepo    repository.RegistrationRepository
	payRepo    repository.PaymentRepository
	ticketRepo repository.TicketRepository
	mail       mailer.Mailer
	log        *zap.Logger
}

func NewReconciliationService(
	db database.TxBeginner,
	regRepo repository.RegistrationRepository,
	payRepo repository.PaymentRepository,
	ticketRepo repository.TicketRepository,
	mail mailer.Mailer,
) ReconciliationService {
	return &ReconciliationServiceImpl{
		db:         db,
		regRepo:    regRepo,
		payRepo:    payRepo,
		ticketRepo: ticketRepo,
		mail:       mail,
		log:        logger.WithComponent("reconciliation"),
	}
}

func (s *ReconciliationServiceImpl) ProcessCallback(ctx context.Context, cb model.GatewayCallbackRequest) (*ReconcileResult, error) {
	orderID := cb.Order.InvoiceNumber
	status := strings.ToUpper(strings.TrimSpace(cb.Transaction.Status))

	registration, err := s.regRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOrderNotFound) {
			s.log.Warn("callback for unknown order",
				zap.String("order_id", orderID), zap.String("status", status))
			monitoring.PaymentCallbacks.WithLabelValues(OutcomeOrderNotFound).Inc()
			return &ReconcileResult{Outcome: OutcomeOrderNotFound}, nil
		}
		return nil, err
	}

	if status != "SUCCESS" {
		return s.recordNonSuccess(ctx, registration, status, cb)
	}

	return s.confirmPayment(ctx, registration, cb)
}

// confirmPayment runs the three persistence writes in one transaction
// so a crash cannot leave the registration paid without a ticket. The
// email goes out after commit; its failure is recorded on the ticket
// and never unwinds the confirmation.
func (s *ReconciliationServiceImpl) confirmPayment(ctx context.Context, registration *model.Registration, cb model.GatewayCallbackRequest) (*ReconcileResult, error) {
	orderID := registration.OrderID

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := s.regRepo.MarkPaid(ctx, tx, orderID); err != nil {
		return nil, err
	}

	paidAt := parseGatewayTime(cb.Transaction.Date)
	rawPayload, _ := json.Marshal(cb)

	var transactionID *string
	if cb.Transaction.OriginalRequestID != "" {
		transactionID = &cb.Transaction.OriginalRequestID
	}
	method := cb.Transaction.PaymentMethod
	if method == "" {
		method = "gateway"
	}

	_, err = s.payRepo.MarkResult(ctx, tx, &model.Payment{
		OrderID:       orderID,
		TransactionID: transactionID,
		Amount:        registration.Amount,
		PaymentMethod: method,
		Status:        model.PaymentStatusSuccess,
		PaymentData:   rawPayload,
		PaidAt:        &paidAt,
	})
	if err != nil {
		return nil, err
	}

	// idempotency guard: a redelivered callback finds the ticket and
	// stops here
	exists, err := s.ticketRepo.ExistsByOrderID(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		s.log.Info("duplicate callback, ticket already issued",
			zap.String("order_id", orderID))
		monitoring.PaymentCallbacks.WithLabelValues(OutcomeDuplicate).Inc()
		return &ReconcileResult{Outcome: OutcomeDuplicate}, nil
	}

	ticket, err := s.issueTicket(ctx, tx, registration)
	if err != nil {
		if errors.Is(err, apperrors.ErrTicketAlreadyIssued) {
			// lost a race against a concurrent delivery of the same
			// callback; that delivery owns the ticket
			monitoring.PaymentCallbacks.WithLabelValues(OutcomeDuplicate).Inc()
			return &ReconcileResult{Outcome: OutcomeDuplicate}, nil
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	monitoring.PaymentCallbacks.WithLabelValues(OutcomeConfirmed).Inc()
	monitoring.TicketsIssued.Inc()
	s.log.Info("payment confirmed, ticket issued",
		zap.String("order_id", orderID),
		zap.String("ticket_code", ticket.TicketCode))

	s.deliverTicket(ctx, ticket, registration.Amount)

	return &ReconcileResult{Outcome: OutcomeConfirmed, Ticket: ticket}, nil
}

// issueTicket creates the ticket row, regenerating the code inside a
// savepoint if the unique constraint fires on a collision.
func (s *ReconciliationServiceImpl) issueTicket(ctx context.Context, tx pgx.Tx, registration *model.Registration) (*model.Ticket, error) {
	const maxAttempts = 3

	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := newTicketCode()
		if err != nil {
			return nil, err
		}

		qr, err := qrDataURI(code)
		if err != nil {
			return nil, err
		}

		// nested Begin is a savepoint, so a failed insert does not
		// poison the outer transaction
		inner, err := tx.Begin(ctx)
		if err != nil {
			return nil, err
		}

		ticket, err := s.ticketRepo.Create(ctx, inner, &model.Ticket{
			TicketCode:       code,
			OrderID:          registration.OrderID,
			ParticipantName:  registration.Name,
			ParticipantEmail: registration.Email,
			ParticipantPhone: registration.Phone,
			QRCode:           qr,
			Status:           model.TicketStatusActive,
			ValidationStatus: model.ValidationStatusUnused,
			Complimentary:    false,
		})
		if err != nil {
			inner.Rollback(ctx)
			if errors.Is(err, apperrors.ErrDuplicateTicketCode) {
				continue
			}
			return nil, err
		}

		if err := inner.Commit(ctx); err != nil {
			return nil, err
		}

		return ticket, nil
	}

	return nil, apperrors.ErrDuplicateTicketCode
}

// deliverTicket emails the ticket and records the outcome. Runs after
// commit; failures only mark the ticket email_failed for later resend.
func (s *ReconciliationServiceImpl) deliverTicket(ctx context.Context, ticket *model.Ticket, amount int64) {
	emailStatus := model.TicketStatusEmailSent
	if err := s.mail.SendTicket(ctx, ticket, amount); err != nil {
		s.log.Error("ticket email failed",
			zap.String("ticket_code", ticket.TicketCode), zap.Error(err))
		emailStatus = model.TicketStatusEmailFailed
		monitoring.TicketEmails.WithLabelValues("failed").Inc()
	} else {
		monitoring.TicketEmails.WithLabelValues("sent").Inc()
	}

	if err := s.ticketRepo.UpdateEmailStatus(ctx, ticket.TicketCode, emailStatus); err != nil {
		s.log.Error("failed to record email status",
			zap.String("ticket_code", ticket.TicketCode), zap.Error(err))
	}
	ticket.Status = emailStatus
}

func (s *ReconciliationServiceImpl) recordNonSuccess(ctx context.Context, registration *model.Registration, status string, cb model.GatewayCallbackRequest) (*ReconcileResult, error) {
	target := model.RegistrationStatusFailed
	paymentTarget := model.PaymentStatusFailed
	outcome := OutcomeMarkedFailed
	if status == "EXPIRED" {
		target = model.RegistrationStatusExpired
		paymentTarget = model.PaymentStatusExpired
		outcome = OutcomeMarkedExpired
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// only pending orders move; a paid order ignores late failures
	moved, err := s.regRepo.UpdateStatusIfPending(ctx, tx, registration.OrderID, target)
	if err != nil {
		return nil, err
	}

	if moved {
		rawPayload, _ := json.Marshal(cb)
		_, err = s.payRepo.MarkResult(ctx, tx, &model.Payment{
			OrderID:       registration.OrderID,
			Amount:        registration.Amount,
			PaymentMethod: cb.Transaction.PaymentMethod,
			Status:        paymentTarget,
			PaymentData:   rawPayload,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if !moved {
		outcome = OutcomeDuplicate
	}
	monitoring.PaymentCallbacks.WithLabelValues(outcome).Inc()
	s.log.Info("non-success callback recorded",
		zap.String("order_id", registration.OrderID),
		zap.String("gateway_status", status),
		zap.String("outcome", outcome))

	return &ReconcileResult{Outcome: outcome}, nil
}

func (s *ReconciliationServiceImpl) ResendTicketEmail(ctx context.Context, ticketCode string) error {
	ticket, err := s.ticketRepo.FindByCode(ctx, ticketCode)
	if err != nil {
		return err
	}

	registration, err := s.regRepo.FindByOrderID(ctx, ticket.OrderID)
	if err != nil {
		return err
	}

	if err := s.mail.SendTicket(ctx, ticket, registration.Amount); err != nil {
		monitoring.TicketEmails.WithLabelValues("failed").Inc()
		if updateErr := s.ticketRepo.UpdateEmailStatus(ctx, ticketCode, model.TicketStatusEmailFailed); updateErr != nil {
			s.log.Error("failed to record email status", zap.Error(updateErr))
		}
		return apperrors.ErrEmailDeliveryFailed
	}

	monitoring.TicketEmails.WithLabelValues("sent").Inc()
	return s.ticketRepo.UpdateEmailStatus(ctx, ticketCode, model.TicketStatusEmailSent)
}

// parseGatewayTime accepts the gateway's timestamp formats and falls
// back to now.
func parseGatewayTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}
