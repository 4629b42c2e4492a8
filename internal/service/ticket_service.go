package service

import (
	"context"
	"errors"
	"strings"

	"summit-registration/internal/database"
	"summit-registration/internal/mailer"
	"summit-registration/internal/model"
	"summit-registration/internal/repository"
	"summit-registration/monitoring"
	"summit-registration/pkg/apperrors"
	"summit-registration/pkg/logger"

	"go.uber.org/zap"
)

type TicketService interface {
	// Validate performs the door check-in. Domain rejections come back
	// as a ValidationResult with Valid=false and a reason; an error
	// means a persistence failure.
	Validate(ctx context.Context, ticketID string) (*model.ValidationResult, error)
	List(ctx context.Context) ([]*model.Ticket, error)
	ListEmailFailed(ctx context.Context) ([]*model.Ticket, error)
	// IssueComplimentary creates a zero-cost, already-paid order with
	// its ticket, bypassing the gateway entirely.
	IssueComplimentary(ctx context.Context, req model.ComplimentaryTicketRequest) (*model.Ticket, error)
}

type TicketServiceImpl struct {
	db         database.TxBeginner
	ticketRepo repository.TicketRepository
	regRepo    repository.RegistrationRepository
	payRepo    repository.PaymentRepository
	mail       mailer.Mailer
	log        *zap.Logger
}

func NewTicketService(
	db database.TxBeginner,
	ticketRepo repository.TicketRepository,
	regRepo repository.RegistrationRepository,
	payRepo repository.PaymentRepository,
	mail mailer.Mailer,
) TicketService {
	return &TicketServiceImpl{
		db:         db,
		ticketRepo: ticketRepo,
		regRepo:    regRepo,
		payRepo:    payRepo,
		mail:       mail,
		log:        logger.WithComponent("ticket"),
	}
}

func (s *TicketServiceImpl) Validate(ctx context.Context, ticketID string) (*model.ValidationResult, error) {
	code := strings.TrimSpace(ticketID)

	ticket, err := s.ticketRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrTicketNotFound) {
			monitoring.TicketValidations.WithLabelValues("not_found").Inc()
			return &model.ValidationResult{
				Valid:  false,
				Reason: model.ValidationReasonNotFound,
			}, nil
		}
		return nil, err
	}

	if ticket.ValidationStatus == model.ValidationStatusUsed {
		monitoring.TicketValidations.WithLabelValues("already_used").Inc()
		return rejectAlreadyUsed(ticket), nil
	}

	if !ticket.Complimentary {
		registration, err := s.regRepo.FindByOrderID(ctx, ticket.OrderID)
		if err != nil {
			return nil, err
		}
		if registration.Status != model.RegistrationStatusPaid {
			monitoring.TicketValidations.WithLabelValues("payment_not_confirmed").Inc()
			return &model.ValidationResult{
				Valid:            false,
				Reason:           model.ValidationReasonPaymentNotConfirmed,
				ParticipantName:  ticket.ParticipantName,
				ParticipantEmail: ticket.ParticipantEmail,
				Type:             ticket.Type(),
				Status:           ticket.Status,
			}, nil
		}
	}

	// single conditional update: of two concurrent scans exactly one
	// passes the validation_status guard
	used, err := s.ticketRepo.MarkUsed(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrTicketAlreadyUsed) {
			// lost the race; re-read for the display details
			current, findErr := s.ticketRepo.FindByCode(ctx, code)
			if findErr != nil {
				return nil, findErr
			}
			monitoring.TicketValidations.WithLabelValues("already_used").Inc()
			return rejectAlreadyUsed(current), nil
		}
		return nil, err
	}

	monitoring.TicketValidations.WithLabelValues("valid").Inc()
	s.log.Info("ticket validated",
		zap.String("ticket_code", used.TicketCode),
		zap.String("order_id", used.OrderID))

	return &model.ValidationResult{
		Valid:            true,
		ParticipantName:  used.ParticipantName,
		ParticipantEmail: used.ParticipantEmail,
		Type:             used.Type(),
		ValidatedAt:      used.ValidatedAt,
		UsedCount:        used.UsedCount,
		Status:           used.Status,
	}, nil
}

func rejectAlreadyUsed(ticket *model.Ticket) *model.ValidationResult {
	return &model.ValidationResult{
		Valid:            false,
		Reason:           model.ValidationReasonAlreadyUsed,
		ParticipantName:  ticket.ParticipantName,
		ParticipantEmail: ticket.ParticipantEmail,
		Type:             ticket.Type(),
		ValidatedAt:      ticket.ValidatedAt,
		UsedCount:        ticket.UsedCount,
		Status:           ticket.Status,
	}
}

func (s *TicketServiceImpl) List(ctx context.Context) ([]*model.Ticket, error) {
	return s.ticketRepo.List(ctx)
}

func (s *TicketServiceImpl) ListEmailFailed(ctx context.Context) ([]*model.Ticket, error) {
	return s.ticketRepo.ListEmailFailed(ctx)
}

func (s *TicketServiceImpl) IssueComplimentary(ctx context.Context, req model.ComplimentaryTicketRequest) (*model.Ticket, error) {
	orderID, err := newOrderID()
	if err != nil {
		return nil, err
	}

	code, err := newTicketCode()
	if err != nil {
		return nil, err
	}

	qr, err := qrDataURI(code)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	phone := strings.TrimSpace(req.Phone)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = s.regRepo.Create(ctx, tx, &model.Registration{
		OrderID:        orderID,
		Name:           name,
		Email:          email,
		Phone:          phone,
		TicketQuantity: 1,
		Amount:         0,
		Status:         model.RegistrationStatusPaid,
	})
	if err != nil {
		return nil, err
	}

	_, err = s.payRepo.Create(ctx, tx, &model.Payment{
		OrderID:       orderID,
		Amount:        0,
		PaymentMethod: "complimentary",
		Status:        model.PaymentStatusSuccess,
	})
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.Create(ctx, tx, &model.Ticket{
		TicketCode:       code,
		OrderID:          orderID,
		ParticipantName:  name,
		ParticipantEmail: email,
		ParticipantPhone: phone,
		QRCode:           qr,
		Status:           model.TicketStatusActive,
		ValidationStatus: model.ValidationStatusUnused,
		Complimentary:    true,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	monitoring.TicketsIssued.Inc()
	s.log.Info("complimentary ticket issued",
		zap.String("order_id", orderID),
		zap.String("ticket_code", code))

	emailStatus := model.TicketStatusEmailSent
	if err := s.mail.SendTicket(ctx, ticket, 0); err != nil {
		s.log.Error("complimentary ticket email failed",
			zap.String("ticket_code", code), zap.Error(err))
		emailStatus = model.TicketStatusEmailFailed
		monitoring.TicketEmails.WithLabelValues("failed").Inc()
	} else {
		monitoring.TicketEmails.WithLabelValues("sent").Inc()
	}
	if err := s.ticketRepo.UpdateEmailStatus(ctx, code, emailStatus); err != nil {
		s.log.Error("failed to record email status", zap.Error(err))
	}
	ticket.Status = emailStatus

	return ticket, nil
}
