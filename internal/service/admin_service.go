package service

import (
	"context"

	"summit-registration/internal/model"
	"summit-registration/internal/repository"
	"summit-registration/pkg/apperrors"
	"summit-registration/pkg/logger"

	"go.uber.org/zap"
)

// ResetConfirmation must be sent verbatim to the reset endpoint.
const ResetConfirmation = "DELETE ALL DATA"

type AdminService interface {
	Stats(ctx context.Context) (*model.AdminStats, error)
	ListPayments(ctx context.Context) ([]*model.Payment, error)
	// ResetAllData wipes registrations, payments and tickets and
	// resets voucher usage. Pricing, vouchers and admin accounts stay.
	ResetAllData(ctx context.Context, confirmation string) error
}

type AdminServiceImpl struct {
	regRepo     repository.RegistrationRepository
	payRepo     repository.PaymentRepository
	ticketRepo  repository.TicketRepository
	voucherRepo repository.VoucherRepository
	log         *zap.Logger
}

func NewAdminService(
	regRepo repository.RegistrationRepository,
	payRepo repository.PaymentRepository,
	ticketRepo repository.TicketRepository,
	voucherRepo repository.VoucherRepository,
) AdminService {
	return &AdminServiceImpl{
		regRepo:     regRepo,
		payRepo:     payRepo,
		ticketRepo:  ticketRepo,
		voucherRepo: voucherRepo,
		log:         logger.WithComponent("admin"),
	}
}

func (s *AdminServiceImpl) Stats(ctx context.Context) (*model.AdminStats, error) {
	counts, err := s.regRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	issued, err := s.ticketRepo.CountIssued(ctx)
	if err != nil {
		return nil, err
	}

	used, err := s.ticketRepo.CountUsed(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.regRepo.SumPaidAmount(ctx)
	if err != nil {
		return nil, err
	}

	return &model.AdminStats{
		Registrations: counts,
		TicketsIssued: issued,
		TicketsUsed:   used,
		Revenue:       revenue,
	}, nil
}

func (s *AdminServiceImpl) ListPayments(ctx context.Context) ([]*model.Payment, error) {
	return s.payRepo.List(ctx)
}

func (s *AdminServiceImpl) ResetAllData(ctx context.Context, confirmation string) error {
	if confirmation != ResetConfirmation {
		return apperrors.ErrInvalidInput
	}

	if err := s.ticketRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.payRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.regRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.voucherRepo.ResetUsage(ctx); err != nil {
		return err
	}

	s.log.Warn("all registration data deleted by admin request")
	return nil
}
