package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"summit-registration/config"
	"summit-registration/internal/database"
	"summit-registration/internal/gateway"
	"summit-registration/internal/model"
	"summit-registration/internal/repository"
	"summit-registration/pkg/apperrors"
	"summit-registration/pkg/logger"

	"go.uber.org/zap"
)

type RegistrationService interface {
	// Register creates the pending registration + payment pair and
	// opens a gateway session the visitor is redirected to.
	Register(ctx context.Context, req model.CreateRegistrationRequest) (*model.RegistrationResult, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Registration, error)
	OrderStatus(ctx context.Context, orderID string) (*model.OrderStatusResponse, error)
	List(ctx context.Context) ([]*model.Registration, error)
}

type RegistrationServiceImpl struct {
	db          database.TxBeginner
	regRepo     repository.RegistrationRepository
	payRepo     repository.PaymentRepository
	ticketRepo  repository.TicketRepository
	voucherRepo repository.VoucherRepository
	vouchers    VoucherService
	pricing     PricingService
	gateway     gateway.Client
	serverCfg   config.ServerConfig
	log         *zap.Logger
}

func NewRegistrationService(
	db database.TxBeginner,
	regRepo repository.RegistrationRepository,
	payRepo repository.PaymentRepository,
	ticketRepo repository.TicketRepository,
	voucherRepo repository.VoucherRepository,
	vouchers VoucherService,
	pricing PricingService,
	gatewayClient gateway.Client,
	serverCfg config.ServerConfig,
) RegistrationService {
	return &RegistrationServiceImpl{
		db:          db,
		regRepo:     regRepo,
		payRepo:     payRepo,
		ticketRepo:  ticketRepo,
		voucherRepo: voucherRepo,
		vouchers:    vouchers,
		pricing:     pricing,
		gateway:     gatewayClient,
		serverCfg:   serverCfg,
		log:         logger.WithComponent("registration"),
	}
}

func (s *RegistrationServiceImpl) Register(ctx context.Context, req model.CreateRegistrationRequest) (*model.RegistrationResult, error) {
	price, err := s.pricing.CurrentPrice(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := price * int64(req.Quantity)

	var discount int64
	var voucherCode *string
	if code := strings.TrimSpace(req.VoucherCode); code != "" {
		result, err := s.vouchers.Evaluate(ctx, code, subtotal)
		if err != nil {
			return nil, err
		}
		discount = result.DiscountAmount
		voucherCode = &result.Code
	}

	amount := subtotal - discount
	if amount < 1 {
		// gateways reject zero-amount charges; only admin-issued
		// complimentary tickets carry amount 0
		amount = 1
	}

	orderID, err := newOrderID()
	if err != nil {
		return nil, err
	}

	registration := &model.Registration{
		OrderID:        orderID,
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:          strings.TrimSpace(req.Phone),
		TicketQuantity: req.Quantity,
		Amount:         amount,
		VoucherCode:    voucherCode,
		Status:         model.RegistrationStatusPending,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created, err := s.regRepo.Create(ctx, tx, registration)
	if err != nil {
		return nil, err
	}

	_, err = s.payRepo.Create(ctx, tx, &model.Payment{
		OrderID: orderID,
		Amount:  amount,
		Status:  model.PaymentStatusPending,
	})
	if err != nil {
		return nil, err
	}

	if voucherCode != nil {
		ok, err := s.voucherRepo.IncrementUsage(ctx, tx, *voucherCode)
		if err != nil {
			return nil, err
		}
		if !ok {
			// limit was consumed between evaluation and redemption
			return nil, apperrors.ErrVoucherExhausted
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateSession(ctx, gateway.CreateSessionRequest{
		OrderID:       orderID,
		Amount:        amount,
		Currency:      "IDR",
		CustomerName:  created.Name,
		CustomerEmail: created.Email,
		ReturnURL:     fmt.Sprintf("%s/payments/return", s.serverCfg.BaseURL),
		CallbackURL:   fmt.Sprintf("%s/api/v1/payments/callback", s.serverCfg.BaseURL),
	})
	if err != nil {
		// the order is already persisted; the visitor can retry payment
		// through the status page
		s.log.Error("failed to create gateway session",
			zap.String("order_id", orderID), zap.Error(err))
		return nil, apperrors.ErrInternalServerError
	}

	s.log.Info("registration created",
		zap.String("order_id", orderID),
		zap.Int64("amount", amount),
		zap.Bool("simulated_session", session.Simulated))

	return &model.RegistrationResult{
		Registration: created,
		PaymentURL:   session.PaymentURL,
		Subtotal:     subtotal,
		Discount:     discount,
	}, nil
}

func (s *RegistrationServiceImpl) GetByOrderID(ctx context.Context, orderID string) (*model.Registration, error) {
	return s.regRepo.FindByOrderID(ctx, orderID)
}

func (s *RegistrationServiceImpl) OrderStatus(ctx context.Context, orderID string) (*model.OrderStatusResponse, error) {
	registration, err := s.regRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	paymentStatus := model.PaymentStatusPending
	if payment, err := s.payRepo.FindByOrderID(ctx, orderID); err == nil {
		paymentStatus = payment.Status
	}

	ticketIssued := false
	if _, err := s.ticketRepo.FindByOrderID(ctx, orderID); err == nil {
		ticketIssued = true
	} else if !errors.Is(err, apperrors.ErrTicketNotFound) {
		return nil, err
	}

	return &model.OrderStatusResponse{
		OrderID:       registration.OrderID,
		Status:        registration.Status,
		PaymentStatus: paymentStatus,
		TicketIssued:  ticketIssued,
	}, nil
}

func (s *RegistrationServiceImpl) List(ctx context.Context) ([]*model.Registration, error) {
	return s.regRepo.List(ctx)
}
