package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"summit-registration/config"
	"summit-registration/internal/cache"
	"summit-registration/internal/gateway"
	gatewayMocks "summit-registration/internal/gateway/mocks"
	"summit-registration/internal/model"
	repoMocks "summit-registration/internal/repository/mocks"
	"summit-registration/internal/service"
	"summit-registration/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type registrationFixture struct {
	tx          *repoMocks.TxMock
	regRepo     *repoMocks.RegistrationRepositoryMock
	payRepo     *repoMocks.PaymentRepositoryMock
	ticketRepo  *repoMocks.TicketRepositoryMock
	voucherRepo *repoMocks.VoucherRepositoryMock
	pricingRepo *repoMocks.PricingRepositoryMock
	gateway     *gatewayMocks.ClientMock
	svc         service.RegistrationService
}

func setupRegistration() *registrationFixture {
	f := &registrationFixture{
		tx:          repoMocks.NewTxMock(),
		regRepo:     repoMocks.NewRegistrationRepositoryMock(),
		payRepo:     repoMocks.NewPaymentRepositoryMock(),
		ticketRepo:  repoMocks.NewTicketRepositoryMock(),
		voucherRepo: repoMocks.NewVoucherRepositoryMock(),
		pricingRepo: repoMocks.NewPricingRepositoryMock(),
		gateway:     gatewayMocks.NewClientMock(),
	}

	pricingService := service.NewPricingService(f.pricingRepo, cache.NewMemoryPriceCache())
	voucherService := service.NewVoucherService(f.voucherRepo)
	f.svc = service.NewRegistrationService(
		f.tx, f.regRepo, f.payRepo, f.ticketRepo, f.voucherRepo,
		voucherService, pricingService, f.gateway,
		config.ServerConfig{BaseURL: "http://localhost:8080"},
	)
	return f
}

func (f *registrationFixture) expectPricing(price int64) {
	f.pricingRepo.On("GetCurrent", mock.Anything).Return(&model.Pricing{
		EarlyBirdPrice: price,
		EarlyBirdEnd:   time.Now().Add(24 * time.Hour),
	}, nil).Once()
}

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()

	baseReq := model.CreateRegistrationRequest{
		Name:     "Ana Souza",
		Email:    "Ana@Example.com",
		Phone:    "+628111111111",
		Quantity: 2,
	}

	t.Run("creates pending order and payment session", func(t *testing.T) {
		f := setupRegistration()
		f.expectPricing(500_000)

		f.regRepo.On("Create", ctx, f.tx, mock.MatchedBy(func(r *model.Registration) bool {
			return r.Status == model.RegistrationStatusPending &&
				r.Amount == 1_000_000 &&
				r.Email == "ana@example.com" &&
				strings.HasPrefix(r.OrderID, "SSS2025-")
		})).Return(&model.Registration{
			OrderID: "SSS2025-1-abc123", Name: "Ana Souza", Email: "ana@example.com",
			Amount: 1_000_000, Status: model.RegistrationStatusPending,
		}, nil).Once()
		f.payRepo.On("Create", ctx, f.tx, mock.MatchedBy(func(p *model.Payment) bool {
			return p.Status == model.PaymentStatusPending && p.Amount == 1_000_000
		})).Return(&model.Payment{}, nil).Once()
		f.gateway.On("CreateSession", ctx, mock.MatchedBy(func(r gateway.CreateSessionRequest) bool {
			return r.Amount == 1_000_000 && r.Currency == "IDR" &&
				r.CallbackURL == "http://localhost:8080/api/v1/payments/callback"
		})).Return(&gateway.Session{PaymentURL: "https://pay.example/s/1"}, nil).Once()

		result, err := f.svc.Register(ctx, baseReq)

		require.NoError(t, err)
		assert.Equal(t, "https://pay.example/s/1", result.PaymentURL)
		assert.Equal(t, int64(1_000_000), result.Subtotal)
		assert.Equal(t, int64(0), result.Discount)
		assert.Equal(t, 1, f.tx.Commits)
		f.regRepo.AssertExpectations(t)
		f.payRepo.AssertExpectations(t)
		f.gateway.AssertExpectations(t)
	})

	t.Run("applies voucher and consumes a use", func(t *testing.T) {
		f := setupRegistration()
		f.expectPricing(500_000)

		maxDiscount := int64(50_000)
		f.voucherRepo.On("FindByCode", ctx, "SAVE20").Return(&model.Voucher{
			Code: "SAVE20", Type: model.VoucherTypePercentage, Value: 20,
			MaxDiscount: &maxDiscount, IsActive: true,
		}, nil).Once()
		f.regRepo.On("Create", ctx, f.tx, mock.MatchedBy(func(r *model.Registration) bool {
			return r.Amount == 950_000 && r.VoucherCode != nil && *r.VoucherCode == "SAVE20"
		})).Return(&model.Registration{OrderID: "SSS2025-1-abc123", Amount: 950_000}, nil).Once()
		f.payRepo.On("Create", ctx, f.tx, mock.Anything).Return(&model.Payment{}, nil).Once()
		f.voucherRepo.On("IncrementUsage", ctx, f.tx, "SAVE20").Return(true, nil).Once()
		f.gateway.On("CreateSession", ctx, mock.Anything).
			Return(&gateway.Session{PaymentURL: "https://pay.example/s/2"}, nil).Once()

		req := baseReq
		req.VoucherCode = "SAVE20"
		result, err := f.svc.Register(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, int64(50_000), result.Discount)
		f.voucherRepo.AssertExpectations(t)
	})

	t.Run("voucher exhausted between evaluation and redemption", func(t *testing.T) {
		f := setupRegistration()
		f.expectPricing(500_000)

		f.voucherRepo.On("FindByCode", ctx, "SAVE20").Return(&model.Voucher{
			Code: "SAVE20", Type: model.VoucherTypeFixed, Value: 50_000, IsActive: true,
		}, nil).Once()
		f.regRepo.On("Create", ctx, f.tx, mock.Anything).
			Return(&model.Registration{OrderID: "SSS2025-1-abc123"}, nil).Once()
		f.payRepo.On("Create", ctx, f.tx, mock.Anything).Return(&model.Payment{}, nil).Once()
		f.voucherRepo.On("IncrementUsage", ctx, f.tx, "SAVE20").Return(false, nil).Once()

		req := baseReq
		req.VoucherCode = "SAVE20"
		_, err := f.svc.Register(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrVoucherExhausted)
		assert.Equal(t, 0, f.tx.Commits)
		f.gateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	})

	t.Run("rejected voucher aborts before any write", func(t *testing.T) {
		f := setupRegistration()
		f.expectPricing(500_000)

		f.voucherRepo.On("FindByCode", ctx, "OLD").Return(&model.Voucher{
			Code: "OLD", Type: model.VoucherTypeFixed, Value: 1, IsActive: false,
		}, nil).Once()

		req := baseReq
		req.VoucherCode = "OLD"
		_, err := f.svc.Register(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrVoucherInactive)
		f.regRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("amount is floored at one minor unit", func(t *testing.T) {
		f := setupRegistration()
		f.expectPricing(10_000)

		f.voucherRepo.On("FindByCode", ctx, "FLAT100K").Return(&model.Voucher{
			Code: "FLAT100K", Type: model.VoucherTypeFixed, Value: 100_000, IsActive: true,
		}, nil).Once()
		f.regRepo.On("Create", ctx, f.tx, mock.MatchedBy(func(r *model.Registration) bool {
			return r.Amount == 1
		})).Return(&model.Registration{OrderID: "SSS2025-1-abc123", Amount: 1}, nil).Once()
		f.payRepo.On("Create", ctx, f.tx, mock.Anything).Return(&model.Payment{}, nil).Once()
		f.voucherRepo.On("IncrementUsage", ctx, f.tx, "FLAT100K").Return(true, nil).Once()
		f.gateway.On("CreateSession", ctx, mock.Anything).
			Return(&gateway.Session{PaymentURL: "https://pay.example/s/3"}, nil).Once()

		req := baseReq
		req.Quantity = 1
		req.VoucherCode = "FLAT100K"
		result, err := f.svc.Register(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, int64(10_000), result.Discount)
	})
}

func TestRegistrationService_OrderStatus(t *testing.T) {
	ctx := context.Background()
	orderID := "SSS2025-1-abc123"

	t.Run("paid order with ticket", func(t *testing.T) {
		f := setupRegistration()

		f.regRepo.On("FindByOrderID", ctx, orderID).Return(&model.Registration{
			OrderID: orderID, Status: model.RegistrationStatusPaid,
		}, nil).Once()
		f.payRepo.On("FindByOrderID", ctx, orderID).Return(&model.Payment{
			OrderID: orderID, Status: model.PaymentStatusSuccess,
		}, nil).Once()
		f.ticketRepo.On("FindByOrderID", ctx, orderID).Return(&model.Ticket{OrderID: orderID}, nil).Once()

		status, err := f.svc.OrderStatus(ctx, orderID)

		require.NoError(t, err)
		assert.Equal(t, model.RegistrationStatusPaid, status.Status)
		assert.Equal(t, model.PaymentStatusSuccess, status.PaymentStatus)
		assert.True(t, status.TicketIssued)
	})

	t.Run("pending order without ticket", func(t *testing.T) {
		f := setupRegistration()

		f.regRepo.On("FindByOrderID", ctx, orderID).Return(&model.Registration{
			OrderID: orderID, Status: model.RegistrationStatusPending,
		}, nil).Once()
		f.payRepo.On("FindByOrderID", ctx, orderID).Return(&model.Payment{
			OrderID: orderID, Status: model.PaymentStatusPending,
		}, nil).Once()
		f.ticketRepo.On("FindByOrderID", ctx, orderID).Return(nil, apperrors.ErrTicketNotFound).Once()

		status, err := f.svc.OrderStatus(ctx, orderID)

		require.NoError(t, err)
		assert.False(t, status.TicketIssued)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := setupRegistration()

		f.regRepo.On("FindByOrderID", ctx, orderID).Return(nil, apperrors.ErrOrderNotFound).Once()

		_, err := f.svc.OrderStatus(ctx, orderID)
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	})
}
