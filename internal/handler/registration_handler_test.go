package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"summit-registration/internal/handler"
	"summit-registration/internal/model"
	serviceMocks "summit-registration/internal/service/mocks"
	"summit-registration/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRegistrationRouter(registrations *serviceMocks.RegistrationServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.NewRegistrationHandler(registrations).RegisterRoutes(router)
	return router
}

const registrationBody = `{
	"name": "Ana Souza",
	"email": "ana@example.com",
	"phone": "+628111111111",
	"quantity": 2,
	"voucher_code": "SAVE20"
}`

func TestRegistrationHandler_CreateRegistration(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		registrations := serviceMocks.NewRegistrationServiceMock()
		registrations.On("Register", mock.Anything, mock.Anything).Return(&model.RegistrationResult{
			Registration: &model.Registration{OrderID: "SSS2025-1-abc123"},
			PaymentURL:   "https://pay.example/s/1",
			Subtotal:     1_000_000,
			Discount:     50_000,
		}, nil).Once()
		router := setupRegistrationRouter(registrations)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations", strings.NewReader(registrationBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "https://pay.example/s/1")
	})

	t.Run("rejected voucher", func(t *testing.T) {
		registrations := serviceMocks.NewRegistrationServiceMock()
		registrations.On("Register", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrVoucherExpired).Once()
		router := setupRegistrationRouter(registrations)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations", strings.NewReader(registrationBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("sales not open", func(t *testing.T) {
		registrations := serviceMocks.NewRegistrationServiceMock()
		registrations.On("Register", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrPricingNotFound).Once()
		router := setupRegistrationRouter(registrations)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations", strings.NewReader(registrationBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		registrations := serviceMocks.NewRegistrationServiceMock()
		router := setupRegistrationRouter(registrations)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations",
			strings.NewReader(`{"name": "Ana", "quantity": 0}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		registrations.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestRegistrationHandler_GetOrderStatus(t *testing.T) {
	t.Run("known order", func(t *testing.T) {
		registrations := serviceMocks.NewRegistrationServiceMock()
		registrations.On("OrderStatus", mock.Anything, "SSS2025-1-abc123").
			Return(&model.OrderStatusResponse{
				OrderID:       "SSS2025-1-abc123",
				Status:        model.RegistrationStatusPaid,
				PaymentStatus: model.PaymentStatusSuccess,
				TicketIssued:  true,
			}, nil).Once()
		router := setupRegistrationRouter(registrations)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/registrations/SSS2025-1-abc123/status", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ticket_issued":true`)
	})

	t.Run("unknown order", func(t *testing.T) {
		registrations := serviceMocks.NewRegistrationServiceMock()
		registrations.On("OrderStatus", mock.Anything, "SSS2025-0-ffffff").
			Return(nil, apperrors.ErrOrderNotFound).Once()
		router := setupRegistrationRouter(registrations)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/registrations/SSS2025-0-ffffff/status", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
