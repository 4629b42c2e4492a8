package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"summit-registration/config"
	"summit-registration/internal/handler"
	"summit-registration/internal/service"
	serviceMocks "summit-registration/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func passthrough(c *gin.Context) { c.Next() }

func setupPaymentRouter(reconciliation *serviceMocks.ReconciliationServiceMock, env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := handler.NewPaymentHandler(reconciliation, config.ServerConfig{
		Environment:       env,
		PaymentSuccessURL: "/payment/success",
		PaymentFailedURL:  "/payment/failed",
	})
	h.RegisterRoutes(router, passthrough)
	return router
}

const callbackBody = `{
	"order": {"invoice_number": "SSS2025-1-abc123", "amount": 500000, "currency": "IDR"},
	"transaction": {"status": "SUCCESS", "original_request_id": "txn-1"}
}`

func TestPaymentHandler_Callback(t *testing.T) {
	t.Run("acks processed callback with outcome", func(t *testing.T) {
		reconciliation := serviceMocks.NewReconciliationServiceMock()
		reconciliation.On("ProcessCallback", mock.Anything, mock.Anything).
			Return(&service.ReconcileResult{Outcome: service.OutcomeConfirmed}, nil).Once()
		router := setupPaymentRouter(reconciliation, "test")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/callback", strings.NewReader(callbackBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"outcome":"confirmed"`)
		reconciliation.AssertExpectations(t)
	})

	t.Run("duplicate delivery is still a 200", func(t *testing.T) {
		reconciliation := serviceMocks.NewReconciliationServiceMock()
		reconciliation.On("ProcessCallback", mock.Anything, mock.Anything).
			Return(&service.ReconcileResult{Outcome: service.OutcomeDuplicate}, nil).Once()
		router := setupPaymentRouter(reconciliation, "test")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/callback", strings.NewReader(callbackBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"outcome":"duplicate"`)
	})

	t.Run("malformed payload", func(t *testing.T) {
		reconciliation := serviceMocks.NewReconciliationServiceMock()
		router := setupPaymentRouter(reconciliation, "test")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/callback", strings.NewReader(`{"order": {}}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		reconciliation.AssertNotCalled(t, "ProcessCallback", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure returns 500 so the gateway retries", func(t *testing.T) {
		reconciliation := serviceMocks.NewReconciliationServiceMock()
		reconciliation.On("ProcessCallback", mock.Anything, mock.Anything).
			Return(nil, errors.New("db down")).Once()
		router := setupPaymentRouter(reconciliation, "test")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/callback", strings.NewReader(callbackBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPaymentHandler_Return(t *testing.T) {
	reconciliation := serviceMocks.NewReconciliationServiceMock()
	router := setupPaymentRouter(reconciliation, "test")

	t.Run("success redirect", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/payments/return?order_id=SSS2025-1-abc123&status=SUCCESS", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/payment/success?order_id=SSS2025-1-abc123", w.Header().Get("Location"))
	})

	t.Run("failure redirect", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/payments/return?order_id=SSS2025-1-abc123&status=FAILED", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/payment/failed?order_id=SSS2025-1-abc123", w.Header().Get("Location"))
	})
}

func TestPaymentHandler_ManualSync(t *testing.T) {
	t.Run("unknown order", func(t *testing.T) {
		reconciliation := serviceMocks.NewReconciliationServiceMock()
		reconciliation.On("ProcessCallback", mock.Anything, mock.Anything).
			Return(&service.ReconcileResult{Outcome: service.OutcomeOrderNotFound}, nil).Once()
		router := setupPaymentRouter(reconciliation, "test")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/payments/SSS2025-0-ffffff/sync",
			strings.NewReader(`{"status": "SUCCESS"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPaymentHandler_SimulateRoute(t *testing.T) {
	t.Run("mounted outside production", func(t *testing.T) {
		reconciliation := serviceMocks.NewReconciliationServiceMock()
		reconciliation.On("ProcessCallback", mock.Anything, mock.Anything).
			Return(&service.ReconcileResult{Outcome: service.OutcomeConfirmed}, nil).Once()
		router := setupPaymentRouter(reconciliation, "development")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/simulate", strings.NewReader(callbackBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("absent in production", func(t *testing.T) {
		reconciliation := serviceMocks.NewReconciliationServiceMock()
		router := setupPaymentRouter(reconciliation, "production")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/simulate", strings.NewReader(callbackBody))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
