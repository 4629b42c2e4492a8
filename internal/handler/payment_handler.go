package handler

import (
	"fmt"
	"net/http"

	"summit-registration/config"
	"summit-registration/internal/model"
	"summit-registration/internal/service"
	"summit-registration/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	reconciliation service.ReconciliationService
	serverCfg      config.ServerConfig
}

func NewPaymentHandler(reconciliation service.ReconciliationService, serverCfg config.ServerConfig) *PaymentHandler {
	return &PaymentHandler{
		reconciliation: reconciliation,
		serverCfg:      serverCfg,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.Engine, adminMiddleware gin.HandlerFunc) {
	r.POST("/api/v1/payments/callback", h.Callback)
	r.GET("/payments/return", h.Return)

	admin := r.Group("/api/v1/admin", adminMiddleware)
	{
		admin.POST("payments/:orderId/sync", h.ManualSync)
	}

	// test-only simulation of a gateway callback, never mounted in
	// production
	if h.serverCfg.Environment != "production" {
		r.POST("/api/v1/payments/simulate", h.Callback)
	}
}

// Callback is the gateway webhook. Understood callbacks are always
// acked with a 200, including unknown orders and duplicates; a 5xx is
// reserved for persistence failures so the gateway retries.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var cb model.GatewayCallbackRequest

	if err := BindJson(c, &cb); err != nil {
		return
	}

	result, err := h.reconciliation.ProcessCallback(c, cb)
	if err != nil {
		logger.WithComponent("handler").Error("callback processing failed",
			zap.String("order_id", cb.Order.InvoiceNumber), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"outcome": result.Outcome,
	})
}

// Return handles the browser redirect after the hosted payment page.
// It is a UX convenience only; the webhook is the authoritative path.
func (h *PaymentHandler) Return(c *gin.Context) {
	orderID := c.Query("order_id")
	status := c.Query("status")

	target := h.serverCfg.PaymentFailedURL
	if status == "SUCCESS" {
		target = h.serverCfg.PaymentSuccessURL
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s?order_id=%s", target, orderID))
}

type manualSyncRequest struct {
	Status        string `json:"status" binding:"required"`
	TransactionID string `json:"transaction_id"`
}

// ManualSync lets an admin replay a gateway outcome for an order,
// running the exact callback code path.
func (h *PaymentHandler) ManualSync(c *gin.Context) {
	var req manualSyncRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	cb := model.GatewayCallbackRequest{
		Order: model.CallbackOrder{
			InvoiceNumber: c.Param("orderId"),
		},
		Transaction: model.CallbackTransaction{
			Status:            req.Status,
			OriginalRequestID: req.TransactionID,
			PaymentMethod:     "manual_sync",
		},
	}

	result, err := h.reconciliation.ProcessCallback(c, cb)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	if result.Outcome == service.OutcomeOrderNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
