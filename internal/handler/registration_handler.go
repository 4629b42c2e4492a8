package handler

import (
	"errors"
	"net/http"

	"summit-registration/internal/model"
	"summit-registration/internal/service"
	"summit-registration/pkg/apperrors"
	"summit-registration/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RegistrationHandler struct {
	service service.RegistrationService
}

func NewRegistrationHandler(service service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

func (h *RegistrationHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("registrations", h.CreateRegistration)
		router.GET("registrations/:orderId/status", h.GetOrderStatus)
	}
}

func (h *RegistrationHandler) CreateRegistration(c *gin.Context) {
	var req model.CreateRegistrationRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.Register(c, req)
	if err != nil {
		h.handleRegistrationError(c, err, "CreateRegistration")
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *RegistrationHandler) GetOrderStatus(c *gin.Context) {
	orderID := c.Param("orderId")

	status, err := h.service.OrderStatus(c, orderID)
	if err != nil {
		h.handleRegistrationError(c, err, "GetOrderStatus")
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *RegistrationHandler) handleRegistrationError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrOrderNotFound):
		log.Warn("Order not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, apperrors.ErrPricingNotFound):
		log.Error("Pricing not configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Ticket sales are not open yet",
		})
	case errors.Is(err, apperrors.ErrVoucherNotFound),
		errors.Is(err, apperrors.ErrVoucherInactive),
		errors.Is(err, apperrors.ErrVoucherExpired),
		errors.Is(err, apperrors.ErrVoucherExhausted),
		errors.Is(err, apperrors.ErrVoucherMinPurchase):
		log.Warn("Voucher rejected")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
