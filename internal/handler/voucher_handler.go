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

type VoucherHandler struct {
	service service.VoucherService
}

func NewVoucherHandler(service service.VoucherService) *VoucherHandler {
	return &VoucherHandler{service: service}
}

func (h *VoucherHandler) RegisterRoutes(r *gin.Engine, adminMiddleware gin.HandlerFunc) {
	r.POST("/api/v1/vouchers/validate", h.ValidateVoucher)

	admin := r.Group("/api/v1/admin", adminMiddleware)
	{
		admin.GET("vouchers", h.ListVouchers)
		admin.POST("vouchers", h.CreateVoucher)
		admin.DELETE("vouchers/:code", h.DeleteVoucher)
	}
}

// ValidateVoucher is the public discount preview used by the
// registration form; it never consumes a use.
func (h *VoucherHandler) ValidateVoucher(c *gin.Context) {
	var req model.ValidateVoucherRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.Evaluate(c, req.Code, req.Subtotal)
	if err != nil {
		h.handleVoucherError(c, err, "ValidateVoucher")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *VoucherHandler) ListVouchers(c *gin.Context) {
	vouchers, err := h.service.List(c)
	if err != nil {
		h.handleVoucherError(c, err, "ListVouchers")
		return
	}

	c.JSON(http.StatusOK, vouchers)
}

func (h *VoucherHandler) CreateVoucher(c *gin.Context) {
	var req model.CreateVoucherRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	voucher, err := h.service.Create(c, req)
	if err != nil {
		h.handleVoucherError(c, err, "CreateVoucher")
		return
	}

	c.JSON(http.StatusCreated, voucher)
}

func (h *VoucherHandler) DeleteVoucher(c *gin.Context) {
	err := h.service.Delete(c, c.Param("code"))
	if err != nil {
		h.handleVoucherError(c, err, "DeleteVoucher")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *VoucherHandler) handleVoucherError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrVoucherNotFound):
		log.Warn("Voucher not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Voucher not found",
		})
	case errors.Is(err, apperrors.ErrVoucherInactive),
		errors.Is(err, apperrors.ErrVoucherExpired),
		errors.Is(err, apperrors.ErrVoucherExhausted),
		errors.Is(err, apperrors.ErrVoucherMinPurchase):
		log.Warn("Voucher rejected")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid voucher input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid voucher",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
