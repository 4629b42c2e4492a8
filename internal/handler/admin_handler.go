package handler

import (
	"errors"
	"net/http"

	"summit-registration/config"
	"summit-registration/internal/model"
	"summit-registration/internal/service"
	"summit-registration/pkg/apperrors"
	"summit-registration/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	auth          service.AuthService
	admin         service.AdminService
	registrations service.RegistrationService
	pricing       service.PricingService
	authCfg       config.AuthConfig
}

func NewAdminHandler(
	auth service.AuthService,
	admin service.AdminService,
	registrations service.RegistrationService,
	pricing service.PricingService,
	authCfg config.AuthConfig,
) *AdminHandler {
	return &AdminHandler{
		auth:          auth,
		admin:         admin,
		registrations: registrations,
		pricing:       pricing,
		authCfg:       authCfg,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.Engine, adminMiddleware gin.HandlerFunc) {
	r.POST("/api/v1/admin/login", h.Login)
	r.GET("/api/v1/pricing", h.GetPublicPricing)

	admin := r.Group("/api/v1/admin", adminMiddleware)
	{
		admin.GET("stats", h.GetStats)
		admin.GET("registrations", h.ListRegistrations)
		admin.GET("registrations/:orderId", h.GetRegistration)
		admin.GET("payments", h.ListPayments)
		admin.GET("pricing", h.GetPricing)
		admin.PUT("pricing", h.UpdatePricing)
		admin.POST("reset", h.ResetAllData)
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req model.LoginRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	token, role, err := h.auth.Login(c, req.Username, req.Password, c.ClientIP())
	if err != nil {
		h.handleAdminError(c, err, "Login")
		return
	}

	// cookie is a convenience for the admin dashboard; API clients use
	// the Authorization header
	c.SetCookie("admin_token", token, int(h.authCfg.TokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, model.LoginResponse{Token: token, Role: role})
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.admin.Stats(c)
	if err != nil {
		h.handleAdminError(c, err, "GetStats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListRegistrations(c *gin.Context) {
	registrations, err := h.registrations.List(c)
	if err != nil {
		h.handleAdminError(c, err, "ListRegistrations")
		return
	}

	c.JSON(http.StatusOK, registrations)
}

func (h *AdminHandler) GetRegistration(c *gin.Context) {
	registration, err := h.registrations.GetByOrderID(c, c.Param("orderId"))
	if err != nil {
		h.handleAdminError(c, err, "GetRegistration")
		return
	}

	c.JSON(http.StatusOK, registration)
}

func (h *AdminHandler) ListPayments(c *gin.Context) {
	payments, err := h.admin.ListPayments(c)
	if err != nil {
		h.handleAdminError(c, err, "ListPayments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetPublicPricing exposes the current effective price to the
// registration form.
func (h *AdminHandler) GetPublicPricing(c *gin.Context) {
	price, err := h.pricing.CurrentPrice(c)
	if err != nil {
		h.handleAdminError(c, err, "GetPublicPricing")
		return
	}

	c.JSON(http.StatusOK, gin.H{"price": price})
}

func (h *AdminHandler) GetPricing(c *gin.Context) {
	pricing, err := h.pricing.GetPricing(c)
	if err != nil {
		h.handleAdminError(c, err, "GetPricing")
		return
	}

	c.JSON(http.StatusOK, pricing)
}

func (h *AdminHandler) UpdatePricing(c *gin.Context) {
	var req model.UpdatePricingRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	pricing, err := h.pricing.UpdatePricing(c, req)
	if err != nil {
		h.handleAdminError(c, err, "UpdatePricing")
		return
	}

	c.JSON(http.StatusOK, pricing)
}

func (h *AdminHandler) ResetAllData(c *gin.Context) {
	var req model.ResetDataRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.admin.ResetAllData(c, req.Confirmation); err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Confirmation string does not match",
			})
			return
		}
		h.handleAdminError(c, err, "ResetAllData")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (h *AdminHandler) handleAdminError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid username or password",
		})
	case errors.Is(err, apperrors.ErrTooManyLoginAttempts):
		log.Warn("Login locked out")
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many login attempts, try again later",
		})
	case errors.Is(err, apperrors.ErrOrderNotFound):
		log.Warn("Order not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, apperrors.ErrPricingNotFound):
		log.Warn("Pricing not configured")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Pricing not configured",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
