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

type TicketHandler struct {
	tickets        service.TicketService
	reconciliation service.ReconciliationService
}

func NewTicketHandler(tickets service.TicketService, reconciliation service.ReconciliationService) *TicketHandler {
	return &TicketHandler{
		tickets:        tickets,
		reconciliation: reconciliation,
	}
}

// RegisterRoutes mounts the admin ticket surface. Door validation is
// open to staff as well; the rest is admin-only.
func (h *TicketHandler) RegisterRoutes(r *gin.Engine, adminMiddleware, staffMiddleware gin.HandlerFunc) {
	staff := r.Group("/api/v1/admin", staffMiddleware)
	{
		staff.POST("tickets/validate", h.ValidateTicket)
	}

	admin := r.Group("/api/v1/admin", adminMiddleware)
	{
		admin.GET("tickets", h.ListTickets)
		admin.GET("tickets/email-failed", h.ListEmailFailed)
		admin.POST("tickets/complimentary", h.IssueComplimentary)
		admin.POST("tickets/:code/resend", h.ResendEmail)
	}
}

func (h *TicketHandler) ValidateTicket(c *gin.Context) {
	var req model.ValidateTicketRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.tickets.Validate(c, req.TicketID)
	if err != nil {
		h.handleTicketError(c, err, "ValidateTicket")
		return
	}

	if !result.Valid && result.Reason == model.ValidationReasonNotFound {
		c.JSON(http.StatusNotFound, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TicketHandler) ListTickets(c *gin.Context) {
	tickets, err := h.tickets.List(c)
	if err != nil {
		h.handleTicketError(c, err, "ListTickets")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) ListEmailFailed(c *gin.Context) {
	tickets, err := h.tickets.ListEmailFailed(c)
	if err != nil {
		h.handleTicketError(c, err, "ListEmailFailed")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) IssueComplimentary(c *gin.Context) {
	var req model.ComplimentaryTicketRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	ticket, err := h.tickets.IssueComplimentary(c, req)
	if err != nil {
		h.handleTicketError(c, err, "IssueComplimentary")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) ResendEmail(c *gin.Context) {
	err := h.reconciliation.ResendTicketEmail(c, c.Param("code"))
	if err != nil {
		h.handleTicketError(c, err, "ResendEmail")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func (h *TicketHandler) handleTicketError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ticket not found",
		})
	case errors.Is(err, apperrors.ErrOrderNotFound):
		log.Warn("Order not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, apperrors.ErrEmailDeliveryFailed):
		log.Warn("Email delivery failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Email delivery failed",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
