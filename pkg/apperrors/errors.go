package apperrors

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrAdminNotFound  = errors.New("admin not found")

	ErrVoucherNotFound    = errors.New("voucher not found")
	ErrVoucherInactive    = errors.New("voucher is inactive")
	ErrVoucherExpired     = errors.New("voucher has expired")
	ErrVoucherExhausted   = errors.New("voucher usage limit reached")
	ErrVoucherMinPurchase = errors.New("subtotal below voucher minimum purchase")

	ErrPricingNotFound = errors.New("pricing not configured")

	ErrTicketAlreadyUsed    = errors.New("ticket already used")
	ErrTicketAlreadyIssued  = errors.New("ticket already issued for order")
	ErrPaymentNotConfirmed  = errors.New("payment not confirmed")
	ErrDuplicateTicketCode  = errors.New("duplicate ticket code")
	ErrEmailDeliveryFailed  = errors.New("email delivery failed")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTooManyLoginAttempts = errors.New("too many login attempts")

	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
