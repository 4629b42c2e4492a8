package model

import "time"

// VoucherType is percentage or fixed.
type VoucherType string

const (
	VoucherTypePercentage VoucherType = "percentage"
	VoucherTypeFixed      VoucherType = "fixed"
)

func (t VoucherType) IsValid() bool {
	switch t {
	case VoucherTypePercentage, VoucherTypeFixed:
		return true
	}
	return false
}

// Voucher is a discount code. Codes match case-insensitively.
// UsageLimit of 0 means unlimited.
type Voucher struct {
	ID          int         `json:"id" db:"id"`
	Code        string      `json:"code" db:"code"`
	Type        VoucherType `json:"type" db:"type"`
	Value       int64       `json:"value" db:"value"`
	MinPurchase int64       `json:"min_purchase" db:"min_purchase"`
	MaxDiscount *int64      `json:"max_discount,omitempty" db:"max_discount"`
	ExpiryDate  *time.Time  `json:"expiry_date,omitempty" db:"expiry_date"`
	UsageLimit  int         `json:"usage_limit" db:"usage_limit"`
	UsedCount   int         `json:"used_count" db:"used_count"`
	IsActive    bool        `json:"is_active" db:"is_active"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// CreateVoucherRequest is the admin payload for creating a voucher.
type CreateVoucherRequest struct {
	Code        string     `json:"code" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=percentage fixed"`
	Value       int64      `json:"value" binding:"required,min=1"`
	MinPurchase int64      `json:"min_purchase" binding:"min=0"`
	MaxDiscount *int64     `json:"max_discount"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	UsageLimit  int        `json:"usage_limit" binding:"min=0"`
}

// ValidateVoucherRequest is the public preview payload.
type ValidateVoucherRequest struct {
	Code     string `json:"code" binding:"required"`
	Subtotal int64  `json:"subtotal" binding:"required,min=1"`
}

// DiscountResult is the breakdown returned by the voucher evaluator.
// DiscountAmount never exceeds Subtotal and Total is never negative.
type DiscountResult struct {
	Code           string      `json:"code"`
	Type           VoucherType `json:"type"`
	Subtotal       int64       `json:"subtotal"`
	DiscountAmount int64       `json:"discount_amount"`
	Total          int64       `json:"total"`
}
