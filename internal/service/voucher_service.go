package service

import (
	"context"
	"strings"
	"time"

	"summit-registration/internal/model"
	"summit-registration/internal/repository"
	"summit-registration/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type VoucherService interface {
	// Evaluate computes the discount for a code against a subtotal
	// without consuming a use. Gating failures come back as sentinel
	// errors so handlers can surface the rejection reason.
	Evaluate(ctx context.Context, code string, subtotal int64) (*model.DiscountResult, error)
	Create(ctx context.Context, req model.CreateVoucherRequest) (*model.Voucher, error)
	List(ctx context.Context) ([]*model.Voucher, error)
	Delete(ctx context.Context, code string) error
}

type VoucherServiceImpl struct {
	repo repository.VoucherRepository
}

func NewVoucherService(repo repository.VoucherRepository) VoucherService {
	return &VoucherServiceImpl{repo: repo}
}

func (s *VoucherServiceImpl) Evaluate(ctx context.Context, code string, subtotal int64) (*model.DiscountResult, error) {
	voucher, err := s.repo.FindByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}

	if !voucher.IsActive {
		return nil, apperrors.ErrVoucherInactive
	}
	if voucher.ExpiryDate != nil && time.Now().After(*voucher.ExpiryDate) {
		return nil, apperrors.ErrVoucherExpired
	}
	if voucher.UsageLimit > 0 && voucher.UsedCount >= voucher.UsageLimit {
		return nil, apperrors.ErrVoucherExhausted
	}
	if subtotal < voucher.MinPurchase {
		return nil, apperrors.ErrVoucherMinPurchase
	}

	discount := computeDiscount(voucher, subtotal)

	return &model.DiscountResult{
		Code:           voucher.Code,
		Type:           voucher.Type,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal - discount,
	}, nil
}

// computeDiscount guarantees 0 <= discount <= subtotal. Percentage
// discounts are additionally capped by max_discount when present.
func computeDiscount(voucher *model.Voucher, subtotal int64) int64 {
	var discount int64

	switch voucher.Type {
	case model.VoucherTypeFixed:
		discount = voucher.Value
	case model.VoucherTypePercentage:
		discount = decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromInt(voucher.Value)).
			Div(decimal.NewFromInt(100)).
			Floor().
			IntPart()
		if voucher.MaxDiscount != nil && discount > *voucher.MaxDiscount {
			discount = *voucher.MaxDiscount
		}
	}

	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}

	return discount
}

func (s *VoucherServiceImpl) Create(ctx context.Context, req model.CreateVoucherRequest) (*model.Voucher, error) {
	voucherType := model.VoucherType(req.Type)
	if !voucherType.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}
	if voucherType == model.VoucherTypePercentage && req.Value > 100 {
		return nil, apperrors.ErrInvalidInput
	}

	return s.repo.Create(ctx, &model.Voucher{
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:        voucherType,
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		MaxDiscount: req.MaxDiscount,
		ExpiryDate:  req.ExpiryDate,
		UsageLimit:  req.UsageLimit,
		IsActive:    true,
	})
}

func (s *VoucherServiceImpl) List(ctx context.Context) ([]*model.Voucher, error) {
	return s.repo.List(ctx)
}

func (s *VoucherServiceImpl) Delete(ctx context.Context, code string) error {
	return s.repo.Delete(ctx, code)
}
