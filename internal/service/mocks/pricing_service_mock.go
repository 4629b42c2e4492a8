package mocks

import (
	"context"

	"summit-registration/internal/model"

	"github.com/stretchr/testify/mock"
)

type PricingServiceMock struct {
	mock.Mock
}

func NewPricingServiceMock() *PricingServiceMock {
	return &PricingServiceMock{}
}

func (m *PricingServiceMock) CurrentPrice(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PricingServiceMock) GetPricing(ctx context.Context) (*model.Pricing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pricing), args.Error(1)
}

func (m *PricingServiceMock) UpdatePricing(ctx context.Context, req model.UpdatePricingRequest) (*model.Pricing, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pricing), args.Error(1)
}
