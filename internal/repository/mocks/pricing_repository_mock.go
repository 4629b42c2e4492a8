package mocks

import (
	"context"

	"summit-registration/internal/model"

	"github.com/stretchr/testify/mock"
)

type PricingRepositoryMock struct {
	mock.Mock
}

func NewPricingRepositoryMock() *PricingRepositoryMock {
	return &PricingRepositoryMock{}
}

func (m *PricingRepositoryMock) GetCurrent(ctx context.Context) (*model.Pricing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pricing), args.Error(1)
}

func (m *PricingRepositoryMock) Upsert(ctx context.Context, pricing *model.Pricing) (*model.Pricing, error) {
	args := m.Called(ctx, pricing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pricing), args.Error(1)
}
