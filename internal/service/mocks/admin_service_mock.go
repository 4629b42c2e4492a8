package mocks

import (
	"context"

	"summit-registration/internal/model"

	"github.com/stretchr/testify/mock"
)

type AdminServiceMock struct {
	mock.Mock
}

func NewAdminServiceMock() *AdminServiceMock {
	return &AdminServiceMock{}
}

func (m *AdminServiceMock) Stats(ctx context.Context) (*model.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminStats), args.Error(1)
}

func (m *AdminServiceMock) ListPayments(ctx context.Context) ([]*model.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Payment), args.Error(1)
}

func (m *AdminServiceMock) ResetAllData(ctx context.Context, confirmation string) error {
	args := m.Called(ctx, confirmation)
	return args.Error(0)
}
