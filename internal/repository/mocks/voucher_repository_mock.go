package mocks

import (
	"context"

	"summit-registration/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type VoucherRepositoryMock struct {
	mock.Mock
}

func NewVoucherRepositoryMock() *VoucherRepositoryMock {
	return &VoucherRepositoryMock{}
}

func (m *VoucherRepositoryMock) Create(ctx context.Context, voucher *model.Voucher) (*model.Voucher, error) {
	args := m.Called(ctx, voucher)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Voucher), args.Error(1)
}

func (m *VoucherRepositoryMock) FindByCode(ctx context.Context, code string) (*model.Voucher, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Voucher), args.Error(1)
}

func (m *VoucherRepositoryMock) List(ctx context.Context) ([]*model.Voucher, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Voucher), args.Error(1)
}

func (m *VoucherRepositoryMock) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *VoucherRepositoryMock) ResetUsage(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *VoucherRepositoryMock) IncrementUsage(ctx context.Context, tx pgx.Tx, code string) (bool, error) {
	args := m.Called(ctx, tx, code)
	return args.Bool(0), args.Error(1)
}
