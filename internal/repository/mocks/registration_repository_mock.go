package mocks

import (
	"context"

	"summit-registration/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type RegistrationRepositoryMock struct {
	mock.Mock
}

func NewRegistrationRepositoryMock() *RegistrationRepositoryMock {
	return &RegistrationRepositoryMock{}
}

func (m *RegistrationRepositoryMock) FindByOrderID(ctx context.Context, orderID string) (*model.Registration, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *RegistrationRepositoryMock) List(ctx context.Context) ([]*model.Registration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *RegistrationRepositoryMock) CountByStatus(ctx context.Context) (map[model.RegistrationStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.RegistrationStatus]int), args.Error(1)
}

func (m *RegistrationRepositoryMock) SumPaidAmount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RegistrationRepositoryMock) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *RegistrationRepositoryMock) Create(ctx context.Context, tx pgx.Tx, registration *model.Registration) (*model.Registration, error) {
	args := m.Called(ctx, tx, registration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *RegistrationRepositoryMock) MarkPaid(ctx context.Context, tx pgx.Tx, orderID string) (bool, error) {
	args := m.Called(ctx, tx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *RegistrationRepositoryMock) UpdateStatusIfPending(ctx context.Context, tx pgx.Tx, orderID string, status model.RegistrationStatus) (bool, error) {
	args := m.Called(ctx, tx, orderID, status)
	return args.Bool(0), args.Error(1)
}
