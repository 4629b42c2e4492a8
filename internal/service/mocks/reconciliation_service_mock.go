package mocks

import (
	"context"

	"summit-registration/internal/model"
	"summit-registration/internal/service"

	"github.com/stretchr/testify/mock"
)

type ReconciliationServiceMock struct {
	mock.Mock
}

func NewReconciliationServiceMock() *ReconciliationServiceMock {
	return &ReconciliationServiceMock{}
}

func (m *ReconciliationServiceMock) ProcessCallback(ctx context.Context, cb model.GatewayCallbackRequest) (*service.ReconcileResult, error) {
	args := m.Called(ctx, cb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconcileResult), args.Error(1)
}

func (m *ReconciliationServiceMock) ResendTicketEmail(ctx context.Context, ticketCode string) error {
	args := m.Called(ctx, ticketCode)
	return args.Error(0)
}
