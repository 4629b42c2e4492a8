package mocks

import (
	"context"

	"summit-registration/internal/model"

	"github.com/stretchr/testify/mock"
)

type MailerMock struct {
	mock.Mock
}

func NewMailerMock() *MailerMock {
	return &MailerMock{}
}

func (m *MailerMock) SendTicket(ctx context.Context, ticket *model.Ticket, amount int64) error {
	args := m.Called(ctx, ticket, amount)
	return args.Error(0)
}
