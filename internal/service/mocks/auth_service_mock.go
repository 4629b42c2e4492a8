package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type AuthServiceMock struct {
	mock.Mock
}

func NewAuthServiceMock() *AuthServiceMock {
	return &AuthServiceMock{}
}

func (m *AuthServiceMock) Login(ctx context.Context, username, password, clientIP string) (string, string, error) {
	args := m.Called(ctx, username, password, clientIP)
	return args.String(0), args.String(1), args.Error(2)
}
