package mocks

import (
	"context"

	"summit-registration/internal/model"

	"github.com/stretchr/testify/mock"
)

type AdminRepositoryMock struct {
	mock.Mock
}

func NewAdminRepositoryMock() *AdminRepositoryMock {
	return &AdminRepositoryMock{}
}

func (m *AdminRepositoryMock) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminUser), args.Error(1)
}

func (m *AdminRepositoryMock) EnsureUser(ctx context.Context, username, passwordHash, role string) error {
	args := m.Called(ctx, username, passwordHash, role)
	return args.Error(0)
}
