// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	adminDomain "github.com/guardianchain/capsule-api/internal/admin/domain"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// MockAdminUseCase is a mock implementation of AdminUseCase for testing.
type MockAdminUseCase struct {
	mock.Mock
}

// UpdateTier mocks the UpdateTier method of AdminUseCase.
func (m *MockAdminUseCase) UpdateTier(
	ctx context.Context,
	actor *identityDomain.User,
	targetID uuid.UUID,
	tierName string,
) (*identityDomain.User, error) {
	args := m.Called(ctx, actor, targetID, tierName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

// Stats mocks the Stats method of AdminUseCase.
func (m *MockAdminUseCase) Stats(ctx context.Context) (*adminDomain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adminDomain.Stats), args.Error(1)
}

// Health mocks the Health method of AdminUseCase.
func (m *MockAdminUseCase) Health(ctx context.Context) (*adminDomain.HealthReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adminDomain.HealthReport), args.Error(1)
}
