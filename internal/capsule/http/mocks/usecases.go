// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	capsuleDomain "github.com/guardianchain/capsule-api/internal/capsule/domain"
	capsuleUseCase "github.com/guardianchain/capsule-api/internal/capsule/usecase"
	identityDomain "github.com/guardianchain/capsule-api/internal/identity/domain"
)

// MockCapsuleUseCase is a mock implementation of CapsuleUseCase for testing.
type MockCapsuleUseCase struct {
	mock.Mock
}

// Create mocks the Create method of CapsuleUseCase.
func (m *MockCapsuleUseCase) Create(
	ctx context.Context,
	actor *identityDomain.User,
	input *capsuleDomain.CreateCapsuleInput,
) (*capsuleDomain.Capsule, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capsuleDomain.Capsule), args.Error(1)
}

// Get mocks the Get method of CapsuleUseCase.
func (m *MockCapsuleUseCase) Get(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*capsuleDomain.Capsule, error) {
	args := m.Called(ctx, actor, capsuleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capsuleDomain.Capsule), args.Error(1)
}

// Mint mocks the Mint method of CapsuleUseCase.
func (m *MockCapsuleUseCase) Mint(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*capsuleUseCase.MintOutput, error) {
	args := m.Called(ctx, actor, capsuleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capsuleUseCase.MintOutput), args.Error(1)
}

// Status mocks the Status method of CapsuleUseCase.
func (m *MockCapsuleUseCase) Status(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*capsuleUseCase.StatusOutput, error) {
	args := m.Called(ctx, actor, capsuleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capsuleUseCase.StatusOutput), args.Error(1)
}

// MintHistory mocks the MintHistory method of CapsuleUseCase.
func (m *MockCapsuleUseCase) MintHistory(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
	limit, offset int,
) ([]*capsuleDomain.MintLog, error) {
	args := m.Called(ctx, actor, capsuleID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*capsuleDomain.MintLog), args.Error(1)
}

// MockCertificationUseCase is a mock implementation of CertificationUseCase for testing.
type MockCertificationUseCase struct {
	mock.Mock
}

// Certify mocks the Certify method of CertificationUseCase.
func (m *MockCertificationUseCase) Certify(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) (*capsuleDomain.Certification, error) {
	args := m.Called(ctx, actor, capsuleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capsuleDomain.Certification), args.Error(1)
}

// Revoke mocks the Revoke method of CertificationUseCase.
func (m *MockCertificationUseCase) Revoke(
	ctx context.Context,
	actor *identityDomain.User,
	capsuleID uuid.UUID,
) error {
	args := m.Called(ctx, actor, capsuleID)
	return args.Error(0)
}
