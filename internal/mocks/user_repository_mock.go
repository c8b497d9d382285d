package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"writer-server/internal/interfaces"
	"writer-server/internal/models"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

// UpsertByExternalID provides a mock function with given fields: ctx, externalID, username, email
func (_m *MockUserRepository) UpsertByExternalID(ctx context.Context, externalID string, username string, email string) (*models.User, error) {
	ret := _m.Called(ctx, externalID, username, email)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}
	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}
	return r0, ret.Error(1)
}

// UpdateProviderKeys provides a mock function with given fields: ctx, userID, openaiKey, geminiKey, openrouterKey
func (_m *MockUserRepository) UpdateProviderKeys(ctx context.Context, userID uuid.UUID, openaiKey *string, geminiKey *string, openrouterKey *string) error {
	ret := _m.Called(ctx, userID, openaiKey, geminiKey, openrouterKey)
	return ret.Error(0)
}

// NewMockUserRepository creates a new instance of MockUserRepository.
// The first argument is typically a *testing.T value.
func NewMockUserRepository(t interface {
	mock.TestingT
	Helper()
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.UserRepository = (*MockUserRepository)(nil)
