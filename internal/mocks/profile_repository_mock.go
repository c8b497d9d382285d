package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"writer-server/internal/interfaces"
	"writer-server/internal/models"
)

// MockProfileRepository is a mock type for the ProfileRepository type
type MockProfileRepository struct {
	mock.Mock
}

func (_m *MockProfileRepository) Create(ctx context.Context, profile *models.CreativeProfile) error {
	ret := _m.Called(ctx, profile)
	return ret.Error(0)
}

func (_m *MockProfileRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*models.CreativeProfile, error) {
	ret := _m.Called(ctx, userID, id)

	var r0 *models.CreativeProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.CreativeProfile)
	}
	return r0, ret.Error(1)
}

func (_m *MockProfileRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.CreativeProfile, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*models.CreativeProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.CreativeProfile)
	}
	return r0, ret.Error(1)
}

func (_m *MockProfileRepository) Update(ctx context.Context, profile *models.CreativeProfile) error {
	ret := _m.Called(ctx, profile)
	return ret.Error(0)
}

func (_m *MockProfileRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	ret := _m.Called(ctx, userID, id)
	return ret.Error(0)
}

func (_m *MockProfileRepository) SetActive(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	ret := _m.Called(ctx, userID, id)
	return ret.Error(0)
}

func (_m *MockProfileRepository) GetActive(ctx context.Context, userID uuid.UUID) (*models.CreativeProfile, error) {
	ret := _m.Called(ctx, userID)

	var r0 *models.CreativeProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.CreativeProfile)
	}
	return r0, ret.Error(1)
}

// NewMockProfileRepository creates a new instance of MockProfileRepository.
// The first argument is typically a *testing.T value.
func NewMockProfileRepository(t interface {
	mock.TestingT
	Helper()
}) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.ProfileRepository = (*MockProfileRepository)(nil)
