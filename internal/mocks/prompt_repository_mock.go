package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"writer-server/internal/interfaces"
	"writer-server/internal/models"
)

// MockPromptRepository is a mock type for the PromptRepository type
type MockPromptRepository struct {
	mock.Mock
}

func (_m *MockPromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	ret := _m.Called(ctx, prompt)
	return ret.Error(0)
}

func (_m *MockPromptRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*models.Prompt, error) {
	ret := _m.Called(ctx, userID, id)

	var r0 *models.Prompt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Prompt)
	}
	return r0, ret.Error(1)
}

func (_m *MockPromptRepository) ListByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*models.Prompt, error) {
	ret := _m.Called(ctx, userID, ids)

	var r0 []*models.Prompt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Prompt)
	}
	return r0, ret.Error(1)
}

func (_m *MockPromptRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Prompt, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*models.Prompt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Prompt)
	}
	return r0, ret.Error(1)
}

func (_m *MockPromptRepository) ListActiveByCategory(ctx context.Context, userID uuid.UUID, category string) ([]*models.Prompt, error) {
	ret := _m.Called(ctx, userID, category)

	var r0 []*models.Prompt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Prompt)
	}
	return r0, ret.Error(1)
}

func (_m *MockPromptRepository) Update(ctx context.Context, prompt *models.Prompt) error {
	ret := _m.Called(ctx, prompt)
	return ret.Error(0)
}

func (_m *MockPromptRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	ret := _m.Called(ctx, userID, id)
	return ret.Error(0)
}

// NewMockPromptRepository creates a new instance of MockPromptRepository.
// The first argument is typically a *testing.T value.
func NewMockPromptRepository(t interface {
	mock.TestingT
	Helper()
}) *MockPromptRepository {
	m := &MockPromptRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.PromptRepository = (*MockPromptRepository)(nil)
