package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"writer-server/internal/interfaces"
	"writer-server/internal/models"
)

// MockExecutionRepository is a mock type for the ExecutionRepository type
type MockExecutionRepository struct {
	mock.Mock
}

func (_m *MockExecutionRepository) Create(ctx context.Context, execution *models.AIExecution) error {
	ret := _m.Called(ctx, execution)
	return ret.Error(0)
}

func (_m *MockExecutionRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*models.AIExecution, error) {
	ret := _m.Called(ctx, userID, id)

	var r0 *models.AIExecution
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.AIExecution)
	}
	return r0, ret.Error(1)
}

func (_m *MockExecutionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*models.AIExecution, error) {
	ret := _m.Called(ctx, userID, limit, offset)

	var r0 []*models.AIExecution
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.AIExecution)
	}
	return r0, ret.Error(1)
}

// NewMockExecutionRepository creates a new instance of MockExecutionRepository.
func NewMockExecutionRepository(t interface {
	mock.TestingT
	Helper()
}) *MockExecutionRepository {
	m := &MockExecutionRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.ExecutionRepository = (*MockExecutionRepository)(nil)
