package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"writer-server/internal/interfaces"
	"writer-server/internal/models"
)

// MockProjectRepository is a mock type for the ProjectRepository type
type MockProjectRepository struct {
	mock.Mock
}

func (_m *MockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	ret := _m.Called(ctx, project)
	return ret.Error(0)
}

func (_m *MockProjectRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*models.Project, error) {
	ret := _m.Called(ctx, userID, id)

	var r0 *models.Project
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Project)
	}
	return r0, ret.Error(1)
}

func (_m *MockProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*models.Project
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Project)
	}
	return r0, ret.Error(1)
}

func (_m *MockProjectRepository) Update(ctx context.Context, project *models.Project) error {
	ret := _m.Called(ctx, project)
	return ret.Error(0)
}

func (_m *MockProjectRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	ret := _m.Called(ctx, userID, id)
	return ret.Error(0)
}

// NewMockProjectRepository creates a new instance of MockProjectRepository.
func NewMockProjectRepository(t interface {
	mock.TestingT
	Helper()
}) *MockProjectRepository {
	m := &MockProjectRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.ProjectRepository = (*MockProjectRepository)(nil)

// MockCharacterRepository is a mock type for the CharacterRepository type
type MockCharacterRepository struct {
	mock.Mock
}

func (_m *MockCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	ret := _m.Called(ctx, character)
	return ret.Error(0)
}

func (_m *MockCharacterRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*models.Character, error) {
	ret := _m.Called(ctx, userID, id)

	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}
	return r0, ret.Error(1)
}

func (_m *MockCharacterRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Character, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Character)
	}
	return r0, ret.Error(1)
}

func (_m *MockCharacterRepository) ListByProject(ctx context.Context, userID uuid.UUID, projectID uuid.UUID) ([]*models.Character, error) {
	ret := _m.Called(ctx, userID, projectID)

	var r0 []*models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Character)
	}
	return r0, ret.Error(1)
}

func (_m *MockCharacterRepository) Update(ctx context.Context, character *models.Character) error {
	ret := _m.Called(ctx, character)
	return ret.Error(0)
}

func (_m *MockCharacterRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	ret := _m.Called(ctx, userID, id)
	return ret.Error(0)
}

// NewMockCharacterRepository creates a new instance of MockCharacterRepository.
func NewMockCharacterRepository(t interface {
	mock.TestingT
	Helper()
}) *MockCharacterRepository {
	m := &MockCharacterRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.CharacterRepository = (*MockCharacterRepository)(nil)

// MockScriptRepository is a mock type for the ScriptRepository type
type MockScriptRepository struct {
	mock.Mock
}

func (_m *MockScriptRepository) Create(ctx context.Context, script *models.Script) error {
	ret := _m.Called(ctx, script)
	return ret.Error(0)
}

func (_m *MockScriptRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*models.Script, error) {
	ret := _m.Called(ctx, userID, id)

	var r0 *models.Script
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Script)
	}
	return r0, ret.Error(1)
}

func (_m *MockScriptRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Script, error) {
	ret := _m.Called(ctx, userID)

	var r0 []*models.Script
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.Script)
	}
	return r0, ret.Error(1)
}

func (_m *MockScriptRepository) Update(ctx context.Context, script *models.Script) error {
	ret := _m.Called(ctx, script)
	return ret.Error(0)
}

func (_m *MockScriptRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	ret := _m.Called(ctx, userID, id)
	return ret.Error(0)
}

// NewMockScriptRepository creates a new instance of MockScriptRepository.
func NewMockScriptRepository(t interface {
	mock.TestingT
	Helper()
}) *MockScriptRepository {
	m := &MockScriptRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ interfaces.ScriptRepository = (*MockScriptRepository)(nil)
