package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"writer-server/internal/interfaces"
	"writer-server/internal/models"
)

// LibraryService - тонкий CRUD над сущностями-источниками контекста:
// проекты, персонажи, сценарии.
type LibraryService struct {
	projects   interfaces.ProjectRepository
	characters interfaces.CharacterRepository
	scripts    interfaces.ScriptRepository
	logger     *zap.Logger
}

func NewLibraryService(
	projects interfaces.ProjectRepository,
	characters interfaces.CharacterRepository,
	scripts interfaces.ScriptRepository,
	logger *zap.Logger,
) *LibraryService {
	return &LibraryService{
		projects:   projects,
		characters: characters,
		scripts:    scripts,
		logger:     logger.Named("LibraryService"),
	}
}

// --- Projects ---

func (s *LibraryService) CreateProject(ctx context.Context, project *models.Project) error {
	if project.Title == "" {
		return fmt.Errorf("%w: project title is required", models.ErrInvalidInput)
	}
	return s.projects.Create(ctx, project)
}

func (s *LibraryService) GetProject(ctx context.Context, userID, id uuid.UUID) (*models.Project, error) {
	return s.projects.GetByID(ctx, userID, id)
}

func (s *LibraryService) ListProjects(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

func (s *LibraryService) UpdateProject(ctx context.Context, project *models.Project) error {
	if project.Title == "" {
		return fmt.Errorf("%w: project title is required", models.ErrInvalidInput)
	}
	return s.projects.Update(ctx, project)
}

func (s *LibraryService) DeleteProject(ctx context.Context, userID, id uuid.UUID) error {
	return s.projects.Delete(ctx, userID, id)
}

// --- Characters ---

func (s *LibraryService) CreateCharacter(ctx context.Context, character *models.Character) error {
	if character.Name == "" {
		return fmt.Errorf("%w: character name is required", models.ErrInvalidInput)
	}
	return s.characters.Create(ctx, character)
}

func (s *LibraryService) GetCharacter(ctx context.Context, userID, id uuid.UUID) (*models.Character, error) {
	return s.characters.GetByID(ctx, userID, id)
}

func (s *LibraryService) ListCharacters(ctx context.Context, userID uuid.UUID) ([]*models.Character, error) {
	return s.characters.ListByUser(ctx, userID)
}

func (s *LibraryService) ListCharactersByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*models.Character, error) {
	return s.characters.ListByProject(ctx, userID, projectID)
}

func (s *LibraryService) UpdateCharacter(ctx context.Context, character *models.Character) error {
	if character.Name == "" {
		return fmt.Errorf("%w: character name is required", models.ErrInvalidInput)
	}
	return s.characters.Update(ctx, character)
}

func (s *LibraryService) DeleteCharacter(ctx context.Context, userID, id uuid.UUID) error {
	return s.characters.Delete(ctx, userID, id)
}

// --- Scripts ---

func (s *LibraryService) CreateScript(ctx context.Context, script *models.Script) error {
	if script.Title == "" {
		return fmt.Errorf("%w: script title is required", models.ErrInvalidInput)
	}
	return s.scripts.Create(ctx, script)
}

func (s *LibraryService) GetScript(ctx context.Context, userID, id uuid.UUID) (*models.Script, error) {
	return s.scripts.GetByID(ctx, userID, id)
}

func (s *LibraryService) ListScripts(ctx context.Context, userID uuid.UUID) ([]*models.Script, error) {
	return s.scripts.ListByUser(ctx, userID)
}

func (s *LibraryService) UpdateScript(ctx context.Context, script *models.Script) error {
	if script.Title == "" {
		return fmt.Errorf("%w: script title is required", models.ErrInvalidInput)
	}
	return s.scripts.Update(ctx, script)
}

func (s *LibraryService) DeleteScript(ctx context.Context, userID, id uuid.UUID) error {
	return s.scripts.Delete(ctx, userID, id)
}
