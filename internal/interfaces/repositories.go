package interfaces

import (
	"context"

	"github.com/google/uuid"

	"writer-server/internal/models"
)

// UserRepository управляет записями пользователей.
type UserRepository interface {
	// UpsertByExternalID создает пользователя при первом аутентифицированном
	// запросе или возвращает существующего.
	UpsertByExternalID(ctx context.Context, externalID, username, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UpdateProviderKeys перезаписывает зашифрованные ключи провайдеров.
	// nil означает "не менять", пустая строка - "удалить".
	UpdateProviderKeys(ctx context.Context, userID uuid.UUID, openaiKey, geminiKey, openrouterKey *string) error
}

// ProfileRepository управляет творческими профилями.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.CreativeProfile) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.CreativeProfile, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.CreativeProfile, error)
	Update(ctx context.Context, profile *models.CreativeProfile) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// SetActive атомарно деактивирует все профили пользователя и активирует один.
	SetActive(ctx context.Context, userID, id uuid.UUID) error
	// GetActive возвращает единственный активный профиль или models.ErrProfileNotFound.
	GetActive(ctx context.Context, userID uuid.UUID) (*models.CreativeProfile, error)
}

// PromptRepository управляет шаблонами промптов.
type PromptRepository interface {
	Create(ctx context.Context, prompt *models.Prompt) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Prompt, error)
	ListByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*models.Prompt, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Prompt, error)
	// ListActiveByCategory возвращает активные промпты категории (например GLOBAL).
	ListActiveByCategory(ctx context.Context, userID uuid.UUID, category string) ([]*models.Prompt, error)
	// Update инкрементирует version, если content изменился.
	Update(ctx context.Context, prompt *models.Prompt) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ProjectRepository управляет проектами.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CharacterRepository управляет персонажами.
type CharacterRepository interface {
	Create(ctx context.Context, character *models.Character) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Character, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Character, error)
	ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*models.Character, error)
	Update(ctx context.Context, character *models.Character) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ScriptRepository управляет сценариями.
type ScriptRepository interface {
	Create(ctx context.Context, script *models.Script) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Script, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Script, error)
	Update(ctx context.Context, script *models.Script) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ExecutionRepository хранит аудит вызовов генерации. Только добавление,
// путей обновления или удаления нет.
type ExecutionRepository interface {
	Create(ctx context.Context, execution *models.AIExecution) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.AIExecution, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.AIExecution, error)
}
