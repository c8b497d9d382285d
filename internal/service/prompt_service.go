package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"writer-server/internal/interfaces"
	"writer-server/internal/models"
)

// PromptService управляет шаблонами промптов.
type PromptService struct {
	prompts interfaces.PromptRepository
	logger  *zap.Logger
}

func NewPromptService(prompts interfaces.PromptRepository, logger *zap.Logger) *PromptService {
	return &PromptService{
		prompts: prompts,
		logger:  logger.Named("PromptService"),
	}
}

func (s *PromptService) Create(ctx context.Context, prompt *models.Prompt) error {
	if err := validatePrompt(prompt); err != nil {
		return err
	}
	return s.prompts.Create(ctx, prompt)
}

func (s *PromptService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Prompt, error) {
	return s.prompts.GetByID(ctx, userID, id)
}

func (s *PromptService) List(ctx context.Context, userID uuid.UUID) ([]*models.Prompt, error) {
	return s.prompts.ListByUser(ctx, userID)
}

// Update сохраняет шаблон; version поднимает репозиторий при смене content.
func (s *PromptService) Update(ctx context.Context, prompt *models.Prompt) error {
	if err := validatePrompt(prompt); err != nil {
		return err
	}
	return s.prompts.Update(ctx, prompt)
}

func (s *PromptService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.prompts.Delete(ctx, userID, id)
}

func validatePrompt(p *models.Prompt) error {
	if p.Name == "" {
		return fmt.Errorf("%w: prompt name is required", models.ErrInvalidInput)
	}
	switch p.Type {
	case models.PromptRoleSystem, models.PromptRoleTask, models.PromptRoleAuxiliary:
	default:
		return fmt.Errorf("%w: prompt type must be one of system, task, auxiliary", models.ErrInvalidInput)
	}
	return nil
}
