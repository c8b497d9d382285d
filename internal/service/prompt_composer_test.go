package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"writer-server/internal/mocks"
	"writer-server/internal/models"
	"writer-server/internal/service"
)

func TestPromptComposer_Compose(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	noGlobals := func(repo *mocks.MockPromptRepository) {
		repo.On("ListActiveByCategory", mock.Anything, userID, models.CategoryGlobal).
			Return([]*models.Prompt(nil), nil)
	}

	t.Run("narrative style appended for free-form type", func(t *testing.T) {
		repo := mocks.NewMockPromptRepository(t)
		noGlobals(repo)
		composer := service.NewPromptComposer(repo, zap.NewNop())

		profile := &models.CreativeProfile{NarrativeStyle: "noir, first person"}
		got, err := composer.Compose(ctx, userID, models.GenerationTypeDefault, profile, nil, nil, nil, "write something")
		require.NoError(t, err)
		assert.Contains(t, got.SystemPrompt, "narrative style: noir, first person")
		assert.Equal(t, "write something", got.UserPrompt)
	})

	t.Run("narrative style suppressed for structured type", func(t *testing.T) {
		repo := mocks.NewMockPromptRepository(t)
		noGlobals(repo)
		composer := service.NewPromptComposer(repo, zap.NewNop())

		profile := &models.CreativeProfile{NarrativeStyle: "noir, first person"}
		got, err := composer.Compose(ctx, userID, models.GenerationTypeCharacterGeneration, profile, nil, nil, nil, "make a villain")
		require.NoError(t, err)
		assert.NotContains(t, got.SystemPrompt, "narrative style")
		// Структурированный тип получает требование JSON-ответа.
		assert.Contains(t, got.UserPrompt, "single valid JSON object only")
	})

	t.Run("global prompts are prepended with delimiter", func(t *testing.T) {
		repo := mocks.NewMockPromptRepository(t)
		repo.On("ListActiveByCategory", mock.Anything, userID, models.CategoryGlobal).
			Return([]*models.Prompt{
				{Content: "Always answer in Russian."},
			}, nil)
		composer := service.NewPromptComposer(repo, zap.NewNop())

		got, err := composer.Compose(ctx, userID, models.GenerationTypeDefault, nil, nil, nil, nil, "go")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got.SystemPrompt, "Always answer in Russian.\n---\n"),
			"system prompt must start with the global layer: %q", got.SystemPrompt)
	})

	t.Run("single promptId appended and recorded for audit", func(t *testing.T) {
		promptID := uuid.New()
		repo := mocks.NewMockPromptRepository(t)
		noGlobals(repo)
		repo.On("GetByID", mock.Anything, userID, promptID).
			Return(&models.Prompt{ID: promptID, Content: "Use iambic pentameter."}, nil)
		composer := service.NewPromptComposer(repo, zap.NewNop())

		got, err := composer.Compose(ctx, userID, models.GenerationTypeDefault, nil, &promptID, nil, nil, "go")
		require.NoError(t, err)
		assert.Contains(t, got.SystemPrompt, "Use iambic pentameter.")
		require.NotNil(t, got.PromptID)
		assert.Equal(t, promptID, *got.PromptID)
	})

	t.Run("missing single promptId is skipped leniently", func(t *testing.T) {
		promptID := uuid.New()
		repo := mocks.NewMockPromptRepository(t)
		noGlobals(repo)
		repo.On("GetByID", mock.Anything, userID, promptID).
			Return(nil, models.ErrPromptNotFound)
		composer := service.NewPromptComposer(repo, zap.NewNop())

		got, err := composer.Compose(ctx, userID, models.GenerationTypeDefault, nil, &promptID, nil, nil, "go")
		require.NoError(t, err)
		assert.Nil(t, got.PromptID)
	})

	t.Run("promptIds partition by role", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		repo := mocks.NewMockPromptRepository(t)
		noGlobals(repo)
		repo.On("ListByIDs", mock.Anything, userID, ids).
			Return([]*models.Prompt{
				{Name: "tone", Type: models.PromptRoleSystem, Content: "Keep it grim."},
				{Name: "beats", Type: models.PromptRoleTask, Content: "Hit three act structure."},
			}, nil)
		composer := service.NewPromptComposer(repo, zap.NewNop())

		got, err := composer.Compose(ctx, userID, models.GenerationTypeDefault, nil, nil, ids, nil, "go")
		require.NoError(t, err)
		assert.Contains(t, got.SystemPrompt, "\n---\nKeep it grim.")
		assert.Contains(t, got.UserPrompt, "Additional Instructions:")
		assert.Contains(t, got.UserPrompt, "[Prompt: beats (task)]:\nHit three act structure.")
		assert.NotContains(t, got.SystemPrompt, "three act structure")
	})

	t.Run("context fragments render as context block", func(t *testing.T) {
		repo := mocks.NewMockPromptRepository(t)
		noGlobals(repo)
		composer := service.NewPromptComposer(repo, zap.NewNop())

		got, err := composer.Compose(ctx, userID, models.GenerationTypeDefault, nil, nil, nil,
			[]string{`Project: "Mars"`, "Premise: survival"}, "continue the story")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got.UserPrompt, "Contexto:\n"))
		assert.Contains(t, got.UserPrompt, `Project: "Mars"`+"\nPremise: survival")
		assert.Contains(t, got.UserPrompt, "continue the story")
	})
}
