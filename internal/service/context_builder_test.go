package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"writer-server/internal/mocks"
	"writer-server/internal/models"
	"writer-server/internal/service"
)

func TestContextAssembler_Assemble(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("fixed order project, character, script", func(t *testing.T) {
		projectID, characterID, scriptID := uuid.New(), uuid.New(), uuid.New()

		projects := mocks.NewMockProjectRepository(t)
		characters := mocks.NewMockCharacterRepository(t)
		scripts := mocks.NewMockScriptRepository(t)

		projects.On("GetByID", mock.Anything, userID, projectID).
			Return(&models.Project{ID: projectID, Title: "Mars Colony", Premise: "survival on a dying outpost", Tone: "hard sci-fi"}, nil)
		characters.On("ListByProject", mock.Anything, userID, projectID).
			Return([]*models.Character{
				{Name: "Ilsa", Personality: "stubborn"},
				{Name: "Grit", Description: "old mining robot"},
			}, nil)
		characters.On("GetByID", mock.Anything, userID, characterID).
			Return(&models.Character{ID: characterID, Name: "Ilsa", Description: "engineer", Personality: "stubborn", Background: "born on Mars"}, nil)
		scripts.On("GetByID", mock.Anything, userID, scriptID).
			Return(&models.Script{ID: scriptID, Title: "Act I", Type: "draft", Content: "INT. HAB DOME - NIGHT"}, nil)

		assembler := service.NewContextAssembler(projects, characters, scripts, zap.NewNop())
		fragments, err := assembler.Assemble(ctx, userID, service.ContextRefs{
			ProjectID:   &projectID,
			CharacterID: &characterID,
			ScriptID:    &scriptID,
		})
		require.NoError(t, err)

		joined := strings.Join(fragments, "\n")
		// Порядок фиксированный независимо от порядка ссылок в запросе.
		projectIdx := strings.Index(joined, `Project: "Mars Colony"`)
		characterIdx := strings.Index(joined, "Character: Ilsa")
		scriptIdx := strings.Index(joined, "Script: Act I (draft)")
		require.NotEqual(t, -1, projectIdx)
		require.NotEqual(t, -1, characterIdx)
		require.NotEqual(t, -1, scriptIdx)
		assert.Less(t, projectIdx, characterIdx)
		assert.Less(t, characterIdx, scriptIdx)

		assert.Contains(t, joined, "Premise: survival on a dying outpost")
		assert.Contains(t, joined, "Tone/Genre: hard sci-fi")
		// Для персонажей проекта берется personality, при его отсутствии - description.
		assert.Contains(t, joined, "Characters: Ilsa - stubborn; Grit - old mining robot")
		assert.Contains(t, joined, "Content: INT. HAB DOME - NIGHT")
	})

	t.Run("missing references are skipped leniently", func(t *testing.T) {
		projectID, scriptID := uuid.New(), uuid.New()

		projects := mocks.NewMockProjectRepository(t)
		characters := mocks.NewMockCharacterRepository(t)
		scripts := mocks.NewMockScriptRepository(t)

		projects.On("GetByID", mock.Anything, userID, projectID).
			Return(nil, models.ErrProjectNotFound)
		scripts.On("GetByID", mock.Anything, userID, scriptID).
			Return(&models.Script{ID: scriptID, Title: "Act I"}, nil)

		assembler := service.NewContextAssembler(projects, characters, scripts, zap.NewNop())
		fragments, err := assembler.Assemble(ctx, userID, service.ContextRefs{
			ProjectID: &projectID,
			ScriptID:  &scriptID,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Script: Act I"}, fragments)
	})

	t.Run("infrastructure errors propagate", func(t *testing.T) {
		projectID := uuid.New()

		projects := mocks.NewMockProjectRepository(t)
		characters := mocks.NewMockCharacterRepository(t)
		scripts := mocks.NewMockScriptRepository(t)

		projects.On("GetByID", mock.Anything, userID, projectID).
			Return(nil, errors.New("connection refused"))

		assembler := service.NewContextAssembler(projects, characters, scripts, zap.NewNop())
		_, err := assembler.Assemble(ctx, userID, service.ContextRefs{ProjectID: &projectID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to gather context entities")
	})

	t.Run("script content is truncated", func(t *testing.T) {
		scriptID := uuid.New()
		longContent := strings.Repeat("a", 2500)

		projects := mocks.NewMockProjectRepository(t)
		characters := mocks.NewMockCharacterRepository(t)
		scripts := mocks.NewMockScriptRepository(t)

		scripts.On("GetByID", mock.Anything, userID, scriptID).
			Return(&models.Script{ID: scriptID, Title: "Long", Content: longContent}, nil)

		assembler := service.NewContextAssembler(projects, characters, scripts, zap.NewNop())
		fragments, err := assembler.Assemble(ctx, userID, service.ContextRefs{ScriptID: &scriptID})
		require.NoError(t, err)
		require.Len(t, fragments, 2)
		assert.Equal(t, "Content: "+strings.Repeat("a", 2000), fragments[1])
	})

	t.Run("truncation does not split multibyte runes", func(t *testing.T) {
		scriptID := uuid.New()
		// Три байта на руну: байтовый лимит попадает в середину руны.
		longContent := strings.Repeat("語", 1000)

		projects := mocks.NewMockProjectRepository(t)
		characters := mocks.NewMockCharacterRepository(t)
		scripts := mocks.NewMockScriptRepository(t)

		scripts.On("GetByID", mock.Anything, userID, scriptID).
			Return(&models.Script{ID: scriptID, Title: "Пьеса", Content: longContent}, nil)

		assembler := service.NewContextAssembler(projects, characters, scripts, zap.NewNop())
		fragments, err := assembler.Assemble(ctx, userID, service.ContextRefs{ScriptID: &scriptID})
		require.NoError(t, err)
		require.Len(t, fragments, 2)

		content := strings.TrimPrefix(fragments[1], "Content: ")
		assert.True(t, utf8.ValidString(content))
		assert.LessOrEqual(t, len(content), 2000)
		// 2000 не кратно трем: срез отступает к началу предыдущей руны.
		assert.Equal(t, strings.Repeat("語", 666), content)
	})

	t.Run("no references yields no fragments", func(t *testing.T) {
		assembler := service.NewContextAssembler(
			mocks.NewMockProjectRepository(t),
			mocks.NewMockCharacterRepository(t),
			mocks.NewMockScriptRepository(t),
			zap.NewNop(),
		)
		fragments, err := assembler.Assemble(ctx, userID, service.ContextRefs{})
		require.NoError(t, err)
		assert.Empty(t, fragments)
	})
}
