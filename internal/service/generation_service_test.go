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

	"writer-server/internal/llm"
	"writer-server/internal/mocks"
	"writer-server/internal/models"
	"writer-server/internal/service"
	"writer-server/internal/utils"
)

const testEncryptionSecret = "test-secret-key-32-bytes-long!!!"

// generationFixture связывает сервис генерации со всеми моками одного теста.
type generationFixture struct {
	users      *mocks.MockUserRepository
	profiles   *mocks.MockProfileRepository
	prompts    *mocks.MockPromptRepository
	projects   *mocks.MockProjectRepository
	characters *mocks.MockCharacterRepository
	scripts    *mocks.MockScriptRepository
	executions *mocks.MockExecutionRepository
	llmClient  *mocks.MockLLMClient
	svc        *service.GenerationService
}

func newGenerationFixture(t *testing.T) *generationFixture {
	f := &generationFixture{
		users:      mocks.NewMockUserRepository(t),
		profiles:   mocks.NewMockProfileRepository(t),
		prompts:    mocks.NewMockPromptRepository(t),
		projects:   mocks.NewMockProjectRepository(t),
		characters: mocks.NewMockCharacterRepository(t),
		scripts:    mocks.NewMockScriptRepository(t),
		executions: mocks.NewMockExecutionRepository(t),
		llmClient:  mocks.NewMockLLMClient(t),
	}

	logger := zap.NewNop()
	secretBox, err := utils.NewSecretBox(testEncryptionSecret)
	require.NoError(t, err)

	dispatcher := llm.NewDispatcher(logger)
	// Все провайдеры уходят в один мок-клиент: маршрутизацию проверяет
	// отдельный тест диспетчера.
	factory := func(apiKey string) llm.Client { return f.llmClient }
	dispatcher.RegisterFactory(llm.ProviderOpenAI, factory)
	dispatcher.RegisterFactory(llm.ProviderOpenRouter, factory)
	dispatcher.RegisterFactory(llm.ProviderGemini, factory)

	assembler := service.NewContextAssembler(f.projects, f.characters, f.scripts, logger)
	composer := service.NewPromptComposer(f.prompts, logger)
	f.svc = service.NewGenerationService(
		f.users, f.profiles, f.scripts, f.executions,
		assembler, composer, dispatcher, secretBox, logger,
	)
	return f
}

// stubUser настраивает пользователя с зашифрованным OpenAI-ключом.
func (f *generationFixture) stubUser(t *testing.T, userID uuid.UUID) {
	secretBox, err := utils.NewSecretBox(testEncryptionSecret)
	require.NoError(t, err)
	encrypted, err := secretBox.Encrypt("sk-test-openai")
	require.NoError(t, err)

	f.users.On("GetByID", mock.Anything, userID).
		Return(&models.User{ID: userID, OpenAIKey: &encrypted}, nil)
}

// stubDefaults: активного профиля нет (дефолты), GLOBAL-промптов нет.
func (f *generationFixture) stubDefaults(userID uuid.UUID) {
	f.profiles.On("GetActive", mock.Anything, userID).
		Return(nil, models.ErrProfileNotFound)
	f.prompts.On("ListActiveByCategory", mock.Anything, userID, models.CategoryGlobal).
		Return([]*models.Prompt(nil), nil)
}

func TestGenerationService_Generate_Default(t *testing.T) {
	userID := uuid.New()
	f := newGenerationFixture(t)
	f.stubUser(t, userID)
	f.stubDefaults(userID)

	// Ровно один вызов провайдера для неструктурированного типа.
	f.llmClient.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("Once upon a time...", llm.UsageInfo{TotalTokens: 42}, nil).Once()

	var recorded *models.AIExecution
	f.executions.On("Create", mock.Anything, mock.AnythingOfType("*models.AIExecution")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*models.AIExecution)
		}).
		Return(nil)

	resp, err := f.svc.Generate(context.Background(), userID, &models.GenerationRequest{
		UserPrompt: "tell me a story",
	})
	require.NoError(t, err)
	assert.Equal(t, "Once upon a time...", resp.Result)

	require.NotNil(t, recorded)
	assert.Equal(t, userID, recorded.UserID)
	assert.Equal(t, models.DefaultModel, recorded.Model)
	assert.Equal(t, models.DefaultMaxTokens, recorded.Parameters.MaxTokens)
	assert.InDelta(t, 0.8, recorded.Parameters.Temperature, 0.001)
	assert.Equal(t, "tell me a story", recorded.UserPrompt)
	assert.Equal(t, "tell me a story", recorded.FinalPrompt)
	assert.NotEmpty(t, recorded.SystemPromptSnapshot)
	f.llmClient.AssertExpectations(t)
}

func TestGenerationService_Generate_RepairLoop(t *testing.T) {
	userID := uuid.New()
	f := newGenerationFixture(t)
	f.stubUser(t, userID)
	f.stubDefaults(userID)

	// Две невалидные попытки, третья - валидный JSON.
	f.llmClient.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("not json at all", llm.UsageInfo{}, nil).Once()
	f.llmClient.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`{"description":"missing name"}`, llm.UsageInfo{}, nil).Once()
	f.llmClient.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`{"name":"Vera","description":"pilot"}`, llm.UsageInfo{}, nil).Once()

	var recorded *models.AIExecution
	f.executions.On("Create", mock.Anything, mock.AnythingOfType("*models.AIExecution")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*models.AIExecution)
		}).
		Return(nil)

	resp, err := f.svc.Generate(context.Background(), userID, &models.GenerationRequest{
		Type:       models.GenerationTypeCharacterGeneration,
		UserPrompt: "make a pilot character",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Vera","description":"pilot"}`, resp.Result)

	// FinalPrompt накапливает поправки обеих неудачных попыток.
	require.NotNil(t, recorded)
	amendments := strings.Count(recorded.FinalPrompt, "Your previous response failed validation")
	assert.Equal(t, 2, amendments, "final prompt: %q", recorded.FinalPrompt)
	f.llmClient.AssertExpectations(t)
}

func TestGenerationService_Generate_RepairExhausted(t *testing.T) {
	userID := uuid.New()
	f := newGenerationFixture(t)
	f.stubUser(t, userID)
	f.stubDefaults(userID)

	f.llmClient.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("still not json", llm.UsageInfo{}, nil).Times(3)

	_, err := f.svc.Generate(context.Background(), userID, &models.GenerationRequest{
		Type:       models.GenerationTypeCharacterGeneration,
		UserPrompt: "make a character",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")

	// При исчерпании попыток запись аудита не создается.
	f.executions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.llmClient.AssertExpectations(t)
}

func TestGenerationService_Generate_MissingProviderKey(t *testing.T) {
	userID := uuid.New()
	f := newGenerationFixture(t)
	f.stubDefaults(userID)

	// Пользователь без единого ключа.
	f.users.On("GetByID", mock.Anything, userID).
		Return(&models.User{ID: userID}, nil)

	_, err := f.svc.Generate(context.Background(), userID, &models.GenerationRequest{
		UserPrompt: "anything",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrProviderKeyMissing)
	f.executions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerationService_Generate_WizardScriptPersistsScript(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()
	f := newGenerationFixture(t)
	f.stubUser(t, userID)
	f.stubDefaults(userID)

	f.projects.On("GetByID", mock.Anything, userID, projectID).
		Return(&models.Project{ID: projectID, Title: "Mars"}, nil)
	f.characters.On("ListByProject", mock.Anything, userID, projectID).
		Return([]*models.Character(nil), nil)

	f.llmClient.On("GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`{"title":"Act I","content":"FADE IN..."}`, llm.UsageInfo{}, nil).Once()

	scriptID := uuid.New()
	f.scripts.On("Create", mock.Anything, mock.AnythingOfType("*models.Script")).
		Run(func(args mock.Arguments) {
			script := args.Get(1).(*models.Script)
			script.ID = scriptID
			assert.Equal(t, "Act I", script.Title)
			assert.Equal(t, "generated", script.Type)
			assert.Equal(t, "FADE IN...", script.Content)
			require.NotNil(t, script.ProjectID)
			assert.Equal(t, projectID, *script.ProjectID)
		}).
		Return(nil)

	var recorded *models.AIExecution
	f.executions.On("Create", mock.Anything, mock.AnythingOfType("*models.AIExecution")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*models.AIExecution)
		}).
		Return(nil)

	resp, err := f.svc.Generate(context.Background(), userID, &models.GenerationRequest{
		Type:       models.GenerationTypeWizardScript,
		ProjectID:  &projectID,
		UserPrompt: "write the first act",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Act I","content":"FADE IN..."}`, resp.Result)

	// Аудит ссылается на только что созданный сценарий.
	require.NotNil(t, recorded)
	require.NotNil(t, recorded.ScriptID)
	assert.Equal(t, scriptID, *recorded.ScriptID)
}
