package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"writer-server/internal/interfaces"
	"writer-server/internal/llm"
	"writer-server/internal/models"
	"writer-server/internal/schemas"
	"writer-server/internal/utils"
)

// Потолок попыток цикла валидации/починки для структурированных типов.
// Остальные типы делают ровно один вызов провайдера.
const structuredMaxAttempts = 3

// GenerationService - оркестратор пайплайна генерации: сборка контекста,
// композиция промптов, диспетчеризация к провайдеру, цикл починки
// структурированного вывода и запись аудита.
type GenerationService struct {
	users      interfaces.UserRepository
	profiles   interfaces.ProfileRepository
	scripts    interfaces.ScriptRepository
	executions interfaces.ExecutionRepository
	assembler  *ContextAssembler
	composer   *PromptComposer
	dispatcher *llm.Dispatcher
	secretBox  *utils.SecretBox
	logger     *zap.Logger
}

// NewGenerationService создает сервис генерации.
func NewGenerationService(
	users interfaces.UserRepository,
	profiles interfaces.ProfileRepository,
	scripts interfaces.ScriptRepository,
	executions interfaces.ExecutionRepository,
	assembler *ContextAssembler,
	composer *PromptComposer,
	dispatcher *llm.Dispatcher,
	secretBox *utils.SecretBox,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		users:      users,
		profiles:   profiles,
		scripts:    scripts,
		executions: executions,
		assembler:  assembler,
		composer:   composer,
		dispatcher: dispatcher,
		secretBox:  secretBox,
		logger:     logger.Named("GenerationService"),
	}
}

// Generate выполняет один запрос генерации и возвращает результат вместе
// с записью аудита. Ровно одна запись AIExecution на вызов; при ошибке
// запись не создается вовсе.
func (s *GenerationService) Generate(ctx context.Context, userID uuid.UUID, req *models.GenerationRequest) (*models.GenerationResponse, error) {
	genType := req.Type
	if genType == "" {
		genType = models.GenerationTypeDefault
	}

	// --- Этап 1: активный профиль (или жесткие дефолты) ---
	profile, err := s.profiles.GetActive(ctx, userID)
	if err != nil {
		if !errors.Is(err, models.ErrProfileNotFound) {
			return nil, fmt.Errorf("failed to load active profile: %w", err)
		}
		profile = models.DefaultProfile()
	}
	temperature := parseTemperature(profile.Temperature)

	// --- Этап 2: сборка контекста из ссылок ---
	fragments, err := s.assembler.Assemble(ctx, userID, ContextRefs{
		ProjectID:   req.ProjectID,
		CharacterID: req.CharacterID,
		ScriptID:    req.ScriptID,
	})
	if err != nil {
		return nil, err
	}

	// --- Этап 3: композиция системного и пользовательского промптов ---
	composed, err := s.composer.Compose(ctx, userID, genType, profile, req.PromptID, req.PromptIDs, fragments, req.UserPrompt)
	if err != nil {
		return nil, err
	}

	// --- Этап 4: расшифровка ключей провайдеров ---
	keys, err := s.resolveProviderKeys(ctx, userID)
	if err != nil {
		return nil, err
	}

	params := llm.Params{
		Model:       profile.Model,
		Temperature: temperature,
		MaxTokens:   profile.MaxTokens,
		JSONMode:    genType.IsStructured(),
	}

	// --- Этап 5: диспетчеризация с циклом починки ---
	// После первого вызова провайдера отмена вызывающей стороной не
	// прерывает обработку: запрос доходит до конца и пишет аудит.
	callCtx := context.WithoutCancel(ctx)

	maxAttempts := 1
	if genType.IsStructured() {
		maxAttempts = structuredMaxAttempts
	}

	finalPrompt := composed.UserPrompt
	var result string
	var lastValidationErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, _, err := s.dispatcher.Generate(callCtx, keys, composed.SystemPrompt, finalPrompt, params)
		if err != nil {
			// Транспортные и конфигурационные ошибки не ретраятся на этом слое
			return nil, err
		}

		if !genType.IsStructured() {
			result = raw
			break
		}

		canonical, verr := schemas.ValidateStructured(genType, raw)
		if verr == nil {
			result = canonical
			lastValidationErr = nil
			break
		}
		lastValidationErr = verr
		s.logger.Warn("Structured output validation failed",
			zap.String("type", string(genType)),
			zap.Int("attempt", attempt),
			zap.Error(verr),
		)
		if attempt < maxAttempts {
			finalPrompt += fmt.Sprintf("\n\nYour previous response failed validation: %s. Return only the corrected JSON.", verr)
		}
	}
	if lastValidationErr != nil {
		return nil, fmt.Errorf("structured output validation failed after %d attempts: %w", maxAttempts, lastValidationErr)
	}

	// --- Этап 6: побочный эффект wizard-script - новая запись сценария ---
	scriptID := req.ScriptID
	if genType == models.GenerationTypeWizardScript {
		payload, _, err := schemas.ValidateScript(result)
		if err == nil {
			script := &models.Script{
				UserID:    userID,
				ProjectID: req.ProjectID,
				Title:     payload.Title,
				Type:      "generated",
				Content:   payload.Content,
			}
			if err := s.scripts.Create(callCtx, script); err != nil {
				return nil, fmt.Errorf("failed to persist generated script: %w", err)
			}
			scriptID = &script.ID
		}
	}

	// --- Этап 7: запись аудита ---
	execution := &models.AIExecution{
		UserID:               userID,
		PromptID:             composed.PromptID,
		PromptIDs:            req.PromptIDs,
		ProjectID:            req.ProjectID,
		CharacterID:          req.CharacterID,
		ScriptID:             scriptID,
		SystemPromptSnapshot: composed.SystemPrompt,
		UserPrompt:           req.UserPrompt,
		FinalPrompt:          finalPrompt,
		Model:                profile.Model,
		Parameters: models.GenerationParameters{
			Model:       profile.Model,
			Temperature: temperature,
			MaxTokens:   profile.MaxTokens,
		},
		Result: result,
	}
	if err := s.executions.Create(callCtx, execution); err != nil {
		return nil, fmt.Errorf("failed to record execution: %w", err)
	}

	return &models.GenerationResponse{Execution: execution, Result: result}, nil
}

// resolveProviderKeys загружает пользователя и расшифровывает его ключи.
// Некорректный шифротекст трактуется как "ключ не настроен".
func (s *GenerationService) resolveProviderKeys(ctx context.Context, userID uuid.UUID) (llm.Keys, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return llm.Keys{}, fmt.Errorf("failed to load user: %w", err)
	}

	decrypt := func(encrypted *string, provider string) string {
		if encrypted == nil || *encrypted == "" {
			return ""
		}
		plaintext, err := s.secretBox.Decrypt(*encrypted)
		if err != nil {
			s.logger.Warn("Failed to decrypt provider key, treating as not configured",
				zap.String("provider", provider), zap.Error(err))
			return ""
		}
		return plaintext
	}

	return llm.Keys{
		OpenAI:     decrypt(user.OpenAIKey, "openai"),
		Gemini:     decrypt(user.GeminiKey, "gemini"),
		OpenRouter: decrypt(user.OpenRouterKey, "openrouter"),
	}, nil
}

// parseTemperature разбирает десятичную строку температуры и ограничивает
// ее доменом [0,2]. Неразборчивое значение откатывается к дефолту.
func parseTemperature(raw string) float64 {
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		t, _ = strconv.ParseFloat(models.DefaultTemperature, 64)
		return t
	}
	if t < 0 {
		return 0
	}
	if t > 2 {
		return 2
	}
	return t
}
