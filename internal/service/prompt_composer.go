package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"writer-server/internal/interfaces"
	"writer-server/internal/models"
)

// Базовые системные промпты по типам генерации. Нераспознанный тип получает
// generic-строку ассистента.
var baseSystemPrompts = map[models.GenerationType]string{
	models.GenerationTypeWizardIdea: "You are a story development assistant. Expand the user's seed idea into a compelling premise: suggest a hook, central conflict, stakes and a possible direction for the story. Answer in flowing prose, not lists, unless asked otherwise.",
	models.GenerationTypeWizardScript: "You are a professional screenwriter. Produce a complete script draft from the user's request and the provided context. " +
		"Respond with a single JSON object with fields: \"title\" (string, required), \"content\" (string, required, the full script text), \"analysis\" (string, optional notes on structure).",
	models.GenerationTypeCharacterGeneration: "You are a character designer for fiction. Invent a coherent character matching the request and the provided context. " +
		"Respond with a single JSON object with fields: \"name\" (string, required), \"description\", \"personality\", \"background\", \"notes\" (strings, optional, may be null).",
	models.GenerationTypeScriptAdjustment: "You are a script editor. Rework the provided script according to the user's instructions while preserving its voice, formatting and continuity. Return the revised text only, without commentary.",
}

const genericSystemPrompt = "You are a skilled creative writing assistant. Help the user develop their stories, characters and scripts with vivid, coherent prose."

// jsonOnlyInstruction дописывается к пользовательскому промпту структурированных
// типов: одиночный валидный JSON-объект, без markdown-ограждений и болтовни.
const jsonOnlyInstruction = "Respond with a single valid JSON object only. Do not wrap it in markdown code fences and do not add any conversational text before or after it."

const promptDelimiter = "\n---\n"

// ComposedPrompts - результат сборки: системный и пользовательский промпты.
type ComposedPrompts struct {
	SystemPrompt string
	UserPrompt   string
	// PromptID - каноническая ссылка для аудита, если путь promptId дал
	// ровно одну запись.
	PromptID *uuid.UUID
}

// PromptComposer строит системную инструкцию и финальный пользовательский
// промпт из типа генерации, активного профиля и шаблонов промптов.
type PromptComposer struct {
	prompts interfaces.PromptRepository
	logger  *zap.Logger
}

// NewPromptComposer создает композитор промптов.
func NewPromptComposer(prompts interfaces.PromptRepository, logger *zap.Logger) *PromptComposer {
	return &PromptComposer{
		prompts: prompts,
		logger:  logger.Named("PromptComposer"),
	}
}

// Compose собирает промпты. Слои системного промпта по старшинству:
// GLOBAL-промпты (выше всех, через разделитель), базовая строка типа,
// стиль активного профиля, одиночный promptId, system-промпты из promptIds.
// Промпты не-system типов из promptIds уходят отдельным блоком
// "Additional Instructions" в пользовательский промпт.
func (c *PromptComposer) Compose(
	ctx context.Context,
	userID uuid.UUID,
	genType models.GenerationType,
	profile *models.CreativeProfile,
	promptID *uuid.UUID,
	promptIDs []uuid.UUID,
	contextFragments []string,
	userPrompt string,
) (*ComposedPrompts, error) {
	base, ok := baseSystemPrompts[genType]
	if !ok {
		base = genericSystemPrompt
	}
	systemPrompt := base

	// Стиль повествования не применяется к структурированным типам:
	// там формат ответа диктует схема.
	if profile != nil && profile.NarrativeStyle != "" && !genType.IsStructured() {
		systemPrompt += fmt.Sprintf(" Write in the following narrative style: %s.", profile.NarrativeStyle)
	}

	result := &ComposedPrompts{}

	if promptID != nil {
		prompt, err := c.prompts.GetByID(ctx, userID, *promptID)
		if err != nil {
			if !errors.Is(err, models.ErrPromptNotFound) {
				return nil, fmt.Errorf("failed to resolve prompt %s: %w", promptID, err)
			}
			c.logger.Debug("Referenced prompt not found, skipping", zap.String("promptID", promptID.String()))
		} else {
			systemPrompt += "\n\n" + prompt.Content
			result.PromptID = &prompt.ID
		}
	}

	var additionalInstructions string
	if len(promptIDs) > 0 {
		prompts, err := c.prompts.ListByIDs(ctx, userID, promptIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve prompt list: %w", err)
		}
		var systemParts, userParts []string
		for _, p := range prompts {
			if p.Type == models.PromptRoleSystem {
				systemParts = append(systemParts, p.Content)
			} else {
				userParts = append(userParts, fmt.Sprintf("[Prompt: %s (%s)]:\n%s", p.Name, p.Type, p.Content))
			}
		}
		if len(systemParts) > 0 {
			systemPrompt += promptDelimiter + strings.Join(systemParts, promptDelimiter)
		}
		if len(userParts) > 0 {
			additionalInstructions = strings.Join(userParts, "\n\n")
		}
	}

	// GLOBAL-промпты - слой наивысшего приоритета, идут префиксом.
	globals, err := c.prompts.ListActiveByCategory(ctx, userID, models.CategoryGlobal)
	if err != nil {
		return nil, fmt.Errorf("failed to load global prompts: %w", err)
	}
	if len(globals) > 0 {
		parts := make([]string, 0, len(globals)+1)
		for _, g := range globals {
			parts = append(parts, g.Content)
		}
		parts = append(parts, systemPrompt)
		systemPrompt = strings.Join(parts, promptDelimiter)
	}

	result.SystemPrompt = systemPrompt
	result.UserPrompt = buildUserPrompt(contextFragments, userPrompt, additionalInstructions, genType)
	return result, nil
}

// buildUserPrompt собирает финальный пользовательский промпт: блок контекста
// (если есть фрагменты), сам запрос, дополнительные инструкции и, для
// структурированных типов, требование JSON-ответа.
func buildUserPrompt(fragments []string, userPrompt, additionalInstructions string, genType models.GenerationType) string {
	var sb strings.Builder
	if len(fragments) > 0 {
		sb.WriteString("Contexto:\n")
		sb.WriteString(strings.Join(fragments, "\n"))
		sb.WriteString("\n\n")
	}
	sb.WriteString(userPrompt)
	if additionalInstructions != "" {
		sb.WriteString("\n\nAdditional Instructions:\n")
		sb.WriteString(additionalInstructions)
	}
	if genType.IsStructured() {
		sb.WriteString("\n\n")
		sb.WriteString(jsonOnlyInstruction)
	}
	return sb.String()
}
