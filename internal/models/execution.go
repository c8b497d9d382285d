package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationType определяет тип запроса к AI генератору.
type GenerationType string

const (
	GenerationTypeDefault             GenerationType = "default"
	GenerationTypeWizardIdea          GenerationType = "wizard-idea"
	GenerationTypeWizardScript        GenerationType = "wizard-script"
	GenerationTypeCharacterGeneration GenerationType = "character-generation"
	GenerationTypeScriptAdjustment    GenerationType = "script-adjustment"
)

// IsStructured сообщает, требует ли тип машинно-разбираемый JSON-ответ.
// Для таких типов работает цикл валидации/починки с потолком попыток.
func (t GenerationType) IsStructured() bool {
	return t == GenerationTypeCharacterGeneration || t == GenerationTypeWizardScript
}

// GenerationParameters - параметры вызова модели, сохраняемые в аудите.
type GenerationParameters struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

// AIExecution - неизменяемая запись аудита одного вызова генерации.
// Создается ровно одна запись на вызов независимо от числа внутренних
// попыток; FinalPrompt отражает накопленную историю починок.
type AIExecution struct {
	ID                   uuid.UUID            `db:"id" json:"id"`
	UserID               uuid.UUID            `db:"user_id" json:"-"`
	PromptID             *uuid.UUID           `db:"prompt_id" json:"promptId,omitempty"`
	PromptIDs            []uuid.UUID          `db:"prompt_ids" json:"promptIds,omitempty"`
	ProjectID            *uuid.UUID           `db:"project_id" json:"projectId,omitempty"`
	CharacterID          *uuid.UUID           `db:"character_id" json:"characterId,omitempty"`
	ScriptID             *uuid.UUID           `db:"script_id" json:"scriptId,omitempty"`
	SystemPromptSnapshot string               `db:"system_prompt_snapshot" json:"systemPromptSnapshot"`
	UserPrompt           string               `db:"user_prompt" json:"userPrompt"`
	FinalPrompt          string               `db:"final_prompt" json:"finalPrompt"`
	Model                string               `db:"model" json:"model"`
	Parameters           GenerationParameters `db:"parameters" json:"parameters"`
	Result               string               `db:"result" json:"result"`
	CreatedAt            time.Time            `db:"created_at" json:"createdAt"`
}

// GenerationRequest - входной контракт генерации (см. handler).
type GenerationRequest struct {
	Type        GenerationType `json:"type"`
	UserPrompt  string         `json:"userPrompt" binding:"required"`
	ProjectID   *uuid.UUID     `json:"projectId,omitempty"`
	CharacterID *uuid.UUID     `json:"characterId,omitempty"`
	ScriptID    *uuid.UUID     `json:"scriptId,omitempty"`
	PromptID    *uuid.UUID     `json:"promptId,omitempty"`
	PromptIDs   []uuid.UUID    `json:"promptIds,omitempty"`
}

// GenerationResponse - результат генерации, возвращаемый наружу.
type GenerationResponse struct {
	Execution *AIExecution `json:"execution"`
	Result    string       `json:"result"`
}
