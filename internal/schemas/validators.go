package schemas

import (
	"encoding/json"
	"fmt"

	"writer-server/internal/models"
)

// CharacterPayload - структурированный ответ типа character-generation.
// Требуется name; остальные поля опциональны и допускают null.
type CharacterPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Personality *string `json:"personality,omitempty"`
	Background  *string `json:"background,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ScriptPayload - структурированный ответ типа wizard-script.
// Требуются title и content; analysis опционален.
type ScriptPayload struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Analysis *string `json:"analysis,omitempty"`
}

// ValidateCharacter разбирает и валидирует JSON character-generation.
// Возвращает полезную нагрузку и каноническую пересериализацию.
func ValidateCharacter(data string) (*CharacterPayload, string, error) {
	var payload CharacterPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, "", fmt.Errorf("invalid JSON: %w", err)
	}
	if payload.Name == "" {
		return nil, "", fmt.Errorf("missing required field %q", "name")
	}
	canonical, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to re-serialize payload: %w", err)
	}
	return &payload, string(canonical), nil
}

// ValidateScript разбирает и валидирует JSON wizard-script.
func ValidateScript(data string) (*ScriptPayload, string, error) {
	var payload ScriptPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, "", fmt.Errorf("invalid JSON: %w", err)
	}
	if payload.Title == "" {
		return nil, "", fmt.Errorf("missing required field %q", "title")
	}
	if payload.Content == "" {
		return nil, "", fmt.Errorf("missing required field %q", "content")
	}
	canonical, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to re-serialize payload: %w", err)
	}
	return &payload, string(canonical), nil
}

// ValidateStructured извлекает JSON из сырого ответа и прогоняет валидатор,
// соответствующий типу генерации. Возвращает каноническую JSON-строку.
func ValidateStructured(genType models.GenerationType, raw string) (string, error) {
	extracted, err := ExtractJSONObject(raw)
	if err != nil {
		return "", err
	}
	switch genType {
	case models.GenerationTypeCharacterGeneration:
		_, canonical, err := ValidateCharacter(extracted)
		return canonical, err
	case models.GenerationTypeWizardScript:
		_, canonical, err := ValidateScript(extracted)
		return canonical, err
	default:
		return "", fmt.Errorf("generation type %q has no structured schema", genType)
	}
}
