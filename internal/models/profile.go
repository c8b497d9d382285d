package models

import (
	"time"

	"github.com/google/uuid"
)

// Значения по умолчанию, используемые генерацией, когда у пользователя
// нет активного профиля.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxTokens   = 2048
	DefaultTemperature = "0.8"
)

// CreativeProfile - именованный набор настроек генерации.
// Инвариант: у пользователя не более одного профиля с Active = true.
type CreativeProfile struct {
	ID             uuid.UUID `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"-"`
	Name           string    `db:"name" json:"name"`
	Model          string    `db:"model" json:"model"`
	Temperature    string    `db:"temperature" json:"temperature"` // десятичная строка, домен [0,2]
	MaxTokens      int       `db:"max_tokens" json:"maxTokens"`
	NarrativeStyle string    `db:"narrative_style" json:"narrativeStyle,omitempty"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultProfile возвращает профиль с жесткими дефолтами генерации.
func DefaultProfile() *CreativeProfile {
	return &CreativeProfile{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}
