package models

import (
	"time"

	"github.com/google/uuid"
)

// User представляет пользователя системы.
// Ключи провайдеров хранятся в зашифрованном виде (см. utils.SecretBox)
// и никогда не отдаются наружу в открытом виде.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ExternalAuthID string    `db:"external_auth_id" json:"-"` // ID из внешнего провайдера аутентификации
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	OpenAIKey      *string   `db:"openai_key" json:"-"`
	GeminiKey      *string   `db:"gemini_key" json:"-"`
	OpenRouterKey  *string   `db:"openrouter_key" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// ProviderKeyStatus отражает наличие ключей провайдеров без раскрытия значений.
type ProviderKeyStatus struct {
	OpenAI     bool `json:"openai"`
	Gemini     bool `json:"gemini"`
	OpenRouter bool `json:"openrouter"`
}

// KeyStatus возвращает флаги наличия ключей для ответа API.
func (u *User) KeyStatus() ProviderKeyStatus {
	has := func(s *string) bool { return s != nil && *s != "" }
	return ProviderKeyStatus{
		OpenAI:     has(u.OpenAIKey),
		Gemini:     has(u.GeminiKey),
		OpenRouter: has(u.OpenRouterKey),
	}
}
