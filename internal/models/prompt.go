package models

import (
	"time"

	"github.com/google/uuid"
)

// PromptRole определяет роль шаблона внутри собранного запроса.
type PromptRole string

const (
	PromptRoleSystem    PromptRole = "system"    // добавляется к системному промпту
	PromptRoleTask      PromptRole = "task"      // добавляется к пользовательскому промпту
	PromptRoleAuxiliary PromptRole = "auxiliary" // добавляется к пользовательскому промпту
)

// CategoryGlobal - сентинельная категория: активные промпты этой категории
// внедряются в начало КАЖДОГО системного промпта владельца.
const CategoryGlobal = "GLOBAL"

// Prompt - переиспользуемый шаблон промпта.
// Version монотонно увеличивается при каждом изменении Content.
type Prompt struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"-"`
	Name      string     `db:"name" json:"name"`
	Category  string     `db:"category" json:"category"`
	Type      PromptRole `db:"type" json:"type"`
	Content   string     `db:"content" json:"content"`
	Active    bool       `db:"active" json:"active"`
	Version   int        `db:"version" json:"version"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}
