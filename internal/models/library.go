package models

import (
	"time"

	"github.com/google/uuid"
)

// Project - творческий проект пользователя, источник контекста для генерации.
type Project struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"-"`
	Title     string    `db:"title" json:"title"`
	Premise   string    `db:"premise" json:"premise,omitempty"`
	Tone      string    `db:"tone" json:"tone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Character - персонаж. Может быть привязан к проекту.
type Character struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	UserID      uuid.UUID  `db:"user_id" json:"-"`
	ProjectID   *uuid.UUID `db:"project_id" json:"projectId,omitempty"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description,omitempty"`
	Personality string     `db:"personality" json:"personality,omitempty"`
	Background  string     `db:"background" json:"background,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// Script - сценарий/текст. Пишется генерацией типа wizard-script.
type Script struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"-"`
	ProjectID *uuid.UUID `db:"project_id" json:"projectId,omitempty"`
	Title     string     `db:"title" json:"title"`
	Type      string     `db:"type" json:"type,omitempty"`
	Content   string     `db:"content" json:"content,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}
