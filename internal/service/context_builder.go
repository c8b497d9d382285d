package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"writer-server/internal/interfaces"
	"writer-server/internal/models"
)

// Жесткое усечение контента сценария в контексте.
const scriptContextLimit = 2000

// ContextRefs - опциональные ссылки на сущности-источники контекста.
type ContextRefs struct {
	ProjectID   *uuid.UUID
	CharacterID *uuid.UUID
	ScriptID    *uuid.UUID
}

// ContextAssembler собирает текстовый блок контекста из сущностей пользователя.
// Ненайденные ссылки молча пропускаются: генерация продолжается с частичным
// контекстом, в отличие от строгого 404 в CRUD-слое.
type ContextAssembler struct {
	projects   interfaces.ProjectRepository
	characters interfaces.CharacterRepository
	scripts    interfaces.ScriptRepository
	logger     *zap.Logger
}

// NewContextAssembler создает сборщик контекста.
func NewContextAssembler(
	projects interfaces.ProjectRepository,
	characters interfaces.CharacterRepository,
	scripts interfaces.ScriptRepository,
	logger *zap.Logger,
) *ContextAssembler {
	return &ContextAssembler{
		projects:   projects,
		characters: characters,
		scripts:    scripts,
		logger:     logger.Named("ContextAssembler"),
	}
}

// Assemble возвращает упорядоченный список фрагментов контекста.
// Порядок фиксированный: проект, персонаж, сценарий - независимо от того,
// в каком порядке ссылки пришли в запросе. Чтения независимы и выполняются
// конкурентно.
func (a *ContextAssembler) Assemble(ctx context.Context, userID uuid.UUID, refs ContextRefs) ([]string, error) {
	var (
		project   *models.Project
		projChars []*models.Character
		character *models.Character
		script    *models.Script
	)

	g, gctx := errgroup.WithContext(ctx)

	if refs.ProjectID != nil {
		g.Go(func() error {
			p, err := a.projects.GetByID(gctx, userID, *refs.ProjectID)
			if err != nil {
				if errors.Is(err, models.ErrProjectNotFound) {
					a.logger.Debug("Referenced project not found, skipping", zap.String("projectID", refs.ProjectID.String()))
					return nil
				}
				return err
			}
			project = p
			chars, err := a.characters.ListByProject(gctx, userID, p.ID)
			if err != nil {
				return err
			}
			projChars = chars
			return nil
		})
	}
	if refs.CharacterID != nil {
		g.Go(func() error {
			c, err := a.characters.GetByID(gctx, userID, *refs.CharacterID)
			if err != nil {
				if errors.Is(err, models.ErrCharacterNotFound) {
					a.logger.Debug("Referenced character not found, skipping", zap.String("characterID", refs.CharacterID.String()))
					return nil
				}
				return err
			}
			character = c
			return nil
		})
	}
	if refs.ScriptID != nil {
		g.Go(func() error {
			s, err := a.scripts.GetByID(gctx, userID, *refs.ScriptID)
			if err != nil {
				if errors.Is(err, models.ErrScriptNotFound) {
					a.logger.Debug("Referenced script not found, skipping", zap.String("scriptID", refs.ScriptID.String()))
					return nil
				}
				return err
			}
			script = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to gather context entities: %w", err)
	}

	var fragments []string
	if project != nil {
		fragments = append(fragments, projectFragments(project, projChars)...)
	}
	if character != nil {
		fragments = append(fragments, characterFragments(character)...)
	}
	if script != nil {
		fragments = append(fragments, scriptFragments(script)...)
	}
	return fragments, nil
}

func projectFragments(p *models.Project, chars []*models.Character) []string {
	fragments := []string{fmt.Sprintf("Project: %q", p.Title)}
	if p.Premise != "" {
		fragments = append(fragments, "Premise: "+p.Premise)
	}
	if p.Tone != "" {
		fragments = append(fragments, "Tone/Genre: "+p.Tone)
	}
	if len(chars) > 0 {
		entries := make([]string, 0, len(chars))
		for _, c := range chars {
			trait := c.Personality
			if trait == "" {
				trait = c.Description
			}
			entries = append(entries, c.Name+" - "+trait)
		}
		fragments = append(fragments, "Characters: "+strings.Join(entries, "; "))
	}
	return fragments
}

func characterFragments(c *models.Character) []string {
	fragments := []string{"Character: " + c.Name}
	if c.Description != "" {
		fragments = append(fragments, "Description: "+c.Description)
	}
	if c.Personality != "" {
		fragments = append(fragments, "Personality: "+c.Personality)
	}
	if c.Background != "" {
		fragments = append(fragments, "Background: "+c.Background)
	}
	return fragments
}

func scriptFragments(s *models.Script) []string {
	header := "Script: " + s.Title
	if s.Type != "" {
		header += " (" + s.Type + ")"
	}
	fragments := []string{header}
	if s.Content != "" {
		content := s.Content
		if len(content) > scriptContextLimit {
			// Срез не должен резать многобайтовую руну посередине.
			cut := scriptContextLimit
			for cut > 0 && !utf8.RuneStart(content[cut]) {
				cut--
			}
			content = content[:cut]
		}
		fragments = append(fragments, "Content: "+content)
	}
	return fragments
}
