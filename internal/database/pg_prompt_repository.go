package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"writer-server/internal/models"
)

const promptFields = `id, user_id, name, category, type, content, active, version, created_at, updated_at`

// PgPromptRepository - репозиторий шаблонов промптов на PostgreSQL.
type PgPromptRepository struct {
	db *pgxpool.Pool
}

func NewPgPromptRepository(db *pgxpool.Pool) *PgPromptRepository {
	if db == nil {
		log.Fatal().Msg("Database pool is nil for PgPromptRepository")
	}
	return &PgPromptRepository{db: db}
}

func (r *PgPromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	query := `
		INSERT INTO prompts (user_id, name, category, type, content, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		prompt.UserID, prompt.Name, prompt.Category, prompt.Type, prompt.Content, prompt.Active,
	).Scan(&prompt.ID, &prompt.Version, &prompt.CreatedAt, &prompt.UpdatedAt)
	if err != nil {
		log.Error().Err(err).Str("name", prompt.Name).Msg("Failed to create prompt")
		return fmt.Errorf("failed to create prompt: %w", err)
	}
	log.Info().Str("promptID", prompt.ID.String()).Str("name", prompt.Name).Msg("Prompt created")
	return nil
}

func (r *PgPromptRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Prompt, error) {
	query := fmt.Sprintf(`SELECT %s FROM prompts WHERE id = $1 AND user_id = $2`, promptFields)
	var prompt models.Prompt
	err := pgxscan.Get(ctx, r.db, &prompt, query, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPromptNotFound
		}
		log.Error().Err(err).Str("promptID", id.String()).Msg("Failed to get prompt")
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	return &prompt, nil
}

// ListByIDs возвращает найденные промпты, сохраняя порядок переданных id.
// Отсутствующие id молча пропускаются (политика мягкой деградации генерации).
func (r *PgPromptRepository) ListByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*models.Prompt, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM prompts WHERE user_id = $1 AND id = ANY($2)`, promptFields)
	var prompts []*models.Prompt
	if err := pgxscan.Select(ctx, r.db, &prompts, query, userID, ids); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to list prompts by ids")
		return nil, fmt.Errorf("failed to list prompts by ids: %w", err)
	}

	byID := make(map[uuid.UUID]*models.Prompt, len(prompts))
	for _, p := range prompts {
		byID[p.ID] = p
	}
	ordered := make([]*models.Prompt, 0, len(prompts))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (r *PgPromptRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Prompt, error) {
	query := fmt.Sprintf(`SELECT %s FROM prompts WHERE user_id = $1 ORDER BY created_at`, promptFields)
	var prompts []*models.Prompt
	if err := pgxscan.Select(ctx, r.db, &prompts, query, userID); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to list prompts")
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	return prompts, nil
}

func (r *PgPromptRepository) ListActiveByCategory(ctx context.Context, userID uuid.UUID, category string) ([]*models.Prompt, error) {
	query := fmt.Sprintf(`SELECT %s FROM prompts WHERE user_id = $1 AND category = $2 AND active ORDER BY created_at`, promptFields)
	var prompts []*models.Prompt
	if err := pgxscan.Select(ctx, r.db, &prompts, query, userID, category); err != nil {
		log.Error().Err(err).Str("category", category).Msg("Failed to list active prompts by category")
		return nil, fmt.Errorf("failed to list active prompts by category: %w", err)
	}
	return prompts, nil
}

// Update сохраняет промпт. version инкрементируется только если content изменился.
func (r *PgPromptRepository) Update(ctx context.Context, prompt *models.Prompt) error {
	query := `
		UPDATE prompts SET
			name = $1, category = $2, type = $3, active = $4,
			version = CASE WHEN content IS DISTINCT FROM $5 THEN version + 1 ELSE version END,
			content = $5,
			updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING version, updated_at`
	err := r.db.QueryRow(ctx, query,
		prompt.Name, prompt.Category, prompt.Type, prompt.Active, prompt.Content,
		prompt.ID, prompt.UserID,
	).Scan(&prompt.Version, &prompt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrPromptNotFound
		}
		log.Error().Err(err).Str("promptID", prompt.ID.String()).Msg("Failed to update prompt")
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	log.Info().Str("promptID", prompt.ID.String()).Int("version", prompt.Version).Msg("Prompt updated")
	return nil
}

func (r *PgPromptRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	commandTag, err := r.db.Exec(ctx, `DELETE FROM prompts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error().Err(err).Str("promptID", id.String()).Msg("Failed to delete prompt")
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrPromptNotFound
	}
	return nil
}
