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

const scriptFields = `id, user_id, project_id, title, type, content, created_at, updated_at`

// PgScriptRepository - репозиторий сценариев на PostgreSQL.
type PgScriptRepository struct {
	db *pgxpool.Pool
}

func NewPgScriptRepository(db *pgxpool.Pool) *PgScriptRepository {
	if db == nil {
		log.Fatal().Msg("Database pool is nil for PgScriptRepository")
	}
	return &PgScriptRepository{db: db}
}

func (r *PgScriptRepository) Create(ctx context.Context, script *models.Script) error {
	query := `
		INSERT INTO scripts (user_id, project_id, title, type, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		script.UserID, script.ProjectID, script.Title, script.Type, script.Content,
	).Scan(&script.ID, &script.CreatedAt, &script.UpdatedAt)
	if err != nil {
		log.Error().Err(err).Str("title", script.Title).Msg("Failed to create script")
		return fmt.Errorf("failed to create script: %w", err)
	}
	log.Info().Str("scriptID", script.ID.String()).Msg("Script created")
	return nil
}

func (r *PgScriptRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Script, error) {
	query := fmt.Sprintf(`SELECT %s FROM scripts WHERE id = $1 AND user_id = $2`, scriptFields)
	var script models.Script
	err := pgxscan.Get(ctx, r.db, &script, query, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrScriptNotFound
		}
		log.Error().Err(err).Str("scriptID", id.String()).Msg("Failed to get script")
		return nil, fmt.Errorf("failed to get script: %w", err)
	}
	return &script, nil
}

func (r *PgScriptRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Script, error) {
	query := fmt.Sprintf(`SELECT %s FROM scripts WHERE user_id = $1 ORDER BY created_at DESC`, scriptFields)
	var scripts []*models.Script
	if err := pgxscan.Select(ctx, r.db, &scripts, query, userID); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to list scripts")
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}
	return scripts, nil
}

func (r *PgScriptRepository) Update(ctx context.Context, script *models.Script) error {
	query := `
		UPDATE scripts SET project_id = $1, title = $2, type = $3, content = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		script.ProjectID, script.Title, script.Type, script.Content, script.ID, script.UserID,
	).Scan(&script.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrScriptNotFound
		}
		log.Error().Err(err).Str("scriptID", script.ID.String()).Msg("Failed to update script")
		return fmt.Errorf("failed to update script: %w", err)
	}
	return nil
}

func (r *PgScriptRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	commandTag, err := r.db.Exec(ctx, `DELETE FROM scripts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error().Err(err).Str("scriptID", id.String()).Msg("Failed to delete script")
		return fmt.Errorf("failed to delete script: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrScriptNotFound
	}
	return nil
}
