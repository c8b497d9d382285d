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

const projectFields = `id, user_id, title, premise, tone, created_at, updated_at`

// PgProjectRepository - репозиторий проектов на PostgreSQL.
type PgProjectRepository struct {
	db *pgxpool.Pool
}

func NewPgProjectRepository(db *pgxpool.Pool) *PgProjectRepository {
	if db == nil {
		log.Fatal().Msg("Database pool is nil for PgProjectRepository")
	}
	return &PgProjectRepository{db: db}
}

func (r *PgProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (user_id, title, premise, tone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, project.UserID, project.Title, project.Premise, project.Tone).
		Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		log.Error().Err(err).Str("title", project.Title).Msg("Failed to create project")
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *PgProjectRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1 AND user_id = $2`, projectFields)
	var project models.Project
	err := pgxscan.Get(ctx, r.db, &project, query, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProjectNotFound
		}
		log.Error().Err(err).Str("projectID", id.String()).Msg("Failed to get project")
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

func (r *PgProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE user_id = $1 ORDER BY created_at DESC`, projectFields)
	var projects []*models.Project
	if err := pgxscan.Select(ctx, r.db, &projects, query, userID); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (r *PgProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects SET title = $1, premise = $2, tone = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, project.Title, project.Premise, project.Tone, project.ID, project.UserID).
		Scan(&project.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrProjectNotFound
		}
		log.Error().Err(err).Str("projectID", project.ID.String()).Msg("Failed to update project")
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (r *PgProjectRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	commandTag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error().Err(err).Str("projectID", id.String()).Msg("Failed to delete project")
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrProjectNotFound
	}
	return nil
}
