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

const characterFields = `id, user_id, project_id, name, description, personality, background, created_at, updated_at`

// PgCharacterRepository - репозиторий персонажей на PostgreSQL.
type PgCharacterRepository struct {
	db *pgxpool.Pool
}

func NewPgCharacterRepository(db *pgxpool.Pool) *PgCharacterRepository {
	if db == nil {
		log.Fatal().Msg("Database pool is nil for PgCharacterRepository")
	}
	return &PgCharacterRepository{db: db}
}

func (r *PgCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	query := `
		INSERT INTO characters (user_id, project_id, name, description, personality, background)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		character.UserID, character.ProjectID, character.Name,
		character.Description, character.Personality, character.Background,
	).Scan(&character.ID, &character.CreatedAt, &character.UpdatedAt)
	if err != nil {
		log.Error().Err(err).Str("name", character.Name).Msg("Failed to create character")
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

func (r *PgCharacterRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Character, error) {
	query := fmt.Sprintf(`SELECT %s FROM characters WHERE id = $1 AND user_id = $2`, characterFields)
	var character models.Character
	err := pgxscan.Get(ctx, r.db, &character, query, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCharacterNotFound
		}
		log.Error().Err(err).Str("characterID", id.String()).Msg("Failed to get character")
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &character, nil
}

func (r *PgCharacterRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Character, error) {
	query := fmt.Sprintf(`SELECT %s FROM characters WHERE user_id = $1 ORDER BY created_at DESC`, characterFields)
	var characters []*models.Character
	if err := pgxscan.Select(ctx, r.db, &characters, query, userID); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to list characters")
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

// ListByProject возвращает персонажей, привязанных к проекту (для контекста генерации).
func (r *PgCharacterRepository) ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*models.Character, error) {
	query := fmt.Sprintf(`SELECT %s FROM characters WHERE user_id = $1 AND project_id = $2 ORDER BY created_at`, characterFields)
	var characters []*models.Character
	if err := pgxscan.Select(ctx, r.db, &characters, query, userID, projectID); err != nil {
		log.Error().Err(err).Str("projectID", projectID.String()).Msg("Failed to list characters by project")
		return nil, fmt.Errorf("failed to list characters by project: %w", err)
	}
	return characters, nil
}

func (r *PgCharacterRepository) Update(ctx context.Context, character *models.Character) error {
	query := `
		UPDATE characters SET project_id = $1, name = $2, description = $3, personality = $4, background = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		character.ProjectID, character.Name, character.Description,
		character.Personality, character.Background, character.ID, character.UserID,
	).Scan(&character.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrCharacterNotFound
		}
		log.Error().Err(err).Str("characterID", character.ID.String()).Msg("Failed to update character")
		return fmt.Errorf("failed to update character: %w", err)
	}
	return nil
}

func (r *PgCharacterRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	commandTag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error().Err(err).Str("characterID", id.String()).Msg("Failed to delete character")
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrCharacterNotFound
	}
	return nil
}
