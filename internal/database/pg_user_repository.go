package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"writer-server/internal/models"
)

const userFields = `id, external_auth_id, username, email, openai_key, gemini_key, openrouter_key, created_at, updated_at`

// PgUserRepository - репозиторий пользователей на PostgreSQL.
type PgUserRepository struct {
	db *pgxpool.Pool
}

func NewPgUserRepository(db *pgxpool.Pool) *PgUserRepository {
	if db == nil {
		log.Fatal().Msg("Database pool is nil for PgUserRepository")
	}
	return &PgUserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.ExternalAuthID, &u.Username, &u.Email,
		&u.OpenAIKey, &u.GeminiKey, &u.OpenRouterKey,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertByExternalID создает пользователя при первом аутентифицированном
// запросе или обновляет username/email существующего.
func (r *PgUserRepository) UpsertByExternalID(ctx context.Context, externalID, username, email string) (*models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (external_auth_id, username, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (external_auth_id)
		DO UPDATE SET username = EXCLUDED.username, email = EXCLUDED.email, updated_at = NOW()
		RETURNING %s`, userFields)

	user, err := scanUser(r.db.QueryRow(ctx, query, externalID, username, email))
	if err != nil {
		log.Error().Err(err).Str("externalAuthID", externalID).Msg("Failed to upsert user")
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

func (r *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userFields)
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		log.Error().Err(err).Str("userID", id.String()).Msg("Failed to get user by id")
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// UpdateProviderKeys перезаписывает зашифрованные ключи провайдеров.
// nil-аргумент оставляет существующее значение, пустая строка обнуляет.
func (r *PgUserRepository) UpdateProviderKeys(ctx context.Context, userID uuid.UUID, openaiKey, geminiKey, openrouterKey *string) error {
	query := `
		UPDATE users SET
			openai_key     = CASE WHEN $2::text IS NULL THEN openai_key     ELSE NULLIF($2, '') END,
			gemini_key     = CASE WHEN $3::text IS NULL THEN gemini_key     ELSE NULLIF($3, '') END,
			openrouter_key = CASE WHEN $4::text IS NULL THEN openrouter_key ELSE NULLIF($4, '') END,
			updated_at = NOW()
		WHERE id = $1`

	commandTag, err := r.db.Exec(ctx, query, userID, openaiKey, geminiKey, openrouterKey)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to update provider keys")
		return fmt.Errorf("failed to update provider keys: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	log.Info().Str("userID", userID.String()).Msg("Provider keys updated")
	return nil
}
