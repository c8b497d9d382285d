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

const profileFields = `id, user_id, name, model, temperature, max_tokens, narrative_style, active, created_at, updated_at`

// PgProfileRepository - репозиторий творческих профилей на PostgreSQL.
type PgProfileRepository struct {
	db *pgxpool.Pool
}

func NewPgProfileRepository(db *pgxpool.Pool) *PgProfileRepository {
	if db == nil {
		log.Fatal().Msg("Database pool is nil for PgProfileRepository")
	}
	return &PgProfileRepository{db: db}
}

func (r *PgProfileRepository) Create(ctx context.Context, profile *models.CreativeProfile) error {
	query := `
		INSERT INTO creative_profiles (user_id, name, model, temperature, max_tokens, narrative_style, active)
		VALUES ($1, $2, $3, $4, $5, $6, false)
		RETURNING id, active, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		profile.UserID, profile.Name, profile.Model, profile.Temperature,
		profile.MaxTokens, profile.NarrativeStyle,
	).Scan(&profile.ID, &profile.Active, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		log.Error().Err(err).Str("userID", profile.UserID.String()).Msg("Failed to create profile")
		return fmt.Errorf("failed to create profile: %w", err)
	}
	log.Info().Str("profileID", profile.ID.String()).Msg("Creative profile created")
	return nil
}

func (r *PgProfileRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.CreativeProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM creative_profiles WHERE id = $1 AND user_id = $2`, profileFields)
	var profile models.CreativeProfile
	err := pgxscan.Get(ctx, r.db, &profile, query, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProfileNotFound
		}
		log.Error().Err(err).Str("profileID", id.String()).Msg("Failed to get profile")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *PgProfileRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.CreativeProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM creative_profiles WHERE user_id = $1 ORDER BY created_at`, profileFields)
	var profiles []*models.CreativeProfile
	if err := pgxscan.Select(ctx, r.db, &profiles, query, userID); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to list profiles")
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (r *PgProfileRepository) Update(ctx context.Context, profile *models.CreativeProfile) error {
	query := `
		UPDATE creative_profiles
		SET name = $1, model = $2, temperature = $3, max_tokens = $4, narrative_style = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		profile.Name, profile.Model, profile.Temperature, profile.MaxTokens,
		profile.NarrativeStyle, profile.ID, profile.UserID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrProfileNotFound
		}
		log.Error().Err(err).Str("profileID", profile.ID.String()).Msg("Failed to update profile")
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (r *PgProfileRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	commandTag, err := r.db.Exec(ctx, `DELETE FROM creative_profiles WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error().Err(err).Str("profileID", id.String()).Msg("Failed to delete profile")
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrProfileNotFound
	}
	return nil
}

// SetActive атомарно деактивирует все профили пользователя и активирует один.
// Два шага внутри одной транзакции поддерживают инвариант
// "не более одного активного профиля на пользователя".
func (r *PgProfileRepository) SetActive(ctx context.Context, userID, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback после commit безвреден

	if _, err := tx.Exec(ctx, `UPDATE creative_profiles SET active = false, updated_at = NOW() WHERE user_id = $1 AND active`, userID); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to deactivate profiles")
		return fmt.Errorf("failed to deactivate profiles: %w", err)
	}

	commandTag, err := tx.Exec(ctx, `UPDATE creative_profiles SET active = true, updated_at = NOW() WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error().Err(err).Str("profileID", id.String()).Msg("Failed to activate profile")
		return fmt.Errorf("failed to activate profile: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrProfileNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Info().Str("profileID", id.String()).Msg("Creative profile activated")
	return nil
}

// GetActive возвращает единственный активный профиль пользователя.
func (r *PgProfileRepository) GetActive(ctx context.Context, userID uuid.UUID) (*models.CreativeProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM creative_profiles WHERE user_id = $1 AND active LIMIT 1`, profileFields)
	var profile models.CreativeProfile
	err := pgxscan.Get(ctx, r.db, &profile, query, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProfileNotFound
		}
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to get active profile")
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}
	return &profile, nil
}
