package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"writer-server/internal/models"
)

const executionFields = `id, user_id, prompt_id, prompt_ids, project_id, character_id, script_id,
	system_prompt_snapshot, user_prompt, final_prompt, model, parameters, result, created_at`

// PgExecutionRepository - append-only хранилище аудита генераций.
type PgExecutionRepository struct {
	db *pgxpool.Pool
}

func NewPgExecutionRepository(db *pgxpool.Pool) *PgExecutionRepository {
	if db == nil {
		log.Fatal().Msg("Database pool is nil for PgExecutionRepository")
	}
	return &PgExecutionRepository{db: db}
}

// Create вставляет запись аудита. Путей обновления и удаления нет.
func (r *PgExecutionRepository) Create(ctx context.Context, execution *models.AIExecution) error {
	paramsJSON, err := json.Marshal(execution.Parameters)
	if err != nil {
		return fmt.Errorf("failed to marshal execution parameters: %w", err)
	}

	query := `
		INSERT INTO ai_executions (
			user_id, prompt_id, prompt_ids, project_id, character_id, script_id,
			system_prompt_snapshot, user_prompt, final_prompt, model, parameters, result
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`
	err = r.db.QueryRow(ctx, query,
		execution.UserID, execution.PromptID, execution.PromptIDs,
		execution.ProjectID, execution.CharacterID, execution.ScriptID,
		execution.SystemPromptSnapshot, execution.UserPrompt, execution.FinalPrompt,
		execution.Model, paramsJSON, execution.Result,
	).Scan(&execution.ID, &execution.CreatedAt)
	if err != nil {
		log.Error().Err(err).Str("userID", execution.UserID.String()).Msg("Failed to insert execution record")
		return fmt.Errorf("failed to insert execution record: %w", err)
	}
	log.Info().Str("executionID", execution.ID.String()).Str("model", execution.Model).Msg("Execution recorded")
	return nil
}

func scanExecution(row pgx.Row) (*models.AIExecution, error) {
	var e models.AIExecution
	var paramsJSON []byte
	err := row.Scan(
		&e.ID, &e.UserID, &e.PromptID, &e.PromptIDs, &e.ProjectID, &e.CharacterID, &e.ScriptID,
		&e.SystemPromptSnapshot, &e.UserPrompt, &e.FinalPrompt, &e.Model, &paramsJSON, &e.Result,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(paramsJSON) > 0 {
		if err := json.Unmarshal(paramsJSON, &e.Parameters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal execution parameters: %w", err)
		}
	}
	return &e, nil
}

func (r *PgExecutionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.AIExecution, error) {
	query := fmt.Sprintf(`SELECT %s FROM ai_executions WHERE id = $1 AND user_id = $2`, executionFields)
	execution, err := scanExecution(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrExecutionNotFound
		}
		log.Error().Err(err).Str("executionID", id.String()).Msg("Failed to get execution")
		return nil, fmt.Errorf("failed to get execution: %w", err)
	}
	return execution, nil
}

// listWindow нормализует параметры пагинации: дефолт 20, потолок 100.
func listWindow(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = 20
	case limit > 100:
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (r *PgExecutionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.AIExecution, error) {
	limit, offset = listWindow(limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM ai_executions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, executionFields)
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to list executions")
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}
	defer rows.Close()

	var executions []*models.AIExecution
	for rows.Next() {
		execution, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution row: %w", err)
		}
		executions = append(executions, execution)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate execution rows: %w", err)
	}
	return executions, nil
}
