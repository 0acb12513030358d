package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateRunStep creates a new run step record
func (db *DB) CreateRunStep(ctx context.Context, runID uuid.UUID, input *RunStepInput) (*RunStep, error) {
	var step RunStep
	var parametersJSON []byte
	if input.Parameters != nil {
		var err error
		parametersJSON, err = json.Marshal(input.Parameters)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal parameters: %w", err)
		}
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO run_steps (run_id, step, category, status, parameters)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, run_id, step, category, status, started_at, completed_at,
		           duration_ms, artifact_id, error_message, parameters, created_at, updated_at`,
		runID, input.Step, input.Category, input.Status, parametersJSON,
	).Scan(&step.ID, &step.RunID, &step.Step, &step.Category, &step.Status,
		&step.StartedAt, &step.CompletedAt, &step.DurationMs, &step.ArtifactID,
		&step.ErrorMessage, &parametersJSON, &step.CreatedAt, &step.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create run step: %w", err)
	}

	if parametersJSON != nil {
		_ = json.Unmarshal(parametersJSON, &step.Parameters)
	}

	return &step, nil
}

// GetRunStep retrieves a run step by run_id and step name
func (db *DB) GetRunStep(ctx context.Context, runID uuid.UUID, stepName string) (*RunStep, error) {
	var step RunStep
	var parametersJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, run_id, step, category, status, started_at, completed_at,
		        duration_ms, artifact_id, error_message, parameters, created_at, updated_at
		 FROM run_steps
		 WHERE run_id = $1 AND step = $2`,
		runID, stepName,
	).Scan(&step.ID, &step.RunID, &step.Step, &step.Category, &step.Status,
		&step.StartedAt, &step.CompletedAt, &step.DurationMs, &step.ArtifactID,
		&step.ErrorMessage, &parametersJSON, &step.CreatedAt, &step.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run step: %w", err)
	}

	if parametersJSON != nil {
		_ = json.Unmarshal(parametersJSON, &step.Parameters)
	}

	return &step, nil
}

// ListRunSteps retrieves all steps for a run in creation order
func (db *DB) ListRunSteps(ctx context.Context, runID uuid.UUID) ([]RunStep, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, step, category, status, started_at, completed_at,
		        duration_ms, artifact_id, error_message, parameters, created_at, updated_at
		 FROM run_steps
		 WHERE run_id = $1
		 ORDER BY created_at`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list run steps: %w", err)
	}
	defer rows.Close()

	var steps []RunStep
	for rows.Next() {
		var step RunStep
		var parametersJSON []byte

		if err := rows.Scan(&step.ID, &step.RunID, &step.Step, &step.Category, &step.Status,
			&step.StartedAt, &step.CompletedAt, &step.DurationMs, &step.ArtifactID,
			&step.ErrorMessage, &parametersJSON, &step.CreatedAt, &step.UpdatedAt); err != nil {
			return nil, err
		}

		if parametersJSON != nil {
			_ = json.Unmarshal(parametersJSON, &step.Parameters)
		}

		steps = append(steps, step)
	}

	return steps, nil
}

// UpdateRunStepStatus updates the status and related fields of a run step
func (db *DB) UpdateRunStepStatus(ctx context.Context, runID uuid.UUID, stepName string, status string, errorMsg *string, artifactID *uuid.UUID) error {
	now := time.Now()
	var durationMs *int

	currentStep, err := db.GetRunStep(ctx, runID, stepName)
	if err != nil {
		return err
	}
	if currentStep == nil {
		return fmt.Errorf("step not found: %s", stepName)
	}

	if status == StepStatusCompleted && currentStep.StartedAt != nil {
		dur := int(now.Sub(*currentStep.StartedAt).Milliseconds())
		durationMs = &dur
	}

	var startedAt *time.Time
	if status == StepStatusInProgress && currentStep.StartedAt == nil {
		startedAt = &now
	}

	var completedAt *time.Time
	if status == StepStatusCompleted || status == StepStatusFailed || status == StepStatusSkipped {
		completedAt = &now
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE run_steps
		 SET status = $1, started_at = COALESCE($2, started_at), completed_at = $3,
		     duration_ms = $4, error_message = $5, artifact_id = COALESCE($6, artifact_id),
		     updated_at = NOW()
		 WHERE run_id = $7 AND step = $8`,
		status, startedAt, completedAt, durationMs, errorMsg, artifactID, runID, stepName,
	)
	if err != nil {
		return fmt.Errorf("failed to update run step status: %w", err)
	}

	return nil
}
