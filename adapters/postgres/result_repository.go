package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"ballotlab/domain/simulation"
	"ballotlab/ports"
)

// resultRepository implements the ResultLedger interface
type resultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *sqlx.DB) ports.ResultLedger {
	return &resultRepository{db: db}
}

// EnsureSchema creates the ledger tables when missing.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS simulation_runs (
		run_id       TEXT PRIMARY KEY,
		fingerprint  TEXT NOT NULL,
		trials       INT NOT NULL,
		completed    INT NOT NULL,
		methods      TEXT[] NOT NULL,
		result       JSONB NOT NULL,
		generated_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS trial_outcomes (
		run_id   TEXT NOT NULL REFERENCES simulation_runs(run_id) ON DELETE CASCADE,
		trial    INT NOT NULL,
		seed     BIGINT NOT NULL,
		outcomes JSONB NOT NULL,
		failures JSONB,
		PRIMARY KEY (run_id, trial)
	);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create ledger schema: %w", err)
	}
	return nil
}

// SaveRun inserts the aggregated run result
func (r *resultRepository) SaveRun(ctx context.Context, result *simulation.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `INSERT INTO simulation_runs (
		run_id, fingerprint, trials, completed, methods, result, generated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		result.RunID.String(), result.Fingerprint.String(), result.Trials, result.Completed,
		pq.Array(result.Methods), resultJSON, result.GeneratedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// SaveTrials inserts per-trial outcome records for a run
func (r *resultRepository) SaveTrials(ctx context.Context, runID string, records []*simulation.TrialRecord) error {
	query := `INSERT INTO trial_outcomes (run_id, trial, seed, outcomes, failures)
		VALUES ($1, $2, $3, $4, $5)`

	for _, rec := range records {
		outcomesJSON, err := json.Marshal(rec.Outcomes)
		if err != nil {
			return fmt.Errorf("failed to marshal trial %d outcomes: %w", rec.Trial, err)
		}
		var failuresJSON []byte
		if len(rec.Failures) > 0 {
			failuresJSON, err = json.Marshal(rec.Failures)
			if err != nil {
				return fmt.Errorf("failed to marshal trial %d failures: %w", rec.Trial, err)
			}
		}
		if _, err := r.db.ExecContext(ctx, query, runID, rec.Trial, rec.Seed, outcomesJSON, failuresJSON); err != nil {
			return fmt.Errorf("failed to save trial %d: %w", rec.Trial, err)
		}
	}
	return nil
}
