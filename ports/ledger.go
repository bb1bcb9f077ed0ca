package ports

import (
	"context"

	"ballotlab/domain/simulation"
)

// ResultLedger persists completed runs. Persistence is strictly post-run:
// the harness never blocks a trial on external I/O.
type ResultLedger interface {
	// SaveRun stores the aggregated result.
	SaveRun(ctx context.Context, result *simulation.Result) error

	// SaveTrials stores per-trial outcome records for a run.
	SaveTrials(ctx context.Context, runID string, records []*simulation.TrialRecord) error
}
