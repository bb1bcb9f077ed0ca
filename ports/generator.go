package ports

import (
	"context"

	"ballotlab/domain/election"
	"ballotlab/domain/simulation"
)

// Generator produces preference profiles from a stochastic voter model.
// Generation must be deterministic: the same (config, seed) pair yields a
// bit-identical profile on every invocation, across processes and across
// parallel vs sequential execution.
type Generator interface {
	Generate(ctx context.Context, cfg simulation.GeneratorConfig, seed int64) (*election.Profile, error)
}
