package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// TrialStream creates the RNG stream for one trial, derived purely from
	// the base seed and the trial index so parallel execution never
	// introduces order-dependence between trials.
	TrialStream(ctx context.Context, baseSeed int64, trial int) (*rand.Rand, int64, error)
}
