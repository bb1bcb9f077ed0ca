package ports

import (
	"context"

	"ballotlab/domain/election"
	"ballotlab/domain/outcome"
)

// Method is the tally capability every voting-method variant implements.
// Implementations must be pure over the profile: no mutation, deterministic
// output, safe for concurrent use against the same immutable profile.
type Method interface {
	// Name is the stable registry name the harness and CLI select by.
	Name() string

	// Tally computes the method's outcome for the profile. It fails with
	// core.ErrIncompatibleBallotFormat when the profile's ballots do not
	// carry the data the method needs, never coercing lossily.
	Tally(ctx context.Context, p *election.Profile) (*outcome.Outcome, error)
}
