package methods

import (
	"context"
	"fmt"

	"ballotlab/domain/core"
	"ballotlab/domain/election"
	"ballotlab/domain/outcome"
)

// Condorcet completion sub-methods.
const (
	// CompletionSchulze resolves majority cycles via strongest-path closure.
	CompletionSchulze = "schulze"
	// CompletionNone reports no_winner on cycles, matrix attached.
	CompletionNone = "none"
)

// Condorcet tallies the pairwise victory matrix and elects the candidate
// beating every other head-to-head. When no such candidate exists (a
// majority cycle) the configured completion resolves a winner; the outcome
// still records that no Condorcet winner existed and carries the full
// matrix.
type Condorcet struct {
	completion string
}

// NewCondorcet creates the Condorcet method with the given completion
// sub-method.
func NewCondorcet(completion string) (*Condorcet, error) {
	switch completion {
	case CompletionSchulze, CompletionNone:
	default:
		return nil, core.NewInvalidConfigurationError("completion", fmt.Sprintf("unknown cycle-resolution sub-method %q", completion))
	}
	return &Condorcet{completion: completion}, nil
}

// Name returns the registry name.
func (m *Condorcet) Name() string { return "condorcet" }

// Tally builds the pairwise matrix over a ranking profile. Ballots with no
// preference between a pair abstain from that pair.
func (m *Condorcet) Tally(ctx context.Context, p *election.Profile) (*outcome.Outcome, error) {
	if p.Format() != election.FormatRanking {
		return nil, core.NewIncompatibleBallotFormatError(m.Name(), string(election.FormatRanking), string(p.Format()))
	}

	pw := outcome.BuildPairwise(p)

	if winner, ok := pw.CondorcetWinner(); ok {
		o := outcome.WinnerOutcome(m.Name(), winner)
		o.Pairwise = pw
		o.CondorcetWinner = &winner
		return o, nil
	}

	// majority cycle: CondorcetWinner stays nil, matrix is reported, and the
	// completion decides whether a definite winner is still named
	var o *outcome.Outcome
	switch m.completion {
	case CompletionSchulze:
		o = schulzeResolve(m.Name(), pw)
	default:
		o = outcome.NoWinnerOutcome(m.Name())
	}
	o.Pairwise = pw
	o.CondorcetWinner = nil
	return o, nil
}
