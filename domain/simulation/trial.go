package simulation

import (
	"ballotlab/domain/election"
	"ballotlab/domain/outcome"
)

// TrialRecord is the all-or-nothing result of one trial: the derived seed,
// every requested method's outcome or failure, and optionally the generated
// profile. Owned by the harness while running, read-only afterwards.
type TrialRecord struct {
	Trial int   `json:"trial"`
	Seed  int64 `json:"seed"`

	// Profile is retained only when RunConfig.KeepProfiles is set.
	Profile *election.Profile `json:"-"`

	// Outcomes maps method name to its tally outcome.
	Outcomes map[string]*outcome.Outcome `json:"outcomes"`
	// Failures maps method name to the reason its tally failed. A failed
	// method never appears in Outcomes.
	Failures map[string]string `json:"failures,omitempty"`
	// GenerateErr records a profile-generation fault; such trials carry no
	// outcomes and are skipped by the aggregator.
	GenerateErr string `json:"generate_err,omitempty"`
}

// Succeeded reports whether the trial produced a profile and at least one
// outcome.
func (t *TrialRecord) Succeeded() bool {
	return t.GenerateErr == "" && len(t.Outcomes) > 0
}

// CondorcetFacts extracts Condorcet-winner knowledge recorded in this trial,
// preferring the canonical "condorcet" outcome and falling back to any
// outcome carrying a pairwise matrix. The aggregator uses this instead of
// re-tallying.
func (t *TrialRecord) CondorcetFacts() (winner *election.Candidate, known bool) {
	if o, ok := t.Outcomes["condorcet"]; ok && o.Pairwise != nil {
		return o.CondorcetWinner, true
	}
	for _, o := range t.Outcomes {
		if o.Pairwise != nil {
			return o.CondorcetWinner, true
		}
	}
	return nil, false
}

// MethodFailure identifies one failed (method, trial) pair for the
// end-of-run report.
type MethodFailure struct {
	Method string `json:"method"`
	Trial  int    `json:"trial"`
	Reason string `json:"reason"`
}
