package methods

import (
	"context"

	"ballotlab/domain/core"
	"ballotlab/domain/election"
	"ballotlab/domain/outcome"
)

// Approval elects the candidate approved by the most ballots. It requires a
// native approval profile; ranking profiles go through ApprovalTop instead
// of being coerced here.
type Approval struct{}

// NewApproval creates the approval voting method.
func NewApproval() *Approval {
	return &Approval{}
}

// Name returns the registry name.
func (m *Approval) Name() string { return "approval" }

// Tally counts approvals per candidate.
func (m *Approval) Tally(ctx context.Context, p *election.Profile) (*outcome.Outcome, error) {
	if p.Format() != election.FormatApproval {
		return nil, core.NewIncompatibleBallotFormatError(m.Name(), string(election.FormatApproval), string(p.Format()))
	}

	counts := make(map[election.Candidate]float64, p.CandidateCount())
	for _, c := range p.Candidates() {
		counts[c] = 0
	}
	for _, b := range p.Ballots() {
		for _, c := range b.Approved {
			counts[c]++
		}
	}

	o := outcome.Decide(m.Name(), leaders(counts))
	o.Scores = counts
	o.Ranking = rankByScore(counts)
	return o, nil
}

// ApprovalTop is approval voting with implicit top-choice approval: each
// ranking ballot approves exactly its most-preferred candidate. Registered
// separately so plain approval never coerces ranking data.
type ApprovalTop struct{}

// NewApprovalTop creates the implicit-top approval method.
func NewApprovalTop() *ApprovalTop {
	return &ApprovalTop{}
}

// Name returns the registry name.
func (m *ApprovalTop) Name() string { return "approval_top" }

// Tally counts each ranking ballot's first choice as its one approval.
func (m *ApprovalTop) Tally(ctx context.Context, p *election.Profile) (*outcome.Outcome, error) {
	if p.Format() != election.FormatRanking {
		return nil, core.NewIncompatibleBallotFormatError(m.Name(), string(election.FormatRanking), string(p.Format()))
	}

	counts := make(map[election.Candidate]float64, p.CandidateCount())
	for _, c := range p.Candidates() {
		counts[c] = 0
	}
	for _, b := range p.Ballots() {
		if top, ok := b.Top(); ok {
			counts[top]++
		}
	}

	o := outcome.Decide(m.Name(), leaders(counts))
	o.Scores = counts
	o.Ranking = rankByScore(counts)
	return o, nil
}
