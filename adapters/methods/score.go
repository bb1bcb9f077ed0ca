package methods

import (
	"context"

	"ballotlab/domain/core"
	"ballotlab/domain/election"
	"ballotlab/domain/outcome"
)

// Score (range voting) elects the candidate with the highest score total.
// Candidates a ballot leaves unscored receive the range minimum from it.
type Score struct{}

// NewScore creates the score voting method.
func NewScore() *Score {
	return &Score{}
}

// Name returns the registry name.
func (m *Score) Name() string { return "score" }

// Tally sums scores per candidate over a score profile.
func (m *Score) Tally(ctx context.Context, p *election.Profile) (*outcome.Outcome, error) {
	if p.Format() != election.FormatScore {
		return nil, core.NewIncompatibleBallotFormatError(m.Name(), string(election.FormatScore), string(p.Format()))
	}

	min := p.ScoreRange().Min
	totals := make(map[election.Candidate]float64, p.CandidateCount())
	for _, c := range p.Candidates() {
		totals[c] = 0
	}
	for _, b := range p.Ballots() {
		for _, c := range p.Candidates() {
			if v, ok := b.Scores[c]; ok {
				totals[c] += v
			} else {
				totals[c] += min
			}
		}
	}

	o := outcome.Decide(m.Name(), leaders(totals))
	o.Scores = totals
	o.Ranking = rankByScore(totals)
	return o, nil
}
