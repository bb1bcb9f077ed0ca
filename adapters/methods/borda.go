package methods

import (
	"context"

	"ballotlab/domain/core"
	"ballotlab/domain/election"
	"ballotlab/domain/outcome"
)

// Borda scores each candidate with the number of candidates ranked below it,
// summed over all ballots. Candidates a ballot omits are tied-last and split
// the remaining points evenly: each unranked candidate gets (u-1)/2 where u
// is the unranked count, which keeps every ballot's total at m*(m-1)/2.
type Borda struct{}

// NewBorda creates the Borda count method.
func NewBorda() *Borda {
	return &Borda{}
}

// Name returns the registry name.
func (m *Borda) Name() string { return "borda" }

// Tally computes Borda points over a ranking profile.
func (m *Borda) Tally(ctx context.Context, p *election.Profile) (*outcome.Outcome, error) {
	if p.Format() != election.FormatRanking {
		return nil, core.NewIncompatibleBallotFormatError(m.Name(), string(election.FormatRanking), string(p.Format()))
	}

	mCount := p.CandidateCount()
	points := make(map[election.Candidate]float64, mCount)
	for _, c := range p.Candidates() {
		points[c] = 0
	}

	for _, b := range p.Ballots() {
		ranked := make(map[election.Candidate]struct{}, len(b.Ranking))
		for pos, c := range b.Ranking {
			points[c] += float64(mCount - 1 - pos)
			ranked[c] = struct{}{}
		}
		u := mCount - len(b.Ranking)
		if u > 0 {
			share := float64(u-1) / 2.0
			for _, c := range p.Candidates() {
				if _, ok := ranked[c]; !ok {
					points[c] += share
				}
			}
		}
	}

	o := outcome.Decide(m.Name(), leaders(points))
	o.Scores = points
	o.Ranking = rankByScore(points)
	return o, nil
}
