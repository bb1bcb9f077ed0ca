package methods

import (
	"context"
	"sort"

	"ballotlab/domain/core"
	"ballotlab/domain/election"
	"ballotlab/domain/outcome"
)

// Plurality elects the candidate with the most first preferences. Maximal
// ties are reported as the full tied set; classifying a tie is the caller's
// job, never this method's.
type Plurality struct{}

// NewPlurality creates the plurality method.
func NewPlurality() *Plurality {
	return &Plurality{}
}

// Name returns the registry name.
func (m *Plurality) Name() string { return "plurality" }

// Tally counts top-of-ranking votes. Ballots ranking nobody contribute
// nothing.
func (m *Plurality) Tally(ctx context.Context, p *election.Profile) (*outcome.Outcome, error) {
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

// leaders returns every candidate holding the maximum score, sorted.
func leaders(scores map[election.Candidate]float64) []election.Candidate {
	best := make([]election.Candidate, 0, 1)
	max := 0.0
	first := true
	for c, v := range scores {
		switch {
		case first || v > max:
			best = best[:0]
			best = append(best, c)
			max = v
			first = false
		case v == max:
			best = append(best, c)
		}
	}
	return election.SortCandidates(best)
}

// rankByScore orders candidates by descending score, name ascending within
// equal scores. Equal-score adjacency preserves the tie information already
// carried by Scores.
func rankByScore(scores map[election.Candidate]float64) []election.Candidate {
	ranking := make([]election.Candidate, 0, len(scores))
	for c := range scores {
		ranking = append(ranking, c)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if scores[ranking[i]] != scores[ranking[j]] {
			return scores[ranking[i]] > scores[ranking[j]]
		}
		return ranking[i] < ranking[j]
	})
	return ranking
}
