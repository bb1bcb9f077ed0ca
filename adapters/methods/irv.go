package methods

import (
	"context"

	"ballotlab/domain/core"
	"ballotlab/domain/election"
	"ballotlab/domain/outcome"
)

// InstantRunoff iteratively eliminates the candidate with the fewest current
// first preferences, redistributing each affected ballot to its next-ranked
// remaining candidate. When several candidates tie for fewest they are all
// eliminated simultaneously in that round; elimination is never randomized.
// Rounds continue until one candidate remains, so the recorded elimination
// order always covers every candidate but the winner. A candidate holding a
// strict majority of active ballots can never be eliminated later, so the
// final survivor equals the first majority holder when one emerges.
type InstantRunoff struct{}

// NewInstantRunoff creates the instant-runoff method.
func NewInstantRunoff() *InstantRunoff {
	return &InstantRunoff{}
}

// Name returns the registry name.
func (m *InstantRunoff) Name() string { return "irv" }

// Tally runs the elimination rounds over a ranking profile. Ballots with no
// remaining ranked candidate become exhausted and leave the active count.
func (m *InstantRunoff) Tally(ctx context.Context, p *election.Profile) (*outcome.Outcome, error) {
	if p.Format() != election.FormatRanking {
		return nil, core.NewIncompatibleBallotFormatError(m.Name(), string(election.FormatRanking), string(p.Format()))
	}

	remaining := make(map[election.Candidate]struct{}, p.CandidateCount())
	for _, c := range p.Candidates() {
		remaining[c] = struct{}{}
	}

	var rounds []outcome.Round
	var eliminationOrder []election.Candidate

	for len(remaining) > 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		votes := make(map[election.Candidate]int, len(remaining))
		for c := range remaining {
			votes[c] = 0
		}
		active := 0
		for _, b := range p.Ballots() {
			for _, c := range b.Ranking {
				if _, ok := remaining[c]; ok {
					votes[c]++
					active++
					break
				}
			}
		}

		fewest := fewestVotes(votes)
		round := outcome.Round{
			Number:        len(rounds) + 1,
			Votes:         votes,
			ActiveBallots: active,
		}

		if len(fewest) == len(remaining) {
			// every remaining candidate is tied for fewest; eliminating all
			// of them would leave no winner, so the outcome is the tied set
			rounds = append(rounds, round)
			tied := make([]election.Candidate, 0, len(remaining))
			for c := range remaining {
				tied = append(tied, c)
			}
			o := outcome.TieOutcome(m.Name(), tied)
			o.Rounds = rounds
			return o, nil
		}

		round.Eliminated = fewest
		rounds = append(rounds, round)
		for _, c := range fewest {
			delete(remaining, c)
			eliminationOrder = append(eliminationOrder, c)
		}
	}

	var winner election.Candidate
	for c := range remaining {
		winner = c
	}

	o := outcome.WinnerOutcome(m.Name(), winner)
	o.Rounds = rounds
	o.Ranking = irvRanking(winner, eliminationOrder)
	return o, nil
}

// fewestVotes returns the sorted set of candidates holding the minimum
// current vote count.
func fewestVotes(votes map[election.Candidate]int) []election.Candidate {
	fewest := make([]election.Candidate, 0, 1)
	min := 0
	first := true
	for c, v := range votes {
		switch {
		case first || v < min:
			fewest = fewest[:0]
			fewest = append(fewest, c)
			min = v
			first = false
		case v == min:
			fewest = append(fewest, c)
		}
	}
	return election.SortCandidates(fewest)
}

// irvRanking orders candidates winner first, then by survival: later
// eliminations rank higher. Simultaneous eliminations stay adjacent in name
// order (the order they were recorded).
func irvRanking(winner election.Candidate, eliminationOrder []election.Candidate) []election.Candidate {
	ranking := make([]election.Candidate, 0, len(eliminationOrder)+1)
	ranking = append(ranking, winner)
	for i := len(eliminationOrder) - 1; i >= 0; i-- {
		ranking = append(ranking, eliminationOrder[i])
	}
	return ranking
}
