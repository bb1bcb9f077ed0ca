package election

import (
	"fmt"

	"ballotlab/domain/core"
)

// Profile is a population's preference profile: an ordered ballot sequence
// over a fixed candidate set. It is immutable after construction, so any
// number of methods can tally it concurrently without locks. Ballot order is
// irrelevant to outcomes but retained for reproducibility.
type Profile struct {
	format     BallotFormat
	candidates []Candidate
	members    map[Candidate]struct{}
	ballots    []Ballot
	scoreRange ScoreRange
}

// NewProfile validates and constructs a profile. Every ballot must reference
// only known candidates, a ranking ballot must not list a candidate twice,
// and scores must stay inside the profile's score range. Violations fail
// with core.ErrMalformedBallot identifying the offending ballot index.
func NewProfile(format BallotFormat, candidates []Candidate, ballots []Ballot) (*Profile, error) {
	return NewScoreRangeProfile(format, candidates, ballots, DefaultScoreRange)
}

// NewScoreRangeProfile constructs a profile with an explicit score range.
// The range only constrains score-format ballots.
func NewScoreRangeProfile(format BallotFormat, candidates []Candidate, ballots []Ballot, scoreRange ScoreRange) (*Profile, error) {
	switch format {
	case FormatRanking, FormatScore, FormatApproval:
	default:
		return nil, core.NewInvalidConfigurationError("format", fmt.Sprintf("unknown ballot format %q", format))
	}
	if len(candidates) == 0 {
		return nil, core.NewInvalidConfigurationError("candidates", "candidate set is empty")
	}
	if scoreRange.Max <= scoreRange.Min {
		return nil, core.NewInvalidConfigurationError("score_range", "max must exceed min")
	}

	members := make(map[Candidate]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := members[c]; dup {
			return nil, core.NewInvalidConfigurationError("candidates", fmt.Sprintf("duplicate candidate %q", c))
		}
		members[c] = struct{}{}
	}

	p := &Profile{
		format:     format,
		candidates: SortCandidates(candidates),
		members:    members,
		ballots:    ballots,
		scoreRange: scoreRange,
	}
	for i, b := range ballots {
		if err := p.validateBallot(i, b); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Profile) validateBallot(index int, b Ballot) error {
	switch p.format {
	case FormatRanking:
		if b.Scores != nil || b.Approved != nil {
			return core.NewMalformedBallotError(index, "ranking profile ballot carries non-ranking data")
		}
		seen := make(map[Candidate]struct{}, len(b.Ranking))
		for _, c := range b.Ranking {
			if _, ok := p.members[c]; !ok {
				return core.NewMalformedBallotError(index, fmt.Sprintf("unknown candidate %q", c))
			}
			if _, dup := seen[c]; dup {
				return core.NewMalformedBallotError(index, fmt.Sprintf("candidate %q ranked twice", c))
			}
			seen[c] = struct{}{}
		}
	case FormatScore:
		if b.Ranking != nil || b.Approved != nil {
			return core.NewMalformedBallotError(index, "score profile ballot carries non-score data")
		}
		for c, v := range b.Scores {
			if _, ok := p.members[c]; !ok {
				return core.NewMalformedBallotError(index, fmt.Sprintf("unknown candidate %q", c))
			}
			if !p.scoreRange.Contains(v) {
				return core.NewMalformedBallotError(index, fmt.Sprintf("score %.4f for %q outside range [%.2f, %.2f]", v, c, p.scoreRange.Min, p.scoreRange.Max))
			}
		}
	case FormatApproval:
		if b.Ranking != nil || b.Scores != nil {
			return core.NewMalformedBallotError(index, "approval profile ballot carries non-approval data")
		}
		seen := make(map[Candidate]struct{}, len(b.Approved))
		for _, c := range b.Approved {
			if _, ok := p.members[c]; !ok {
				return core.NewMalformedBallotError(index, fmt.Sprintf("unknown candidate %q", c))
			}
			if _, dup := seen[c]; dup {
				return core.NewMalformedBallotError(index, fmt.Sprintf("candidate %q approved twice", c))
			}
			seen[c] = struct{}{}
		}
	}
	return nil
}

// Format returns the ballot format all ballots in this profile carry.
func (p *Profile) Format() BallotFormat {
	return p.format
}

// Candidates returns the candidate set in sorted order. The returned slice
// is a copy and may be mutated by the caller.
func (p *Profile) Candidates() []Candidate {
	out := make([]Candidate, len(p.candidates))
	copy(out, p.candidates)
	return out
}

// CandidateCount returns the number of candidates.
func (p *Profile) CandidateCount() int {
	return len(p.candidates)
}

// HasCandidate reports membership in the candidate set.
func (p *Profile) HasCandidate(c Candidate) bool {
	_, ok := p.members[c]
	return ok
}

// BallotCount returns the number of ballots.
func (p *Profile) BallotCount() int {
	return len(p.ballots)
}

// Ballots returns the ballot sequence. The slice is shared and must be
// treated as read-only; it is safe to iterate from multiple goroutines.
func (p *Profile) Ballots() []Ballot {
	return p.ballots
}

// ScoreRange returns the score bounds for score-format profiles.
func (p *Profile) ScoreRange() ScoreRange {
	return p.scoreRange
}
