// Package generator implements the profile generator port: deterministic,
// seed-driven voter models producing immutable preference profiles.
package generator

import (
	"context"
	"fmt"
	"math/rand"

	"ballotlab/domain/core"
	"ballotlab/domain/election"
	"ballotlab/domain/simulation"
	"ballotlab/ports"
)

// ProfileGenerator dispatches to the configured voter model and shapes the
// resulting rankings into the requested ballot format.
type ProfileGenerator struct{}

// New creates a profile generator.
func New() *ProfileGenerator {
	return &ProfileGenerator{}
}

// Generate produces one profile. Identical (cfg, seed) pairs produce
// bit-identical profiles: all randomness flows through a single rand.Rand
// seeded here, and iteration orders are fixed.
func (g *ProfileGenerator) Generate(ctx context.Context, cfg simulation.GeneratorConfig, seed int64) (*election.Profile, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	candidates := CandidateNames(cfg.Candidates)

	var rankings [][]election.Candidate
	switch cfg.Model {
	case simulation.ModelImpartialCulture:
		rankings = impartialCulture(rng, candidates, cfg.Voters)
	case simulation.ModelSpatial:
		rankings = spatialModel(rng, candidates, cfg.Voters, cfg.Spatial)
	default:
		return nil, core.NewInvalidConfigurationError("model", fmt.Sprintf("unknown model kind %q", cfg.Model))
	}

	ballots := shapeBallots(rankings, cfg)
	return election.NewScoreRangeProfile(cfg.Format, candidates, ballots, cfg.ScoreRange)
}

// CandidateNames produces the fixed candidate identifiers for a generated
// profile: single letters up to 26 candidates, numbered IDs beyond.
func CandidateNames(n int) []election.Candidate {
	out := make([]election.Candidate, n)
	for i := 0; i < n; i++ {
		if n <= 26 {
			out[i] = election.Candidate(string(rune('A' + i)))
		} else {
			out[i] = election.Candidate(fmt.Sprintf("C%03d", i+1))
		}
	}
	return out
}

// shapeBallots converts model rankings into the configured ballot format.
func shapeBallots(rankings [][]election.Candidate, cfg simulation.GeneratorConfig) []election.Ballot {
	ballots := make([]election.Ballot, len(rankings))
	for i, ranking := range rankings {
		switch cfg.Format {
		case election.FormatApproval:
			k := cfg.ApprovalTopK
			if k > len(ranking) {
				k = len(ranking)
			}
			approved := make([]election.Candidate, k)
			copy(approved, ranking[:k])
			ballots[i] = election.ApprovalBallot(approved...)
		case election.FormatScore:
			ballots[i] = election.ScoreBallot(positionalScores(ranking, cfg.ScoreRange))
		default:
			ballots[i] = election.RankingBallot(ranking...)
		}
	}
	return ballots
}

// positionalScores maps rank positions linearly into the score range: the
// top candidate gets Max, the last gets Min.
func positionalScores(ranking []election.Candidate, r election.ScoreRange) map[election.Candidate]float64 {
	scores := make(map[election.Candidate]float64, len(ranking))
	m := len(ranking)
	for pos, c := range ranking {
		frac := 1.0
		if m > 1 {
			frac = float64(m-1-pos) / float64(m-1)
		}
		scores[c] = r.Min + frac*(r.Max-r.Min)
	}
	return scores
}

var _ ports.Generator = (*ProfileGenerator)(nil)
