package methods

import (
	"context"
	"fmt"
	"strings"

	"ballotlab/domain/core"
	"ballotlab/domain/election"
	"ballotlab/domain/outcome"
)

// Apportionment weight sequences for proportional approval voting.
const (
	ApportionmentDHondt        = "d_hondt"
	ApportionmentSainteLague   = "sainte_lague"
	ApportionmentSainteLague12 = "sainte_lague_1_2"
	ApportionmentSainteLague14 = "sainte_lague_1_4"
)

// maxCommittees caps exhaustive committee enumeration. The problem is
// NP-complete; beyond the cap the method fails the trial instead of hanging
// the run.
const maxCommittees = 200_000

// ProportionalApproval is multi-winner proportional approval voting: every
// committee of the configured size is scored by summing, per ballot, the
// apportionment weight of how many committee members the ballot approves.
// The best-scoring committees win; several with equal score are reported
// together, never broken arbitrarily.
type ProportionalApproval struct {
	committeeSize int
	apportionment string
	dv            func(i int) float64
}

// NewProportionalApproval creates the method for a committee size and
// apportionment weight sequence.
func NewProportionalApproval(committeeSize int, apportionment string) (*ProportionalApproval, error) {
	if committeeSize < 1 {
		return nil, core.NewInvalidConfigurationError("committee_size", "must be positive")
	}
	dv, err := apportionmentWeights(apportionment)
	if err != nil {
		return nil, err
	}
	return &ProportionalApproval{
		committeeSize: committeeSize,
		apportionment: apportionment,
		dv:            dv,
	}, nil
}

// apportionmentWeights returns the marginal weight of a ballot's i-th
// approved committee member.
func apportionmentWeights(name string) (func(i int) float64, error) {
	switch name {
	case ApportionmentDHondt:
		return func(i int) float64 { return 1.0 / float64(i) }, nil
	case ApportionmentSainteLague:
		return func(i int) float64 { return 1.0 / float64(2*i-1) }, nil
	case ApportionmentSainteLague12:
		return func(i int) float64 {
			if i == 1 {
				return 1.0 / 1.2
			}
			return 1.0 / float64(2*i-1)
		}, nil
	case ApportionmentSainteLague14:
		return func(i int) float64 {
			if i == 1 {
				return 1.0 / 1.4
			}
			return 1.0 / float64(2*i-1)
		}, nil
	default:
		return nil, core.NewInvalidConfigurationError("apportionment", fmt.Sprintf("unknown apportionment method %q", name))
	}
}

// Name returns the registry name.
func (m *ProportionalApproval) Name() string { return "pav" }

// Tally enumerates committees over an approval profile and reports the best
// ones with their scores.
func (m *ProportionalApproval) Tally(ctx context.Context, p *election.Profile) (*outcome.Outcome, error) {
	if p.Format() != election.FormatApproval {
		return nil, core.NewIncompatibleBallotFormatError(m.Name(), string(election.FormatApproval), string(p.Format()))
	}

	candidates := p.Candidates()
	mCount := len(candidates)
	k := m.committeeSize
	if k > mCount {
		return nil, core.NewInvalidConfigurationError("committee_size", fmt.Sprintf("committee size %d exceeds %d candidates", k, mCount))
	}
	if n := binomial(mCount, k); n > maxCommittees {
		return nil, core.NewInvalidConfigurationError("committee_size", fmt.Sprintf("%d committees to enumerate exceeds cap %d", n, maxCommittees))
	}

	// cumulative weights: v[n] = dv(1)+...+dv(n)
	v := make([]float64, k+1)
	for i := 1; i <= k; i++ {
		v[i] = v[i-1] + m.dv(i)
	}

	// identical approval sets share a score contribution; group them once
	type group struct {
		approved map[election.Candidate]struct{}
		count    int
	}
	grouped := make(map[string]*group)
	for _, b := range p.Ballots() {
		key := approvalKey(b.Approved)
		g, ok := grouped[key]
		if !ok {
			set := make(map[election.Candidate]struct{}, len(b.Approved))
			for _, c := range b.Approved {
				set[c] = struct{}{}
			}
			g = &group{approved: set}
			grouped[key] = g
		}
		g.count++
	}
	groups := make([]*group, 0, len(grouped))
	for _, g := range grouped {
		groups = append(groups, g)
	}

	var best []outcome.Committee
	bestScore := 0.0
	first := true

	committee := make([]int, k)
	var walk func(start, depth int) error
	walk = func(start, depth int) error {
		if depth == k {
			score := 0.0
			for _, g := range groups {
				overlap := 0
				for _, idx := range committee {
					if _, ok := g.approved[candidates[idx]]; ok {
						overlap++
					}
				}
				score += v[overlap] * float64(g.count)
			}
			members := make([]election.Candidate, k)
			for i, idx := range committee {
				members[i] = candidates[idx]
			}
			switch {
			case first || score > bestScore:
				best = best[:0]
				best = append(best, outcome.Committee{Members: members, Score: score})
				bestScore = score
				first = false
			case score == bestScore:
				best = append(best, outcome.Committee{Members: members, Score: score})
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := start; i <= mCount-(k-depth); i++ {
			committee[depth] = i
			if err := walk(i+1, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0, 0); err != nil {
		return nil, err
	}

	o := &outcome.Outcome{Method: m.Name(), Committees: best}
	if len(best) == 1 {
		o.Decision = outcome.DecisionWinner
	} else {
		o.Decision = outcome.DecisionTie
	}
	return o, nil
}

func approvalKey(approved []election.Candidate) string {
	sorted := election.SortCandidates(approved)
	parts := make([]string, len(sorted))
	for i, c := range sorted {
		parts[i] = string(c)
	}
	return strings.Join(parts, "\x00")
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
		if result > maxCommittees {
			return result
		}
	}
	return result
}

// Apportionment returns the configured weight-sequence name.
func (m *ProportionalApproval) Apportionment() string {
	return m.apportionment
}
