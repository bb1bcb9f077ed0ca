package methods

import (
	"sort"

	"ballotlab/domain/election"
	"ballotlab/domain/outcome"
)

// schulzeResolve completes a cyclic pairwise matrix with the Schulze method:
// compute the strongest-path beat relation (winning-votes strength, closure
// by widest-path Floyd-Warshall) and elect the candidate whose strongest
// path to every rival is at least as strong as the reverse path. Several
// such candidates are a tied set.
func schulzeResolve(method string, pw *outcome.Pairwise) *outcome.Outcome {
	m := len(pw.Candidates)

	// direct strengths: winning votes on won duels, zero otherwise
	p := make([][]int, m)
	for i := range p {
		p[i] = make([]int, m)
		for j := range p[i] {
			if i != j && pw.Wins[i][j] > pw.Wins[j][i] {
				p[i][j] = pw.Wins[i][j]
			}
		}
	}

	// widest-path closure
	for k := 0; k < m; k++ {
		for i := 0; i < m; i++ {
			if i == k {
				continue
			}
			for j := 0; j < m; j++ {
				if j == i || j == k {
					continue
				}
				via := p[i][k]
				if p[k][j] < via {
					via = p[k][j]
				}
				if via > p[i][j] {
					p[i][j] = via
				}
			}
		}
	}

	winners := make([]election.Candidate, 0, 1)
	beaten := make(map[election.Candidate]int, m)
	for i := 0; i < m; i++ {
		potential := true
		for j := 0; j < m; j++ {
			if i == j {
				continue
			}
			if p[i][j] > p[j][i] {
				beaten[pw.Candidates[i]]++
			}
			if p[i][j] < p[j][i] {
				potential = false
			}
		}
		if potential {
			winners = append(winners, pw.Candidates[i])
		}
	}

	o := outcome.Decide(method, winners)
	o.Ranking = schulzeRanking(pw.Candidates, beaten)
	return o
}

// schulzeRanking orders candidates by how many rivals their strongest paths
// beat, names breaking exact ties for a stable ordering.
func schulzeRanking(candidates []election.Candidate, beaten map[election.Candidate]int) []election.Candidate {
	ranking := make([]election.Candidate, len(candidates))
	copy(ranking, candidates)
	sort.Slice(ranking, func(i, j int) bool {
		if beaten[ranking[i]] != beaten[ranking[j]] {
			return beaten[ranking[i]] > beaten[ranking[j]]
		}
		return ranking[i] < ranking[j]
	})
	return ranking
}
