package generator

import (
	"math/rand"

	"ballotlab/domain/election"
)

// impartialCulture draws each voter's ranking uniformly at random from all
// permutations of the candidate set.
func impartialCulture(rng *rand.Rand, candidates []election.Candidate, voters int) [][]election.Candidate {
	rankings := make([][]election.Candidate, voters)
	for v := 0; v < voters; v++ {
		perm := rng.Perm(len(candidates))
		ranking := make([]election.Candidate, len(candidates))
		for i, idx := range perm {
			ranking[i] = candidates[idx]
		}
		rankings[v] = ranking
	}
	return rankings
}
