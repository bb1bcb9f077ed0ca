package generator

import (
	"math"
	"math/rand"
	"sort"

	"ballotlab/domain/election"
	"ballotlab/domain/simulation"
)

// spatialModel assigns every candidate and voter a position in a
// d-dimensional ideological space and ranks candidates by increasing noisy
// distance to the voter. Candidate positions are sampled before voter
// positions so the draw order, and therefore the output, is fixed for a
// given stream.
func spatialModel(rng *rand.Rand, candidates []election.Candidate, voters int, params simulation.SpatialParams) [][]election.Candidate {
	sample := func() float64 {
		if params.Distribution == simulation.DistributionUniform {
			return rng.Float64()*2 - 1
		}
		return rng.NormFloat64()
	}

	positions := make([][]float64, len(candidates))
	for i := range candidates {
		positions[i] = samplePoint(sample, params.Dimensions)
	}

	rankings := make([][]election.Candidate, voters)
	for v := 0; v < voters; v++ {
		voterPos := samplePoint(sample, params.Dimensions)

		type scored struct {
			cand election.Candidate
			dist float64
		}
		scoredCands := make([]scored, len(candidates))
		for i, c := range candidates {
			d := euclidean(voterPos, positions[i])
			if params.Noise > 0 {
				d += rng.NormFloat64() * params.Noise
			}
			scoredCands[i] = scored{cand: c, dist: d}
		}
		// name tiebreak keeps equal distances deterministic
		sort.Slice(scoredCands, func(i, j int) bool {
			if scoredCands[i].dist != scoredCands[j].dist {
				return scoredCands[i].dist < scoredCands[j].dist
			}
			return scoredCands[i].cand < scoredCands[j].cand
		})

		ranking := make([]election.Candidate, len(candidates))
		for i, s := range scoredCands {
			ranking[i] = s.cand
		}
		rankings[v] = ranking
	}
	return rankings
}

func samplePoint(sample func() float64, dims int) []float64 {
	p := make([]float64, dims)
	for i := range p {
		p[i] = sample()
	}
	return p
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
