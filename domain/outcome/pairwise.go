package outcome

import (
	"ballotlab/domain/election"
)

// Pairwise is the pairwise victory matrix over a profile's candidate set.
// Wins[i][j] counts ballots preferring candidate i over candidate j; ballots
// expressing no preference between the pair abstain from it.
type Pairwise struct {
	Candidates []election.Candidate `json:"candidates"`
	Wins       [][]int              `json:"wins"`
	index      map[election.Candidate]int
}

// BuildPairwise tallies the victory matrix from a ranking profile. Ranked
// candidates beat every unranked candidate; unranked candidates are tied
// with each other and contribute no preference.
func BuildPairwise(p *election.Profile) *Pairwise {
	cands := p.Candidates()
	m := len(cands)
	index := make(map[election.Candidate]int, m)
	for i, c := range cands {
		index[c] = i
	}
	wins := make([][]int, m)
	for i := range wins {
		wins[i] = make([]int, m)
	}

	for _, b := range p.Ballots() {
		// rank position per candidate; unranked stay at m (tied last)
		pos := make([]int, m)
		for i := range pos {
			pos[i] = m
		}
		for r, c := range b.Ranking {
			pos[index[c]] = r
		}
		for i := 0; i < m; i++ {
			for j := i + 1; j < m; j++ {
				switch {
				case pos[i] < pos[j]:
					wins[i][j]++
				case pos[j] < pos[i]:
					wins[j][i]++
				}
			}
		}
	}

	return &Pairwise{Candidates: cands, Wins: wins, index: index}
}

func (pw *Pairwise) lookup(c election.Candidate) int {
	if pw.index == nil {
		pw.index = make(map[election.Candidate]int, len(pw.Candidates))
		for i, cand := range pw.Candidates {
			pw.index[cand] = i
		}
	}
	return pw.index[c]
}

// Preferring returns how many ballots prefer a over b.
func (pw *Pairwise) Preferring(a, b election.Candidate) int {
	return pw.Wins[pw.lookup(a)][pw.lookup(b)]
}

// Beats reports whether a strict majority of expressed preferences favor a
// over b.
func (pw *Pairwise) Beats(a, b election.Candidate) bool {
	i, j := pw.lookup(a), pw.lookup(b)
	return pw.Wins[i][j] > pw.Wins[j][i]
}

// CondorcetWinner returns the candidate beating every other pairwise, if
// one exists.
func (pw *Pairwise) CondorcetWinner() (election.Candidate, bool) {
	m := len(pw.Candidates)
	for i := 0; i < m; i++ {
		wins := true
		for j := 0; j < m; j++ {
			if i == j {
				continue
			}
			if pw.Wins[i][j] <= pw.Wins[j][i] {
				wins = false
				break
			}
		}
		if wins {
			return pw.Candidates[i], true
		}
	}
	return "", false
}
