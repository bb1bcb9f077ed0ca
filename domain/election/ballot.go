package election

import (
	"sort"
)

// Candidate is an opaque identifier, unique within a profile.
type Candidate string

// BallotFormat identifies the preference representation ballots carry.
type BallotFormat string

const (
	// FormatRanking ballots list candidates most-preferred first. Omitted
	// candidates are treated as tied-last.
	FormatRanking BallotFormat = "ranking"
	// FormatScore ballots map candidates to numeric scores within the
	// profile's score range.
	FormatScore BallotFormat = "score"
	// FormatApproval ballots carry the set of approved candidates.
	FormatApproval BallotFormat = "approval"
)

// ScoreRange bounds the scores a score ballot may assign.
type ScoreRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultScoreRange is the 0-5 range used when a score profile does not
// configure its own.
var DefaultScoreRange = ScoreRange{Min: 0, Max: 5}

// Contains reports whether v falls inside the range.
func (r ScoreRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Ballot is one voter's preference expression. Exactly one of the three
// representations is populated, matching the owning profile's format.
type Ballot struct {
	Ranking  []Candidate           `json:"ranking,omitempty"`
	Scores   map[Candidate]float64 `json:"scores,omitempty"`
	Approved []Candidate           `json:"approved,omitempty"`
}

// RankingBallot builds a ranking ballot, most-preferred first.
func RankingBallot(prefs ...Candidate) Ballot {
	return Ballot{Ranking: prefs}
}

// ScoreBallot builds a score ballot from a candidate-score mapping.
func ScoreBallot(scores map[Candidate]float64) Ballot {
	return Ballot{Scores: scores}
}

// ApprovalBallot builds an approval ballot from the approved set.
func ApprovalBallot(approved ...Candidate) Ballot {
	return Ballot{Approved: approved}
}

// Top returns the most-preferred candidate of a ranking ballot.
func (b Ballot) Top() (Candidate, bool) {
	if len(b.Ranking) == 0 {
		return "", false
	}
	return b.Ranking[0], true
}

// Approves reports whether an approval ballot approves c.
func (b Ballot) Approves(c Candidate) bool {
	for _, a := range b.Approved {
		if a == c {
			return true
		}
	}
	return false
}

// SortCandidates returns a sorted copy of the given candidates. Tied sets
// are always reported in this order so outcomes compare deterministically.
func SortCandidates(cands []Candidate) []Candidate {
	out := make([]Candidate, len(cands))
	copy(out, cands)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
