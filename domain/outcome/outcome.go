// Package outcome defines the result value a voting method produces for one
// profile. Outcomes are constructed once by a method and never mutated; ties
// are a first-class decision, never silently resolved.
package outcome

import (
	"ballotlab/domain/election"
)

// Decision tags how the method's result should be read.
type Decision string

const (
	// DecisionWinner means a single definite winner.
	DecisionWinner Decision = "single_winner"
	// DecisionTie means the method ended with several candidates it cannot
	// separate; Tied carries the full set. Callers needing one winner must
	// apply an explicit, separately configured tie-breaking strategy.
	DecisionTie Decision = "tied_set"
	// DecisionNone means the method defines no winner for this profile
	// (e.g. a Condorcet method without a completion facing a cycle).
	DecisionNone Decision = "no_winner"
)

// Round records one iteration of an eliminating method: the active
// first-preference totals and who was eliminated at its end.
type Round struct {
	Number        int                        `json:"number"`
	Votes         map[election.Candidate]int `json:"votes"`
	ActiveBallots int                        `json:"active_ballots"`
	Eliminated    []election.Candidate       `json:"eliminated,omitempty"`
}

// Committee is one candidate set with its proportional score. Used by
// multi-winner methods.
type Committee struct {
	Members []election.Candidate `json:"members"`
	Score   float64              `json:"score"`
}

// Outcome is the result of running one method on one profile, plus the
// method-specific trace data needed to audit it without re-tallying.
type Outcome struct {
	Method   string   `json:"method"`
	Decision Decision `json:"decision"`

	// Winner is set when Decision is DecisionWinner.
	Winner election.Candidate `json:"winner,omitempty"`
	// Tied carries the sorted tied set when Decision is DecisionTie.
	Tied []election.Candidate `json:"tied,omitempty"`
	// Ranking is the method's full candidate ordering where it defines one.
	Ranking []election.Candidate `json:"ranking,omitempty"`

	// Scores carries the method's per-candidate totals (plurality counts,
	// Borda points, approval counts, score sums).
	Scores map[election.Candidate]float64 `json:"scores,omitempty"`
	// Rounds is the elimination trace for instant-runoff style methods.
	Rounds []Round `json:"rounds,omitempty"`
	// Pairwise is the victory matrix for Condorcet-family methods.
	Pairwise *Pairwise `json:"pairwise,omitempty"`
	// CondorcetWinner is set by Condorcet-family methods when one exists.
	// A nil value with a non-nil Pairwise records a majority cycle.
	CondorcetWinner *election.Candidate `json:"condorcet_winner,omitempty"`
	// Committees lists the best committees for multi-winner methods,
	// highest score first, ties adjacent.
	Committees []Committee `json:"committees,omitempty"`
}

// Winner builds a single-winner outcome.
func WinnerOutcome(method string, w election.Candidate) *Outcome {
	return &Outcome{Method: method, Decision: DecisionWinner, Winner: w}
}

// TieOutcome builds a tied-set outcome. The tied set is stored sorted.
func TieOutcome(method string, tied []election.Candidate) *Outcome {
	return &Outcome{Method: method, Decision: DecisionTie, Tied: election.SortCandidates(tied)}
}

// NoWinnerOutcome builds an outcome for methods that define no winner on
// this profile.
func NoWinnerOutcome(method string) *Outcome {
	return &Outcome{Method: method, Decision: DecisionNone}
}

// Decide builds a winner outcome when exactly one candidate leads, and a tie
// outcome otherwise. Methods use it so tie handling stays uniform.
func Decide(method string, leaders []election.Candidate) *Outcome {
	if len(leaders) == 1 {
		return WinnerOutcome(method, leaders[0])
	}
	return TieOutcome(method, leaders)
}

// SingleWinner returns the definite winner, if the outcome has one.
func (o *Outcome) SingleWinner() (election.Candidate, bool) {
	if o.Decision == DecisionWinner {
		return o.Winner, true
	}
	return "", false
}

// IsTie reports whether the outcome is a tied set.
func (o *Outcome) IsTie() bool {
	return o.Decision == DecisionTie
}
