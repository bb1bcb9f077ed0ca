// Package testkit provides profile fixtures and fake adapters for tests.
package testkit

import (
	"context"
	"sync"

	"ballotlab/domain/election"
	"ballotlab/domain/simulation"
	"ballotlab/ports"
)

// ProfileFromRankings builds a ranking profile over the given candidates,
// panicking on malformed fixtures so tests fail loudly at setup.
func ProfileFromRankings(candidates []election.Candidate, rankings ...[]election.Candidate) *election.Profile {
	ballots := make([]election.Ballot, len(rankings))
	for i, r := range rankings {
		ballots[i] = election.RankingBallot(r...)
	}
	p, err := election.NewProfile(election.FormatRanking, candidates, ballots)
	if err != nil {
		panic(err)
	}
	return p
}

// CycleProfile is the canonical 3-candidate Condorcet cycle: A>B>C, B>C>A,
// C>A>B. Every candidate is beaten by another, and plurality is a three-way
// tie.
func CycleProfile() *election.Profile {
	return ProfileFromRankings(
		[]election.Candidate{"A", "B", "C"},
		[]election.Candidate{"A", "B", "C"},
		[]election.Candidate{"B", "C", "A"},
		[]election.Candidate{"C", "A", "B"},
	)
}

// UnanimousProfile has n voters all ranking A>B. Every sensible method
// agrees the winner is A.
func UnanimousProfile(n int) *election.Profile {
	rankings := make([][]election.Candidate, n)
	for i := range rankings {
		rankings[i] = []election.Candidate{"A", "B"}
	}
	return ProfileFromRankings([]election.Candidate{"A", "B"}, rankings...)
}

// ApprovalProfile builds an approval profile over the given candidates.
func ApprovalProfile(candidates []election.Candidate, approvals ...[]election.Candidate) *election.Profile {
	ballots := make([]election.Ballot, len(approvals))
	for i, a := range approvals {
		ballots[i] = election.ApprovalBallot(a...)
	}
	p, err := election.NewProfile(election.FormatApproval, candidates, ballots)
	if err != nil {
		panic(err)
	}
	return p
}

// InMemoryLedger implements ports.ResultLedger for tests.
type InMemoryLedger struct {
	mu      sync.Mutex
	Runs    []*simulation.Result
	Records map[string][]*simulation.TrialRecord
}

// NewInMemoryLedger creates an empty in-memory ledger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{Records: make(map[string][]*simulation.TrialRecord)}
}

// SaveRun stores the result in memory.
func (l *InMemoryLedger) SaveRun(ctx context.Context, result *simulation.Result) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Runs = append(l.Runs, result)
	return nil
}

// SaveTrials stores the trial records in memory.
func (l *InMemoryLedger) SaveTrials(ctx context.Context, runID string, records []*simulation.TrialRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Records[runID] = records
	return nil
}

var _ ports.ResultLedger = (*InMemoryLedger)(nil)
