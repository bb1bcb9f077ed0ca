package simulation

import (
	"ballotlab/domain/core"
)

// RateInterval is a rate with its 95% Wilson confidence interval.
type RateInterval struct {
	Rate  float64 `json:"rate"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
	Total int     `json:"total"`
}

// MethodSummary aggregates one method's behavior across all trials.
type MethodSummary struct {
	Method string `json:"method"`
	// Tallied counts trials where the method produced an outcome.
	Tallied  int `json:"tallied"`
	Failures int `json:"failures"`
	// TieRate is the fraction of tallied trials ending in a tied set.
	TieRate float64 `json:"tie_rate"`
	// CondorcetEfficiency is the fraction of trials with a known Condorcet
	// winner where this method elected exactly that candidate. Negative
	// when no trial carried Condorcet facts.
	CondorcetEfficiency float64 `json:"condorcet_efficiency"`
}

// RoundStats summarizes instant-runoff round counts across trials.
type RoundStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Max    float64 `json:"max"`
}

// Result is the aggregator's immutable output for one run.
type Result struct {
	RunID       core.RunID     `json:"run_id"`
	Fingerprint core.Hash      `json:"fingerprint"`
	GeneratedAt core.Timestamp `json:"generated_at"`

	Trials    int      `json:"trials"`
	Completed int      `json:"completed"`
	Methods   []string `json:"methods"`

	// Agreement[a][b] is the fraction of trials where methods a and b both
	// produced the same single winner, over trials where both tallied.
	// Ties never count as agreement.
	Agreement map[string]map[string]float64 `json:"agreement"`
	// AgreementInterval carries Wilson intervals for the same rates, keyed
	// "a|b" with a < b.
	AgreementInterval map[string]RateInterval `json:"agreement_interval"`

	Summaries map[string]MethodSummary `json:"summaries"`

	// CondorcetExistenceRate is the fraction of fact-carrying trials where a
	// Condorcet winner exists. CondorcetTrials counts those trials.
	CondorcetExistenceRate float64 `json:"condorcet_existence_rate"`
	CondorcetTrials        int     `json:"condorcet_trials"`

	// IRVRounds summarizes round counts when the irv method ran.
	IRVRounds *RoundStats `json:"irv_rounds,omitempty"`

	// FailedPairs lists every (method, trial) failure for the end-of-run
	// report.
	FailedPairs []MethodFailure `json:"failed_pairs,omitempty"`
}
