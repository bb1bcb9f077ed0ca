package analysis

import (
	"reflect"
	"testing"

	"ballotlab/domain/election"
	"ballotlab/domain/outcome"
	"ballotlab/domain/simulation"
)

func winner(method string, c election.Candidate) *outcome.Outcome {
	return outcome.WinnerOutcome(method, c)
}

func tie(method string, tied ...election.Candidate) *outcome.Outcome {
	return outcome.TieOutcome(method, tied)
}

// condorcetOutcome fabricates a recorded condorcet tally: the pairwise
// matrix marks the trial as fact-carrying, cw == "" records a cycle.
func condorcetOutcome(cw election.Candidate) *outcome.Outcome {
	pw := &outcome.Pairwise{Candidates: []election.Candidate{"A", "B"}, Wins: [][]int{{0, 1}, {0, 0}}}
	if cw == "" {
		o := outcome.NoWinnerOutcome("condorcet")
		o.Pairwise = pw
		return o
	}
	o := outcome.WinnerOutcome("condorcet", cw)
	o.Pairwise = pw
	o.CondorcetWinner = &cw
	return o
}

func record(trial int, outcomes map[string]*outcome.Outcome) *simulation.TrialRecord {
	return &simulation.TrialRecord{Trial: trial, Outcomes: outcomes}
}

func TestAggregate_AgreementExcludesTies(t *testing.T) {
	records := []*simulation.TrialRecord{
		// both elect A: agreement
		record(0, map[string]*outcome.Outcome{
			"m1": winner("m1", "A"),
			"m2": winner("m2", "A"),
		}),
		// same winner set but m2 ties: never agreement
		record(1, map[string]*outcome.Outcome{
			"m1": winner("m1", "A"),
			"m2": tie("m2", "A", "B"),
		}),
		// different winners: no agreement
		record(2, map[string]*outcome.Outcome{
			"m1": winner("m1", "A"),
			"m2": winner("m2", "B"),
		}),
		// both tie on the same set: still not agreement
		record(3, map[string]*outcome.Outcome{
			"m1": tie("m1", "A", "B"),
			"m2": tie("m2", "A", "B"),
		}),
	}

	result, err := Aggregate(records, []string{"m1", "m2"})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	if got := result.Agreement["m1"]["m2"]; got != 0.25 {
		t.Errorf("agreement = %v, want 0.25 (1 of 4 trials)", got)
	}
	if result.Agreement["m1"]["m2"] != result.Agreement["m2"]["m1"] {
		t.Error("agreement matrix is not symmetric")
	}
	if result.Agreement["m1"]["m1"] != 1.0 {
		t.Error("diagonal agreement must be 1.0")
	}

	ri, ok := result.AgreementInterval["m1|m2"]
	if !ok {
		t.Fatal("missing agreement interval for m1|m2")
	}
	if ri.Count != 1 || ri.Total != 4 {
		t.Errorf("interval counts = %d/%d, want 1/4", ri.Count, ri.Total)
	}
	if ri.Low > ri.Rate || ri.Rate > ri.High {
		t.Errorf("interval [%v, %v] does not bracket rate %v", ri.Low, ri.High, ri.Rate)
	}
	if ri.Low < 0 || ri.High > 1 {
		t.Errorf("interval [%v, %v] escapes [0, 1]", ri.Low, ri.High)
	}
}

func TestAggregate_TieRates(t *testing.T) {
	records := []*simulation.TrialRecord{
		record(0, map[string]*outcome.Outcome{"m1": winner("m1", "A")}),
		record(1, map[string]*outcome.Outcome{"m1": tie("m1", "A", "B")}),
		record(2, map[string]*outcome.Outcome{"m1": tie("m1", "B", "C")}),
		record(3, map[string]*outcome.Outcome{"m1": winner("m1", "B")}),
	}
	result, err := Aggregate(records, []string{"m1"})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if got := result.Summaries["m1"].TieRate; got != 0.5 {
		t.Errorf("tie rate = %v, want 0.5", got)
	}
}

func TestAggregate_CondorcetEfficiency(t *testing.T) {
	records := []*simulation.TrialRecord{
		// CW exists and m1 elects it
		record(0, map[string]*outcome.Outcome{
			"condorcet": condorcetOutcome("A"),
			"m1":        winner("m1", "A"),
		}),
		// CW exists but m1 elects someone else
		record(1, map[string]*outcome.Outcome{
			"condorcet": condorcetOutcome("A"),
			"m1":        winner("m1", "B"),
		}),
		// cycle: no CW, excluded from the efficiency denominator
		record(2, map[string]*outcome.Outcome{
			"condorcet": condorcetOutcome(""),
			"m1":        winner("m1", "A"),
		}),
	}

	result, err := Aggregate(records, []string{"condorcet", "m1"})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	if result.CondorcetTrials != 3 {
		t.Errorf("Condorcet trials = %d, want 3", result.CondorcetTrials)
	}
	if want := 2.0 / 3.0; result.CondorcetExistenceRate != want {
		t.Errorf("existence rate = %v, want %v", result.CondorcetExistenceRate, want)
	}
	if got := result.Summaries["m1"].CondorcetEfficiency; got != 0.5 {
		t.Errorf("m1 efficiency = %v, want 0.5 (1 of 2 CW trials)", got)
	}
	// the condorcet method itself elects the CW whenever one exists
	if got := result.Summaries["condorcet"].CondorcetEfficiency; got != 1.0 {
		t.Errorf("condorcet efficiency = %v, want 1.0", got)
	}
}

func TestAggregate_NoPairwiseMeansNoCondorcetFacts(t *testing.T) {
	records := []*simulation.TrialRecord{
		record(0, map[string]*outcome.Outcome{"m1": winner("m1", "A")}),
	}
	result, err := Aggregate(records, []string{"m1"})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if result.CondorcetTrials != 0 {
		t.Errorf("Condorcet trials = %d, want 0", result.CondorcetTrials)
	}
	if got := result.Summaries["m1"].CondorcetEfficiency; got != -1 {
		t.Errorf("efficiency = %v, want -1 when unknown", got)
	}
}

func TestAggregate_SkipsGenerationFailures(t *testing.T) {
	records := []*simulation.TrialRecord{
		record(0, map[string]*outcome.Outcome{"m1": winner("m1", "A")}),
		{Trial: 1, GenerateErr: "boom"},
	}
	result, err := Aggregate(records, []string{"m1"})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if result.Completed != 1 {
		t.Errorf("completed = %d, want 1", result.Completed)
	}
	if result.Summaries["m1"].Tallied != 1 {
		t.Errorf("tallied = %d, want 1", result.Summaries["m1"].Tallied)
	}
}

func TestAggregate_FailuresSortedAndCounted(t *testing.T) {
	records := []*simulation.TrialRecord{
		{
			Trial:    2,
			Outcomes: map[string]*outcome.Outcome{},
			Failures: map[string]string{"m2": "bad", "m1": "bad"},
		},
		{
			Trial:    0,
			Outcomes: map[string]*outcome.Outcome{},
			Failures: map[string]string{"m1": "bad"},
		},
	}
	result, err := Aggregate(records, []string{"m1", "m2"})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}

	if len(result.FailedPairs) != 3 {
		t.Fatalf("got %d failed pairs, want 3", len(result.FailedPairs))
	}
	// ordered by (trial, method)
	got := result.FailedPairs
	if got[0].Trial != 0 || got[1].Trial != 2 || got[2].Trial != 2 {
		t.Errorf("failures not ordered by trial: %+v", got)
	}
	if got[1].Method != "m1" || got[2].Method != "m2" {
		t.Errorf("failures not ordered by method within a trial: %+v", got)
	}
	if result.Summaries["m1"].Failures != 2 || result.Summaries["m2"].Failures != 1 {
		t.Errorf("failure counts = %d/%d, want 2/1",
			result.Summaries["m1"].Failures, result.Summaries["m2"].Failures)
	}
}

func TestAggregate_IRVRoundStats(t *testing.T) {
	irvWith := func(rounds int) *outcome.Outcome {
		o := winner("irv", "A")
		o.Rounds = make([]outcome.Round, rounds)
		return o
	}
	records := []*simulation.TrialRecord{
		record(0, map[string]*outcome.Outcome{"irv": irvWith(1)}),
		record(1, map[string]*outcome.Outcome{"irv": irvWith(3)}),
		record(2, map[string]*outcome.Outcome{"irv": irvWith(2)}),
	}
	result, err := Aggregate(records, []string{"irv"})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if result.IRVRounds == nil {
		t.Fatal("expected IRV round stats")
	}
	if result.IRVRounds.Mean != 2 || result.IRVRounds.Median != 2 || result.IRVRounds.Max != 3 {
		t.Errorf("round stats = %+v, want mean 2, median 2, max 3", result.IRVRounds)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	records := []*simulation.TrialRecord{
		record(0, map[string]*outcome.Outcome{
			"condorcet": condorcetOutcome("A"),
			"m1":        winner("m1", "A"),
		}),
		record(1, map[string]*outcome.Outcome{
			"condorcet": condorcetOutcome(""),
			"m1":        tie("m1", "A", "B"),
		}),
	}

	a, err := Aggregate(records, []string{"condorcet", "m1"})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	b, err := Aggregate(records, []string{"condorcet", "m1"})
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("aggregating the same records twice produced different results")
	}
}
