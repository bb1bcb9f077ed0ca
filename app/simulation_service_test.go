package app

import (
	"context"
	"testing"

	"ballotlab/adapters/generator"
	"ballotlab/adapters/rng"
	"ballotlab/domain/core"
	"ballotlab/domain/simulation"
	"ballotlab/internal/testkit"
)

func testRunConfig(trials, workers int) simulation.RunConfig {
	return simulation.RunConfig{
		Generator: simulation.GeneratorConfig{
			Voters:     25,
			Candidates: 4,
			Model:      simulation.ModelImpartialCulture,
		},
		Seed:    42,
		Trials:  trials,
		Workers: workers,
		Methods: []string{"plurality", "borda", "irv", "condorcet", "approval_top"},
	}
}

func newTestService(ledger *testkit.InMemoryLedger) *SimulationService {
	if ledger == nil {
		return NewSimulationService(generator.New(), rng.New(), nil, nil)
	}
	return NewSimulationService(generator.New(), rng.New(), ledger, nil)
}

func TestRun_ProducesAllTrialRecords(t *testing.T) {
	out, err := newTestService(nil).Run(context.Background(), testRunConfig(20, 4))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(out.Records) != 20 {
		t.Fatalf("got %d records, want 20", len(out.Records))
	}
	for i, rec := range out.Records {
		if rec.Trial != i {
			t.Errorf("record %d carries trial index %d", i, rec.Trial)
		}
		if want := core.TrialSeed(42, i); rec.Seed != want {
			t.Errorf("trial %d seed = %d, want %d", i, rec.Seed, want)
		}
		if len(rec.Outcomes) != 5 {
			t.Errorf("trial %d has %d outcomes, want 5", i, len(rec.Outcomes))
		}
		if rec.Profile != nil {
			t.Errorf("trial %d retained its profile without KeepProfiles", i)
		}
	}
	if out.Result.Completed != 20 {
		t.Errorf("completed = %d, want 20", out.Result.Completed)
	}
	if out.Result.Fingerprint.IsEmpty() {
		t.Error("result carries no fingerprint")
	}
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	parallel, err := newTestService(nil).Run(context.Background(), testRunConfig(16, 4))
	if err != nil {
		t.Fatalf("parallel run failed: %v", err)
	}
	sequential, err := newTestService(nil).Run(context.Background(), testRunConfig(16, 1))
	if err != nil {
		t.Fatalf("sequential run failed: %v", err)
	}

	if len(parallel.Records) != len(sequential.Records) {
		t.Fatalf("record counts differ: %d vs %d", len(parallel.Records), len(sequential.Records))
	}
	for i := range parallel.Records {
		pr, sr := parallel.Records[i], sequential.Records[i]
		if pr.Seed != sr.Seed {
			t.Errorf("trial %d seeds differ: %d vs %d", i, pr.Seed, sr.Seed)
		}
		for method, po := range pr.Outcomes {
			so, ok := sr.Outcomes[method]
			if !ok {
				t.Errorf("trial %d method %s missing from sequential run", i, method)
				continue
			}
			if po.Decision != so.Decision || po.Winner != so.Winner {
				t.Errorf("trial %d method %s diverged: %s/%s vs %s/%s",
					i, method, po.Decision, po.Winner, so.Decision, so.Winner)
			}
		}
	}

	if parallel.Result.Fingerprint != sequential.Result.Fingerprint {
		t.Error("worker count changed the run fingerprint")
	}
}

func TestRun_MethodFailuresAreIsolated(t *testing.T) {
	// approval requires approval ballots; on ranking profiles it fails in
	// every trial while the ranking methods keep tallying
	cfg := testRunConfig(10, 2)
	cfg.Methods = []string{"plurality", "approval"}

	out, err := newTestService(nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, rec := range out.Records {
		if _, ok := rec.Outcomes["plurality"]; !ok {
			t.Errorf("trial %d: plurality outcome missing", i)
		}
		if _, ok := rec.Outcomes["approval"]; ok {
			t.Errorf("trial %d: approval produced an outcome on ranking ballots", i)
		}
		if rec.Failures["approval"] == "" {
			t.Errorf("trial %d: approval failure not recorded", i)
		}
	}

	s := out.Result.Summaries["approval"]
	if s.Failures != 10 || s.Tallied != 0 {
		t.Errorf("approval summary = %+v, want 10 failures, 0 tallied", s)
	}
	if s := out.Result.Summaries["plurality"]; s.Tallied != 10 || s.Failures != 0 {
		t.Errorf("plurality summary = %+v, want 10 tallied, 0 failures", s)
	}
	if len(out.Result.FailedPairs) != 10 {
		t.Errorf("got %d failed pairs, want 10", len(out.Result.FailedPairs))
	}
}

func TestRun_CancelledBeforeDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := newTestService(nil).Run(ctx, testRunConfig(50, 2))
	if err != nil {
		t.Fatalf("cancelled run errored: %v", err)
	}
	if len(out.Records) != 0 {
		t.Errorf("got %d records after pre-run cancellation, want 0", len(out.Records))
	}
	if out.Result.Completed != 0 {
		t.Errorf("completed = %d, want 0", out.Result.Completed)
	}
	if out.Result.Trials != 50 {
		t.Errorf("requested trials = %d, want 50", out.Result.Trials)
	}
}

func TestRun_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*simulation.RunConfig)
	}{
		{"no trials", func(c *simulation.RunConfig) { c.Trials = 0 }},
		{"no methods", func(c *simulation.RunConfig) { c.Methods = nil }},
		{"unknown method", func(c *simulation.RunConfig) { c.Methods = []string{"star"} }},
		{"no voters", func(c *simulation.RunConfig) { c.Generator.Voters = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testRunConfig(5, 1)
			tt.mutate(&cfg)
			if _, err := newTestService(nil).Run(context.Background(), cfg); !core.IsInvalidConfiguration(err) {
				t.Errorf("expected invalid-configuration error, got %v", err)
			}
		})
	}
}

func TestRun_PersistsToLedger(t *testing.T) {
	ledger := testkit.NewInMemoryLedger()
	out, err := newTestService(ledger).Run(context.Background(), testRunConfig(5, 2))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(ledger.Runs) != 1 {
		t.Fatalf("ledger holds %d runs, want 1", len(ledger.Runs))
	}
	if ledger.Runs[0].RunID != out.Result.RunID {
		t.Error("persisted run ID differs from returned result")
	}
	if got := len(ledger.Records[out.Result.RunID.String()]); got != 5 {
		t.Errorf("ledger holds %d trial records, want 5", got)
	}
}

func TestRun_KeepProfiles(t *testing.T) {
	cfg := testRunConfig(3, 1)
	cfg.KeepProfiles = true

	out, err := newTestService(nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i, rec := range out.Records {
		if rec.Profile == nil {
			t.Errorf("trial %d dropped its profile despite KeepProfiles", i)
		} else if rec.Profile.BallotCount() != 25 {
			t.Errorf("trial %d profile has %d ballots, want 25", i, rec.Profile.BallotCount())
		}
	}
}
