// Package app wires the generator, the method registry, and the aggregator
// into simulation runs.
package app

import (
	"context"
	"encoding/json"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"ballotlab/adapters/methods"
	"ballotlab/domain/core"
	"ballotlab/domain/outcome"
	"ballotlab/domain/simulation"
	"ballotlab/internal"
	"ballotlab/internal/analysis"
	"ballotlab/ports"
)

// SimulationService runs N independent trials: generate one profile per
// trial, tally every requested method against that single profile, collect
// all-or-nothing trial records, and aggregate them. Trials run on parallel
// workers; determinism comes from pure per-trial seed derivation, never from
// scheduling.
type SimulationService struct {
	generator ports.Generator
	rng       ports.RNGPort
	ledger    ports.ResultLedger // optional, post-run only
	logger    *internal.Logger
}

// RunOutput bundles everything a run produces: the aggregated result and the
// per-trial records.
type RunOutput struct {
	Result  *simulation.Result
	Records []*simulation.TrialRecord
	// Elapsed is wall-clock run time.
	Elapsed time.Duration
}

// NewSimulationService creates a simulation service. The ledger may be nil
// when no persistence is configured.
func NewSimulationService(generator ports.Generator, rng ports.RNGPort, ledger ports.ResultLedger, logger *internal.Logger) *SimulationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SimulationService{
		generator: generator,
		rng:       rng,
		ledger:    ledger,
		logger:    logger,
	}
}

// Run executes the configured simulation. Configuration errors surface
// before any trial is dispatched. Per-(method, trial) tally failures are
// recorded and the run continues. Cancellation stops dispatching new trials;
// trials already in flight complete, and no partial record is ever emitted.
func (s *SimulationService) Run(ctx context.Context, cfg simulation.RunConfig) (*RunOutput, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	methodSet, err := methods.Lookup(cfg.Methods, methods.Options{
		Completion:    cfg.Completion,
		CommitteeSize: cfg.CommitteeSize,
		Apportionment: cfg.Apportionment,
	})
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	s.logger.Info("starting run: %d trials, %d methods, %d workers, seed %d", cfg.Trials, len(methodSet), workers, cfg.Seed)

	// records are keyed by trial index so aggregation is reproducible
	// regardless of completion order
	records := make([]*simulation.TrialRecord, cfg.Trials)
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	dispatched := 0
	for i := 0; i < cfg.Trials; i++ {
		// stop dispatching once cancelled; in-flight trials run to completion
		if err := sem.Acquire(ctx, 1); err != nil {
			s.logger.Warn("run cancelled after dispatching %d/%d trials", dispatched, cfg.Trials)
			break
		}
		dispatched++
		wg.Add(1)
		go func(trial int) {
			defer wg.Done()
			defer sem.Release(1)
			records[trial] = s.runTrial(trial, cfg, methodSet)
		}(i)
	}
	wg.Wait()

	completed := make([]*simulation.TrialRecord, 0, dispatched)
	for _, r := range records {
		if r != nil {
			completed = append(completed, r)
		}
	}

	result, err := analysis.Aggregate(completed, cfg.Methods)
	if err != nil {
		return nil, err
	}
	result.RunID = core.RunID(core.NewID())
	result.Trials = cfg.Trials
	result.GeneratedAt = core.Now()
	result.Fingerprint = s.fingerprint(cfg)

	s.logFailures(result)

	if s.ledger != nil {
		if err := s.ledger.SaveRun(ctx, result); err != nil {
			s.logger.Error("failed to persist run: %v", err)
		} else if err := s.ledger.SaveTrials(ctx, result.RunID.String(), completed); err != nil {
			s.logger.Error("failed to persist trial records: %v", err)
		}
	}

	return &RunOutput{
		Result:  result,
		Records: completed,
		Elapsed: time.Since(start),
	}, nil
}

// runTrial derives the trial's seed, generates its profile, and tallies
// every method against that single immutable profile, so all methods see
// byte-identical input.
func (s *SimulationService) runTrial(trial int, cfg simulation.RunConfig, methodSet []ports.Method) *simulation.TrialRecord {
	// trial work never inherits run cancellation: a dispatched trial's
	// record is all-or-nothing
	ctx := context.Background()

	record := &simulation.TrialRecord{Trial: trial}

	_, seed, err := s.rng.TrialStream(ctx, cfg.Seed, trial)
	if err != nil {
		record.GenerateErr = err.Error()
		return record
	}
	record.Seed = seed

	profile, err := s.generator.Generate(ctx, cfg.Generator, seed)
	if err != nil {
		s.logger.Error("trial %d: profile generation failed: %v", trial, err)
		record.GenerateErr = err.Error()
		return record
	}
	if cfg.KeepProfiles {
		record.Profile = profile
	}

	record.Outcomes = make(map[string]*outcome.Outcome, len(methodSet))
	for _, m := range methodSet {
		o, err := m.Tally(ctx, profile)
		if err != nil {
			// tally failures are isolated to this (method, trial) pair
			s.logger.Debug("trial %d: method %s failed: %v", trial, m.Name(), err)
			if record.Failures == nil {
				record.Failures = make(map[string]string)
			}
			record.Failures[m.Name()] = err.Error()
			continue
		}
		record.Outcomes[m.Name()] = o
	}
	return record
}

// fingerprint hashes the reproducibility-relevant run inputs.
func (s *SimulationService) fingerprint(cfg simulation.RunConfig) core.Hash {
	cfgJSON, err := json.Marshal(cfg.Generator)
	if err != nil {
		cfgJSON = nil
	}
	methodNames := make([]string, len(cfg.Methods))
	copy(methodNames, cfg.Methods)
	sort.Strings(methodNames)
	return core.RunFingerprint(cfgJSON, cfg.Seed, methodNames)
}

// logFailures emits the end-of-run failure summary.
func (s *SimulationService) logFailures(result *simulation.Result) {
	if len(result.FailedPairs) == 0 {
		s.logger.Info("run complete: %d/%d trials, no method failures", result.Completed, result.Trials)
		return
	}
	perMethod := make(map[string]int)
	for _, f := range result.FailedPairs {
		perMethod[f.Method]++
	}
	s.logger.Warn("run complete: %d/%d trials, %d method failures", result.Completed, result.Trials, len(result.FailedPairs))
	names := make([]string, 0, len(perMethod))
	for name := range perMethod {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.logger.Warn("  method %s failed in %d trials", name, perMethod[name])
	}
}
