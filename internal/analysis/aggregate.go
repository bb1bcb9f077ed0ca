// Package analysis computes summary statistics over completed trial records.
// It is a pure consumer: no tally is ever re-run, and aggregating the same
// records twice yields identical results.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"ballotlab/domain/simulation"
)

// Aggregate reduces trial records to the run's summary statistics. Tie
// outcomes are a distinct outcome class throughout: a tie never counts as
// agreement between methods and never counts as electing the Condorcet
// winner.
func Aggregate(records []*simulation.TrialRecord, methodNames []string) (*simulation.Result, error) {
	methods := make([]string, len(methodNames))
	copy(methods, methodNames)
	sort.Strings(methods)

	result := &simulation.Result{
		Methods:           methods,
		Agreement:         make(map[string]map[string]float64, len(methods)),
		AgreementInterval: make(map[string]simulation.RateInterval),
		Summaries:         make(map[string]simulation.MethodSummary, len(methods)),
	}

	tallied := make(map[string]int, len(methods))
	ties := make(map[string]int, len(methods))
	failures := make(map[string]int, len(methods))
	electedCW := make(map[string]int, len(methods))

	cwKnownTrials := 0
	cwExistsTrials := 0
	var irvRounds []float64

	for _, rec := range records {
		if rec.GenerateErr != "" {
			continue
		}
		result.Completed++

		for method, reason := range rec.Failures {
			failures[method]++
			result.FailedPairs = append(result.FailedPairs, simulation.MethodFailure{
				Method: method,
				Trial:  rec.Trial,
				Reason: reason,
			})
		}

		cw, known := rec.CondorcetFacts()
		if known {
			cwKnownTrials++
			if cw != nil {
				cwExistsTrials++
			}
		}

		for _, method := range methods {
			o, ok := rec.Outcomes[method]
			if !ok {
				continue
			}
			tallied[method]++
			if o.IsTie() {
				ties[method]++
			}
			if known && cw != nil {
				if w, single := o.SingleWinner(); single && w == *cw {
					electedCW[method]++
				}
			}
			if method == "irv" && len(o.Rounds) > 0 {
				irvRounds = append(irvRounds, float64(len(o.Rounds)))
			}
		}
	}

	// deterministic failure ordering for the end-of-run report
	sort.Slice(result.FailedPairs, func(i, j int) bool {
		if result.FailedPairs[i].Trial != result.FailedPairs[j].Trial {
			return result.FailedPairs[i].Trial < result.FailedPairs[j].Trial
		}
		return result.FailedPairs[i].Method < result.FailedPairs[j].Method
	})

	for _, method := range methods {
		summary := simulation.MethodSummary{
			Method:              method,
			Tallied:             tallied[method],
			Failures:            failures[method],
			CondorcetEfficiency: -1,
		}
		if tallied[method] > 0 {
			summary.TieRate = float64(ties[method]) / float64(tallied[method])
		}
		if cwExistsTrials > 0 {
			summary.CondorcetEfficiency = float64(electedCW[method]) / float64(cwExistsTrials)
		}
		result.Summaries[method] = summary
	}

	result.CondorcetTrials = cwKnownTrials
	if cwKnownTrials > 0 {
		result.CondorcetExistenceRate = float64(cwExistsTrials) / float64(cwKnownTrials)
	}

	aggregateAgreement(records, methods, result)

	if len(irvRounds) > 0 {
		rs, err := roundStats(irvRounds)
		if err != nil {
			return nil, err
		}
		result.IRVRounds = rs
	}

	return result, nil
}

// aggregateAgreement fills the pairwise method-agreement matrix: the
// fraction of trials where both methods named the same single winner, over
// trials where both tallied.
func aggregateAgreement(records []*simulation.TrialRecord, methods []string, result *simulation.Result) {
	for _, a := range methods {
		result.Agreement[a] = make(map[string]float64, len(methods))
		result.Agreement[a][a] = 1.0
	}

	for i := 0; i < len(methods); i++ {
		for j := i + 1; j < len(methods); j++ {
			a, b := methods[i], methods[j]
			both, agree := 0, 0
			for _, rec := range records {
				if rec.GenerateErr != "" {
					continue
				}
				oa, oka := rec.Outcomes[a]
				ob, okb := rec.Outcomes[b]
				if !oka || !okb {
					continue
				}
				both++
				wa, sa := oa.SingleWinner()
				wb, sb := ob.SingleWinner()
				if sa && sb && wa == wb {
					agree++
				}
			}
			rate := 0.0
			if both > 0 {
				rate = float64(agree) / float64(both)
			}
			result.Agreement[a][b] = rate
			result.Agreement[b][a] = rate
			result.AgreementInterval[pairKey(a, b)] = wilsonInterval(agree, both)
		}
	}
}

func pairKey(a, b string) string {
	return fmt.Sprintf("%s|%s", a, b)
}

// wilsonInterval is the 95% Wilson score interval for a binomial rate. It
// behaves sensibly at small trial counts where the normal approximation
// collapses.
func wilsonInterval(count, total int) simulation.RateInterval {
	ri := simulation.RateInterval{Count: count, Total: total}
	if total == 0 {
		return ri
	}
	p := float64(count) / float64(total)
	ri.Rate = p

	z := distuv.UnitNormal.Quantile(0.975)
	n := float64(total)
	denom := 1 + z*z/n
	center := (p + z*z/(2*n)) / denom
	half := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n)) / denom

	ri.Low = math.Max(0, center-half)
	ri.High = math.Min(1, center+half)
	return ri
}

// roundStats summarizes instant-runoff round counts.
func roundStats(rounds []float64) (*simulation.RoundStats, error) {
	mean, err := stats.Mean(rounds)
	if err != nil {
		return nil, fmt.Errorf("round mean: %w", err)
	}
	median, err := stats.Median(rounds)
	if err != nil {
		return nil, fmt.Errorf("round median: %w", err)
	}
	stdDev, err := stats.StandardDeviation(rounds)
	if err != nil {
		return nil, fmt.Errorf("round stddev: %w", err)
	}
	max, err := stats.Max(rounds)
	if err != nil {
		return nil, fmt.Errorf("round max: %w", err)
	}
	return &simulation.RoundStats{Mean: mean, Median: median, StdDev: stdDev, Max: max}, nil
}
