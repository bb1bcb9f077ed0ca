// Package report renders a run's aggregated result as a human-readable
// document. Serialization stays out of the simulation core; this package is
// an output collaborator invoked after the run completes.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"ballotlab/domain/simulation"
)

// Markdown builds the run report as markdown.
func Markdown(result *simulation.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Simulation run %s\n\n", result.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", result.GeneratedAt.Time().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Fingerprint: `%s`\n", result.Fingerprint)
	fmt.Fprintf(&b, "- Trials: %d requested, %d completed\n", result.Trials, result.Completed)
	fmt.Fprintf(&b, "- Methods: %s\n\n", strings.Join(result.Methods, ", "))

	b.WriteString("## Method summaries\n\n")
	b.WriteString("| Method | Tallied | Failures | Tie rate | Condorcet efficiency |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, m := range result.Methods {
		s := result.Summaries[m]
		eff := "n/a"
		if s.CondorcetEfficiency >= 0 {
			eff = fmt.Sprintf("%.4f", s.CondorcetEfficiency)
		}
		fmt.Fprintf(&b, "| %s | %d | %d | %.4f | %s |\n", s.Method, s.Tallied, s.Failures, s.TieRate, eff)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Condorcet facts\n\n")
	if result.CondorcetTrials > 0 {
		fmt.Fprintf(&b, "A Condorcet winner existed in %.2f%% of %d trials carrying a pairwise matrix.\n\n",
			result.CondorcetExistenceRate*100, result.CondorcetTrials)
	} else {
		b.WriteString("No requested method produced a pairwise matrix, so Condorcet statistics are unavailable.\n\n")
	}

	b.WriteString("## Pairwise agreement\n\n")
	b.WriteString("Fraction of trials where both methods named the same single winner; ties never count.\n\n")
	b.WriteString("| |")
	for _, m := range result.Methods {
		fmt.Fprintf(&b, " %s |", m)
	}
	b.WriteString("\n|---|")
	for range result.Methods {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for _, a := range result.Methods {
		fmt.Fprintf(&b, "| %s |", a)
		for _, c := range result.Methods {
			fmt.Fprintf(&b, " %.4f |", result.Agreement[a][c])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if result.IRVRounds != nil {
		b.WriteString("## Instant-runoff rounds\n\n")
		fmt.Fprintf(&b, "mean %.2f, median %.1f, stddev %.2f, max %.0f\n\n",
			result.IRVRounds.Mean, result.IRVRounds.Median, result.IRVRounds.StdDev, result.IRVRounds.Max)
	}

	if len(result.FailedPairs) > 0 {
		b.WriteString("## Failures\n\n")
		perMethod := make(map[string]int)
		for _, f := range result.FailedPairs {
			perMethod[f.Method]++
		}
		names := make([]string, 0, len(perMethod))
		for n := range perMethod {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(&b, "- %s: %d failed trials\n", n, perMethod[n])
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the markdown report to HTML for the dashboard.
func HTML(result *simulation.Result) []byte {
	md := []byte(Markdown(result))
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.ToHTML(md, p, renderer)
}
