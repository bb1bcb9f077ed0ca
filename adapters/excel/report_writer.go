// Package excel exports a run's aggregated result as an xlsx workbook for
// offline inspection. Output only; the simulation core never reads it back.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ballotlab/domain/simulation"
)

// ReportWriter writes simulation results as xlsx workbooks.
type ReportWriter struct{}

// NewReportWriter creates a report writer.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// Write renders the workbook to the given path: a Summary sheet, the
// pairwise Agreement matrix, and per-method rows.
func (w *ReportWriter) Write(result *simulation.Result, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummary(f, result); err != nil {
		return err
	}
	if err := w.writeAgreement(f, result); err != nil {
		return err
	}
	if err := w.writeMethods(f, result); err != nil {
		return err
	}

	// drop the default sheet left over from NewFile
	_ = f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func (w *ReportWriter) writeSummary(f *excelize.File, result *simulation.Result) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Run ID", result.RunID.String()},
		{"Fingerprint", result.Fingerprint.String()},
		{"Generated at", result.GeneratedAt.Time().Format("2006-01-02 15:04:05")},
		{"Trials requested", result.Trials},
		{"Trials completed", result.Completed},
		{"Condorcet trials", result.CondorcetTrials},
		{"Condorcet existence rate", result.CondorcetExistenceRate},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func (w *ReportWriter) writeAgreement(f *excelize.File, result *simulation.Result) error {
	const sheet = "Agreement"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := make([]interface{}, 0, len(result.Methods)+1)
	header = append(header, "")
	for _, m := range result.Methods {
		header = append(header, m)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write agreement header: %w", err)
	}

	for i, a := range result.Methods {
		row := make([]interface{}, 0, len(result.Methods)+1)
		row = append(row, a)
		for _, b := range result.Methods {
			row = append(row, result.Agreement[a][b])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write agreement row for %s: %w", a, err)
		}
	}
	return nil
}

func (w *ReportWriter) writeMethods(f *excelize.File, result *simulation.Result) error {
	const sheet = "Methods"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := []interface{}{"Method", "Tallied", "Failures", "Tie rate", "Condorcet efficiency"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write methods header: %w", err)
	}
	for i, m := range result.Methods {
		s := result.Summaries[m]
		row := []interface{}{s.Method, s.Tallied, s.Failures, s.TieRate, s.CondorcetEfficiency}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write method row %s: %w", m, err)
		}
	}
	return nil
}
