// Package excel exports an investigation report workbook: the survival
// timeline and the confirmed root causes with SME notes.
package excel

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"switchscope/domain/investigation"
	"switchscope/domain/timeline"
	"switchscope/ports"
)

const (
	timelineSheet     = "Timeline"
	confirmationSheet = "Confirmation"
)

// BuildReport assembles the report workbook. The caller owns closing it.
func BuildReport(summary ports.HCPSummary, points []timeline.MonthPoint, results investigation.Results) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetSheetName("Sheet1", timelineSheet)
	if err := writeTimeline(f, summary, points); err != nil {
		f.Close()
		return nil, fmt.Errorf("write timeline sheet: %w", err)
	}

	if _, err := f.NewSheet(confirmationSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeConfirmation(f, results); err != nil {
		f.Close()
		return nil, fmt.Errorf("write confirmation sheet: %w", err)
	}

	return f, nil
}

func writeTimeline(f *excelize.File, summary ports.HCPSummary, points []timeline.MonthPoint) error {
	setRow(f, timelineSheet, 1, "HCP", summary.Name, "Risk", string(summary.RiskTier))

	cohorts := cohortColumns(points)
	header := []interface{}{"Month"}
	for _, c := range cohorts {
		header = append(header, c)
	}
	header = append(header, "Total")
	setRow(f, timelineSheet, 3, header...)

	for i, p := range points {
		row := []interface{}{p.Month.String()}
		for _, c := range cohorts {
			row = append(row, p.Survivors[c])
		}
		row = append(row, p.Total)
		setRow(f, timelineSheet, 4+i, row...)
	}
	return nil
}

func writeConfirmation(f *excelize.File, results investigation.Results) error {
	setRow(f, confirmationSheet, 1, "Hypothesis", "Confidence", "Verdict", "Confirmed")

	confirmed := make(map[string]bool, len(results.Confirmed))
	for _, h := range results.Confirmed {
		confirmed[h.ID.String()] = true
	}

	for i, h := range results.AllHypotheses {
		setRow(f, confirmationSheet, 2+i,
			h.Title, h.Confidence, string(h.Verdict.Tier), confirmed[h.ID.String()])
	}

	notesRow := len(results.AllHypotheses) + 3
	setRow(f, confirmationSheet, notesRow, "SME Notes", results.SMENotes)
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			continue
		}
		f.SetCellValue(sheet, cell, v)
	}
}

// cohortColumns returns the cohort labels present in the series, sorted to
// match the registry's lexicographic chart ordering.
func cohortColumns(points []timeline.MonthPoint) []string {
	seen := make(map[string]bool)
	var cohorts []string
	for _, p := range points {
		for c := range p.Survivors {
			if !seen[c] {
				seen[c] = true
				cohorts = append(cohorts, c)
			}
		}
	}
	sort.Strings(cohorts)
	return cohorts
}
