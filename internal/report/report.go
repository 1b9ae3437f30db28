// Package report writes strategy comparisons to an xlsx workbook: one
// summary sheet and one sheet of per-game results per strategy.
package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

const summarySheet = "Summary"

var summaryHeader = []any{"Strategy", "Games", "Solved", "Mean", "Median", "StdDev", "Max"}

// WriteXLSX saves summaries to path.
func WriteXLSX(path string, summaries []solver.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := setRow(f, summarySheet, 1, summaryHeader); err != nil {
		return err
	}
	for i, s := range summaries {
		row := []any{s.Strategy, s.Games, s.Solved, s.Mean, s.Median, s.StdDev, s.Max}
		if err := setRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}

	// histogram block under the summary
	hist := len(summaries) + 3
	if err := setRow(f, summarySheet, hist, []any{"Guesses"}); err != nil {
		return err
	}
	buckets := histogramBuckets(summaries)
	for i, s := range summaries {
		cell, err := excelize.CoordinatesToCellName(i+2, hist)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, cell, s.Strategy); err != nil {
			return err
		}
	}
	for r, b := range buckets {
		row := []any{b}
		for _, s := range summaries {
			row = append(row, s.Histogram[b])
		}
		if err := setRow(f, summarySheet, hist+1+r, row); err != nil {
			return err
		}
	}

	for _, s := range summaries {
		name := s.Strategy
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		if err := setRow(f, name, 1, []any{"Secret", "Guesses", "Solved"}); err != nil {
			return err
		}
		for i, g := range s.Results {
			if err := setRow(f, name, i+2, []any{g.Secret, g.Guesses, g.Solved}); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func histogramBuckets(summaries []solver.Summary) []int {
	seen := map[int]bool{}
	var out []int
	for _, s := range summaries {
		for b := range s.Histogram {
			if !seen[b] {
				seen[b] = true
				out = append(out, b)
			}
		}
	}
	sort.Ints(out)
	return out
}
