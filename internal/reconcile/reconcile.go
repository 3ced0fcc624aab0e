// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile merges the tabulated series rows with the headline rows
// and checks that each plot's most recent charted sample agrees with the
// figure the report's text declares. This is the pipeline's one correctness
// gate: upstream stages may degrade quietly, but every inconsistency that
// reaches this stage is surfaced, never swallowed.
package reconcile

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/datasciencecampus/mobius/pkg/types"
)

// Result holds the merged table and the findings derived from it.
type Result struct {
	// Rows is the full outer join of the series and headline tables, in
	// plot-index order then date order.
	Rows []types.ReconciledRow

	// PlotsWithData counts (region, plot_name) groups that had both a
	// non-missing sample and a declared headline.
	PlotsWithData int

	// Mismatches lists every group whose last sample, rounded to the
	// nearest integer, disagrees with its headline.
	Mismatches []types.Mismatch
}

// Reconcile outer-joins series rows and headline rows on the shared plot
// index. Neither side's unmatched rows are dropped: a headline with no chart
// keeps empty series fields, and a chart with no headline keeps a missing
// headline. It then verifies each group's last non-missing sample against
// the declared headline.
func Reconcile(series []types.SeriesRow, headlines []types.HeadlineRow) Result {
	byPlot := make(map[int]types.HeadlineRow, len(headlines))
	for _, h := range headlines {
		byPlot[h.PlotNum] = h
	}

	byGraph := make(map[int][]types.SeriesRow)
	for _, s := range series {
		byGraph[s.GraphNum] = append(byGraph[s.GraphNum], s)
	}

	keys := make([]int, 0, len(byPlot)+len(byGraph))
	seen := make(map[int]bool)
	for k := range byGraph {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range byPlot {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Ints(keys)

	var result Result
	for _, key := range keys {
		h, hasHeadline := byPlot[key]
		rows, hasSeries := byGraph[key]

		if !hasSeries {
			// Headline with no matching chart survives with empty series fields.
			result.Rows = append(result.Rows, types.ReconciledRow{
				Country:     h.Country,
				Region:      h.Region,
				PlotName:    h.PlotName,
				PageNum:     h.PageNum,
				PlotNum:     h.PlotNum,
				Asterisk:    h.Asterisk,
				Headline:    h.Headline,
				Value:       types.Missing(),
				HasHeadline: true,
			})
			continue
		}

		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

		for _, s := range rows {
			r := types.ReconciledRow{
				Country:     s.Country,
				Region:      s.Region,
				PlotName:    s.PlotName,
				PlotNum:     s.GraphNum,
				Asterisk:    s.Asterisk,
				Date:        s.Date,
				Value:       s.Value,
				Headline:    types.Missing(),
				HasSeries:   true,
				HasHeadline: hasHeadline,
			}
			if hasHeadline {
				// The text side is authoritative for naming; the chart
				// side's labels are heuristic.
				r.Country = h.Country
				r.Region = h.Region
				r.PlotName = h.PlotName
				r.PageNum = h.PageNum
				r.Headline = h.Headline
			}
			result.Rows = append(result.Rows, r)
		}
	}

	result.PlotsWithData, result.Mismatches = findMismatches(result.Rows)
	return result
}

// findMismatches groups rows by (region, plot_name), keeps groups where both
// a sample value and a headline are present, and compares the
// chronologically last sample, rounded, with the headline. Disagreements are
// collected as findings, not raised.
func findMismatches(rows []types.ReconciledRow) (withData int, mismatches []types.Mismatch) {
	type groupKey struct{ region, plotName string }
	last := make(map[groupKey]types.ReconciledRow)
	var order []groupKey

	for _, r := range rows {
		if !r.Value.Valid || !r.Headline.Valid {
			continue
		}
		k := groupKey{r.Region, r.PlotName}
		prev, ok := last[k]
		if !ok {
			order = append(order, k)
			last[k] = r
			continue
		}
		if !r.Date.Before(prev.Date) {
			last[k] = r
		}
	}

	for _, k := range order {
		r := last[k]
		withData++
		if math.Round(r.Value.Num) != r.Headline.Num {
			mismatches = append(mismatches, types.Mismatch{
				Country:  r.Country,
				Region:   r.Region,
				PlotName: r.PlotName,
				Value:    r.Value.Num,
				Headline: r.Headline.Num,
			})
		}
	}
	return withData, mismatches
}

// Report prints the validation summary and a triage table of mismatches.
func Report(result Result, w io.Writer) {
	fmt.Fprintf(w, "There are %d plots with data\n", result.PlotsWithData)
	fmt.Fprintf(w, "There are %d plots where the last data point doesn't match the headline figure\n", len(result.Mismatches))
	if len(result.Mismatches) == 0 {
		return
	}

	fmt.Fprintf(w, "| %-10s | %-24s | %-20s | %8s | %8s |\n", "country", "region", "plot_name", "value", "headline")
	fmt.Fprintf(w, "|%s|%s|%s|%s|%s|\n",
		dashes(12), dashes(26), dashes(22), dashes(10), dashes(10))
	for _, m := range result.Mismatches {
		fmt.Fprintf(w, "| %-10s | %-24s | %-20s | %8.2f | %8.0f |\n",
			m.Country, m.Region, m.PlotName, m.Value, m.Headline)
	}
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
