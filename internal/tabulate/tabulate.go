// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabulate flattens sampled chart series into the run's tabular
// form: one SeriesRow per (chart, sample) pair, ordered by chart index then
// date. Optional per-chart plot rendering happens through an injected
// Plotter so the core transform stays a pure function from geometry to rows.
package tabulate

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/datasciencecampus/mobius/internal/calibrate"
	"github.com/datasciencecampus/mobius/pkg/types"
)

// Plotter renders one chart's sampled series to an image file. Rendering is
// purely for human inspection; implementations must not modify points.
type Plotter interface {
	Plot(title string, points []types.SeriesPoint, outPath string) error
}

// Options configures a tabulation run.
type Options struct {
	// Country is the country code resolved from the source filename.
	Country string

	// GridSpan is passed through to calibration (0 means the default).
	GridSpan float64

	// Plotter, when non-nil, renders each non-empty chart. PlotDir is the
	// directory rendered files are written to.
	Plotter Plotter
	PlotDir string
}

// CountryFromPath resolves the country code a downloaded report file encodes
// in its base name (e.g. "svgs/GB.svg" is country GB).
func CountryFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Tabulate calibrates and samples every chart and emits the flat series
// table. Charts appear in chart-index order and rows within a chart in date
// order. Charts with no geometry contribute no rows but are reported to w so
// gaps are visible. Plot rendering failures are warnings, never row loss.
func Tabulate(charts []types.ChartGeometry, lookup types.DateLookup, opts Options, w io.Writer) []types.SeriesRow {
	var rows []types.SeriesRow
	for _, chart := range charts {
		points := calibrate.Sample(chart, lookup, opts.GridSpan)
		if len(points) == 0 {
			fmt.Fprintf(w, "warning: chart %d has no extractable series\n", chart.ChartIndex)
			continue
		}

		region := chart.Region
		plotName := types.PlotNameFor(chart.ChartIndex)

		for _, p := range points {
			rows = append(rows, types.SeriesRow{
				Country:  opts.Country,
				Region:   region,
				PlotName: plotName,
				GraphNum: chart.ChartIndex,
				Date:     p.Date,
				Value:    p.Value,
				Asterisk: p.Asterisk,
			})
		}

		if opts.Plotter != nil {
			name := fmt.Sprintf("chart_%03d.png", chart.ChartIndex)
			title := strings.TrimSpace(region + " " + plotName)
			if err := opts.Plotter.Plot(title, points, filepath.Join(opts.PlotDir, name)); err != nil {
				fmt.Fprintf(w, "warning: plotting chart %d: %v\n", chart.ChartIndex, err)
			}
		}
	}
	return rows
}
