// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plotpng renders sampled chart series to PNG files. It satisfies
// tabulate.Plotter and exists purely for human inspection of extractions.
package plotpng

import (
	"fmt"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/datasciencecampus/mobius/pkg/types"
)

// Renderer renders series plots with go-chart.
type Renderer struct {
	// Width and Height are the output image dimensions in pixels.
	// Zero values use 800x300.
	Width  int
	Height int
}

// Plot writes a PNG time-series plot of points to outPath.
func (r Renderer) Plot(title string, points []types.SeriesPoint, outPath string) error {
	if len(points) == 0 {
		return fmt.Errorf("no points to plot")
	}

	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		if !p.Value.Valid {
			continue
		}
		xs = append(xs, p.Date)
		ys = append(ys, p.Value.Num)
	}
	if len(xs) == 0 {
		return fmt.Errorf("no non-missing points to plot")
	}
	// go-chart needs at least two X values.
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	width, height := r.Width, r.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 300
	}

	graph := chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    title,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: 1.5,
					StrokeColor: drawing.ColorFromHex("4285f4"),
				},
			},
		},
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating plot file: %w", err)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering plot: %w", err)
	}
	return f.Close()
}
