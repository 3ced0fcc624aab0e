// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package calibrate converts a chart's pixel geometry into dated percentage
// samples. The pixel-to-value mapping comes from the chart's own horizontal
// gridlines; the pixel-to-date mapping comes from the shared date lookup,
// which is passed in explicitly so the conversion stays a pure function.
package calibrate

import (
	"math"
	"sort"

	"github.com/datasciencecampus/mobius/pkg/types"
)

// DefaultGridSpan is the percentage spanned between a chart's outermost
// gridlines. Report charts rule lines at +80%, +40%, 0, -40% and -80%.
const DefaultGridSpan = 160.0

// gridlineMergeTolerance collapses gridlines drawn within this many pixels
// of each other into one reference line.
const gridlineMergeTolerance = 1.0

// calibration is the pixel-to-value mapping derived from gridline geometry.
type calibration struct {
	baselineY     float64 // pixel row of the 0% line
	unitsPerPixel float64 // percent per pixel, increasing upward
	trusted       bool    // false when gridlines were missing or ambiguous
}

// Sample resamples one chart's geometry into an ordered sequence of dated
// points, one per lookup entry that falls inside the series' horizontal
// extent. Lookup entries outside that extent are clipped, never extrapolated.
// When calibration is untrusted, or a sample sits far from any drawn vertex,
// the point carries the asterisk flag instead of being dropped.
//
// The returned dates are strictly increasing and lie within the lookup's
// calendar domain. Values are the signed percentages the chart encodes.
func Sample(chart types.ChartGeometry, lookup types.DateLookup, gridSpan float64) []types.SeriesPoint {
	if len(chart.Points) == 0 || len(lookup.Entries) == 0 {
		return nil
	}
	if gridSpan <= 0 {
		gridSpan = DefaultGridSpan
	}

	cal := calibrateGridlines(chart, gridSpan)

	// Work on an x-sorted copy of the polyline so lookups bracket correctly
	// regardless of draw direction.
	series := make([]types.Point, len(chart.Points))
	copy(series, chart.Points)
	sort.SliceStable(series, func(i, j int) bool { return series[i].X < series[j].X })
	minX, maxX := series[0].X, series[len(series)-1].X

	// Lookup pixels are offsets from the chart's left edge. Gridlines span
	// the full plot area, so their extent anchors the origin; a chart with
	// no gridlines falls back to the series' own left edge.
	originX := minX
	if len(chart.Gridlines) > 0 {
		originX = math.Inf(1)
		for _, g := range chart.Gridlines {
			originX = math.Min(originX, g.X0)
		}
	}

	// Half a lookup step is the slack within which a sample counts as
	// directly measured rather than interpolated.
	step := medianStep(lookup)

	var out []types.SeriesPoint
	for _, entry := range lookup.Entries {
		x := originX + entry.Pixel
		if x < minX-step/2 || x > maxX+step/2 {
			continue
		}
		y, nearest := interpolateY(series, x)
		value := (cal.baselineY - y) * cal.unitsPerPixel

		out = append(out, types.SeriesPoint{
			Date:     entry.Date,
			Value:    types.Numeric(value),
			Asterisk: !cal.trusted || nearest > step/2,
		})
	}
	return out
}

// calibrateGridlines derives the pixel-to-value mapping from the chart's
// horizontal reference lines. The middle line is the 0% baseline and the
// outermost lines span gridSpan percent. With fewer than two distinct lines
// the mapping falls back to the series' own bounding box and is untrusted,
// so every sample it produces is flagged rather than discarded.
func calibrateGridlines(chart types.ChartGeometry, gridSpan float64) calibration {
	ys := distinctGridlineYs(chart.Gridlines)

	if len(ys) < 2 {
		minY, maxY := math.Inf(1), math.Inf(-1)
		for _, p := range chart.Points {
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
		cal := calibration{baselineY: (minY + maxY) / 2}
		if maxY > minY {
			cal.unitsPerPixel = gridSpan / (maxY - minY)
		}
		return cal
	}

	top, bottom := ys[0], ys[len(ys)-1]
	mid := len(ys) / 2
	baseline := ys[mid]
	if len(ys)%2 == 0 {
		baseline = (ys[mid-1] + ys[mid]) / 2
	}
	return calibration{
		baselineY:     baseline,
		unitsPerPixel: gridSpan / (bottom - top),
		trusted:       true,
	}
}

func distinctGridlineYs(gridlines []types.Gridline) []float64 {
	ys := make([]float64, 0, len(gridlines))
	for _, g := range gridlines {
		ys = append(ys, g.Y)
	}
	sort.Float64s(ys)
	merged := ys[:0]
	for _, y := range ys {
		if len(merged) == 0 || y-merged[len(merged)-1] > gridlineMergeTolerance {
			merged = append(merged, y)
		}
	}
	return merged
}

// interpolateY returns the series' y value at pixel column x by linear
// interpolation between the bracketing vertices, plus the horizontal distance
// to the nearest actual vertex. Columns beyond the ends clamp to the end
// vertex value.
func interpolateY(series []types.Point, x float64) (y, nearestVertex float64) {
	i := sort.Search(len(series), func(i int) bool { return series[i].X >= x })

	switch {
	case i == 0:
		return series[0].Y, math.Abs(series[0].X - x)
	case i == len(series):
		last := series[len(series)-1]
		return last.Y, math.Abs(last.X - x)
	}

	a, b := series[i-1], series[i]
	nearestVertex = math.Min(x-a.X, b.X-x)
	if b.X == a.X {
		return (a.Y + b.Y) / 2, nearestVertex
	}
	t := (x - a.X) / (b.X - a.X)
	return a.Y + t*(b.Y-a.Y), nearestVertex
}

// medianStep is the median pixel spacing between consecutive lookup entries.
func medianStep(lookup types.DateLookup) float64 {
	if len(lookup.Entries) < 2 {
		return 1
	}
	steps := make([]float64, 0, len(lookup.Entries)-1)
	for i := 1; i < len(lookup.Entries); i++ {
		steps = append(steps, lookup.Entries[i].Pixel-lookup.Entries[i-1].Pixel)
	}
	sort.Float64s(steps)
	return steps[len(steps)/2]
}
