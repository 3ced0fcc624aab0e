// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Point is a position in SVG pixel space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Gridline is a horizontal axis reference line found inside a chart group.
// Y is the line's pixel row; X0 and X1 bound its horizontal extent.
type Gridline struct {
	Y  float64 `json:"y" yaml:"y"`
	X0 float64 `json:"x0" yaml:"x0"`
	X1 float64 `json:"x1" yaml:"x1"`
}

// ChartGeometry is the raw drawn geometry of one chart, before any unit
// conversion. ChartIndex is assigned in page order then reading order and is
// the sole key joining a chart to its tabulated series and its headline text;
// re-parsing the same document must reproduce it exactly.
type ChartGeometry struct {
	// ChartIndex is the global chart counter across all pages.
	ChartIndex int `json:"chart_index" yaml:"chart_index"`

	// Region is the region label attached to the chart's group, when the
	// source carries one. May be empty.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Points is the series polyline in pixel space, in draw order.
	// Empty when the chart had no extractable series path.
	Points []Point `json:"points" yaml:"points"`

	// Gridlines are the horizontal reference lines used for value calibration.
	Gridlines []Gridline `json:"gridlines,omitempty" yaml:"gridlines,omitempty"`
}

// SeriesPoint is one dated sample produced by calibrating and resampling a
// chart's geometry against the date lookup.
type SeriesPoint struct {
	// Date is the calendar date the pixel column maps to.
	Date time.Time `json:"date" yaml:"date"`

	// Value is the signed percentage deviation the chart encodes.
	Value Value `json:"value" yaml:"value"`

	// Asterisk marks interpolated or low-confidence samples: calibration
	// fell back, or the sample sits far from any drawn vertex.
	Asterisk bool `json:"asterisk" yaml:"asterisk"`
}

// SeriesRow is the flattened, persisted form of one sample: a SeriesPoint
// plus the identifying metadata shared by every sample of its chart.
type SeriesRow struct {
	Country  string    `json:"country" yaml:"country"`
	Region   string    `json:"region" yaml:"region"`
	PlotName string    `json:"plot_name" yaml:"plot_name"`
	GraphNum int       `json:"graph_num" yaml:"graph_num"`
	Date     time.Time `json:"date" yaml:"date"`
	Value    Value     `json:"value" yaml:"value"`
	Asterisk bool      `json:"asterisk" yaml:"asterisk"`
}

// DateLookupEntry maps one pixel column to a calendar date.
type DateLookupEntry struct {
	Pixel float64   `json:"pixel" yaml:"pixel"`
	Date  time.Time `json:"date" yaml:"date"`
}

// DateLookup is the calendar-alignment table shared read-only by every
// calibration. Entries are strictly increasing in both pixel and date.
type DateLookup struct {
	Entries []DateLookupEntry `json:"entries" yaml:"entries"`
}

// Min returns the first (smallest-pixel) entry. The lookup must be non-empty.
func (l DateLookup) Min() DateLookupEntry { return l.Entries[0] }

// Max returns the last (largest-pixel) entry. The lookup must be non-empty.
func (l DateLookup) Max() DateLookupEntry { return l.Entries[len(l.Entries)-1] }
