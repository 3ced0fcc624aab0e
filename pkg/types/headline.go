// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HeadlineRow is one summary figure located in a report's text: the single
// percentage the prose declares for a region/plot, keyed by the same
// sequential index convention the chart extractor uses.
type HeadlineRow struct {
	Country  string `json:"country" yaml:"country"`
	Region   string `json:"region" yaml:"region"`
	PlotName string `json:"plot_name" yaml:"plot_name"`

	// PageNum is the 1-indexed page the headline was found on.
	PageNum int `json:"page_num" yaml:"page_num"`

	// PlotNum aligns with SeriesRow.GraphNum: plots are numbered in page
	// order then reading order across the whole document.
	PlotNum int `json:"plot_num" yaml:"plot_num"`

	// Headline is the declared percentage; missing when the report printed
	// the not-enough-data sentinel instead of a figure.
	Headline Value `json:"headline" yaml:"headline"`

	// Asterisk is set when the source text starred the figure.
	Asterisk bool `json:"asterisk" yaml:"asterisk"`
}

// ReconciledRow is one row of the outer join between the series table and the
// headline table. Either side may be absent: a headline with no chart keeps
// empty series fields, and vice versa.
type ReconciledRow struct {
	Country  string    `json:"country" yaml:"country"`
	Region   string    `json:"region" yaml:"region"`
	PlotName string    `json:"plot_name" yaml:"plot_name"`
	PageNum  int       `json:"page_num" yaml:"page_num"`
	PlotNum  int       `json:"plot_num" yaml:"plot_num"`
	Asterisk bool      `json:"asterisk" yaml:"asterisk"`
	Date     time.Time `json:"date" yaml:"date"`
	Value    Value     `json:"value" yaml:"value"`
	Headline Value     `json:"headline" yaml:"headline"`

	// HasSeries and HasHeadline record which side of the join the row came
	// from, so empty fields are distinguishable from zero values.
	HasSeries   bool `json:"has_series" yaml:"has_series"`
	HasHeadline bool `json:"has_headline" yaml:"has_headline"`
}

// Mismatch is one reconciliation finding: a plot whose last charted sample,
// rounded to the nearest integer, disagrees with its declared headline.
type Mismatch struct {
	Country  string  `json:"country" yaml:"country"`
	Region   string  `json:"region" yaml:"region"`
	PlotName string  `json:"plot_name" yaml:"plot_name"`
	Value    float64 `json:"value" yaml:"value"`
	Headline float64 `json:"headline" yaml:"headline"`
}
