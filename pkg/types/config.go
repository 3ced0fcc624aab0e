// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "mobius/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// StorageConfig holds settings for listing and downloading published reports
// from the public object-storage bucket.
type StorageConfig struct {
	HTTPConfig `yaml:",inline"`

	// Bucket is the object-storage bucket holding the reports
	// (default "mobility-reports").
	Bucket string `json:"bucket" yaml:"bucket"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// DownloadDir is the base directory downloads are written under; files
	// land in svgs/ or pdfs/ beneath it.
	DownloadDir string `json:"download_dir" yaml:"download_dir"`
}

// ProcessConfig holds settings for the chart extraction stage.
type ProcessConfig struct {
	// DatesFile is the path to the date-lookup CSV (pixel,date columns).
	DatesFile string `json:"dates_file" yaml:"dates_file"`

	// SavePlots enables rendering a PNG plot per extracted chart.
	SavePlots bool `json:"save_plots" yaml:"save_plots"`

	// SaveSVGs enables writing each chart's extracted geometry back out as a
	// standalone SVG fragment for inspection.
	SaveSVGs bool `json:"save_svgs" yaml:"save_svgs"`

	// GridSpan is the percentage spanned between the outermost horizontal
	// gridlines of a chart (default 160, the ±80% report convention).
	GridSpan float64 `json:"grid_span" yaml:"grid_span"`
}

// KnitConfig holds settings for the combined extract-and-reconcile stage.
type KnitConfig struct {
	ProcessConfig `yaml:",inline"`

	// Index enables persisting rows and findings to the run's SQLite store.
	Index bool `json:"index" yaml:"index"`
}
