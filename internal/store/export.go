// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/datasciencecampus/mobius/internal/dates"
	"github.com/datasciencecampus/mobius/pkg/types"
)

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dates.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("stored date %q: %w", s, err)
	}
	return d, nil
}

// ExportEntry is one plot's current state in an export file: the last
// charted sample next to the declared headline and any recorded mismatch.
type ExportEntry struct {
	Country  string      `json:"country" yaml:"country"`
	Region   string      `json:"region" yaml:"region"`
	PlotName string      `json:"plot_name" yaml:"plot_name"`
	Date     string      `json:"date" yaml:"date"`
	Value    types.Value `json:"value" yaml:"value"`
	Mismatch bool        `json:"mismatch" yaml:"mismatch"`
}

// exportEntries assembles one entry per latest sample, flagged when a
// mismatch was recorded for its group.
func (s *Store) exportEntries(ctx context.Context, country string) ([]ExportEntry, error) {
	latest, err := s.LatestSamples(ctx, country)
	if err != nil {
		return nil, err
	}
	mismatches, err := s.Mismatches(ctx, country)
	if err != nil {
		return nil, err
	}

	flagged := make(map[[2]string]bool, len(mismatches))
	for _, m := range mismatches {
		flagged[[2]string{m.Region, m.PlotName}] = true
	}

	entries := make([]ExportEntry, 0, len(latest))
	for _, r := range latest {
		entries = append(entries, ExportEntry{
			Country:  r.Country,
			Region:   r.Region,
			PlotName: r.PlotName,
			Date:     r.Date.Format(dates.DateFormat),
			Value:    r.Value,
			Mismatch: flagged[[2]string{r.Region, r.PlotName}],
		})
	}
	return entries, nil
}

// ExportYAML writes a country's current state to dir/export.yaml.
func (s *Store) ExportYAML(ctx context.Context, country, dir string) error {
	entries, err := s.exportEntries(ctx, country)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "export.yaml"), data, 0o644)
}

// ExportJSON writes a country's current state to dir/export.json.
func (s *Store) ExportJSON(ctx context.Context, country, dir string) error {
	entries, err := s.exportEntries(ctx, country)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "export.json"), data, 0o644)
}
