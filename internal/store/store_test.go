package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/datasciencecampus/mobius/internal/dates"
	"github.com/datasciencecampus/mobius/pkg/types"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dates.DateFormat, s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func sampleRun(t *testing.T) ([]types.SeriesRow, []types.HeadlineRow, []types.Mismatch) {
	series := []types.SeriesRow{
		{Country: "GB", Region: "Norfolk", PlotName: "Retail & recreation", GraphNum: 0, Date: day(t, "2021-01-01"), Value: types.Numeric(-45)},
		{Country: "GB", Region: "Norfolk", PlotName: "Retail & recreation", GraphNum: 0, Date: day(t, "2021-01-08"), Value: types.Numeric(-40.2)},
		{Country: "GB", Region: "Norfolk", PlotName: "Parks", GraphNum: 2, Date: day(t, "2021-01-08"), Value: types.Missing(), Asterisk: true},
	}
	headlines := []types.HeadlineRow{
		{Country: "GB", Region: "Norfolk", PlotName: "Retail & recreation", PageNum: 1, PlotNum: 0, Headline: types.Numeric(-40)},
	}
	mismatches := []types.Mismatch{
		{Country: "GB", Region: "Norfolk", PlotName: "Retail & recreation", Value: -40.2, Headline: -45},
	}
	return series, headlines, mismatches
}

func TestPutRunAndLatestSamples(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	series, headlines, mismatches := sampleRun(t)
	if err := s.PutRun(ctx, "GB", series, headlines, mismatches); err != nil {
		t.Fatalf("PutRun: %v", err)
	}

	latest, err := s.LatestSamples(ctx, "GB")
	if err != nil {
		t.Fatalf("LatestSamples: %v", err)
	}
	// The Parks group has only a missing sample, so one group remains.
	if len(latest) != 1 {
		t.Fatalf("got %d latest samples, want 1: %+v", len(latest), latest)
	}
	got := latest[0]
	if got.Region != "Norfolk" || got.PlotName != "Retail & recreation" {
		t.Fatalf("wrong group: %+v", got)
	}
	if !got.Date.Equal(day(t, "2021-01-08")) || !got.Value.Valid || got.Value.Num != -40.2 {
		t.Fatalf("latest sample = %+v, want the 2021-01-08 value", got)
	}
}

func TestPutRunReplacesPreviousRun(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	series, headlines, mismatches := sampleRun(t)
	if err := s.PutRun(ctx, "GB", series, headlines, mismatches); err != nil {
		t.Fatalf("first PutRun: %v", err)
	}

	// A second run over new inputs fully supersedes the first; stale rows
	// and findings must not linger.
	fresh := []types.SeriesRow{
		{Country: "GB", Region: "Suffolk", PlotName: "Workplaces", GraphNum: 4, Date: day(t, "2021-02-01"), Value: types.Numeric(-38)},
	}
	if err := s.PutRun(ctx, "GB", fresh, nil, nil); err != nil {
		t.Fatalf("second PutRun: %v", err)
	}

	latest, err := s.LatestSamples(ctx, "GB")
	if err != nil {
		t.Fatalf("LatestSamples: %v", err)
	}
	if len(latest) != 1 || latest[0].Region != "Suffolk" {
		t.Fatalf("previous run leaked through: %+v", latest)
	}

	found, err := s.Mismatches(ctx, "GB")
	if err != nil {
		t.Fatalf("Mismatches: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("stale mismatches remain: %+v", found)
	}
}

func TestPutRunIsolatesCountries(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	series, headlines, mismatches := sampleRun(t)
	if err := s.PutRun(ctx, "GB", series, headlines, mismatches); err != nil {
		t.Fatalf("PutRun GB: %v", err)
	}
	fr := []types.SeriesRow{
		{Country: "FR", Region: "Bretagne", PlotName: "Parks", GraphNum: 2, Date: day(t, "2021-01-08"), Value: types.Numeric(12)},
	}
	if err := s.PutRun(ctx, "FR", fr, nil, nil); err != nil {
		t.Fatalf("PutRun FR: %v", err)
	}

	gb, err := s.LatestSamples(ctx, "GB")
	if err != nil {
		t.Fatalf("LatestSamples GB: %v", err)
	}
	if len(gb) != 1 || gb[0].Country != "GB" {
		t.Fatalf("GB samples polluted: %+v", gb)
	}
}

func TestMismatchesRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	series, headlines, mismatches := sampleRun(t)
	if err := s.PutRun(ctx, "GB", series, headlines, mismatches); err != nil {
		t.Fatalf("PutRun: %v", err)
	}

	got, err := s.Mismatches(ctx, "GB")
	if err != nil {
		t.Fatalf("Mismatches: %v", err)
	}
	if len(got) != 1 || got[0] != mismatches[0] {
		t.Fatalf("got %+v, want %+v", got, mismatches)
	}
}

func TestExports(t *testing.T) {
	s, dir := openTestStore(t)
	ctx := context.Background()

	series, headlines, mismatches := sampleRun(t)
	if err := s.PutRun(ctx, "GB", series, headlines, mismatches); err != nil {
		t.Fatalf("PutRun: %v", err)
	}

	if err := s.ExportYAML(ctx, "GB", dir); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	if err := s.ExportJSON(ctx, "GB", dir); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	y, err := os.ReadFile(filepath.Join(dir, "export.yaml"))
	if err != nil {
		t.Fatalf("reading export.yaml: %v", err)
	}
	if !strings.Contains(string(y), "plot_name: Retail & recreation") {
		t.Fatalf("yaml export missing plot name:\n%s", y)
	}
	if !strings.Contains(string(y), "mismatch: true") {
		t.Fatalf("yaml export missing mismatch flag:\n%s", y)
	}

	j, err := os.ReadFile(filepath.Join(dir, "export.json"))
	if err != nil {
		t.Fatalf("reading export.json: %v", err)
	}
	if !strings.Contains(string(j), `"value": -40.2`) {
		t.Fatalf("json export missing value:\n%s", j)
	}
}

func TestOpenCreatesDatabaseFile(t *testing.T) {
	_, dir := openTestStore(t)
	if _, err := os.Stat(filepath.Join(dir, "mobius.db")); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}
