package tabulate

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/datasciencecampus/mobius/pkg/types"
)

func day(d int) time.Time {
	return time.Date(2021, 1, d, 0, 0, 0, 0, time.UTC)
}

// testCharts builds two calibratable charts whose gridlines make one pixel
// equal one percent.
func testCharts() []types.ChartGeometry {
	gridlines := []types.Gridline{
		{Y: 20, X0: 0, X1: 200},
		{Y: 100, X0: 0, X1: 200},
		{Y: 180, X0: 0, X1: 200},
	}
	return []types.ChartGeometry{
		{
			ChartIndex: 0,
			Region:     "Norfolk",
			Points:     []types.Point{{X: 0, Y: 100}, {X: 10, Y: 80}},
			Gridlines:  gridlines,
		},
		{
			ChartIndex: 1,
			Region:     "Norfolk",
			Points:     []types.Point{{X: 0, Y: 120}, {X: 10, Y: 100}},
			Gridlines:  gridlines,
		},
	}
}

func testLookup() types.DateLookup {
	return types.DateLookup{Entries: []types.DateLookupEntry{
		{Pixel: 0, Date: day(1)},
		{Pixel: 10, Date: day(11)},
	}}
}

func TestTabulateRowOrder(t *testing.T) {
	var buf bytes.Buffer
	rows := Tabulate(testCharts(), testLookup(), Options{Country: "GB"}, &buf)

	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	// Chart order by index, date order within a chart.
	wantGraph := []int{0, 0, 1, 1}
	for i, r := range rows {
		if r.GraphNum != wantGraph[i] {
			t.Fatalf("row %d graph_num = %d, want %d", i, r.GraphNum, wantGraph[i])
		}
		if r.Country != "GB" {
			t.Fatalf("row %d country = %q", i, r.Country)
		}
		if r.Region != "Norfolk" {
			t.Fatalf("row %d region = %q", i, r.Region)
		}
	}
	if !rows[0].Date.Before(rows[1].Date) {
		t.Fatal("rows within a chart must follow date order")
	}
	if rows[0].PlotName != "Retail & recreation" || rows[2].PlotName != "Grocery & pharmacy" {
		t.Fatalf("plot names = %q, %q", rows[0].PlotName, rows[2].PlotName)
	}
}

func TestTabulateSkipsEmptyChartsWithWarning(t *testing.T) {
	charts := append(testCharts(), types.ChartGeometry{ChartIndex: 2})
	var buf bytes.Buffer
	rows := Tabulate(charts, testLookup(), Options{Country: "GB"}, &buf)

	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4 (empty chart contributes none)", len(rows))
	}
	if !strings.Contains(buf.String(), "chart 2") {
		t.Fatalf("missing warning for empty chart: %q", buf.String())
	}
}

// recordingPlotter records calls and can fail on demand.
type recordingPlotter struct {
	calls []string
	fail  bool
}

func (p *recordingPlotter) Plot(title string, points []types.SeriesPoint, outPath string) error {
	p.calls = append(p.calls, outPath)
	if p.fail {
		return &plotErr{}
	}
	return nil
}

type plotErr struct{}

func (*plotErr) Error() string { return "render failed" }

func TestTabulatePlotterDoesNotAlterRows(t *testing.T) {
	var withoutBuf, withBuf bytes.Buffer
	without := Tabulate(testCharts(), testLookup(), Options{Country: "GB"}, &withoutBuf)

	p := &recordingPlotter{}
	with := Tabulate(testCharts(), testLookup(), Options{Country: "GB", Plotter: p, PlotDir: t.TempDir()}, &withBuf)

	if len(p.calls) != 2 {
		t.Fatalf("plotter called %d times, want 2", len(p.calls))
	}
	if len(without) != len(with) {
		t.Fatalf("row counts differ with plotting: %d vs %d", len(without), len(with))
	}
	for i := range with {
		if with[i] != without[i] {
			t.Fatalf("row %d differs with plotting enabled", i)
		}
	}
}

func TestTabulatePlotterFailureIsWarning(t *testing.T) {
	var buf bytes.Buffer
	p := &recordingPlotter{fail: true}
	rows := Tabulate(testCharts(), testLookup(), Options{Country: "GB", Plotter: p, PlotDir: t.TempDir()}, &buf)

	if len(rows) != 4 {
		t.Fatalf("plot failures must not drop rows, got %d", len(rows))
	}
	if !strings.Contains(buf.String(), "warning: plotting") {
		t.Fatalf("expected plotting warning, got %q", buf.String())
	}
}

func TestCountryFromPath(t *testing.T) {
	if got := CountryFromPath("svgs/GB.svg"); got != "GB" {
		t.Fatalf("CountryFromPath = %q", got)
	}
	if got := CountryFromPath("/data/pdfs/New_Zealand.pdf"); got != "New_Zealand" {
		t.Fatalf("CountryFromPath = %q", got)
	}
}
