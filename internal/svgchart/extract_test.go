package svgchart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// twoChartPage draws two clipped chart groups side by side, each with three
// gridlines and a series path, labelled by a preceding region heading.
const twoChartPage = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="600" height="300">
  <defs>
    <clipPath id="c1"><rect x="40" y="30" width="200" height="140"/></clipPath>
    <clipPath id="c2"><rect x="340" y="30" width="200" height="140"/></clipPath>
  </defs>
  <text x="40" y="20">Norfolk</text>
  <g clip-path="url(#c1)">
    <path d="M 40 40 L 240 40"/>
    <path d="M 40 100 L 240 100"/>
    <path d="M 40 160 L 240 160"/>
    <path d="M 50 100 L 60 90 L 70 95 L 80 60 L 90 70"/>
  </g>
  <text x="340" y="20">-45%</text>
  <g clip-path="url(#c2)">
    <path d="M 340 40 L 540 40"/>
    <path d="M 340 100 L 540 100"/>
    <path d="M 340 160 L 540 160"/>
    <path d="M 350 110 L 360 120 L 370 100 L 380 90"/>
  </g>
</svg>`

func TestExtractTwoCharts(t *testing.T) {
	charts, err := Extract(strings.NewReader(twoChartPage), 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(charts) != 2 {
		t.Fatalf("got %d charts, want 2", len(charts))
	}

	// Left chart first: same row, smaller x.
	if charts[0].ChartIndex != 0 || charts[1].ChartIndex != 1 {
		t.Fatalf("chart indices = %d, %d", charts[0].ChartIndex, charts[1].ChartIndex)
	}
	if charts[0].Points[0].X != 50 {
		t.Fatalf("left chart series starts at x=%v, want 50", charts[0].Points[0].X)
	}
	if charts[1].Points[0].X != 350 {
		t.Fatalf("right chart series starts at x=%v, want 350", charts[1].Points[0].X)
	}

	if len(charts[0].Gridlines) != 3 {
		t.Fatalf("left chart has %d gridlines, want 3", len(charts[0].Gridlines))
	}
	if len(charts[0].Points) != 5 {
		t.Fatalf("left chart series has %d points, want 5", len(charts[0].Points))
	}

	// The percentage text is an axis label, not a region heading.
	if charts[0].Region != "Norfolk" || charts[1].Region != "Norfolk" {
		t.Fatalf("regions = %q, %q, want Norfolk", charts[0].Region, charts[1].Region)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	first, err := Extract(strings.NewReader(twoChartPage), 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	second, err := Extract(strings.NewReader(twoChartPage), 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("chart counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ChartIndex != second[i].ChartIndex ||
			len(first[i].Points) != len(second[i].Points) {
			t.Fatalf("chart %d differs between parses", i)
		}
	}
}

func TestExtractKeepsChartWithNoSeries(t *testing.T) {
	const page = `<svg xmlns="http://www.w3.org/2000/svg">
  <g clip-path="url(#c1)">
    <path d="M 40 40 L 240 40"/>
    <path d="M 40 100 L 240 100"/>
  </g>
</svg>`
	charts, err := Extract(strings.NewReader(page), 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(charts) != 1 {
		t.Fatalf("got %d charts, want 1", len(charts))
	}
	if len(charts[0].Points) != 0 {
		t.Fatalf("chart with no series should keep empty points, got %d", len(charts[0].Points))
	}
	if len(charts[0].Gridlines) != 2 {
		t.Fatalf("gridlines = %d, want 2", len(charts[0].Gridlines))
	}
}

func TestExtractAppliesTransforms(t *testing.T) {
	const page = `<svg xmlns="http://www.w3.org/2000/svg">
  <g transform="translate(100,50)">
    <g clip-path="url(#c1)">
      <path d="M 0 0 L 10 10 L 20 5"/>
    </g>
  </g>
</svg>`
	charts, err := Extract(strings.NewReader(page), 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(charts) != 1 {
		t.Fatalf("got %d charts, want 1", len(charts))
	}
	p := charts[0].Points[0]
	if p.X != 100 || p.Y != 50 {
		t.Fatalf("first point = %+v, want translated (100, 50)", p)
	}
}

func TestExtractFileDirectoryNumbersAcrossPages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"page_02.svg", "page_01.svg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(twoChartPage), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	charts, err := ExtractFile(dir)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if len(charts) != 4 {
		t.Fatalf("got %d charts across 2 pages, want 4", len(charts))
	}
	for i, c := range charts {
		if c.ChartIndex != i {
			t.Fatalf("chart %d has index %d; indices must run globally across pages", i, c.ChartIndex)
		}
	}
}

func TestWriteFragment(t *testing.T) {
	charts, err := Extract(strings.NewReader(twoChartPage), 0)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	path := filepath.Join(t.TempDir(), "chart_000.svg")
	if err := WriteFragment(charts[0], path); err != nil {
		t.Fatalf("WriteFragment: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "<polyline") || !strings.Contains(out, "<line") {
		t.Fatalf("fragment missing series or gridlines:\n%s", out)
	}
}
