package reconcile

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/datasciencecampus/mobius/pkg/types"
)

func TestWriteCSVColumnShape(t *testing.T) {
	rows := []types.ReconciledRow{
		{
			Country: "GB", Region: "Norfolk", PlotName: "Parks",
			PageNum: 2, PlotNum: 8, Date: day("2021-01-08"),
			Value: types.Numeric(6.2), Headline: types.Numeric(6),
			HasSeries: true, HasHeadline: true,
		},
		{
			Country: "GB", Region: "Norfolk", PlotName: "Residential",
			PageNum: 2, PlotNum: 11, Headline: types.Numeric(14),
			HasHeadline: true,
		},
		{
			Country: "GB", Region: "chart_label", PlotName: "Workplaces",
			PlotNum: 4, Date: day("2021-01-08"), Value: types.Numeric(-38),
			HasSeries: true, Asterisk: true,
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(rows, &buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want header plus 3 rows", len(records))
	}

	wantHeader := []string{"country", "region", "plot_name", "page_num", "plot_num", "asterisk", "date", "value", "headline"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	matched := records[1]
	if matched[3] != "2" || matched[6] != "2021-01-08" || matched[7] != "6.2" || matched[8] != "6" {
		t.Fatalf("matched row = %v", matched)
	}

	// Fields of an absent join side render empty, not zero.
	headlineOnly := records[2]
	if headlineOnly[6] != "" || headlineOnly[7] != "" {
		t.Fatalf("headline-only row leaked series fields: %v", headlineOnly)
	}
	seriesOnly := records[3]
	if seriesOnly[3] != "" || seriesOnly[8] != "" {
		t.Fatalf("series-only row leaked headline fields: %v", seriesOnly)
	}
	if seriesOnly[5] != "true" {
		t.Fatalf("asterisk = %q, want true", seriesOnly[5])
	}
}
