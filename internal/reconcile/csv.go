// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/datasciencecampus/mobius/internal/dates"
	"github.com/datasciencecampus/mobius/pkg/types"
)

// mergedHeader is the fixed column order of the final reconciled table.
var mergedHeader = []string{
	"country", "region", "plot_name", "page_num", "plot_num",
	"asterisk", "date", "value", "headline",
}

// WriteCSV writes the merged table with a header row. Fields belonging to an
// absent join side render as empty, so a headline-only row has no date or
// value and a series-only row has no page or headline.
func WriteCSV(rows []types.ReconciledRow, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mergedHeader); err != nil {
		return fmt.Errorf("writing merged header: %w", err)
	}
	for _, r := range rows {
		pageNum, date := "", ""
		if r.HasHeadline {
			pageNum = strconv.Itoa(r.PageNum)
		}
		if r.HasSeries {
			date = r.Date.Format(dates.DateFormat)
		}
		rec := []string{
			r.Country,
			r.Region,
			r.PlotName,
			pageNum,
			strconv.Itoa(r.PlotNum),
			strconv.FormatBool(r.Asterisk),
			date,
			r.Value.String(),
			r.Headline.String(),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing merged row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the merged table to path.
func WriteCSVFile(rows []types.ReconciledRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(rows, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
