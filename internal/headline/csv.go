// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package headline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/datasciencecampus/mobius/pkg/types"
)

// summaryHeader is the column order of the persisted headline summary table.
var summaryHeader = []string{"country", "region", "plot_name", "page_num", "plot_num", "headline", "asterisk"}

// WriteCSV writes the headline summary table with a header row.
func WriteCSV(rows []types.HeadlineRow, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Country,
			r.Region,
			r.PlotName,
			strconv.Itoa(r.PageNum),
			strconv.Itoa(r.PlotNum),
			r.Headline.String(),
			strconv.FormatBool(r.Asterisk),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the headline summary table to path.
func WriteCSVFile(rows []types.HeadlineRow, path string) error {
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

// ReadCSV loads a headline summary table previously written by WriteCSV.
func ReadCSV(r io.Reader) ([]types.HeadlineRow, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading summary table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("summary table is empty")
	}

	var rows []types.HeadlineRow
	for n, rec := range records[1:] {
		if len(rec) != len(summaryHeader) {
			return nil, fmt.Errorf("summary row %d: expected %d columns, got %d", n+2, len(summaryHeader), len(rec))
		}
		pageNum, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("summary row %d: bad page_num %q: %w", n+2, rec[3], err)
		}
		plotNum, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("summary row %d: bad plot_num %q: %w", n+2, rec[4], err)
		}
		value, err := types.ParseValue(rec[5])
		if err != nil {
			return nil, fmt.Errorf("summary row %d: %w", n+2, err)
		}
		asterisk, err := strconv.ParseBool(rec[6])
		if err != nil {
			return nil, fmt.Errorf("summary row %d: bad asterisk %q: %w", n+2, rec[6], err)
		}
		rows = append(rows, types.HeadlineRow{
			Country:  rec[0],
			Region:   rec[1],
			PlotName: rec[2],
			PageNum:  pageNum,
			PlotNum:  plotNum,
			Headline: value,
			Asterisk: asterisk,
		})
	}
	return rows, nil
}
