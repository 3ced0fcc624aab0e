// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabulate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/datasciencecampus/mobius/internal/dates"
	"github.com/datasciencecampus/mobius/pkg/types"
)

// seriesHeader is the column order of the persisted series table.
var seriesHeader = []string{"country", "region", "plot_name", "graph_num", "date", "value", "asterisk"}

// WriteCSV writes the series table with a header row. Missing values render
// as empty fields.
func WriteCSV(rows []types.SeriesRow, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(seriesHeader); err != nil {
		return fmt.Errorf("writing series header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Country,
			r.Region,
			r.PlotName,
			strconv.Itoa(r.GraphNum),
			r.Date.Format(dates.DateFormat),
			r.Value.String(),
			strconv.FormatBool(r.Asterisk),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing series row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the series table to path.
func WriteCSVFile(rows []types.SeriesRow, path string) error {
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

// ReadCSV loads a series table previously written by WriteCSV. Round-tripping
// a table reproduces it exactly, including missing values and flags.
func ReadCSV(r io.Reader) ([]types.SeriesRow, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading series table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("series table is empty")
	}

	var rows []types.SeriesRow
	for n, rec := range records[1:] {
		if len(rec) != len(seriesHeader) {
			return nil, fmt.Errorf("series row %d: expected %d columns, got %d", n+2, len(seriesHeader), len(rec))
		}
		graphNum, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("series row %d: bad graph_num %q: %w", n+2, rec[3], err)
		}
		date, err := time.Parse(dates.DateFormat, rec[4])
		if err != nil {
			return nil, fmt.Errorf("series row %d: bad date %q: %w", n+2, rec[4], err)
		}
		value, err := types.ParseValue(rec[5])
		if err != nil {
			return nil, fmt.Errorf("series row %d: %w", n+2, err)
		}
		asterisk, err := strconv.ParseBool(rec[6])
		if err != nil {
			return nil, fmt.Errorf("series row %d: bad asterisk %q: %w", n+2, rec[6], err)
		}
		rows = append(rows, types.SeriesRow{
			Country:  rec[0],
			Region:   rec[1],
			PlotName: rec[2],
			GraphNum: graphNum,
			Date:     date,
			Value:    value,
			Asterisk: asterisk,
		})
	}
	return rows, nil
}
