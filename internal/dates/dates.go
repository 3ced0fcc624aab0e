// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates loads the date-lookup table aligning chart pixel columns
// with calendar dates. The table is loaded once per run and shared read-only
// by every chart calibration.
package dates

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/datasciencecampus/mobius/pkg/types"
)

// DateFormat is the calendar date layout used in lookup files and output tables.
const DateFormat = "2006-01-02"

// Load reads a date-lookup CSV from path. The file must have a header row and
// at least the columns "pixel" and "date"; extra columns are ignored.
func Load(path string) (types.DateLookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.DateLookup{}, fmt.Errorf("opening date lookup %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a date-lookup table from r. Entries must be strictly increasing
// in both pixel position and date; anything else is a malformed-input error.
func Read(r io.Reader) (types.DateLookup, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return types.DateLookup{}, fmt.Errorf("reading date lookup: %w", err)
	}
	if len(records) < 2 {
		return types.DateLookup{}, fmt.Errorf("date lookup has no data rows")
	}

	pixelCol, dateCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "pixel", "x":
			pixelCol = i
		case "date":
			dateCol = i
		}
	}
	if pixelCol < 0 || dateCol < 0 {
		return types.DateLookup{}, fmt.Errorf("date lookup header must contain pixel and date columns, got %v", records[0])
	}

	var lookup types.DateLookup
	for n, rec := range records[1:] {
		px, err := strconv.ParseFloat(strings.TrimSpace(rec[pixelCol]), 64)
		if err != nil {
			return types.DateLookup{}, fmt.Errorf("date lookup row %d: bad pixel %q: %w", n+2, rec[pixelCol], err)
		}
		d, err := time.Parse(DateFormat, strings.TrimSpace(rec[dateCol]))
		if err != nil {
			return types.DateLookup{}, fmt.Errorf("date lookup row %d: bad date %q: %w", n+2, rec[dateCol], err)
		}
		if len(lookup.Entries) > 0 {
			prev := lookup.Entries[len(lookup.Entries)-1]
			if px <= prev.Pixel || !d.After(prev.Date) {
				return types.DateLookup{}, fmt.Errorf("date lookup row %d: entries must be strictly increasing in pixel and date", n+2)
			}
		}
		lookup.Entries = append(lookup.Entries, types.DateLookupEntry{Pixel: px, Date: d})
	}
	return lookup, nil
}
