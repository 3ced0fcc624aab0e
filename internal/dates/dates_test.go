package dates

import (
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	csv := "pixel,date\n0,2021-01-01\n10,2021-01-11\n20,2021-01-21\n"
	lookup, err := Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(lookup.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(lookup.Entries))
	}
	if lookup.Min().Pixel != 0 || lookup.Max().Pixel != 20 {
		t.Fatalf("pixel bounds = %v..%v", lookup.Min().Pixel, lookup.Max().Pixel)
	}
	want := time.Date(2021, 1, 11, 0, 0, 0, 0, time.UTC)
	if !lookup.Entries[1].Date.Equal(want) {
		t.Fatalf("entry 1 date = %v, want %v", lookup.Entries[1].Date, want)
	}
}

func TestReadAlternativeHeaderAndExtraColumns(t *testing.T) {
	csv := "x,date,note\n0,2021-01-01,start\n5,2021-01-06,\n"
	lookup, err := Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(lookup.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(lookup.Entries))
	}
}

func TestReadRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "no data rows", csv: "pixel,date\n"},
		{name: "missing date column", csv: "pixel,value\n0,1\n"},
		{name: "non-increasing pixel", csv: "pixel,date\n10,2021-01-01\n10,2021-01-02\n"},
		{name: "non-increasing date", csv: "pixel,date\n0,2021-01-02\n10,2021-01-01\n"},
		{name: "bad pixel", csv: "pixel,date\nabc,2021-01-01\n"},
		{name: "bad date", csv: "pixel,date\n0,January 1st\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.csv)); err == nil {
				t.Fatalf("expected error for %q", tt.csv)
			}
		})
	}
}
