// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package headline locates the summary percentage a report's text declares
// for each region/plot and emits one row per located figure. Plots are
// numbered sequentially in page order then reading order, the same
// convention the chart extractor uses, so the two tables join on the shared
// index without relying on incidental parse order.
package headline

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/datasciencecampus/mobius/pkg/types"
)

// TextSource yields per-page text from a report document. The PDF-backed
// implementation lives in this package; tests feed plain strings.
type TextSource interface {
	// PageCount reports the number of pages.
	PageCount() (int, error)

	// PageText returns the text of the 1-indexed page.
	PageText(page int) (string, error)
}

// headlineRe matches a declared percentage, optionally starred. Reports
// occasionally typeset the sign as a Unicode minus.
var headlineRe = regexp.MustCompile(`^([+\-\x{2212}]?\d+)\s*%\s*(\*)?$`)

// boilerplate fragments that disqualify a line from being a region heading.
var boilerplate = []string{
	"compared to baseline",
	"mobility",
	"report",
	"baseline",
	"about this data",
	"explore",
	"google",
	"www.",
	"creative commons",
}

// Summarise scans every page for headline statements and returns one row per
// located figure. A plot name with no figure nearby produces no row (the
// outer join downstream surfaces the gap); the not-enough-data sentinel
// produces a row with a missing headline, never zero.
func Summarise(src TextSource, country string, w io.Writer) ([]types.HeadlineRow, error) {
	pageCount, err := src.PageCount()
	if err != nil {
		return nil, fmt.Errorf("reading page count: %w", err)
	}

	var rows []types.HeadlineRow
	plotNum := 0
	for page := 1; page <= pageCount; page++ {
		text, err := src.PageText(page)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", page, err)
		}
		pageRows, consumed := parsePage(text, country, page, plotNum, w)
		rows = append(rows, pageRows...)
		plotNum += consumed
	}
	return rows, nil
}

// parsePage walks a page's lines tracking the current region heading and
// pairing each plot-name line with the figure that follows it. It returns
// the rows found and the number of plot slots consumed: a plot with no
// located figure still consumes its slot so later indices stay aligned with
// the chart side.
func parsePage(text, country string, pageNum, startPlot int, w io.Writer) ([]types.HeadlineRow, int) {
	lines := strings.Split(text, "\n")
	region := ""
	consumed := 0
	var rows []types.HeadlineRow

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, ok := matchPlotName(line)
		if !ok {
			if isRegionHeading(line) {
				region = line
			}
			continue
		}

		plotNum := startPlot + consumed
		consumed++

		value, asterisk, found := findFigure(lines[i+1:])
		if !found {
			fmt.Fprintf(w, "warning: page %d: no headline figure for %q\n", pageNum, name)
			continue
		}

		rows = append(rows, types.HeadlineRow{
			Country:  country,
			Region:   region,
			PlotName: name,
			PageNum:  pageNum,
			PlotNum:  plotNum,
			Headline: value,
			Asterisk: asterisk,
		})
	}
	return rows, consumed
}

// figureLookahead bounds how many lines past a plot name the figure may sit.
const figureLookahead = 3

func findFigure(rest []string) (value types.Value, asterisk, found bool) {
	for i := 0; i < len(rest) && i < figureLookahead; i++ {
		line := strings.TrimSpace(rest[i])
		if line == "" {
			continue
		}
		if strings.Contains(line, types.NotEnoughData) {
			return types.Missing(), strings.Contains(line, "*"), true
		}
		if m := headlineRe.FindStringSubmatch(line); m != nil {
			num := strings.ReplaceAll(m[1], "−", "-")
			v, err := types.ParseValue(num)
			if err != nil {
				return types.Missing(), false, false
			}
			return v, m[2] == "*", true
		}
		// A new plot name before any figure means this plot has none.
		if _, isPlot := matchPlotName(line); isPlot {
			return types.Missing(), false, false
		}
	}
	return types.Missing(), false, false
}

func matchPlotName(line string) (string, bool) {
	norm := normalizeName(line)
	for _, name := range types.PlotNames {
		if norm == normalizeName(name) {
			return name, true
		}
	}
	return "", false
}

// normalizeName collapses the ampersand/"and" and case variations reports
// use when typesetting plot names.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", "and")
	return strings.Join(strings.Fields(s), " ")
}

func isRegionHeading(line string) bool {
	if headlineRe.MatchString(line) || strings.Contains(line, types.NotEnoughData) {
		return false
	}
	lower := strings.ToLower(line)
	for _, b := range boilerplate {
		if strings.Contains(lower, b) {
			return false
		}
	}
	// Headings read like names: they start with a letter and contain no digits.
	if line == "" || strings.ContainsAny(line, "0123456789") {
		return false
	}
	r := rune(line[0])
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
