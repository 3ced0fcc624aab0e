// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package svgchart extracts drawn chart geometry from report SVG documents.
// It yields one ChartGeometry per distinguishable chart, keyed by a chart
// index assigned in page order then document order. The index is the join
// key the rest of the pipeline relies on, so grouping is deterministic:
// re-parsing the same document always reproduces the same assignment.
package svgchart

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/datasciencecampus/mobius/pkg/types"
)

// node mirrors the subset of the SVG tree the extractor cares about.
type node struct {
	XMLName   xml.Name
	ID        string `xml:"id,attr"`
	Transform string `xml:"transform,attr"`
	ClipPath  string `xml:"clip-path,attr"`
	D         string `xml:"d,attr"`
	Text      string `xml:",chardata"`
	Children  []node `xml:",any"`
}

// drawnPath is one <path> with its cumulative transform applied and the
// grouping key it was collected under.
type drawnPath struct {
	groupKey string
	points   []types.Point
}

// ExtractFile extracts chart geometry from an SVG file, or from every *.svg
// file in a directory in sorted filename order. Chart indices run globally
// across pages so a per-page collection and a single concatenated document
// number their charts identically.
func ExtractFile(path string) ([]types.ChartGeometry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart source %s: %w", path, err)
	}

	if !info.IsDir() {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening chart source %s: %w", path, err)
		}
		defer f.Close()
		return Extract(f, 0)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart directory %s: %w", path, err)
	}
	var pages []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".svg") {
			pages = append(pages, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(pages)
	if len(pages) == 0 {
		return nil, fmt.Errorf("no SVG pages found in %s", path)
	}

	var charts []types.ChartGeometry
	for _, page := range pages {
		f, err := os.Open(page)
		if err != nil {
			return nil, fmt.Errorf("opening page %s: %w", page, err)
		}
		pageCharts, err := Extract(f, len(charts))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", page, err)
		}
		charts = append(charts, pageCharts...)
	}
	return charts, nil
}

// Extract parses one SVG document and returns its charts, numbering them from
// startIndex. Charts with no usable series path are kept with empty Points so
// the chart-index domain stays total for downstream joins.
func Extract(r io.Reader, startIndex int) ([]types.ChartGeometry, error) {
	var root node
	dec := xml.NewDecoder(r)
	// Report SVGs ship with no charset declaration beyond UTF-8; accept any
	// label the decoder recognizes.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parsing SVG: %w", err)
	}

	w := &walker{}
	w.walk(&root, identity, "")

	return groupCharts(w, startIndex), nil
}

// walker accumulates paths and text labels in document order.
type walker struct {
	paths     []drawnPath
	labels    []label
	pathsSeen int
}

type label struct {
	beforePath int // number of paths seen when the label appeared
	text       string
}

// affine is a 2D affine transform in SVG matrix(a b c d e f) order.
type affine struct{ a, b, c, d, e, f float64 }

var identity = affine{a: 1, d: 1}

func (m affine) mul(n affine) affine {
	return affine{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

func (m affine) apply(p types.Point) types.Point {
	return types.Point{
		X: m.a*p.X + m.c*p.Y + m.e,
		Y: m.b*p.X + m.d*p.Y + m.f,
	}
}

var transformRe = regexp.MustCompile(`(matrix|translate|scale)\s*\(([^)]*)\)`)

// parseTransform handles the transform kinds report SVGs use: translate,
// scale, and full matrix. Anything else is ignored.
func parseTransform(s string) affine {
	m := identity
	for _, match := range transformRe.FindAllStringSubmatch(s, -1) {
		nums := splitNumbers(match[2])
		switch match[1] {
		case "translate":
			if len(nums) >= 1 {
				t := affine{a: 1, d: 1, e: nums[0]}
				if len(nums) >= 2 {
					t.f = nums[1]
				}
				m = m.mul(t)
			}
		case "scale":
			if len(nums) == 1 {
				m = m.mul(affine{a: nums[0], d: nums[0]})
			} else if len(nums) >= 2 {
				m = m.mul(affine{a: nums[0], d: nums[1]})
			}
		case "matrix":
			if len(nums) >= 6 {
				m = m.mul(affine{nums[0], nums[1], nums[2], nums[3], nums[4], nums[5]})
			}
		}
	}
	return m
}

func splitNumbers(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		var v float64
		if _, err := fmt.Sscanf(f, "%g", &v); err == nil {
			nums = append(nums, v)
		}
	}
	return nums
}

func (w *walker) walk(n *node, tf affine, clip string) {
	if n.Transform != "" {
		tf = tf.mul(parseTransform(n.Transform))
	}
	if n.ClipPath != "" {
		clip = n.ClipPath
	}

	switch strings.ToLower(n.XMLName.Local) {
	case "defs", "clippath", "symbol", "marker":
		// Definition content is not drawn geometry.
		return
	case "path":
		if n.D != "" {
			pts, err := parsePathData(n.D)
			if err == nil && len(pts) > 0 {
				for i := range pts {
					pts[i] = tf.apply(pts[i])
				}
				w.paths = append(w.paths, drawnPath{groupKey: clip, points: pts})
				w.pathsSeen++
			}
		}
	case "text", "tspan":
		if t := strings.TrimSpace(n.Text); t != "" {
			w.labels = append(w.labels, label{beforePath: w.pathsSeen, text: t})
		}
	}

	for i := range n.Children {
		w.walk(&n.Children[i], tf, clip)
	}
}
