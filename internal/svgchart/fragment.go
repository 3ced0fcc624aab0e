// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svgchart

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/datasciencecampus/mobius/pkg/types"
)

// WriteFragment writes one chart's extracted geometry back out as a
// standalone SVG file for visual inspection. The fragment reproduces the
// series polyline and the gridlines it was calibrated against, nothing else.
func WriteFragment(chart types.ChartGeometry, path string) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, p := range chart.Points {
		grow(p.X, p.Y)
	}
	for _, g := range chart.Gridlines {
		grow(g.X0, g.Y)
		grow(g.X1, g.Y)
	}
	if math.IsInf(minX, 1) {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n",
		minX-5, minY-5, maxX-minX+10, maxY-minY+10)
	for _, g := range chart.Gridlines {
		fmt.Fprintf(&b, `  <line x1="%g" y1="%g" x2="%g" y2="%g" stroke="#ccc" stroke-width="0.5"/>`+"\n",
			g.X0, g.Y, g.X1, g.Y)
	}
	if len(chart.Points) > 0 {
		b.WriteString(`  <polyline fill="none" stroke="#4285f4" stroke-width="1.5" points="`)
		for i, p := range chart.Points {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g,%g", p.X, p.Y)
		}
		b.WriteString("\"/>\n")
	}
	b.WriteString("</svg>\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing SVG fragment: %w", err)
	}
	return nil
}
