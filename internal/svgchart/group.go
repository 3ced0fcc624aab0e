// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svgchart

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/datasciencecampus/mobius/pkg/types"
)

const (
	// gridlineMaxPoints is the most vertices a path may have and still be
	// treated as an axis reference line. Series paths carry far more.
	gridlineMaxPoints = 4

	// flatTolerance is the pixel slack within which a path counts as horizontal.
	flatTolerance = 0.75

	// clusterPadding expands bounding boxes when merging unclipped paths
	// into chart clusters.
	clusterPadding = 5.0

	// rowTolerance is the vertical slack within which two charts count as
	// sharing a row when ordering charts left-to-right.
	rowTolerance = 20.0
)

type cluster struct {
	key        string // clip-path key, empty for bbox-derived clusters
	minX, minY float64
	maxX, maxY float64
	series     []types.Point
	gridlines  []types.Gridline
	firstPath  int // index into walker.paths of the first member, for labels
}

func (c *cluster) extend(pts []types.Point) {
	for _, p := range pts {
		c.minX = math.Min(c.minX, p.X)
		c.maxX = math.Max(c.maxX, p.X)
		c.minY = math.Min(c.minY, p.Y)
		c.maxY = math.Max(c.maxY, p.Y)
	}
}

func (c *cluster) overlaps(pts []types.Point) bool {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return minX <= c.maxX+clusterPadding && maxX >= c.minX-clusterPadding &&
		minY <= c.maxY+clusterPadding && maxY >= c.minY-clusterPadding
}

// isGridline reports whether a path is a horizontal axis reference line and
// returns it in Gridline form.
func isGridline(pts []types.Point) (types.Gridline, bool) {
	if len(pts) < 2 || len(pts) > gridlineMaxPoints {
		return types.Gridline{}, false
	}
	minY, maxY := pts[0].Y, pts[0].Y
	minX, maxX := pts[0].X, pts[0].X
	for _, p := range pts[1:] {
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
	}
	if maxY-minY > flatTolerance || maxX-minX <= 0 {
		return types.Gridline{}, false
	}
	return types.Gridline{Y: (minY + maxY) / 2, X0: minX, X1: maxX}, true
}

// groupCharts turns the walker's flat path list into ordered ChartGeometry
// entries. Paths sharing a clip-path reference form one chart; unclipped
// paths are clustered by bounding-box adjacency. Charts are numbered
// top-to-bottom then left-to-right, so the assignment depends only on drawn
// positions, never on incidental element order.
func groupCharts(w *walker, startIndex int) []types.ChartGeometry {
	var clusters []*cluster
	byKey := map[string]*cluster{}

	locate := func(p drawnPath, i int) *cluster {
		if p.groupKey != "" {
			if c, ok := byKey[p.groupKey]; ok {
				return c
			}
			c := newCluster(p, i)
			byKey[p.groupKey] = c
			clusters = append(clusters, c)
			return c
		}
		for _, c := range clusters {
			if c.key == "" && c.overlaps(p.points) {
				return c
			}
		}
		c := newCluster(p, i)
		clusters = append(clusters, c)
		return c
	}

	for i, p := range w.paths {
		c := locate(p, i)
		c.extend(p.points)
		if g, ok := isGridline(p.points); ok {
			c.gridlines = append(c.gridlines, g)
			continue
		}
		// The chart's series is its longest drawn path; shorter non-grid
		// decorations lose out.
		if len(p.points) > len(c.series) {
			c.series = p.points
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		a, b := clusters[i], clusters[j]
		if math.Abs(a.minY-b.minY) > rowTolerance {
			return a.minY < b.minY
		}
		return a.minX < b.minX
	})

	charts := make([]types.ChartGeometry, 0, len(clusters))
	for i, c := range clusters {
		charts = append(charts, types.ChartGeometry{
			ChartIndex: startIndex + i,
			Region:     regionLabel(w.labels, c.firstPath),
			Points:     c.series,
			Gridlines:  c.gridlines,
		})
	}
	return charts
}

func newCluster(p drawnPath, pathIndex int) *cluster {
	return &cluster{
		key:       p.groupKey,
		minX:      math.Inf(1),
		minY:      math.Inf(1),
		maxX:      math.Inf(-1),
		maxY:      math.Inf(-1),
		firstPath: pathIndex,
	}
}

var numericLabelRe = regexp.MustCompile(`^[+\-]?\d+(\.\d+)?%?\*?$`)

// regionLabel picks the closest preceding text label that reads like a name
// rather than an axis tick or percentage.
func regionLabel(labels []label, beforePath int) string {
	best := ""
	for _, l := range labels {
		if l.beforePath > beforePath {
			break
		}
		t := strings.TrimSpace(l.text)
		if t == "" || numericLabelRe.MatchString(t) || strings.EqualFold(t, types.NotEnoughData) {
			continue
		}
		best = t
	}
	return best
}
