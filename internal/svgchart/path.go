// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package svgchart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/datasciencecampus/mobius/pkg/types"
)

// parsePathData converts an SVG path "d" attribute into a flattened polyline.
// Supported commands: M/m, L/l, H/h, V/v, C/c, S/s, Q/q, T/t, Z/z. Curves are
// flattened to their endpoints, which is sufficient for the near-piecewise
// -linear series paths report charts draw. Unsupported commands (arcs) abort
// the parse so a malformed path is surfaced rather than silently truncated.
func parsePathData(d string) ([]types.Point, error) {
	toks, err := tokenizePath(d)
	if err != nil {
		return nil, err
	}

	var (
		pts     []types.Point
		cur     types.Point
		start   types.Point
		cmd     byte
		haveCur bool
	)

	i := 0
	next := func() (float64, error) {
		if i >= len(toks) || toks[i].isCmd {
			return 0, fmt.Errorf("path data: command %q missing arguments", cmd)
		}
		v := toks[i].num
		i++
		return v, nil
	}

	emit := func(p types.Point) {
		pts = append(pts, p)
		cur = p
		haveCur = true
	}

	for i < len(toks) {
		if toks[i].isCmd {
			cmd = toks[i].cmd
			i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("path data starts with a number, not a command")
		} else if cmd == 'M' {
			// Implicit repetition of moveto arguments becomes lineto.
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}

		rel := cmd >= 'a' && cmd <= 'z'
		base := types.Point{}
		if rel && haveCur {
			base = cur
		}

		switch cmd {
		case 'M', 'm':
			x, err := next()
			if err != nil {
				return nil, err
			}
			y, err := next()
			if err != nil {
				return nil, err
			}
			emit(types.Point{X: base.X + x, Y: base.Y + y})
			start = cur
		case 'L', 'l':
			x, err := next()
			if err != nil {
				return nil, err
			}
			y, err := next()
			if err != nil {
				return nil, err
			}
			emit(types.Point{X: base.X + x, Y: base.Y + y})
		case 'H', 'h':
			x, err := next()
			if err != nil {
				return nil, err
			}
			emit(types.Point{X: base.X + x, Y: cur.Y})
		case 'V', 'v':
			y, err := next()
			if err != nil {
				return nil, err
			}
			emit(types.Point{X: cur.X, Y: base.Y + y})
		case 'C', 'c':
			// Two control points then the endpoint; keep the endpoint.
			var vals [6]float64
			for k := range vals {
				v, err := next()
				if err != nil {
					return nil, err
				}
				vals[k] = v
			}
			emit(types.Point{X: base.X + vals[4], Y: base.Y + vals[5]})
		case 'S', 's', 'Q', 'q':
			var vals [4]float64
			for k := range vals {
				v, err := next()
				if err != nil {
					return nil, err
				}
				vals[k] = v
			}
			emit(types.Point{X: base.X + vals[2], Y: base.Y + vals[3]})
		case 'T', 't':
			x, err := next()
			if err != nil {
				return nil, err
			}
			y, err := next()
			if err != nil {
				return nil, err
			}
			emit(types.Point{X: base.X + x, Y: base.Y + y})
		case 'Z', 'z':
			if haveCur {
				emit(start)
			}
		default:
			return nil, fmt.Errorf("path data: unsupported command %q", string(cmd))
		}
	}

	return pts, nil
}

type pathToken struct {
	isCmd bool
	cmd   byte
	num   float64
}

// tokenizePath splits path data into command and number tokens. Numbers may
// be separated by whitespace, commas, or nothing at all when a sign or a
// second decimal point starts the next number ("10-5", ".5.5").
func tokenizePath(d string) ([]pathToken, error) {
	var toks []pathToken
	i := 0
	for i < len(d) {
		c := d[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			i++
		case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
			toks = append(toks, pathToken{isCmd: true, cmd: c})
			i++
		default:
			j := i
			seenDot := false
			if d[j] == '+' || d[j] == '-' {
				j++
			}
			for j < len(d) {
				ch := d[j]
				if ch >= '0' && ch <= '9' {
					j++
					continue
				}
				if ch == '.' && !seenDot {
					seenDot = true
					j++
					continue
				}
				if (ch == 'e' || ch == 'E') && j+1 < len(d) &&
					(d[j+1] == '+' || d[j+1] == '-' || (d[j+1] >= '0' && d[j+1] <= '9')) {
					j += 2
					for j < len(d) && d[j] >= '0' && d[j] <= '9' {
						j++
					}
				}
				break
			}
			if j == i {
				return nil, fmt.Errorf("path data: unexpected character %q at offset %d", string(c), i)
			}
			n, err := strconv.ParseFloat(strings.TrimPrefix(d[i:j], "+"), 64)
			if err != nil {
				return nil, fmt.Errorf("path data: bad number %q: %w", d[i:j], err)
			}
			toks = append(toks, pathToken{num: n})
			i = j
		}
	}
	return toks, nil
}
