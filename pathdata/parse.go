package pathdata

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"

	"github.com/svgkit/svgkit/geo"
)

var cmdArgs = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

func skipCommaWhitespace(d []byte) int {
	i := 0
	for i < len(d) && (d[i] == ' ' || d[i] == ',' || d[i] == '\n' || d[i] == '\r' || d[i] == '\t') {
		i++
	}
	return i
}

// MustParse parses a path-data string and panics if it fails.
func MustParse(d string) Path {
	p, err := Parse(d)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse parses an SVG path-data string into an ordered primitive
// sequence. All coordinates are converted to absolute form; relative
// commands, H/V shorthands and S/T control-point reflection are
// resolved during parsing. Close primitives record their start and end
// points explicitly.
func Parse(d string) (Path, error) {
	if len(d) == 0 {
		return Path{}, nil
	}

	data := []byte(d)
	i := skipCommaWhitespace(data)
	if i == len(data) {
		return Path{}, nil
	}
	if data[i] < 'A' {
		return nil, fmt.Errorf("bad path: path should start with a command")
	}

	var path Path
	var cur, subpathStart geo.Point
	var c, q geo.Point // last cubic/quadratic control point, for S/T
	f := [7]float64{}
	prevCmd := byte('z')

	for {
		i += skipCommaWhitespace(data[i:])
		if len(data) <= i {
			break
		}

		cmd := prevCmd
		repeat := true
		if cmd == 'z' || cmd == 'Z' || !(data[i] >= '0' && data[i] <= '9' || data[i] == '.' || data[i] == '-' || data[i] == '+') {
			cmd = data[i]
			repeat = false
			i++
			i += skipCommaWhitespace(data[i:])
		}

		upper := cmd
		if 'a' <= upper && upper <= 'z' {
			upper -= 'a' - 'A'
		}
		n, ok := cmdArgs[upper]
		if !ok {
			return nil, fmt.Errorf("bad path: unknown command '%c' at position %d", cmd, i)
		}
		for j := 0; j < n; j++ {
			if upper == 'A' && (j == 3 || j == 4) {
				// largeArc and sweep are single-digit flags
				if i < len(data) && data[i] == '1' {
					f[j] = 1.0
				} else if i < len(data) && data[i] == '0' {
					f[j] = 0.0
				} else {
					return nil, fmt.Errorf("bad path: largeArc and sweep flags should be 0 or 1 in command '%c' at position %d", cmd, i+1)
				}
				i++
			} else {
				num, parsed := strconv.ParseFloat(data[i:])
				if parsed == 0 {
					if repeat && j == 0 && i < len(data) {
						return nil, fmt.Errorf("bad path: unknown command '%c' at position %d", data[i], i+1)
					}
					return nil, fmt.Errorf("bad path: %d numbers should follow command '%c' at position %d", n, cmd, i+1)
				}
				f[j] = num
				i += parsed
			}
			i += skipCommaWhitespace(data[i:])
		}

		var end geo.Point
		switch cmd {
		case 'M', 'm':
			end = geo.Point{X: f[0], Y: f[1]}
			if cmd == 'm' {
				end.X += cur.X
				end.Y += cur.Y
				cmd = 'l'
			} else {
				cmd = 'L'
			}
			path = append(path, Move{To: end})
			subpathStart = end
		case 'Z', 'z':
			end = subpathStart
			path = append(path, Close{Start: cur, End: end})
		case 'L', 'l':
			end = geo.Point{X: f[0], Y: f[1]}
			if cmd == 'l' {
				end.X += cur.X
				end.Y += cur.Y
			}
			path = append(path, Line{Start: cur, End: end})
		case 'H', 'h':
			end = geo.Point{X: f[0], Y: cur.Y}
			if cmd == 'h' {
				end.X += cur.X
			}
			path = append(path, Line{Start: cur, End: end})
		case 'V', 'v':
			end = geo.Point{X: cur.X, Y: f[0]}
			if cmd == 'v' {
				end.Y += cur.Y
			}
			path = append(path, Line{Start: cur, End: end})
		case 'C', 'c':
			cp1 := geo.Point{X: f[0], Y: f[1]}
			cp2 := geo.Point{X: f[2], Y: f[3]}
			end = geo.Point{X: f[4], Y: f[5]}
			if cmd == 'c' {
				cp1.X += cur.X
				cp1.Y += cur.Y
				cp2.X += cur.X
				cp2.Y += cur.Y
				end.X += cur.X
				end.Y += cur.Y
			}
			path = append(path, Cubic{Start: cur, C1: cp1, C2: cp2, End: end})
			c = cp2
		case 'S', 's':
			cp1 := cur
			cp2 := geo.Point{X: f[0], Y: f[1]}
			end = geo.Point{X: f[2], Y: f[3]}
			if cmd == 's' {
				cp2.X += cur.X
				cp2.Y += cur.Y
				end.X += cur.X
				end.Y += cur.Y
			}
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				cp1 = geo.Point{X: 2*cur.X - c.X, Y: 2*cur.Y - c.Y}
			}
			path = append(path, Cubic{Start: cur, C1: cp1, C2: cp2, End: end})
			c = cp2
		case 'Q', 'q':
			cp := geo.Point{X: f[0], Y: f[1]}
			end = geo.Point{X: f[2], Y: f[3]}
			if cmd == 'q' {
				cp.X += cur.X
				cp.Y += cur.Y
				end.X += cur.X
				end.Y += cur.Y
			}
			path = append(path, Quad{Start: cur, C: cp, End: end})
			q = cp
		case 'T', 't':
			cp := cur
			end = geo.Point{X: f[0], Y: f[1]}
			if cmd == 't' {
				end.X += cur.X
				end.Y += cur.Y
			}
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				cp = geo.Point{X: 2*cur.X - q.X, Y: 2*cur.Y - q.Y}
			}
			path = append(path, Quad{Start: cur, C: cp, End: end})
			q = cp
		case 'A', 'a':
			end = geo.Point{X: f[5], Y: f[6]}
			if cmd == 'a' {
				end.X += cur.X
				end.Y += cur.Y
			}
			path = append(path, Arc{
				Start:    cur,
				Rx:       f[0],
				Ry:       f[1],
				Rotation: f[2],
				LargeArc: f[3] == 1.0,
				Sweep:    f[4] == 1.0,
				End:      end,
			})
		default:
			return nil, fmt.Errorf("bad path: unknown command '%c' at position %d", cmd, i)
		}
		prevCmd = cmd
		cur = end
	}
	return path, nil
}
