package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/SlabQuote/internal/model"
)

const (
	dxfJoinTolerance = 0.01 // mm between endpoints that count as joined
	dxfArcSteps      = 32
)

type point struct {
	X, Y float64
}

func (p point) near(q point) bool {
	return math.Hypot(p.X-q.X, p.Y-q.Y) <= dxfJoinTolerance
}

// bbox is an axis-aligned bounding box grown point by point.
type bbox struct {
	min, max point
	set      bool
}

func (b *bbox) add(pts ...point) {
	for _, p := range pts {
		if !b.set {
			b.min, b.max, b.set = p, p, true
			continue
		}
		b.min.X = math.Min(b.min.X, p.X)
		b.min.Y = math.Min(b.min.Y, p.Y)
		b.max.X = math.Max(b.max.X, p.X)
		b.max.Y = math.Max(b.max.Y, p.Y)
	}
}

// size returns the box sides, longer side first.
func (b bbox) size() (length, width float64) {
	length, width = b.max.X-b.min.X, b.max.Y-b.min.Y
	if width > length {
		length, width = width, length
	}
	return length, width
}

// edge is one LINE, or one sampled piece of an ARC.
type edge struct {
	a, b point
}

// ImportDXF imports a cut list from a DXF drawing. Each closed shape
// (LWPOLYLINE, CIRCLE, or loop of connected LINEs and ARCs) becomes one
// record sized by its bounding box, longest side as length.
func ImportDXF(path string) ImportResult {
	var result ImportResult

	drawing, err := dxf.Open(path)
	if err != nil {
		result.errorf("Cannot open DXF file: %v", err)
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.errorf("DXF file contains no entities")
		return result
	}

	var shapes []bbox
	var loose []edge

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if len(e.Vertices) < 3 {
				result.warnf("Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			shapes = append(shapes, polylineBox(e))

		case *entity.Circle:
			var b bbox
			c, r := point{e.Center[0], e.Center[1]}, e.Radius
			b.add(point{c.X - r, c.Y - r}, point{c.X + r, c.Y + r})
			shapes = append(shapes, b)

		case *entity.Arc:
			c := point{e.Circle.Center[0], e.Circle.Center[1]}
			from := e.Angle[0] * math.Pi / 180
			to := e.Angle[1] * math.Pi / 180
			if to <= from {
				to += 2 * math.Pi
			}
			pts := arcPoints(c, e.Circle.Radius, from, to)
			for i := 1; i < len(pts); i++ {
				loose = append(loose, edge{pts[i-1], pts[i]})
			}

		case *entity.Line:
			loose = append(loose, edge{
				a: point{e.Start[0], e.Start[1]},
				b: point{e.End[0], e.End[1]},
			})
		}
	}

	loops, open := closedLoops(loose)
	shapes = append(shapes, loops...)
	if open > 0 {
		result.warnf("Skipped %d open chain(s) of lines/arcs", open)
	}

	if len(shapes) == 0 {
		result.errorf("No closed shapes found in DXF file")
		return result
	}

	for _, b := range shapes {
		length, width := b.size()
		if !(length >= 0.01) || !(width >= 0.01) || math.IsInf(length, 0) {
			result.warnf("Skipped degenerate shape (%.2f x %.2f mm)", length, width)
			continue
		}
		result.Records = append(result.Records, Record{
			Reference: fmt.Sprintf("DXF Part %d", len(result.Records)+1),
			Dims:      model.Dimensions{Length: math.Round(length*10) / 10, Width: math.Round(width*10) / 10},
			Quantity:  1,
		})
	}

	return result
}

// polylineBox bounds an LWPOLYLINE, following bulged segments along their arc.
func polylineBox(lw *entity.LwPolyline) bbox {
	var b bbox
	n := len(lw.Vertices)
	for i, v := range lw.Vertices {
		p := point{v[0], v[1]}
		b.add(p)
		if i >= len(lw.Bulges) || math.Abs(lw.Bulges[i]) < 1e-9 {
			continue
		}
		next := lw.Vertices[(i+1)%n]
		b.add(bulgePoints(p, point{next[0], next[1]}, lw.Bulges[i])...)
	}
	return b
}

// bulgePoints samples the arc between p and q described by a DXF bulge
// (tan of a quarter of the included angle, positive counter-clockwise).
func bulgePoints(p, q point, bulge float64) []point {
	chord := math.Hypot(q.X-p.X, q.Y-p.Y)
	if chord < 1e-9 {
		return []point{p, q}
	}
	theta := 4 * math.Atan(bulge)
	r := chord / (2 * math.Sin(math.Abs(theta)/2))

	// Center sits on the chord bisector, on the left for positive bulges.
	d := r * math.Cos(theta/2)
	if bulge < 0 {
		d = -d
	}
	ux, uy := (q.X-p.X)/chord, (q.Y-p.Y)/chord
	c := point{(p.X+q.X)/2 - uy*d, (p.Y+q.Y)/2 + ux*d}

	from := math.Atan2(p.Y-c.Y, p.X-c.X)
	return arcPoints(c, r, from, from+theta)
}

// arcPoints samples a circular arc from angle from to angle to (radians).
func arcPoints(c point, r, from, to float64) []point {
	pts := make([]point, dxfArcSteps+1)
	for i := range pts {
		a := from + (to-from)*float64(i)/dxfArcSteps
		pts[i] = point{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
	}
	return pts
}

// closedLoops groups edges that share endpoints and returns the bounding box
// of every group in which each endpoint is joined to another edge. Groups
// with a dangling end are counted as open. Loops come largest first.
func closedLoops(edges []edge) (loops []bbox, open int) {
	parent := make([]int, len(edges))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	joins := make([]int, 2*len(edges)) // per endpoint: number of other endpoints touching it
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			ei, ej := edges[i], edges[j]
			for ki, pi := range []point{ei.a, ei.b} {
				for kj, pj := range []point{ej.a, ej.b} {
					if pi.near(pj) {
						joins[2*i+ki]++
						joins[2*j+kj]++
						parent[find(i)] = find(j)
					}
				}
			}
		}
	}

	groups := make(map[int]*bbox)
	closed := make(map[int]bool)
	var roots []int
	for i, e := range edges {
		root := find(i)
		if _, ok := groups[root]; !ok {
			groups[root] = &bbox{}
			closed[root] = true
			roots = append(roots, root)
		}
		groups[root].add(e.a, e.b)
		if joins[2*i] == 0 || joins[2*i+1] == 0 {
			closed[root] = false
		}
	}

	for _, root := range roots {
		if !closed[root] {
			open++
			continue
		}
		loops = append(loops, *groups[root])
	}
	sort.SliceStable(loops, func(i, j int) bool {
		li, wi := loops[i].size()
		lj, wj := loops[j].size()
		return li*wi > lj*wj
	})
	return loops, open
}
