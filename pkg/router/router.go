// Package router computes orthogonal connector paths around placed
// elements. It discretizes the canvas into a uniform grid, expands every
// obstacle by a clearance margin, and runs A* with a turn penalty so paths
// prefer few bends. When the search fails (no corridor, or the expansion
// budget runs out) the router degrades to a single-bend path, then to a
// direct segment, so routing never fails outright.
package router

import (
	"container/heap"
	"math"

	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// Defaults, in inches except the two unitless weights.
const (
	DefaultCellSize      = 0.1
	DefaultClearance     = 0.15
	DefaultTurnPenalty   = 2.0
	DefaultMaxExpansions = 20000
)

// Options tunes a Router. The zero value means "use defaults".
type Options struct {
	CellSize      float64
	Clearance     float64
	TurnPenalty   float64
	MaxExpansions int
}

func (o Options) withDefaults() Options {
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.Clearance <= 0 {
		o.Clearance = DefaultClearance
	}
	if o.TurnPenalty <= 0 {
		o.TurnPenalty = DefaultTurnPenalty
	}
	if o.MaxExpansions <= 0 {
		o.MaxExpansions = DefaultMaxExpansions
	}
	return o
}

// Router routes connectors across a fixed scene of obstacles.
type Router struct {
	opts     Options
	bounds   geometry.Rect
	blocked  []geometry.Rect // obstacles expanded by clearance
	raw      []geometry.Rect // obstacles as placed
	cols     int
	rowCount int
}

// New builds a router for the given canvas bounds and obstacle set.
func New(bounds geometry.Rect, obstacles []geometry.Rect, opts Options) *Router {
	opts = opts.withDefaults()
	blocked := make([]geometry.Rect, len(obstacles))
	for i, o := range obstacles {
		blocked[i] = o.Expand(opts.Clearance)
	}
	return &Router{
		opts:     opts,
		bounds:   bounds,
		blocked:  blocked,
		raw:      obstacles,
		cols:     int(bounds.Width/opts.CellSize) + 1,
		rowCount: int(bounds.Height/opts.CellSize) + 1,
	}
}

// Path is a routed polyline plus how it was obtained.
type Path struct {
	Points   []model.Point
	Fallback bool // true when A* failed and a degraded path was used
}

// Route finds an orthogonal path between the facing borders of two
// rectangles. from and to are excluded from the obstacle set for their
// own route so the path can leave and enter them.
func (r *Router) Route(from, to geometry.Rect) Path {
	start, end := anchors(from, to)

	if pts, ok := r.search(start, end, from, to); ok {
		return Path{Points: simplify(pts)}
	}
	if pts, ok := r.singleBend(start, end, from, to); ok {
		return Path{Points: pts, Fallback: true}
	}
	return Path{Points: []model.Point{start, end}, Fallback: true}
}

// anchors picks the borders of the two rectangles that face each other:
// horizontal edges when the pair is separated mostly vertically, vertical
// edges otherwise.
func anchors(from, to geometry.Rect) (model.Point, model.Point) {
	dx := to.CenterX() - from.CenterX()
	dy := to.CenterY() - from.CenterY()

	if math.Abs(dy) >= math.Abs(dx) {
		if dy >= 0 {
			return model.Point{X: from.CenterX(), Y: from.Bottom()},
				model.Point{X: to.CenterX(), Y: to.Top}
		}
		return model.Point{X: from.CenterX(), Y: from.Top},
			model.Point{X: to.CenterX(), Y: to.Bottom()}
	}
	if dx >= 0 {
		return model.Point{X: from.Right(), Y: from.CenterY()},
			model.Point{X: to.Left, Y: to.CenterY()}
	}
	return model.Point{X: from.Left, Y: from.CenterY()},
		model.Point{X: to.Right(), Y: to.CenterY()}
}

// cell is one grid coordinate.
type cell struct{ col, row int }

const (
	dirNone = iota
	dirHorizontal
	dirVertical
)

type searchNode struct {
	at   cell
	dir  int
	cost float64
	est  float64
	idx  int // heap bookkeeping
}

type nodeQueue []*searchNode

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].est < q[j].est }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].idx = i; q[j].idx = j }
func (q *nodeQueue) Push(x any)         { n := x.(*searchNode); n.idx = len(*q); *q = append(*q, n) }
func (q *nodeQueue) Pop() any           { old := *q; n := old[len(old)-1]; *q = old[:len(old)-1]; return n }

type visitKey struct {
	at  cell
	dir int
}

// search runs A* over the clearance-expanded grid. The endpoints' own
// rectangles do not block. Returns false when the target is unreachable
// or the expansion budget runs out.
func (r *Router) search(start, end model.Point, from, to geometry.Rect) ([]model.Point, bool) {
	sc := r.toCell(start)
	ec := r.toCell(end)
	if !r.inGrid(sc) || !r.inGrid(ec) {
		return nil, false
	}

	open := &nodeQueue{}
	heap.Init(open)
	heap.Push(open, &searchNode{at: sc, dir: dirNone, est: r.heuristic(sc, ec)})

	bestCost := map[visitKey]float64{{at: sc, dir: dirNone}: 0}
	cameFrom := map[visitKey]visitKey{}
	expansions := 0

	steps := []struct {
		dc, dr int
		dir    int
	}{
		{1, 0, dirHorizontal}, {-1, 0, dirHorizontal},
		{0, 1, dirVertical}, {0, -1, dirVertical},
	}

	for open.Len() > 0 {
		curr := heap.Pop(open).(*searchNode)
		if curr.at == ec {
			return r.reconstruct(cameFrom, visitKey{at: curr.at, dir: curr.dir}, start, end), true
		}
		expansions++
		if expansions > r.opts.MaxExpansions {
			return nil, false
		}

		for _, s := range steps {
			next := cell{col: curr.at.col + s.dc, row: curr.at.row + s.dr}
			if !r.inGrid(next) {
				continue
			}
			if r.cellBlocked(next, from, to) && next != ec {
				continue
			}

			cost := curr.cost + 1
			if curr.dir != dirNone && curr.dir != s.dir {
				cost += r.opts.TurnPenalty
			}

			key := visitKey{at: next, dir: s.dir}
			if prev, seen := bestCost[key]; seen && prev <= cost {
				continue
			}
			bestCost[key] = cost
			cameFrom[key] = visitKey{at: curr.at, dir: curr.dir}
			heap.Push(open, &searchNode{at: next, dir: s.dir, cost: cost, est: cost + r.heuristic(next, ec)})
		}
	}
	return nil, false
}

func (r *Router) heuristic(a, b cell) float64 {
	return math.Abs(float64(a.col-b.col)) + math.Abs(float64(a.row-b.row))
}

func (r *Router) reconstruct(cameFrom map[visitKey]visitKey, last visitKey, start, end model.Point) []model.Point {
	cells := []cell{last.at}
	for {
		prev, ok := cameFrom[last]
		if !ok {
			break
		}
		cells = append(cells, prev.at)
		last = prev
	}
	// cells run end→start; emit start→end and pin the exact endpoints.
	pts := make([]model.Point, 0, len(cells)+2)
	pts = append(pts, start)
	for i := len(cells) - 1; i >= 0; i-- {
		pts = append(pts, r.toPoint(cells[i]))
	}
	pts = append(pts, end)
	return pts
}

func (r *Router) toCell(p model.Point) cell {
	return cell{
		col: int(math.Round((p.X - r.bounds.Left) / r.opts.CellSize)),
		row: int(math.Round((p.Y - r.bounds.Top) / r.opts.CellSize)),
	}
}

func (r *Router) toPoint(c cell) model.Point {
	return model.Point{
		X: r.bounds.Left + float64(c.col)*r.opts.CellSize,
		Y: r.bounds.Top + float64(c.row)*r.opts.CellSize,
	}
}

func (r *Router) inGrid(c cell) bool {
	return c.col >= 0 && c.col < r.cols && c.row >= 0 && c.row < r.rowCount
}

// cellBlocked reports whether a cell falls inside any clearance-expanded
// obstacle other than the two endpoint rectangles.
func (r *Router) cellBlocked(c cell, from, to geometry.Rect) bool {
	p := r.toPoint(c)
	for i, b := range r.blocked {
		if !b.Contains(p.X, p.Y) {
			continue
		}
		if r.raw[i] == from || r.raw[i] == to {
			continue
		}
		return true
	}
	return false
}

// singleBend tries the two L-shaped paths between the anchors and keeps
// one whose corner segment stays clear of obstacles.
func (r *Router) singleBend(start, end model.Point, from, to geometry.Rect) ([]model.Point, bool) {
	corners := []model.Point{
		{X: end.X, Y: start.Y},
		{X: start.X, Y: end.Y},
	}
	for _, corner := range corners {
		if r.segmentClear(start, corner, from, to) && r.segmentClear(corner, end, from, to) {
			return []model.Point{start, corner, end}, true
		}
	}
	return nil, false
}

// segmentClear samples an axis-aligned segment at cell resolution.
func (r *Router) segmentClear(a, b model.Point, from, to geometry.Rect) bool {
	steps := int(math.Ceil((math.Abs(b.X-a.X) + math.Abs(b.Y-a.Y)) / r.opts.CellSize))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := model.Point{X: geometry.Lerp(a.X, b.X, t), Y: geometry.Lerp(a.Y, b.Y, t)}
		for j, blocked := range r.blocked {
			if !blocked.Contains(p.X, p.Y) {
				continue
			}
			if r.raw[j] == from || r.raw[j] == to {
				continue
			}
			return false
		}
	}
	return true
}

// simplify removes collinear intermediate points from an orthogonal path.
func simplify(pts []model.Point) []model.Point {
	if len(pts) <= 2 {
		return pts
	}
	out := []model.Point{pts[0]}
	for i := 1; i < len(pts)-1; i++ {
		prev := out[len(out)-1]
		next := pts[i+1]
		collinearX := prev.X == pts[i].X && pts[i].X == next.X
		collinearY := prev.Y == pts[i].Y && pts[i].Y == next.Y
		if collinearX || collinearY {
			continue
		}
		out = append(out, pts[i])
	}
	return append(out, pts[len(pts)-1])
}
