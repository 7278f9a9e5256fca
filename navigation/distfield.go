package navigation

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/maze-chase/maze"
)

// ErrInvalidTarget is returned by TryRecompute for targets outside the grid
var ErrInvalidTarget = errors.New("navigation: target outside grid")

// --- Frontier queue ---

// cellQueue is a fixed-capacity FIFO of flat cell indices.
// Every cell is enqueued at most once per recompute, so capacity = cell count never overflows
type cellQueue struct {
	buf        []int32
	head, tail int
}

func (q *cellQueue) reset() {
	q.head, q.tail = 0, 0
}

func (q *cellQueue) push(idx int32) {
	q.buf[q.tail] = idx
	q.tail++
}

func (q *cellQueue) pop() int32 {
	idx := q.buf[q.head]
	q.head++
	return idx
}

func (q *cellQueue) empty() bool {
	return q.head == q.tail
}

// FieldStats counts traversal work, for tests and the debug overlay
type FieldStats struct {
	Recomputes uint64 // Full BFS passes
	Elided     uint64 // Recompute calls skipped because the target was unchanged
	Generation uint32 // Stamp of the current matrix, 0 before the first recompute
}

// DistanceField holds 4-connected BFS hop counts from one target cell over a shared read-only grid.
//
// Reset is O(1): each cell carries the generation it was written in, and a stamp that
// differs from the current generation reads as unreached
type DistanceField struct {
	grid          *maze.Grid
	width, height int

	dist  []int32
	stamp []uint32
	gen   uint32

	// Cache state
	target    maze.Cell
	hasTarget bool

	// Reusable frontier buffer
	queue cellQueue

	stats FieldStats
}

// NewDistanceField binds a stale field to grid. All cells read unreached until the first Recompute
func NewDistanceField(grid *maze.Grid) *DistanceField {
	w, h := grid.Width(), grid.Height()
	size := w * h
	return &DistanceField{
		grid:   grid,
		width:  w,
		height: h,
		dist:   make([]int32, size),
		stamp:  make([]uint32, size),
		queue:  cellQueue{buf: make([]int32, size)},
	}
}

// Grid returns the bound grid
func (f *DistanceField) Grid() *maze.Grid {
	return f.grid
}

// Target returns the cell the matrix was last computed for
func (f *DistanceField) Target() (maze.Cell, bool) {
	return f.target, f.hasTarget
}

// Stats returns traversal counters
func (f *DistanceField) Stats() FieldStats {
	s := f.stats
	s.Generation = f.gen
	return s
}

// TryRecompute is Recompute for untrusted coordinates
func (f *DistanceField) TryRecompute(target maze.Cell) error {
	if !f.grid.InBounds(target) {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidTarget, target.X, target.Y)
	}
	f.Recompute(target)
	return nil
}

// Recompute floods hop counts outward from target. Calling it again with the same target does no work.
// A target outside the grid is a caller bug and panics.
// A target on a wall still gets distance 0; its open neighbors are flooded from it
func (f *DistanceField) Recompute(target maze.Cell) {
	if !f.grid.InBounds(target) {
		panic(fmt.Sprintf("navigation: recompute target (%d,%d) outside %dx%d grid",
			target.X, target.Y, f.width, f.height))
	}

	if f.hasTarget && f.target == target {
		f.stats.Elided++
		return
	}

	f.nextGeneration()

	w := f.width
	gen := f.gen
	targetIdx := int32(target.Y*w + target.X)
	f.dist[targetIdx] = 0
	f.stamp[targetIdx] = gen

	f.queue.reset()
	f.queue.push(targetIdx)

	for !f.queue.empty() {
		idx := f.queue.pop()
		cx := int(idx) % w
		cy := int(idx) / w
		next := f.dist[idx] + 1

		for d := DirUp; d < DirCount; d++ {
			n := maze.Cell{X: cx + DirVectors[d][0], Y: cy + DirVectors[d][1]}
			if !f.grid.InBounds(n) || f.grid.IsWall(n) {
				continue
			}
			nIdx := int32(n.Y*w + n.X)
			if f.stamp[nIdx] == gen {
				continue
			}
			f.dist[nIdx] = next
			f.stamp[nIdx] = gen
			f.queue.push(nIdx)
		}
	}

	f.target = target
	f.hasTarget = true
	f.stats.Recomputes++
}

// nextGeneration invalidates the whole matrix in O(1), clearing stamps only on counter wraparound
func (f *DistanceField) nextGeneration() {
	f.gen++
	if f.gen == 0 {
		clear(f.stamp)
		f.gen = 1
	}
}

// Distance returns the hop count at c; false when c is unreached or outside the grid
func (f *DistanceField) Distance(c maze.Cell) (int, bool) {
	idx, ok := f.index(c)
	if !ok {
		return 0, false
	}
	return int(f.dist[idx]), true
}

// StepToward returns the direction to the first strictly closer neighbor in Up, Down, Left, Right order.
// Following it always walks some shortest path to the target
func (f *DistanceField) StepToward(source maze.Cell) Dir {
	return f.bestStep(source, func(n, best int32) bool { return n < best })
}

// StepAway returns the direction to the first strictly farther neighbor, same scan order and tie-break as StepToward
func (f *DistanceField) StepAway(source maze.Cell) Dir {
	return f.bestStep(source, func(n, best int32) bool { return n > best })
}

func (f *DistanceField) bestStep(source maze.Cell, better func(n, best int32) bool) Dir {
	idx, ok := f.index(source)
	if !ok {
		return DirNone
	}

	bestDir := DirNone
	best := f.dist[idx]

	for d := DirUp; d < DirCount; d++ {
		nIdx, ok := f.index(maze.Cell{X: source.X + DirVectors[d][0], Y: source.Y + DirVectors[d][1]})
		if !ok {
			continue
		}
		if better(f.dist[nIdx], best) {
			best = f.dist[nIdx]
			bestDir = d
		}
	}
	return bestDir
}

// index returns the flat index of a reached in-bounds cell
func (f *DistanceField) index(c maze.Cell) (int32, bool) {
	if f.gen == 0 || !f.grid.InBounds(c) {
		return 0, false
	}
	idx := int32(c.Y*f.width + c.X)
	if f.stamp[idx] != f.gen {
		return 0, false
	}
	return idx, true
}
