package navigation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/maze-chase/maze"
)

func mustGrid(t testing.TB, lines ...string) *maze.Grid {
	t.Helper()
	g, err := maze.NewGrid(lines)
	require.NoError(t, err)
	return g
}

// snapshot captures the observable matrix: hop count per cell, -1 for unreached
func snapshot(f *DistanceField) [][]int {
	g := f.Grid()
	out := make([][]int, g.Height())
	for y := range out {
		out[y] = make([]int, g.RowLen(y))
		for x := range out[y] {
			d, ok := f.Distance(maze.Cell{X: x, Y: y})
			if !ok {
				d = -1
			}
			out[y][x] = d
		}
	}
	return out
}

func TestDistanceField_Corridor(t *testing.T) {
	f := NewDistanceField(mustGrid(t, "....."))
	f.Recompute(maze.Cell{X: 0, Y: 0})

	assert.Equal(t, [][]int{{0, 1, 2, 3, 4}}, snapshot(f))

	dx, dy := f.StepToward(maze.Cell{X: 4, Y: 0}).Vector()
	assert.Equal(t, -1, dx)
	assert.Equal(t, 0, dy)

	dx, dy = f.StepAway(maze.Cell{X: 0, Y: 0}).Vector()
	assert.Equal(t, 1, dx)
	assert.Equal(t, 0, dy)
}

func TestDistanceField_DisconnectedIsland(t *testing.T) {
	f := NewDistanceField(mustGrid(t, ".*.*."))
	f.Recompute(maze.Cell{X: 0, Y: 0})

	source := maze.Cell{X: 4, Y: 0}
	_, reached := f.Distance(source)
	assert.False(t, reached)

	dx, dy := f.StepToward(source).Vector()
	assert.Equal(t, 0, dx)
	assert.Equal(t, 0, dy)
	assert.Equal(t, DirNone, f.StepAway(source))

	// Walls other than the target stay unreached
	_, reached = f.Distance(maze.Cell{X: 1, Y: 0})
	assert.False(t, reached)
}

func TestDistanceField_StaleBeforeFirstRecompute(t *testing.T) {
	f := NewDistanceField(mustGrid(t, "...", "..."))

	_, reached := f.Distance(maze.Cell{X: 1, Y: 1})
	assert.False(t, reached)
	assert.Equal(t, DirNone, f.StepToward(maze.Cell{X: 1, Y: 1}))
	assert.Equal(t, DirNone, f.StepAway(maze.Cell{X: 1, Y: 1}))

	_, ok := f.Target()
	assert.False(t, ok)
	assert.Zero(t, f.Stats().Generation)
}

func TestDistanceField_TargetIsZero(t *testing.T) {
	g := maze.Classic()
	f := NewDistanceField(g)

	for _, target := range []maze.Cell{{X: 2, Y: 2}, {X: 14, Y: 15}, {X: 0, Y: 15}, {X: 27, Y: 30}} {
		f.Recompute(target)
		d, ok := f.Distance(target)
		require.True(t, ok, "target %v must be reached", target)
		assert.Equal(t, 0, d, "target %v", target)
	}
}

// TestDistanceField_Relaxation checks every reached cell is exactly one hop past its best neighbor
func TestDistanceField_Relaxation(t *testing.T) {
	g := maze.Classic()
	f := NewDistanceField(g)

	for _, target := range []maze.Cell{{X: 2, Y: 2}, {X: 15, Y: 15}, {X: 7, Y: 12}} {
		f.Recompute(target)

		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.RowLen(y); x++ {
				c := maze.Cell{X: x, Y: y}
				d, reached := f.Distance(c)

				if g.IsWall(c) {
					assert.False(t, reached, "wall %v reached", c)
					continue
				}
				if !reached {
					continue
				}

				best := math.MaxInt
				for dir := DirUp; dir < DirCount; dir++ {
					dx, dy := dir.Vector()
					n := maze.Cell{X: x + dx, Y: y + dy}
					nd, ok := f.Distance(n)
					if !ok {
						if g.InBounds(n) && !g.IsWall(n) {
							t.Fatalf("open neighbor %v of reached cell %v is unreached", n, c)
						}
						continue
					}
					best = min(best, nd)
					assert.LessOrEqual(t, abs(nd-d), 1, "neighbors %v and %v", c, n)
				}

				if c == target {
					assert.Equal(t, 0, d)
				} else {
					assert.Equal(t, best+1, d, "cell %v", c)
				}
			}
		}
	}
}

func TestDistanceField_Idempotence(t *testing.T) {
	g := maze.Classic()
	a := maze.Cell{X: 2, Y: 2}
	b := maze.Cell{X: 27, Y: 30}

	fresh := NewDistanceField(g)
	fresh.Recompute(a)

	f := NewDistanceField(g)
	f.Recompute(a)
	f.Recompute(b)
	f.Recompute(a)

	assert.Equal(t, snapshot(fresh), snapshot(f))
	assert.Equal(t, uint64(3), f.Stats().Recomputes)
}

func TestDistanceField_CachedTargetDoesNoWork(t *testing.T) {
	f := NewDistanceField(maze.Classic())
	a := maze.Cell{X: 6, Y: 9}

	f.Recompute(a)
	first := snapshot(f)
	gen := f.Stats().Generation

	f.Recompute(a)
	stats := f.Stats()

	assert.Equal(t, uint64(1), stats.Recomputes)
	assert.Equal(t, uint64(1), stats.Elided)
	assert.Equal(t, gen, stats.Generation)
	assert.Equal(t, first, snapshot(f))

	target, ok := f.Target()
	assert.True(t, ok)
	assert.Equal(t, a, target)
}

func TestDistanceField_StepTowardDescends(t *testing.T) {
	g := maze.Classic()
	f := NewDistanceField(g)
	target := maze.Cell{X: 13, Y: 21}
	f.Recompute(target)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.RowLen(y); x++ {
			c := maze.Cell{X: x, Y: y}
			d, ok := f.Distance(c)
			if !ok {
				assert.Equal(t, DirNone, f.StepToward(c))
				continue
			}

			dir := f.StepToward(c)
			if d == 0 {
				assert.Equal(t, DirNone, dir, "target must not move")
				continue
			}
			require.NotEqual(t, DirNone, dir, "cell %v at distance %d has no step", c, d)

			dx, dy := dir.Vector()
			nd, ok := f.Distance(maze.Cell{X: x + dx, Y: y + dy})
			require.True(t, ok)
			assert.Equal(t, d-1, nd, "cell %v", c)
		}
	}
}

func TestDistanceField_StepAwayAscends(t *testing.T) {
	g := maze.Classic()
	f := NewDistanceField(g)
	f.Recompute(maze.Cell{X: 13, Y: 21})

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.RowLen(y); x++ {
			c := maze.Cell{X: x, Y: y}
			d, ok := f.Distance(c)
			if !ok {
				continue
			}

			hasFarther := false
			for dir := DirUp; dir < DirCount; dir++ {
				dx, dy := dir.Vector()
				if nd, ok := f.Distance(maze.Cell{X: x + dx, Y: y + dy}); ok && nd > d {
					hasFarther = true
				}
			}

			dir := f.StepAway(c)
			if !hasFarther {
				assert.Equal(t, DirNone, dir, "dead end %v", c)
				continue
			}
			dx, dy := dir.Vector()
			nd, ok := f.Distance(maze.Cell{X: x + dx, Y: y + dy})
			require.True(t, ok)
			assert.Equal(t, d+1, nd, "cell %v", c)
		}
	}
}

func TestDistanceField_TieBreakOrder(t *testing.T) {
	f := NewDistanceField(mustGrid(t, "...", "...", "..."))
	f.Recompute(maze.Cell{X: 2, Y: 2})

	// Down and Right both reach distance 1: Down is scanned first
	assert.Equal(t, DirDown, f.StepToward(maze.Cell{X: 1, Y: 1}))
	// Up and Left both reach distance 3: Up is scanned first
	assert.Equal(t, DirUp, f.StepAway(maze.Cell{X: 1, Y: 1}))

	f.Recompute(maze.Cell{X: 0, Y: 0})
	// From the far corner only Up and Left exist, both at distance 3
	assert.Equal(t, DirUp, f.StepToward(maze.Cell{X: 2, Y: 2}))
	assert.Equal(t, DirNone, f.StepAway(maze.Cell{X: 2, Y: 2}))
}

func TestDistanceField_TargetOnWall(t *testing.T) {
	f := NewDistanceField(mustGrid(t, "*..", "***"))
	f.Recompute(maze.Cell{X: 0, Y: 0})

	assert.Equal(t, [][]int{{0, 1, 2}, {-1, -1, -1}}, snapshot(f))
}

func TestDistanceField_RaggedRows(t *testing.T) {
	f := NewDistanceField(mustGrid(t, "...", "."))
	f.Recompute(maze.Cell{X: 0, Y: 1})

	assert.Equal(t, [][]int{{1, 2, 3}, {0}}, snapshot(f))

	// Past the end of a short row is out of bounds, even though the matrix is rectangular
	assert.Panics(t, func() { f.Recompute(maze.Cell{X: 2, Y: 1}) })
	_, ok := f.Distance(maze.Cell{X: 2, Y: 1})
	assert.False(t, ok)
}

func TestDistanceField_InvalidTarget(t *testing.T) {
	f := NewDistanceField(mustGrid(t, "..."))

	assert.Panics(t, func() { f.Recompute(maze.Cell{X: -1, Y: 0}) })
	assert.Panics(t, func() { f.Recompute(maze.Cell{X: 0, Y: 1}) })

	err := f.TryRecompute(maze.Cell{X: 3, Y: 0})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	require.NoError(t, f.TryRecompute(maze.Cell{X: 2, Y: 0}))
	assert.Equal(t, [][]int{{2, 1, 0}}, snapshot(f))
}

func TestDistanceField_OutOfBoundsSource(t *testing.T) {
	f := NewDistanceField(mustGrid(t, "..."))
	f.Recompute(maze.Cell{X: 0, Y: 0})

	assert.Equal(t, DirNone, f.StepToward(maze.Cell{X: -1, Y: 0}))
	assert.Equal(t, DirNone, f.StepAway(maze.Cell{X: 5, Y: 0}))
}

func TestDistanceField_QueueDrained(t *testing.T) {
	f := NewDistanceField(maze.Classic())
	f.Recompute(maze.Cell{X: 2, Y: 2})
	assert.True(t, f.queue.empty())

	f.Recompute(maze.Cell{X: 27, Y: 2})
	assert.True(t, f.queue.empty())
}

func TestDistanceField_GenerationWraparound(t *testing.T) {
	g := mustGrid(t, ".*.", "...")
	f := NewDistanceField(g)

	// Plant a stamp the post-wrap generation would otherwise match
	wallIdx := 0*f.width + 1
	f.stamp[wallIdx] = 1
	f.gen = math.MaxUint32

	f.Recompute(maze.Cell{X: 0, Y: 0})

	assert.Equal(t, uint32(1), f.Stats().Generation)
	assert.Equal(t, [][]int{{0, -1, 4}, {1, 2, 3}}, snapshot(f))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func BenchmarkDistanceField_Recompute(b *testing.B) {
	g := maze.Classic()
	f := NewDistanceField(g)
	targets := []maze.Cell{{X: 2, Y: 2}, {X: 27, Y: 30}}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Recompute(targets[i%2])
	}
}
