package navigation

import (
	"github.com/lixenwraith/maze-chase/maze"
)

// FieldCache owns every distance field built over one grid: a single pursuit field shared
// by all hunting agents, and one private home field per agent
type FieldCache struct {
	grid    *maze.Grid
	pursuit *DistanceField
	homes   map[int]*DistanceField
}

// NewFieldCache creates the shared pursuit field for grid; home fields are created on demand
func NewFieldCache(grid *maze.Grid) *FieldCache {
	return &FieldCache{
		grid:    grid,
		pursuit: NewDistanceField(grid),
		homes:   make(map[int]*DistanceField),
	}
}

// Grid returns the grid shared by every field in the cache
func (c *FieldCache) Grid() *maze.Grid {
	return c.grid
}

// Pursuit returns the shared field
func (c *FieldCache) Pursuit() *DistanceField {
	return c.pursuit
}

// UpdatePursuit retargets the shared field. Returns true if a traversal ran this call
func (c *FieldCache) UpdatePursuit(target maze.Cell) bool {
	before := c.pursuit.stats.Recomputes
	c.pursuit.Recompute(target)
	return c.pursuit.stats.Recomputes != before
}

// Home returns the private field of agent id, computed for home.
// The first call builds the field; later calls only recompute when home moved
func (c *FieldCache) Home(id int, home maze.Cell) *DistanceField {
	f, ok := c.homes[id]
	if !ok {
		f = NewDistanceField(c.grid)
		c.homes[id] = f
	}
	f.Recompute(home)
	return f
}

// Forget drops the home field of agent id
func (c *FieldCache) Forget(id int) {
	delete(c.homes, id)
}

// Len returns the number of fields held, pursuit included
func (c *FieldCache) Len() int {
	return 1 + len(c.homes)
}
