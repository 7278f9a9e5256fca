package maze

import (
	"math/rand"
	"time"
)

// GenConfig controls procedural level generation
type GenConfig struct {
	Width, Height int

	// Braiding: 0.0 (perfect maze, tree) to 1.0 (no dead ends).
	// Higher values add loops, which give pursuers more than one way around
	Braiding float64

	// OpenBorders clears the outer ring so agents can circle the maze
	OpenBorders bool

	Start *Cell // Optional (nil = automatic)
	End   *Cell // Optional (nil = automatic)
	Seed  int64 // Optional (0 = random)
}

// GenResult is a generated level with its two anchor cells
type GenResult struct {
	Grid       *Grid
	Start, End Cell
}

// Generate carves a maze with a recursive backtracker, braids it, and fills passages with food.
// Start is tagged TagPlayer and End TagGhost so the result is directly playable
func Generate(cfg GenConfig) GenResult {
	// Round down to odd so rooms sit on odd coordinates
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	walls := make([][]bool, rows)
	for y := range walls {
		walls[y] = make([]bool, cols)
		for x := range walls[y] {
			walls[y][x] = true
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	startDef := Cell{1, 1}
	endDef := Cell{cols - 2, rows - 2}
	if cfg.OpenBorders {
		startDef = Cell{(cols / 2) | 1, (rows / 2) | 1}
		endDef = Cell{cols - 1, (rows / 2) | 1}
	}
	start := clampCell(rows, cols, cfg.Start, startDef)
	end := clampCell(rows, cols, cfg.End, endDef)

	carve(walls, start, rng)

	// Borders go before braiding so edge rooms are seen as connected
	if cfg.OpenBorders {
		stripBorders(walls)
	}
	if cfg.Braiding > 0 {
		braid(walls, cfg.Braiding, rng)
	}

	if cfg.OpenBorders {
		walls[start.Y][start.X] = false
		walls[end.Y][end.X] = false
	} else {
		forceOpen(walls, start)
		forceOpen(walls, end)
	}

	lines := make([]string, rows)
	for y, row := range walls {
		b := make([]byte, cols)
		for x, wall := range row {
			switch {
			case wall:
				b[x] = byte(TagWall)
			case x == start.X && y == start.Y:
				b[x] = byte(TagPlayer)
			case x == end.X && y == end.Y:
				b[x] = byte(TagGhost)
			default:
				b[x] = byte(TagFood)
			}
		}
		lines[y] = string(b)
	}

	g, err := NewGrid(lines)
	if err != nil {
		// ensureOdd guarantees at least 3x3
		panic(err)
	}
	return GenResult{Grid: g, Start: start, End: end}
}

// --- Core algorithms ---

var (
	jumpDirs  = [4]Cell{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	orthoDirs = [4]Cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
)

// carve runs an iterative recursive backtracker, producing a uniform spanning tree over rooms
func carve(walls [][]bool, start Cell, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])

	if start.X < 0 || start.X >= cols || start.Y < 0 || start.Y >= rows {
		start = Cell{1, 1}
	}

	stack := []Cell{start}
	walls[start.Y][start.X] = false

	candidates := make([]Cell, 0, 4)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range jumpDirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			// Keep a one-cell wall border
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && walls[ny][nx] {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		walls[curr.Y+d.Y/2][curr.X+d.X/2] = false
		next := Cell{curr.X + d.X, curr.Y + d.Y}
		walls[next.Y][next.X] = false
		stack = append(stack, next)
	}
}

// braid removes walls behind dead ends with the given probability, never creating plazas or pillars
func braid(walls [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])

	candidates := make([]Cell, 0, 4)
	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if walls[y][x] {
				continue
			}

			exits := 0
			for _, d := range orthoDirs {
				if !walls[y+d.Y][x+d.X] {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates = candidates[:0]
			for _, jd := range jumpDirs {
				nx, ny := x+jd.X, y+jd.Y
				wx, wy := x+jd.X/2, y+jd.Y/2
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				if !walls[ny][nx] && walls[wy][wx] && canRemoveWall(walls, wx, wy) {
					candidates = append(candidates, Cell{wx, wy})
				}
			}

			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				walls[c.Y][c.X] = false
			}
		}
	}
}

// canRemoveWall reports whether opening (x,y) keeps the maze free of
// 2x2 open plazas and of isolated single-cell pillars
func canRemoveWall(walls [][]bool, x, y int) bool {
	rows, cols := len(walls), len(walls[0])

	open := func(tx, ty int) bool {
		if tx < 0 || tx >= cols || ty < 0 || ty >= rows {
			return false
		}
		return !walls[ty][tx]
	}

	// Plazas: any of the four 2x2 quadrants around (x,y) fully open
	if open(x-1, y-1) && open(x, y-1) && open(x-1, y) {
		return false
	}
	if open(x, y-1) && open(x+1, y-1) && open(x+1, y) {
		return false
	}
	if open(x-1, y) && open(x-1, y+1) && open(x, y+1) {
		return false
	}
	if open(x+1, y) && open(x, y+1) && open(x+1, y+1) {
		return false
	}

	// Pillars: an adjacent wall must keep another wall neighbor once (x,y) opens
	for _, d := range orthoDirs {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || !walls[ny][nx] {
			continue
		}

		links := 0
		for _, d2 := range orthoDirs {
			nnx, nny := nx+d2.X, ny+d2.Y
			if nnx == x && nny == y {
				continue
			}
			if nnx >= 0 && nnx < cols && nny >= 0 && nny < rows && walls[nny][nnx] {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}

	return true
}

func stripBorders(walls [][]bool) {
	rows, cols := len(walls), len(walls[0])
	for x := 0; x < cols; x++ {
		walls[0][x] = false
		walls[rows-1][x] = false
	}
	for y := 0; y < rows; y++ {
		walls[y][0] = false
		walls[y][cols-1] = false
	}
}

// --- Helpers ---

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

func clampCell(rows, cols int, c *Cell, def Cell) Cell {
	if c == nil {
		return def
	}
	return Cell{
		X: min(max(c.X, 0), cols-1),
		Y: min(max(c.Y, 0), rows-1),
	}
}

// forceOpen opens c and, if it ended up isolated, one interior neighbor
func forceOpen(walls [][]bool, c Cell) {
	rows, cols := len(walls), len(walls[0])
	if c.X < 0 || c.Y < 0 || c.Y >= rows || c.X >= cols {
		return
	}
	walls[c.Y][c.X] = false

	for _, d := range orthoDirs {
		nx, ny := c.X+d.X, c.Y+d.Y
		if nx >= 0 && nx < cols && ny >= 0 && ny < rows && !walls[ny][nx] {
			return
		}
	}

	for _, d := range orthoDirs {
		nx, ny := c.X+d.X, c.Y+d.Y
		if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 {
			walls[ny][nx] = false
			return
		}
	}
}
