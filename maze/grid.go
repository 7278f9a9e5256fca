package maze

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Tag is the single-byte content of one level cell
type Tag byte

// Level tags. Only TagWall blocks movement, everything else is walkable
const (
	TagWall   Tag = '*'
	TagFood   Tag = '.'
	TagPower  Tag = 'o'
	TagGhost  Tag = 'G'
	TagGate   Tag = '-'
	TagPlayer Tag = 'P'
	TagEmpty  Tag = ' '
)

// ErrEmptyGrid is returned when a level has no cells
var ErrEmptyGrid = errors.New("maze: empty grid")

// Cell is a zero-based (column, row) grid position
type Cell struct {
	X, Y int
}

// Grid is an immutable row-major table of tags. Rows may differ in length
type Grid struct {
	rows  [][]Tag
	width int
}

// NewGrid builds a grid from one string per row
func NewGrid(lines []string) (*Grid, error) {
	g := &Grid{rows: make([][]Tag, len(lines))}
	cells := 0
	for y, line := range lines {
		row := make([]Tag, len(line))
		for x := 0; x < len(line); x++ {
			row[x] = Tag(line[x])
		}
		g.rows[y] = row
		cells += len(row)
		g.width = max(g.width, len(row))
	}
	if cells == 0 {
		return nil, ErrEmptyGrid
	}
	return g, nil
}

// LoadFile reads a level file, one row per line
func LoadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening level %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading level %s: %w", path, err)
	}

	// Trailing blank lines are editor artifacts, not rows
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	g, err := NewGrid(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing level %s: %w", path, err)
	}
	return g, nil
}

// Height returns the row count
func (g *Grid) Height() int {
	return len(g.rows)
}

// Width returns the length of the longest row
func (g *Grid) Width() int {
	return g.width
}

// RowLen returns the length of row y, 0 outside the grid
func (g *Grid) RowLen(y int) int {
	if y < 0 || y >= len(g.rows) {
		return 0
	}
	return len(g.rows[y])
}

// InBounds reports whether c addresses an existing cell
func (g *Grid) InBounds(c Cell) bool {
	return c.Y >= 0 && c.Y < len(g.rows) && c.X >= 0 && c.X < len(g.rows[c.Y])
}

// At returns the tag at c, TagEmpty outside the grid
func (g *Grid) At(c Cell) Tag {
	if !g.InBounds(c) {
		return TagEmpty
	}
	return g.rows[c.Y][c.X]
}

// IsWall reports whether c blocks movement. Cells outside the grid are open
func (g *Grid) IsWall(c Cell) bool {
	return g.At(c) == TagWall
}

// Find returns every cell carrying tag, in row-major order
func (g *Grid) Find(tag Tag) []Cell {
	var out []Cell
	for y, row := range g.rows {
		for x, t := range row {
			if t == tag {
				out = append(out, Cell{X: x, Y: y})
			}
		}
	}
	return out
}

// Lines returns the grid as one string per row
func (g *Grid) Lines() []string {
	out := make([]string, len(g.rows))
	for y, row := range g.rows {
		b := make([]byte, len(row))
		for x, t := range row {
			b[x] = byte(t)
		}
		out[y] = string(b)
	}
	return out
}

// String renders the grid with newline-separated rows
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// classicLevel is the stock arcade-style board
var classicLevel = []string{
	"******************************",
	"******************************",
	"** ...........**............**",
	"**.****.*****.**.*****.****.**",
	"**o*  *.*   *.**.*   *.*  *o**",
	"**.****.*****.**.*****.****.**",
	"**..........................**",
	"**.****.**.********.**.****.**",
	"**.****.**.********.**.****.**",
	"**......**....**....**......**",
	"*******.***** ** *****.*******",
	"*******.***** ** *****.*******",
	"     **.**          **.**     ",
	"*******.** ***--*** **.*******",
	"*******.** ***  *** **.*******",
	"       .   **GGGG**   .       ",
	"*******.** ******** **.*******",
	"*******.** ******** **.*******",
	"     **.**          **.**     ",
	"*******.** ******** **.*******",
	"*******.** ******** **.*******",
	"**............**............**",
	"**.****.*****.**.*****.****.**",
	"**.****.*****.**.*****.****.**",
	"**o..**................**..o**",
	"****.**.**.********.**.**.****",
	"****.**.**.********.**.**.****",
	"**......**....**....**......**",
	"**.**********.**.**********.**",
	"**.**********.**.**********.**",
	"**..........................**",
	"******************************",
	"******************************",
}

// Classic returns the built-in level
func Classic() *Grid {
	g, err := NewGrid(classicLevel)
	if err != nil {
		panic(err)
	}
	return g
}
