package maze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_RaggedRows(t *testing.T) {
	g, err := NewGrid([]string{"*.*", ".", "", "o-G"})
	require.NoError(t, err)

	assert.Equal(t, 4, g.Height())
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 1, g.RowLen(1))
	assert.Equal(t, 0, g.RowLen(2))
	assert.Equal(t, 0, g.RowLen(9))

	assert.True(t, g.InBounds(Cell{X: 0, Y: 1}))
	assert.False(t, g.InBounds(Cell{X: 1, Y: 1}))
	assert.False(t, g.InBounds(Cell{X: 0, Y: 2}))
	assert.False(t, g.InBounds(Cell{X: -1, Y: 0}))

	assert.Equal(t, TagGate, g.At(Cell{X: 1, Y: 3}))
	assert.Equal(t, TagEmpty, g.At(Cell{X: 5, Y: 5}))
}

func TestNewGrid_Empty(t *testing.T) {
	_, err := NewGrid(nil)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = NewGrid([]string{"", ""})
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestGrid_IsWall(t *testing.T) {
	g, err := NewGrid([]string{"*.o-G P"})
	require.NoError(t, err)

	assert.True(t, g.IsWall(Cell{X: 0, Y: 0}))
	for x := 1; x < 7; x++ {
		assert.False(t, g.IsWall(Cell{X: x, Y: 0}), "tag %q must be open", g.At(Cell{X: x, Y: 0}))
	}
	assert.False(t, g.IsWall(Cell{X: 100, Y: 0}), "outside the grid reads open")
}

func TestGrid_LinesCopy(t *testing.T) {
	src := []string{"*.*", "..."}
	g, err := NewGrid(src)
	require.NoError(t, err)

	lines := g.Lines()
	assert.Equal(t, src, lines)
	lines[0] = "xxx"
	assert.Equal(t, "*.*", g.Lines()[0])
	assert.Equal(t, "*.*\n...", g.String())
}

func TestClassic(t *testing.T) {
	g := Classic()
	assert.Equal(t, 33, g.Height())
	assert.Equal(t, 30, g.Width())

	ghosts := g.Find(TagGhost)
	assert.Equal(t, []Cell{{13, 15}, {14, 15}, {15, 15}, {16, 15}}, ghosts)
	assert.Len(t, g.Find(TagPower), 4)
	assert.Len(t, g.Find(TagGate), 2)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.txt")
	require.NoError(t, os.WriteFile(path, []byte("*****\r\n*P.G*\r\n*****\r\n\r\n\n"), 0o644))

	g, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"*****", "*P.G*", "*****"}, g.Lines())
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n\n"), 0o644))
	_, err = LoadFile(empty)
	assert.ErrorIs(t, err, ErrEmptyGrid)
}
