package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/maze-chase/maze"
	"github.com/lixenwraith/maze-chase/sim"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 40)
	t.Cleanup(screen.Fini)
	return screen
}

func newGame(t *testing.T, lines ...string) *sim.Game {
	t.Helper()
	grid, err := maze.NewGrid(lines)
	require.NoError(t, err)
	g, err := sim.New(grid, sim.Settings{ScaredTicks: 100, ScaredSkipEvery: 1, DeathTicks: 5}, nil)
	require.NoError(t, err)
	return g
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func foregroundAt(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	fg, _, _ := style.Decompose()
	return fg
}

func rowText(screen tcell.Screen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		sb.WriteRune(runeAt(screen, x, y))
	}
	return sb.String()
}

func TestDraw_ClassicBoard(t *testing.T) {
	screen := newScreen(t)
	g, err := sim.New(maze.Classic(), sim.DefaultSettings(), nil)
	require.NoError(t, err)

	NewRenderer(screen).Draw(g)

	assert.Equal(t, glyphWall, runeAt(screen, 0, boardTop))
	assert.Equal(t, glyphWall, runeAt(screen, 1, boardTop))
	assert.Equal(t, tcell.ColorNavy, foregroundAt(screen, 0, boardTop))

	// Player spawns at (2,2), food starts at (3,2), power-up at (2,4)
	assert.Equal(t, playerGlyphs[0], runeAt(screen, 4, 2+boardTop))
	assert.Equal(t, glyphFood, runeAt(screen, 6, 2+boardTop))
	assert.Equal(t, glyphPower, runeAt(screen, 4, 4+boardTop))
	assert.Equal(t, glyphGate, runeAt(screen, 28, 13+boardTop))

	// First ghost home is (13,15), palette starts at orange
	assert.Equal(t, glyphGhost, runeAt(screen, 26, 15+boardTop))
	assert.Equal(t, tcell.ColorOrange, foregroundAt(screen, 26, 15+boardTop))
	assert.Equal(t, tcell.ColorRed, foregroundAt(screen, 28, 15+boardTop))

	status := rowText(screen, 0, 80)
	assert.Contains(t, status, "SCORE 0")
	assert.Contains(t, status, "Press any key to start!")
}

func TestDraw_FieldOverlay(t *testing.T) {
	screen := newScreen(t)
	g := newGame(t, "P  * ")
	r := NewRenderer(screen)
	r.SetShowField(true)
	require.True(t, r.ShowField())

	// No target yet, nothing to overlay
	r.Draw(g)
	assert.Equal(t, ' ', runeAt(screen, 2, boardTop))

	g.Start()
	g.Tick()
	g.Tick()
	r.Draw(g)

	assert.Equal(t, '1', runeAt(screen, 2, boardTop))
	assert.Equal(t, '2', runeAt(screen, 4, boardTop))
	assert.Equal(t, glyphWall, runeAt(screen, 6, boardTop))
	assert.Equal(t, '?', runeAt(screen, 8, boardTop), "island cell is unreached")

	r.SetShowField(false)
	r.Draw(g)
	assert.Equal(t, ' ', runeAt(screen, 2, boardTop))
}

func TestDraw_ScaredGhostIsBlue(t *testing.T) {
	screen := newScreen(t)
	g := newGame(t,
		"*********",
		"*Po...G.*",
		"*********",
		"***", "*.*", "***",
	)
	g.Start()
	for i := 0; i < 8; i++ {
		g.Tick()
	}
	require.True(t, g.Scared())

	NewRenderer(screen).Draw(g)

	c := g.Ghosts()[0].Pos.Cell()
	assert.Equal(t, glyphGhost, runeAt(screen, c.X*cellWidth, c.Y+boardTop))
	assert.Equal(t, tcell.ColorBlue, foregroundAt(screen, c.X*cellWidth, c.Y+boardTop))
	assert.Contains(t, rowText(screen, 0, 80), "Power up!")
}

func TestOverlayGlyph(t *testing.T) {
	assert.Equal(t, '0', overlayGlyph(0, true))
	assert.Equal(t, '3', overlayGlyph(13, true))
	assert.Equal(t, '?', overlayGlyph(0, false))
}

func TestPlayerGlyph(t *testing.T) {
	assert.Equal(t, playerGlyphs[0], playerGlyph(sim.Vec{X: 1}))
	assert.Equal(t, playerGlyphs[1], playerGlyph(sim.Vec{X: -1}))
	assert.Equal(t, playerGlyphs[2], playerGlyph(sim.Vec{Y: -1}))
	assert.Equal(t, playerGlyphs[3], playerGlyph(sim.Vec{Y: 1}))
}
