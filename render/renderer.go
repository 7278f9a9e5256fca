package render

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/maze-chase/maze"
	"github.com/lixenwraith/maze-chase/parameter"
	"github.com/lixenwraith/maze-chase/sim"
)

// Board layout on screen
const (
	boardTop  = 1 // Row 0 is the status line
	cellWidth = 2
)

// Renderer draws a game onto a tcell screen
type Renderer struct {
	screen    tcell.Screen
	showField bool
}

// NewRenderer creates a renderer for screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// SetShowField toggles the pursuit distance overlay
func (r *Renderer) SetShowField(on bool) {
	r.showField = on
}

func (r *Renderer) ShowField() bool {
	return r.showField
}

// Draw renders one frame of g and shows it
func (r *Renderer) Draw(g *sim.Game) {
	r.screen.Clear()
	r.drawBoard(g)
	r.drawGhosts(g)
	r.drawPlayer(g)
	r.drawStatus(g)
	r.screen.Show()
}

func (r *Renderer) drawBoard(g *sim.Game) {
	grid := g.Grid()
	field := g.PursuitField()
	_, hasTarget := field.Target()

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.RowLen(y); x++ {
			c := maze.Cell{X: x, Y: y}
			switch tag := grid.At(c); {
			case tag == maze.TagWall:
				r.setCell(c, glyphWall, glyphWall, styleWall)
			case tag == maze.TagGate:
				r.setCell(c, glyphGate, glyphGate, styleGate)
			case g.Pellet(c) == maze.TagFood:
				r.setCell(c, glyphFood, ' ', styleFood)
			case g.Pellet(c) == maze.TagPower:
				r.setCell(c, glyphPower, ' ', stylePower)
			case r.showField && hasTarget:
				r.setCell(c, overlayGlyph(field.Distance(c)), ' ', styleOverlay)
			}
		}
	}
}

// overlayGlyph renders a hop count as its last digit
func overlayGlyph(d int, ok bool) rune {
	if !ok {
		return parameter.NavOverlayUnreached
	}
	return rune('0' + d%parameter.NavOverlayModulo)
}

func (r *Renderer) drawGhosts(g *sim.Game) {
	scared := g.Scared()
	for _, gh := range g.Ghosts() {
		c := gh.Pos.Cell()
		switch {
		case gh.Dead:
			r.setCell(c, glyphEyes, glyphEyes, styleEyes)
		case scared:
			r.setCell(c, glyphGhost, ' ', styleScared)
		default:
			r.setCell(c, glyphGhost, ' ', ghostStyle(gh.Colour))
		}
	}
}

func (r *Renderer) drawPlayer(g *sim.Game) {
	p := g.Player()
	glyph := playerGlyph(p.Face)
	if g.Phase() == sim.PhaseDying {
		frame := int(g.DeathProgress() * float64(len(deathFrames)-1))
		glyph = deathFrames[frame]
	}
	r.setCell(p.Pos.Cell(), glyph, ' ', stylePlayer)
}

func playerGlyph(face sim.Vec) rune {
	switch {
	case face.X < 0:
		return playerGlyphs[1]
	case face.Y < 0:
		return playerGlyphs[2]
	case face.Y > 0:
		return playerGlyphs[3]
	}
	return playerGlyphs[0]
}

func (r *Renderer) drawStatus(g *sim.Game) {
	x := r.drawText(0, 0, fmt.Sprintf("SCORE %-6d ROUND %d", g.Score(), g.Round()), styleStatus)
	x += 2
	r.drawText(x, 0, statusMessage(g), styleMessage)
}

// statusMessage is the phase banner
func statusMessage(g *sim.Game) string {
	switch g.Phase() {
	case sim.PhaseWaiting:
		if g.FirstPlay() {
			return "Press any key to start!"
		}
		return "Game over - press any key"
	case sim.PhaseIntro:
		return g.Countdown()
	case sim.PhaseDying:
		return "Caught!"
	}
	if g.Scared() {
		return "Power up!"
	}
	return strconv.Itoa(g.PelletsLeft()) + " left"
}

// setCell draws the two columns of board cell c, off-board cells are skipped
func (r *Renderer) setCell(c maze.Cell, left, right rune, style tcell.Style) {
	if c.X < 0 || c.Y < 0 {
		return
	}
	sx, sy := c.X*cellWidth, c.Y+boardTop
	r.screen.SetContent(sx, sy, left, nil, style)
	r.screen.SetContent(sx+1, sy, right, nil, style)
}

// drawText writes s from (x, y) and returns the column after it
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
