package render

import "github.com/gdamore/tcell/v2"

// Board glyphs, each maze cell spans two terminal columns
const (
	glyphWall  = '█'
	glyphFood  = '·'
	glyphPower = '●'
	glyphGate  = '─'
	glyphGhost = 'ᗣ'
	glyphEyes  = '°'
)

// ghostColours is indexed by sim.Ghost.Colour
var ghostColours = [...]tcell.Color{
	tcell.ColorOrange,
	tcell.ColorRed,
	tcell.ColorPink,
	tcell.ColorDarkCyan,
}

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorNavy)
	styleFood    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePower   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleGate    = tcell.StyleDefault.Foreground(tcell.ColorPink)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleScared  = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleEyes    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleOverlay = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// ghostStyle returns the body style for palette index i
func ghostStyle(i int) tcell.Style {
	return tcell.StyleDefault.Foreground(ghostColours[i%len(ghostColours)]).Bold(true)
}

// playerGlyphs face right, left, up, down
var playerGlyphs = [...]rune{'ᗧ', 'ᗤ', 'ᗢ', 'ᗝ'}

// deathFrames shrink the player over the death animation
var deathFrames = [...]rune{'ᗧ', 'ᗢ', '◠', '◡', '·', ' '}
