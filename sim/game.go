package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/lixenwraith/maze-chase/audio"
	"github.com/lixenwraith/maze-chase/maze"
	"github.com/lixenwraith/maze-chase/navigation"
	"github.com/lixenwraith/maze-chase/parameter"
)

// ErrNoSpawn is returned for a level without a walkable cell for the player
var ErrNoSpawn = errors.New("sim: level has no player spawn")

// Phase is the round state
type Phase uint8

const (
	PhaseWaiting Phase = iota // Idle until the first key
	PhaseIntro                // Countdown while the intro cue plays
	PhasePlaying
	PhaseDying // Death animation, then back to waiting
)

var phaseNames = [...]string{"waiting", "intro", "playing", "dying"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Vec is a position or facing in sub-cell units, parameter.BlockSize units per cell
type Vec struct {
	X, Y int
}

// Cell returns the cell nearest to v. Tunnel positions may fall outside the grid
func (v Vec) Cell() maze.Cell {
	return maze.Cell{
		X: floorDiv(v.X+parameter.HalfBlockSize, parameter.BlockSize),
		Y: floorDiv(v.Y+parameter.HalfBlockSize, parameter.BlockSize),
	}
}

// Player is the user-controlled actor
type Player struct {
	Pos      Vec
	Face     Vec
	Buffered navigation.Dir // Queued turn, applied once the player is aligned with an open cell
	Death    int            // Death animation frame
}

// Ghost is a field-driven chaser
type Ghost struct {
	ID     int
	Home   maze.Cell
	Pos    Vec
	Face   Vec
	Colour int // Index into the render palette
	Dead   bool
}

// Game is the tick-driven round simulation. It is not safe for concurrent use;
// the game loop owns it and the renderer reads it between ticks
type Game struct {
	grid   *maze.Grid
	fields *navigation.FieldCache
	sounds audio.Player
	set    Settings

	spawn   maze.Cell
	homes   []maze.Cell
	pellets [][]maze.Tag // Food and power tags still on the board, same shape as the grid
	total   int
	left    int

	phase      Phase
	firstPlay  bool
	tick       int64
	introStart int64
	lastChomp  int64
	round      int
	score      int

	player Player
	ghosts []Ghost

	scared      bool
	scaredStart int64
	skipCounter int
}

// New creates a game on grid, waiting for the first key
func New(grid *maze.Grid, s Settings, sounds audio.Player) (*Game, error) {
	if grid == nil {
		return nil, maze.ErrEmptyGrid
	}
	spawn, ok := findSpawn(grid)
	if !ok {
		return nil, ErrNoSpawn
	}
	if sounds == nil {
		sounds = audio.Null{}
	}

	g := &Game{
		grid:      grid,
		fields:    navigation.NewFieldCache(grid),
		sounds:    sounds,
		set:       s,
		spawn:     spawn,
		homes:     grid.Find(maze.TagGhost),
		firstPlay: true,
		round:     1,
	}
	g.resetPellets()
	g.resetActors()

	slog.Debug("game created",
		"width", grid.Width(), "height", grid.Height(),
		"spawn", fmt.Sprintf("%d,%d", spawn.X, spawn.Y),
		"ghosts", len(g.homes), "pellets", g.total)
	return g, nil
}

// findSpawn picks the player start: an explicit player tag, else the first walkable cell
// in row-major order that is not part of the ghost house
func findSpawn(grid *maze.Grid) (maze.Cell, bool) {
	if cells := grid.Find(maze.TagPlayer); len(cells) > 0 {
		return cells[0], true
	}
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.RowLen(y); x++ {
			switch grid.At(maze.Cell{X: x, Y: y}) {
			case maze.TagWall, maze.TagGhost, maze.TagGate:
				continue
			}
			return maze.Cell{X: x, Y: y}, true
		}
	}
	return maze.Cell{}, false
}

func (g *Game) resetPellets() {
	g.pellets = make([][]maze.Tag, g.grid.Height())
	g.total = 0
	for y := range g.pellets {
		row := make([]maze.Tag, g.grid.RowLen(y))
		for x := range row {
			switch t := g.grid.At(maze.Cell{X: x, Y: y}); t {
			case maze.TagFood, maze.TagPower:
				row[x] = t
				g.total++
			default:
				row[x] = maze.TagEmpty
			}
		}
		g.pellets[y] = row
	}
	g.left = g.total
}

func (g *Game) resetActors() {
	g.player = Player{
		Pos:      cellPos(g.spawn),
		Face:     Vec{X: 1},
		Buffered: navigation.DirNone,
	}
	g.ghosts = make([]Ghost, len(g.homes))
	for i, home := range g.homes {
		g.ghosts[i] = Ghost{
			ID:     i,
			Home:   home,
			Pos:    cellPos(home),
			Face:   Vec{Y: -1},
			Colour: i % 4,
		}
	}
	g.scared = false
	g.skipCounter = 0
	g.lastChomp = -int64(g.set.ChompTicks)
}

// Start begins the intro countdown; ignored unless waiting
func (g *Game) Start() {
	if g.phase != PhaseWaiting {
		return
	}
	g.beginIntro()
}

func (g *Game) beginIntro() {
	g.phase = PhaseIntro
	g.introStart = g.tick
	g.sounds.Play(audio.CueIntro)
	slog.Debug("round intro", "round", g.round)
}

// Input queues a turn. While waiting, any input also starts the round
func (g *Game) Input(d navigation.Dir) {
	g.Start()
	if d >= navigation.DirUp && d < navigation.DirCount {
		g.player.Buffered = d
	}
}

// Tick advances the simulation one step
func (g *Game) Tick() {
	g.tick++
	switch g.phase {
	case PhaseIntro:
		if g.tick-g.introStart >= int64(g.set.IntroTicks) {
			g.phase = PhasePlaying
			g.firstPlay = false
		}
	case PhasePlaying:
		g.updatePlaying()
	case PhaseDying:
		g.updateDying()
	}
}

func (g *Game) updatePlaying() {
	// One traversal per tick at most; unchanged player cell is elided by the field
	if target, ok := g.playerCell(); ok {
		g.fields.UpdatePursuit(target)
	}

	g.applyBufferedTurn()
	g.eatPellet()
	if g.collide() {
		return
	}
	g.movePlayer()
	g.moveGhosts()

	if g.total > 0 && g.left == 0 {
		slog.Debug("level cleared", "round", g.round, "score", g.score)
		g.round++
		g.resetPellets()
		g.resetActors()
		g.beginIntro()
	}
}

func (g *Game) updateDying() {
	if g.player.Death < g.set.DeathTicks-1 {
		g.player.Death++
		return
	}
	slog.Debug("round lost", "round", g.round, "score", g.score)
	g.phase = PhaseWaiting
	g.round = 1
	g.score = 0
	g.resetPellets()
	g.resetActors()
}

// playerCell is the floor cell under the player, clamped into the grid
func (g *Game) playerCell() (maze.Cell, bool) {
	return g.clampCell(floorDiv(g.player.Pos.X, parameter.BlockSize), floorDiv(g.player.Pos.Y, parameter.BlockSize))
}

// roundedCell is the cell nearest to p, clamped into the grid
func (g *Game) roundedCell(p Vec) (maze.Cell, bool) {
	c := p.Cell()
	return g.clampCell(c.X, c.Y)
}

func (g *Game) clampCell(x, y int) (maze.Cell, bool) {
	y = clamp(y, 0, g.grid.Height()-1)
	n := g.grid.RowLen(y)
	if n == 0 {
		return maze.Cell{}, false
	}
	return maze.Cell{X: clamp(x, 0, n-1), Y: y}, true
}

func (g *Game) applyBufferedTurn() {
	d := g.player.Buffered
	if d == navigation.DirNone {
		return
	}
	c, ok := g.playerCell()
	if !ok {
		return
	}
	p := g.player.Pos
	dx, dy := d.Vector()

	// Turning needs alignment on the perpendicular axis and an open neighbor
	if dx != 0 && p.Y%parameter.BlockSize != 0 || dy != 0 && p.X%parameter.BlockSize != 0 {
		return
	}
	n := maze.Cell{
		X: clamp(c.X+dx, 0, g.grid.RowLen(c.Y)-1),
		Y: clamp(c.Y+dy, 0, g.grid.Height()-1),
	}
	if g.grid.IsWall(n) {
		return
	}
	g.player.Face = Vec{X: dx, Y: dy}
	g.player.Buffered = navigation.DirNone
}

func (g *Game) eatPellet() {
	c, ok := g.roundedCell(g.player.Pos)
	if !ok || c.X >= len(g.pellets[c.Y]) {
		return
	}
	switch g.pellets[c.Y][c.X] {
	case maze.TagFood:
		g.score += parameter.ScoreFood
		if g.tick-g.lastChomp >= int64(g.set.ChompTicks) {
			g.sounds.Play(audio.CueChomp)
			g.lastChomp = g.tick
		}
	case maze.TagPower:
		g.score += parameter.ScorePower
		g.sounds.Play(audio.CueFruit)
		g.scared = true
		g.scaredStart = g.tick
		g.skipCounter = 0
	default:
		return
	}
	g.pellets[c.Y][c.X] = maze.TagEmpty
	g.left--
}

// collide resolves player/ghost overlaps. Returns true if the player died
func (g *Game) collide() bool {
	p := g.player.Pos
	eaten := false
	for i := range g.ghosts {
		gh := &g.ghosts[i]
		if gh.Dead || !overlap(p, gh.Pos) {
			continue
		}
		if g.scared {
			gh.Dead = true
			g.score += parameter.ScoreGhost
			eaten = true
			slog.Debug("ghost eaten", "id", gh.ID)
			continue
		}
		g.phase = PhaseDying
		g.player.Death = 0
		g.sounds.Play(audio.CueDeath)
		return true
	}
	// One cue however many ghosts were caught together
	if eaten {
		g.sounds.Play(audio.CueGhost)
	}
	return false
}

// overlap tests two cell-sized boxes
func overlap(a, b Vec) bool {
	return abs(a.X-b.X) < parameter.BlockSize && abs(a.Y-b.Y) < parameter.BlockSize
}

func (g *Game) movePlayer() {
	const b = parameter.BlockSize
	face := g.player.Face
	np := Vec{X: g.player.Pos.X + face.X, Y: g.player.Pos.Y + face.Y}

	// Corner cells covered by the moved box
	top := clamp(floorDiv(np.Y, b), 0, g.grid.Height()-1)
	bottom := clamp(floorDiv(np.Y+b-1, b), 0, g.grid.Height()-1)
	rowLen := g.grid.RowLen(top)
	left := clamp(floorDiv(np.X, b), 0, rowLen)
	right := clamp(floorDiv(np.X+b-1, b), 0, rowLen)

	wall := func(x, y int) bool { return g.grid.IsWall(maze.Cell{X: x, Y: y}) }
	switch {
	case face.X > 0 && (wall(right, top) || wall(right, bottom)):
		np.X = right*b - b
	case face.X < 0 && (wall(left, top) || wall(left, bottom)):
		np.X = left*b + b
	case face.Y < 0 && (wall(left, top) || wall(right, top)):
		np.Y = top*b + b
	case face.Y > 0 && (wall(left, bottom) || wall(right, bottom)):
		np.Y = bottom*b - b
	}

	// Tunnel rows wrap one cell past either edge
	if np.X < -b {
		np.X += rowLen * b
	} else if np.X > rowLen*b {
		np.X = -b
	}
	g.player.Pos = np
}

func (g *Game) moveGhosts() {
	pursuit := g.fields.Pursuit()
	step := pursuit.StepToward
	skip := false
	if g.scared {
		step = pursuit.StepAway
		if g.skipCounter >= g.set.ScaredSkipEvery {
			skip = true
			g.skipCounter = 0
		} else {
			g.skipCounter++
		}
		if g.tick-g.scaredStart >= int64(g.set.ScaredTicks) {
			g.scared = false
		}
	}

	for i := range g.ghosts {
		gh := &g.ghosts[i]
		move := step
		if gh.Dead {
			move = g.fields.Home(gh.ID, gh.Home).StepToward
		} else if skip {
			continue
		}

		// Steering is only possible on an axis the ghost is aligned with
		alignedX := gh.Pos.Y%parameter.BlockSize == 0
		alignedY := gh.Pos.X%parameter.BlockSize == 0
		if !alignedX && !alignedY {
			continue
		}

		c, ok := g.roundedCell(gh.Pos)
		if !ok {
			continue
		}
		if gh.Dead && c == gh.Home {
			gh.Dead = false
			slog.Debug("ghost revived", "id", gh.ID)
		}

		dx, dy := move(c).Vector()
		if dx != 0 && !alignedX || dy != 0 && !alignedY {
			dx, dy = gh.Face.X, gh.Face.Y
		}
		gh.Pos.X += dx
		gh.Pos.Y += dy
		if dx != 0 || dy != 0 {
			gh.Face = Vec{X: dx, Y: dy}
		}
	}
}

// Phase returns the round state
func (g *Game) Phase() Phase { return g.phase }

// FirstPlay reports whether no round has started yet
func (g *Game) FirstPlay() bool { return g.firstPlay }

// Ticks returns the number of ticks simulated
func (g *Game) Ticks() int64 { return g.tick }

func (g *Game) Score() int { return g.score }

func (g *Game) Round() int { return g.round }

func (g *Game) Scared() bool { return g.scared }

func (g *Game) Grid() *maze.Grid { return g.grid }

func (g *Game) Player() Player { return g.player }

// Ghosts returns a copy of the ghost states
func (g *Game) Ghosts() []Ghost {
	out := make([]Ghost, len(g.ghosts))
	copy(out, g.ghosts)
	return out
}

// Pellet returns the pellet at c, or TagEmpty
func (g *Game) Pellet(c maze.Cell) maze.Tag {
	if c.Y < 0 || c.Y >= len(g.pellets) || c.X < 0 || c.X >= len(g.pellets[c.Y]) {
		return maze.TagEmpty
	}
	return g.pellets[c.Y][c.X]
}

// PelletsLeft returns the number of pellets still on the board
func (g *Game) PelletsLeft() int { return g.left }

// PursuitField returns the shared field the ghosts chase along
func (g *Game) PursuitField() *navigation.DistanceField { return g.fields.Pursuit() }

// Countdown returns the intro countdown label, empty outside the intro
func (g *Game) Countdown() string {
	if g.phase != PhaseIntro || g.set.IntroTicks <= 0 {
		return ""
	}
	r := float64(g.tick-g.introStart+int64(g.set.CountdownLead)) / float64(g.set.IntroTicks)
	if r >= 1 {
		return "GO"
	}
	return strconv.Itoa(int(math.Ceil(parameter.IntroCountFrom * (1 - r))))
}

// DeathProgress returns the death animation completion in [0,1]
func (g *Game) DeathProgress() float64 {
	if g.phase != PhaseDying || g.set.DeathTicks <= 1 {
		return 0
	}
	return float64(g.player.Death) / float64(g.set.DeathTicks-1)
}

func cellPos(c maze.Cell) Vec {
	return Vec{X: c.X * parameter.BlockSize, Y: c.Y * parameter.BlockSize}
}

// floorDiv rounds toward negative infinity, positions go negative inside tunnels
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
