package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/maze-chase/audio"
	"github.com/lixenwraith/maze-chase/config"
	"github.com/lixenwraith/maze-chase/maze"
	"github.com/lixenwraith/maze-chase/navigation"
	"github.com/lixenwraith/maze-chase/parameter"
	"github.com/lixenwraith/maze-chase/render"
	"github.com/lixenwraith/maze-chase/sim"
)

// errQuit ends the loop on user request
var errQuit = errors.New("quit")

// app wires the terminal, the simulation and the level watcher into one fixed-step loop
type app struct {
	screen   tcell.Screen
	renderer *render.Renderer
	game     *sim.Game
	cfg      config.Config
	sounds   audio.Player

	levels  <-chan *maze.Grid
	errs    <-chan error
	pending *maze.Grid // Reloaded level waiting for the current round to end
}

func newApp(screen tcell.Screen, renderer *render.Renderer, game *sim.Game, cfg config.Config, sounds audio.Player) *app {
	return &app{
		screen:   screen,
		renderer: renderer,
		game:     game,
		cfg:      cfg,
		sounds:   sounds,
	}
}

// watch subscribes the loop to level reloads
func (a *app) watch(levels <-chan *maze.Grid, errs <-chan error) {
	a.levels = levels
	a.errs = errs
}

// run pumps terminal events and steps the game until quit or ctx is done
func (a *app) run(ctx context.Context) error {
	events := make(chan tcell.Event, parameter.EventQueueSize)
	g, ctx := errgroup.WithContext(ctx)

	// Input polling interacts directly with the terminal and ends with the group
	g.Go(func() error {
		defer handleCrash(a.screen, "event pump")
		a.screen.ChannelEvents(events, ctx.Done())
		return nil
	})

	g.Go(func() error {
		defer handleCrash(a.screen, "game loop")
		return a.loop(ctx, events)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func (a *app) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(a.cfg.TickInterval())
	defer ticker.Stop()

	a.renderer.Draw(a.game)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.handleEvent(ev) {
				return errQuit
			}

		case grid, ok := <-a.levels:
			if !ok {
				a.levels = nil
				continue
			}
			slog.Info("level reloaded", "width", grid.Width(), "height", grid.Height())
			a.pending = grid

		case err, ok := <-a.errs:
			if !ok {
				a.errs = nil
				continue
			}
			slog.Warn("level reload failed", "error", err)

		case <-ticker.C:
			a.applyPending()
			a.game.Tick()
			a.renderer.Draw(a.game)
		}
	}
}

// applyPending swaps in a reloaded level once no round is in progress
func (a *app) applyPending() {
	if a.pending == nil || a.game.Phase() != sim.PhaseWaiting {
		return
	}
	grid := a.pending
	a.pending = nil

	game, err := sim.New(grid, a.cfg.Settings(), a.sounds)
	if err != nil {
		slog.Warn("reloaded level rejected", "error", err)
		return
	}
	a.game = game
}

// handleEvent applies one terminal event, returning false to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'f':
			a.renderer.SetShowField(!a.renderer.ShowField())
		default:
			if d := keyDir(ev); d != navigation.DirNone {
				a.game.Input(d)
			} else {
				a.game.Start()
			}
		}
	}
	return true
}

// keyDir maps arrows, WASD and hjkl to a direction
func keyDir(ev *tcell.EventKey) navigation.Dir {
	switch ev.Key() {
	case tcell.KeyUp:
		return navigation.DirUp
	case tcell.KeyDown:
		return navigation.DirDown
	case tcell.KeyLeft:
		return navigation.DirLeft
	case tcell.KeyRight:
		return navigation.DirRight
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			return navigation.DirUp
		case 's', 'j':
			return navigation.DirDown
		case 'a', 'h':
			return navigation.DirLeft
		case 'd', 'l':
			return navigation.DirRight
		}
	}
	return navigation.DirNone
}
