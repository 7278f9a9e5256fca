package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/maze-chase/audio"
	"github.com/lixenwraith/maze-chase/config"
	"github.com/lixenwraith/maze-chase/maze"
	"github.com/lixenwraith/maze-chase/render"
	"github.com/lixenwraith/maze-chase/sim"
)

var (
	configFlag = flag.String("config", "maze-chase.yaml", "YAML config file, missing file uses defaults")
	levelFlag  = flag.String("level", "", "Level file, empty plays the built-in board")
	debugFlag  = flag.Bool("debug", false, "Write debug log under the log directory")
	muteFlag   = flag.Bool("mute", false, "Disable sound")
	fieldFlag  = flag.Bool("field", false, "Show the pursuit distance overlay (toggle in game with 'f')")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg)

	if logFile := setupLogging(*debugFlag, cfg.LogDir); logFile != nil {
		defer logFile.Close()
	}

	grid, err := loadLevel(cfg.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load level: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Restore terminal to sane state even if the game crashes
	defer handleCrash(screen, "main")
	defer screen.Fini()
	screen.HideCursor()

	sounds := setupAudio(cfg)
	if sm, ok := sounds.(*audio.SoundManager); ok {
		defer sm.Cleanup()
	}
	game, err := sim.New(grid, cfg.Settings(), sounds)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start game: %v\n", err)
		os.Exit(1)
	}

	renderer := render.NewRenderer(screen)
	renderer.SetShowField(cfg.ShowField)

	a := newApp(screen, renderer, game, cfg, sounds)
	if cfg.Level != "" && cfg.WatchLevel {
		w, err := maze.NewWatcher(cfg.Level)
		if err != nil {
			slog.Warn("level watch disabled", "path", cfg.Level, "error", err)
		} else {
			defer w.Close()
			a.watch(w.Levels, w.Errors)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx); err != nil {
		slog.Error("game loop failed", "error", err)
	}
	slog.Info("exit", "score", a.game.Score())
}

// applyFlags lets explicitly set flags override the config file
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "level":
			cfg.Level = *levelFlag
		case "mute":
			cfg.Mute = *muteFlag
		case "field":
			cfg.ShowField = *fieldFlag
		}
	})
}

// loadLevel reads path, or returns the built-in board for an empty path
func loadLevel(path string) (*maze.Grid, error) {
	if path == "" {
		return maze.Classic(), nil
	}
	return maze.LoadFile(path)
}

// setupAudio opens the speaker; the game runs silently when it is muted or unavailable
func setupAudio(cfg config.Config) audio.Player {
	if cfg.Mute {
		return audio.Null{}
	}
	sm := audio.NewSoundManager(cfg.Volume)
	if err := sm.Initialize(); err != nil {
		// Non-fatal, game can run without sound
		slog.Warn("audio initialization failed", "error", err)
		return audio.Null{}
	}
	return sm
}

// handleCrash restores the terminal and prints the panic, for deferral at the top of every goroutine
func handleCrash(screen tcell.Screen, where string) {
	r := recover()
	if r == nil {
		return
	}
	screen.Fini()
	slog.Error("crash", "where", where, "panic", r)
	fmt.Fprintf(os.Stderr, "\n\x1b[31mMAZE-CHASE CRASHED (%s): %v\x1b[0m\n", where, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}
