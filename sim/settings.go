package sim

import (
	"time"

	"github.com/lixenwraith/maze-chase/parameter"
)

// Settings are the round timings, expressed in simulation ticks
type Settings struct {
	IntroTicks      int // Intro cue length before play starts
	CountdownLead   int // Countdown display runs this many ticks ahead of the intro timer
	ScaredTicks     int // Power-up flee duration
	ScaredSkipEvery int // Scared ghosts skip one move after this many moves
	ChompTicks      int // Minimum gap between chomp cues
	DeathTicks      int // Death animation length
}

// TicksFor converts a duration to whole ticks at tickRate, rounding up
func TicksFor(d time.Duration, tickRate int) int {
	n := int64(d) * int64(tickRate)
	return int((n + int64(time.Second) - 1) / int64(time.Second))
}

// DefaultSettings returns the stock timings at parameter.TickRate
func DefaultSettings() Settings {
	return Settings{
		IntroTicks:      TicksFor(parameter.IntroWait, parameter.TickRate),
		CountdownLead:   TicksFor(parameter.IntroCountLead, parameter.TickRate),
		ScaredTicks:     TicksFor(parameter.ScaredTime, parameter.TickRate),
		ScaredSkipEvery: parameter.ScaredSkipMoveEvery,
		ChompTicks:      TicksFor(parameter.ChompInterval, parameter.TickRate),
		DeathTicks:      parameter.DeathTicks,
	}
}
