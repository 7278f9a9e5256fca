package parameter

import "time"

// Geometry
const (
	// BlockSize is the number of sub-cell position units per maze cell
	BlockSize = 10

	// HalfBlockSize is used to round a position to its nearest cell
	HalfBlockSize = BlockSize / 2
)

// Round Flow
const (
	// IntroWait is how long the intro cue plays before the round starts
	IntroWait = 4500 * time.Millisecond

	// IntroCountFrom is the first number shown by the intro countdown
	IntroCountFrom = 5

	// IntroCountLead shifts the countdown so "GO" shows just before play starts
	IntroCountLead = 200 * time.Millisecond

	// DeathTicks is the length of the player death animation
	DeathTicks = 80
)

// Ghosts
const (
	// ScaredTime is how long ghosts flee after a power-up
	ScaredTime = 3 * time.Second

	// ScaredSkipMoveEvery makes scared ghosts skip one move after this many moves
	ScaredSkipMoveEvery = 1
)

// Pellets & Score
const (
	// ChompInterval is the minimum gap between two chomp cues
	ChompInterval = 520 * time.Millisecond

	ScoreFood  = 10
	ScorePower = 50
	ScoreGhost = 200
)
