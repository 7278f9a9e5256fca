package parameter

import "time"

// Game Loop Timing
const (
	// TickRate is the fixed simulation step frequency
	TickRate = 60

	// TickInterval is the duration of one simulation step at TickRate
	TickInterval = time.Second / TickRate

	// EventQueueSize is the buffered capacity between the terminal event pump and the game loop
	EventQueueSize = 100
)
