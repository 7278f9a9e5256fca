package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager plays cues through the system speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool
	played      [cueCount]uint64
}

// NewSoundManager creates a sound manager. volume is a base-2 gain offset, 0 is unchanged
func NewSoundManager(volume float64) *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer: mixer,
		volume: &effects.Volume{
			Streamer: mixer,
			Base:     2,
			Volume:   volume,
			Silent:   volume <= -10,
		},
	}
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// 100ms buffer keeps latency below a few ticks
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker teardown; a cleared mixer streams silence
	sm.initialized = false
}

// Play queues a cue; a no-op before Initialize
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || c >= cueCount {
		return
	}

	streamer := NewCueStreamer(sampleRate, c)
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()

	sm.played[c]++
	slog.Debug("audio cue", "cue", c.String())
}

// Played returns how many times c has been played
func (sm *SoundManager) Played(c Cue) uint64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if c >= cueCount {
		return 0
	}
	return sm.played[c]
}
