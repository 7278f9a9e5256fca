package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave selects the oscillator shape
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// sweep is a finite oscillator gliding linearly from one frequency to another,
// with a short attack/release envelope and optional vibrato
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	wave     Wave
	gain     float64
	vibrato  float64 // Vibrato rate in Hz, 0 disables
	n, pos   int
	phase    float64
}

// NewSweep creates a tone of length d gliding from 'from' Hz to 'to' Hz
func NewSweep(rate beep.SampleRate, d time.Duration, from, to float64, wave Wave, gain float64) beep.Streamer {
	return &sweep{rate: rate, from: from, to: to, wave: wave, gain: gain, n: rate.N(d)}
}

func newWobble(rate beep.SampleRate, d time.Duration, from, to, vibrato float64) beep.Streamer {
	return &sweep{rate: rate, from: from, to: to, wave: WaveSquare, gain: 0.25, vibrato: vibrato, n: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.n {
			if i == 0 {
				return 0, false
			}
			return i, true
		}

		progress := float64(s.pos) / float64(s.n)
		freq := s.from + (s.to-s.from)*progress
		if s.vibrato > 0 {
			t := float64(s.pos) / float64(s.rate)
			freq *= 1 + 0.08*math.Sin(2*math.Pi*s.vibrato*t)
		}

		var val float64
		switch s.wave {
		case WaveSquare:
			if s.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(s.phase-0.5) - 1
		default:
			val = math.Sin(2 * math.Pi * s.phase)
		}

		val *= s.gain * envelope(s.pos, s.n, s.rate.N(5*time.Millisecond))
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope ramps the first and last edge samples to avoid clicks
func envelope(pos, n, edge int) float64 {
	if edge <= 0 {
		return 1
	}
	switch {
	case pos < edge:
		return float64(pos) / float64(edge)
	case n-pos < edge:
		return float64(n-pos) / float64(edge)
	}
	return 1
}

// note is one step of a melody, freq 0 is a rest
type note struct {
	freq float64
	dur  time.Duration
}

func melody(rate beep.SampleRate, wave Wave, gain float64, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(rate.N(n.dur)))
			continue
		}
		parts = append(parts, NewSweep(rate, n.dur, n.freq, n.freq, wave, gain))
	}
	return beep.Seq(parts...)
}

// NewCueStreamer synthesizes the sound for c
func NewCueStreamer(rate beep.SampleRate, c Cue) beep.Streamer {
	switch c {
	case CueChomp:
		return beep.Seq(
			NewSweep(rate, 60*time.Millisecond, 420, 220, WaveSquare, 0.15),
			NewSweep(rate, 60*time.Millisecond, 220, 420, WaveSquare, 0.15),
		)
	case CueFruit:
		return melody(rate, WaveTriangle, 0.3,
			note{523.25, 60 * time.Millisecond},
			note{659.25, 60 * time.Millisecond},
			note{783.99, 60 * time.Millisecond},
			note{1046.50, 120 * time.Millisecond},
		)
	case CueGhost:
		return NewSweep(rate, 250*time.Millisecond, 950, 180, WaveSine, 0.3)
	case CueDeath:
		return beep.Seq(
			newWobble(rate, 1200*time.Millisecond, 760, 110, 9),
			NewSweep(rate, 80*time.Millisecond, 300, 300, WaveSquare, 0.2),
			beep.Silence(rate.N(60*time.Millisecond)),
			NewSweep(rate, 80*time.Millisecond, 300, 300, WaveSquare, 0.2),
		)
	case CueIntro:
		const beat = 150 * time.Millisecond
		// C, Am, F, G arpeggios, then a run up to the octave
		return melody(rate, WaveSquare, 0.12,
			note{261.63, beat}, note{329.63, beat}, note{392.00, beat}, note{523.25, beat},
			note{220.00, beat}, note{261.63, beat}, note{329.63, beat}, note{440.00, beat},
			note{174.61, beat}, note{220.00, beat}, note{261.63, beat}, note{349.23, beat},
			note{196.00, beat}, note{246.94, beat}, note{293.66, beat}, note{392.00, 2 * beat},
			note{0, beat},
			note{261.63, beat / 2}, note{293.66, beat / 2}, note{329.63, beat / 2}, note{349.23, beat / 2},
			note{392.00, beat / 2}, note{440.00, beat / 2}, note{493.88, beat / 2}, note{523.25, 4 * beat},
		)
	}
	return beep.Silence(0)
}
