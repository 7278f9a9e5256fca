package audio

// Cue identifies one game sound
type Cue uint8

const (
	CueChomp Cue = iota
	CueFruit
	CueGhost
	CueDeath
	CueIntro
	cueCount
)

var cueNames = [cueCount]string{"chomp", "fruit", "ghost", "death", "intro"}

func (c Cue) String() string {
	if c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Player triggers cues. Implementations must not block the caller
type Player interface {
	Play(c Cue)
}

// Null discards every cue, used when audio is muted or unavailable
type Null struct{}

func (Null) Play(Cue) {}
