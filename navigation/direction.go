package navigation

// Dir is a 4-connected step direction
// Index into DirVectors: Up=0, Down=1, Left=2, Right=3
type Dir int8

const (
	DirNone  Dir = -1 // No move: unreachable source or already at a local extreme
	DirUp    Dir = 0
	DirDown  Dir = 1
	DirLeft  Dir = 2
	DirRight Dir = 3
	DirCount Dir = 4
)

// DirVectors matches DirUp..DirRight, which is also the fixed neighbor scan order
var DirVectors = [4][2]int{
	{0, -1}, {0, 1}, {-1, 0}, {1, 0},
}

var dirOpposite = [4]Dir{DirDown, DirUp, DirRight, DirLeft}

var dirNames = [4]string{"up", "down", "left", "right"}

// Vector returns the unit displacement, (0,0) for DirNone
func (d Dir) Vector() (dx, dy int) {
	if d < 0 || d >= DirCount {
		return 0, 0
	}
	return DirVectors[d][0], DirVectors[d][1]
}

// Opposite returns the reverse direction, DirNone stays DirNone
func (d Dir) Opposite() Dir {
	if d < 0 || d >= DirCount {
		return DirNone
	}
	return dirOpposite[d]
}

func (d Dir) String() string {
	if d < 0 || d >= DirCount {
		return "none"
	}
	return dirNames[d]
}

// DirFromVector maps a unit axis displacement back to a Dir, DirNone for anything else
func DirFromVector(dx, dy int) Dir {
	for d := DirUp; d < DirCount; d++ {
		if DirVectors[d][0] == dx && DirVectors[d][1] == dy {
			return d
		}
	}
	return DirNone
}
