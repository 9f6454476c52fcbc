package typestrike

import "github.com/vovakirdan/typestrike/internal/core"

// Letter spawn and boundary constants, in world units.
const (
	LetterStartY = -50.0 // Spawn height above the visible area
	LetterSize   = 40.0
	BottomGrace  = 50.0 // Distance past the viewport bottom before a letter counts as missed
)

// LetterColor is the glyph color of every falling letter.
const LetterColor = core.ColorBrightCyan

// Letter is a falling target.
type Letter struct {
	Char     rune
	Pos      core.Vec2
	Speed    float64 // Fall speed in world units per second
	Size     float64
	Targeted bool // Closest-to-ground letter for its character
}

// NewLetter creates an untargeted letter above the visible area at x.
func NewLetter(char rune, x, speed float64) Letter {
	return Letter{
		Char:  char,
		Pos:   core.Vec2{X: x, Y: LetterStartY},
		Speed: speed,
		Size:  LetterSize,
	}
}

// Advance moves the letter straight down by speed*delta.
func (l *Letter) Advance(delta float64) {
	l.Pos.Y += l.Speed * delta
}

// HasPassedBottom reports whether the letter fell past the grace margin
// below a viewport of the given height.
func (l *Letter) HasPassedBottom(screenHeight float64) bool {
	return l.Pos.Y > screenHeight+BottomGrace
}
