package typestrike

import (
	"math"

	"github.com/vovakirdan/typestrike/internal/core"
)

// Flash colors. The alpha channel caps the overlay intensity.
var (
	FlashHit        = core.RGBA{R: 57, G: 255, B: 20, A: 80}
	FlashGroundMiss = core.RGBA{R: 255, G: 51, B: 102, A: 100}
	FlashWrongKey   = core.RGBA{R: 255, G: 51, B: 102, A: 150}
)

// Flash is a transient full-screen tint.
type Flash struct {
	Timer float64
	Color core.RGBA
}

// Trigger restarts the flash with the given color for duration seconds.
func (f *Flash) Trigger(color core.RGBA, duration float64) {
	f.Timer = duration
	f.Color = color
}

// Decay lowers the timer by rate*delta, floored at zero.
func (f *Flash) Decay(delta, rate float64) {
	f.Timer = core.MaxF(f.Timer-delta*rate, 0)
}

// Alpha is the overlay alpha: the timer scaled by 5 into the byte range,
// saturated, and capped by the trigger color's own alpha.
func (f Flash) Alpha() uint8 {
	if f.Timer <= 0 {
		return 0
	}
	a := math.Min(f.Timer*255*5, 255)
	return min(uint8(a), f.Color.A)
}

// Shake is the transient camera shake magnitude.
type Shake struct {
	Magnitude float64
}

// Kick sets the magnitude.
func (s *Shake) Kick(magnitude float64) {
	s.Magnitude = magnitude
}

// Decay lowers the magnitude by rate*delta, floored at zero.
func (s *Shake) Decay(delta, rate float64) {
	s.Magnitude = core.MaxF(s.Magnitude-delta*rate, 0)
}
