package typestrike

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/typestrike/internal/core"
)

// Particle physics constants.
const (
	ParticleGravity  = 300.0 // Downward acceleration, units/sec²
	ParticleMinSpeed = 100.0
	ParticleMaxSpeed = 300.0
	ParticleLife     = 1.0 // Seconds
	ParticleMinSize  = 3.0
	ParticleMaxSize  = 8.0
)

// Particle is a cosmetic spark thrown out when a letter is destroyed.
type Particle struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Life    float64
	MaxLife float64
	Size    float64
}

// NewParticle creates a particle at (x, y) flying in a random direction
// at a random speed in [100, 300).
func NewParticle(rng *rand.Rand, x, y float64) Particle {
	angle := rng.Float64() * 2 * math.Pi
	speed := ParticleMinSpeed + rng.Float64()*(ParticleMaxSpeed-ParticleMinSpeed)

	return Particle{
		Pos:     core.Vec2{X: x, Y: y},
		Vel:     core.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
		Life:    ParticleLife,
		MaxLife: ParticleLife,
		Size:    ParticleMinSize + rng.Float64()*(ParticleMaxSize-ParticleMinSize),
	}
}

// Advance integrates position, applies gravity and decays life.
func (p *Particle) Advance(delta float64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(delta))
	p.Vel.Y += ParticleGravity * delta
	p.Life -= delta
}

// IsExpired reports whether the particle has no life left.
func (p *Particle) IsExpired() bool {
	return p.Life <= 0
}

// LifeFraction is the remaining life in [0, 1]; renderers use it as alpha.
func (p *Particle) LifeFraction() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return core.ClampF(p.Life/p.MaxLife, 0, 1)
}
