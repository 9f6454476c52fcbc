package typestrike

import "github.com/vovakirdan/typestrike/internal/core"

// DefaultLives is the number of lives a session starts with.
const DefaultLives = 5

// Player is the turret at the bottom of the world. It has no update rule
// of its own; the game removes lives on ground-misses.
type Player struct {
	Pos      core.Vec2
	Lives    int
	MaxLives int
}

// NewPlayer creates a player with full lives.
func NewPlayer(x, y float64, maxLives int) Player {
	if maxLives <= 0 {
		maxLives = DefaultLives
	}
	return Player{
		Pos:      core.Vec2{X: x, Y: y},
		Lives:    maxLives,
		MaxLives: maxLives,
	}
}

// Restore refills lives to the maximum.
func (p *Player) Restore() {
	p.Lives = p.MaxLives
}

// LoseLife removes one life, never going below zero, and returns the
// lives left.
func (p *Player) LoseLife() int {
	if p.Lives > 0 {
		p.Lives--
	}
	return p.Lives
}

// IsDead reports whether no lives remain.
func (p *Player) IsDead() bool {
	return p.Lives <= 0
}
