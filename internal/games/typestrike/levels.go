// Package typestrike implements the falling-letters typing trainer:
// letters drop from the top of the world and the player types them before
// they reach the ground.
package typestrike

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/typestrike/internal/core"
)

var (
	// ErrNoLevels is returned when a catalog would contain no levels.
	ErrNoLevels = errors.New("typestrike: catalog has no levels")

	// ErrEmptyPool is returned when a level has no letters to spawn.
	ErrEmptyPool = errors.New("typestrike: level has an empty letter pool")
)

// Level describes one stage of the trainer. Levels handed out by a
// Catalog are copies; mutating one never affects the catalog.
type Level struct {
	ID          string
	Name        string
	Letters     []rune  // Pool of characters that may spawn
	FallSpeed   float64 // World units per second
	SpawnRate   float64 // Seconds between spawns
	Duration    float64 // Seconds until the level is complete, +Inf for endless
	Description string
}

// IsEndless reports whether the level never completes.
func (l Level) IsEndless() bool {
	return math.IsInf(l.Duration, 1)
}

// Clone returns a copy that shares no memory with l.
func (l Level) Clone() Level {
	c := l
	c.Letters = append([]rune(nil), l.Letters...)
	return c
}

// Validate checks that the level can be played.
func (l Level) Validate() error {
	if l.ID == "" {
		return errors.New("typestrike: level without id")
	}
	if len(l.Letters) == 0 {
		return fmt.Errorf("level %s: %w", l.ID, ErrEmptyPool)
	}
	for _, r := range l.Letters {
		if !core.IsTypeable(r) {
			return fmt.Errorf("typestrike: level %s: letter %q cannot be typed", l.ID, r)
		}
	}
	if l.FallSpeed <= 0 || l.SpawnRate <= 0 || l.Duration <= 0 || math.IsNaN(l.Duration) {
		return fmt.Errorf("typestrike: level %s: speed, spawn rate and duration must be positive", l.ID)
	}
	return nil
}

// Endless level parameters.
const (
	endlessBaseSpeed = 150.0
	endlessSpeedStep = 10.0
	endlessSpawnRate = 1.0
	endlessID        = "endless"
	endlessName      = "Endless Mode"
	endlessDesc      = "Survive as long as you can!"
)

var homeRow = []rune{'A', 'S', 'D', 'F', 'J', 'K', 'L', ';'}

// fixedLevels is the built-in campaign.
var fixedLevels = []Level{
	{
		ID: "1-1", Name: "Home Row: F & J",
		Letters:   []rune{'F', 'J'},
		FallSpeed: 100, SpawnRate: 2.0, Duration: 30,
		Description: "Place your index fingers on F and J. Feel the bumps!",
	},
	{
		ID: "1-2", Name: "Home Row: D & K",
		Letters:   []rune{'F', 'J', 'D', 'K'},
		FallSpeed: 110, SpawnRate: 1.8, Duration: 30,
		Description: "Add your middle fingers on D and K.",
	},
	{
		ID: "1-3", Name: "Home Row: S & L",
		Letters:   []rune{'F', 'J', 'D', 'K', 'S', 'L'},
		FallSpeed: 120, SpawnRate: 1.6, Duration: 30,
		Description: "Ring fingers on S and L.",
	},
	{
		ID: "1-4", Name: "Home Row: A & ;",
		Letters:   []rune{'F', 'J', 'D', 'K', 'S', 'L', 'A', ';'},
		FallSpeed: 130, SpawnRate: 1.5, Duration: 30,
		Description: "Pinkies on A and ;",
	},
	{
		ID: "1-5", Name: "Full Home Row",
		Letters:   homeRow,
		FallSpeed: 140, SpawnRate: 1.3, Duration: 60,
		Description: "Master the home row!",
	},
	{
		ID: "2-1", Name: "Upper Row: R & U",
		Letters:   append(append([]rune{}, homeRow...), 'R', 'U'),
		FallSpeed: 150, SpawnRate: 1.2, Duration: 45,
		Description: "Index fingers reach up to R and U.",
	},
	{
		ID: "2-2", Name: "Upper Row: E & I",
		Letters:   append(append([]rune{}, homeRow...), 'R', 'U', 'E', 'I'),
		FallSpeed: 160, SpawnRate: 1.1, Duration: 45,
		Description: "Middle fingers to E and I.",
	},
	{
		ID: "2-3", Name: "Speed Challenge",
		Letters:   []rune{'A', 'S', 'D', 'F', 'J', 'K', 'L', 'E', 'I', 'R', 'U'},
		FallSpeed: 200, SpawnRate: 0.9, Duration: 60,
		Description: "All letters you've learned - faster!",
	},
}

var defaultEndlessPool = []rune{'A', 'S', 'D', 'F', 'J', 'K', 'L', ';', 'E', 'I', 'R', 'U'}

// Catalog is an ordered table of fixed levels plus the endless tier
// derived for every index past the table.
type Catalog struct {
	levels      []Level
	endlessPool []rune
}

var defaultCatalog = &Catalog{levels: fixedLevels, endlessPool: defaultEndlessPool}

// DefaultCatalog returns the built-in eight-level campaign.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// NewCatalog builds a catalog from custom levels. The endless pool is the
// union of all level pools in order of first appearance.
func NewCatalog(levels []Level) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}

	c := &Catalog{levels: make([]Level, 0, len(levels))}
	seen := make(map[rune]bool)
	for _, l := range levels {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		c.levels = append(c.levels, l.Clone())
		for _, r := range l.Letters {
			if !seen[r] {
				seen[r] = true
				c.endlessPool = append(c.endlessPool, r)
			}
		}
	}
	return c, nil
}

// TotalLevels returns the number of fixed levels. Endless levels are not counted.
func (c *Catalog) TotalLevels() int {
	return len(c.levels)
}

// Get returns the level at index. Any index past the fixed table maps to an
// endless level whose fall speed grows with the index. Negative indices
// are treated as 0.
func (c *Catalog) Get(index int) Level {
	if index < 0 {
		index = 0
	}
	if index < len(c.levels) {
		return c.levels[index].Clone()
	}
	return Level{
		ID:          endlessID,
		Name:        endlessName,
		Letters:     append([]rune(nil), c.endlessPool...),
		FallSpeed:   endlessBaseSpeed + float64(index)*endlessSpeedStep,
		SpawnRate:   endlessSpawnRate,
		Duration:    math.Inf(1),
		Description: endlessDesc,
	}
}

// GetLevel returns a level from the built-in catalog.
func GetLevel(index int) Level {
	return defaultCatalog.Get(index)
}

// TotalLevels returns the number of built-in fixed levels.
func TotalLevels() int {
	return defaultCatalog.TotalLevels()
}
