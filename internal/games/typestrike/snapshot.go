package typestrike

import (
	"math"
	"sort"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Phase      Phase
	Paused     bool
	LevelIndex int
	LevelID    string
	Score      int
	Combo      int
	MaxCombo   int
	Correct    int
	Total      int
	Lives      int
	SpawnTimer float64
	Elapsed    float64
	Shake      float64
	FlashTimer float64
	Letters    []Letter
	Particles  []Particle
	Typed      []TallyEntry // Sorted by character
	Errors     []TallyEntry
}

// TallyEntry is one character count of a tally map.
type TallyEntry struct {
	Char  rune
	Count int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:       g.tick,
		Phase:      g.phase,
		Paused:     g.paused,
		LevelIndex: g.levelIndex,
		LevelID:    g.level.ID,
		Score:      g.score,
		Combo:      g.combo,
		MaxCombo:   g.maxCombo,
		Correct:    g.correct,
		Total:      g.total,
		Lives:      g.player.Lives,
		SpawnTimer: g.spawnTimer,
		Elapsed:    g.elapsed,
		Shake:      g.shake.Magnitude,
		FlashTimer: g.flash.Timer,
		Letters:    append([]Letter(nil), g.letters...),
		Particles:  append([]Particle(nil), g.particles...),
		Typed:      sortedTally(g.typed),
		Errors:     sortedTally(g.errors),
	}
}

func sortedTally(m map[rune]int) []TallyEntry {
	out := make([]TallyEntry, 0, len(m))
	for r, n := range m {
		out = append(out, TallyEntry{Char: r, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}

// Hash returns a simple hash of the snapshot for quick comparison.
func (s Snapshot) Hash() uint64 {
	var h uint64 = 17
	mix := func(v uint64) { h = h*31 + v }
	mixF := func(f float64) { mix(math.Float64bits(f)) }
	mixB := func(b bool) {
		if b {
			mix(1)
		} else {
			mix(0)
		}
	}

	mix(s.Tick)
	mix(uint64(s.Phase))
	mixB(s.Paused)
	mix(uint64(s.LevelIndex))
	for _, c := range s.LevelID {
		mix(uint64(c))
	}
	mix(uint64(s.Score))
	mix(uint64(s.Combo))
	mix(uint64(s.MaxCombo))
	mix(uint64(s.Correct))
	mix(uint64(s.Total))
	mix(uint64(s.Lives))
	mixF(s.SpawnTimer)
	mixF(s.Elapsed)
	mixF(s.Shake)
	mixF(s.FlashTimer)

	for _, l := range s.Letters {
		mix(uint64(l.Char))
		mixF(l.Pos.X)
		mixF(l.Pos.Y)
		mixF(l.Speed)
		mixB(l.Targeted)
	}
	for _, p := range s.Particles {
		mixF(p.Pos.X)
		mixF(p.Pos.Y)
		mixF(p.Vel.X)
		mixF(p.Vel.Y)
		mixF(p.Life)
		mixF(p.Size)
	}
	for _, e := range s.Typed {
		mix(uint64(e.Char))
		mix(uint64(e.Count))
	}
	mix(0xff) // separator between tallies
	for _, e := range s.Errors {
		mix(uint64(e.Char))
		mix(uint64(e.Count))
	}
	return h
}
