package typestrike

import "github.com/vovakirdan/typestrike/internal/core"

// ParticleView is what a renderer needs of a particle.
type ParticleView struct {
	Pos          core.Vec2
	Size         float64
	LifeFraction float64 // Fade-out alpha in [0, 1]
}

// View is a read-only copy of everything a presentation layer draws.
// Nothing in it aliases game state.
type View struct {
	Phase         Phase
	Paused        bool
	Mode          Mode
	Viewport      core.Viewport
	LevelIndex    int
	Level         Level
	Selected      int   // Menu selection
	SelectedLevel Level // Level at Selected
	TotalLevels   int
	Lives         int
	MaxLives      int
	PlayerPos     core.Vec2
	Score         int
	Combo         int
	Accuracy      float64
	TimeRemaining float64
	WPM           int
	Letters       []Letter
	Particles     []ParticleView
	FlashColor    core.RGBA
	FlashAlpha    uint8
	Shake         float64
	Report        *Report
	Achievements  []Achievement
}

// View returns the presentation copy of the current state.
func (g *Game) View() View {
	v := View{
		Phase:         g.phase,
		Paused:        g.paused,
		Mode:          g.mode,
		Viewport:      g.viewport,
		LevelIndex:    g.levelIndex,
		Level:         g.level.Clone(),
		Selected:      g.selected,
		SelectedLevel: g.catalog.Get(g.selected),
		TotalLevels:   g.catalog.TotalLevels(),
		Lives:         g.player.Lives,
		MaxLives:      g.player.MaxLives,
		PlayerPos:     g.player.Pos,
		Score:         g.score,
		Combo:         g.combo,
		Accuracy:      g.Accuracy(),
		TimeRemaining: g.TimeRemaining(),
		WPM:           g.WPM(),
		Letters:       append([]Letter(nil), g.letters...),
		Particles:     make([]ParticleView, len(g.particles)),
		FlashColor:    g.flash.Color,
		FlashAlpha:    g.flash.Alpha(),
		Shake:         g.shake.Magnitude,
		Achievements:  g.achievements.Unlocked(),
	}
	for i, p := range g.particles {
		v.Particles[i] = ParticleView{Pos: p.Pos, Size: p.Size, LifeFraction: p.LifeFraction()}
	}
	if g.report != nil {
		r := *g.report
		r.Typed = copyTally(r.Typed)
		r.Errors = copyTally(r.Errors)
		r.WeakLetters = append([]LetterStat(nil), r.WeakLetters...)
		v.Report = &r
	}
	return v
}
