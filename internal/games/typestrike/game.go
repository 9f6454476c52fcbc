package typestrike

import (
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/typestrike/internal/config"
	"github.com/vovakirdan/typestrike/internal/core"
	"github.com/vovakirdan/typestrike/internal/registry"
)

// Phase is the top-level mode of a session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseLevelComplete
	PhaseGameOver
)

// String returns the phase name used in logs and snapshots.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Mode selects where level selection starts.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// endlessTiers is how many endless speed tiers the menu lets you pick from.
const endlessTiers = 10

// Default world size used until the host reports a viewport.
const (
	defaultWorldW = 800.0
	defaultWorldH = 600.0
)

// playerOffset is the player's distance above the ground.
const playerOffset = 30.0

// Settings are the tunables of one game, derived from config.Config.
type Settings struct {
	Lives           int
	BasePoints      int
	ComboStep       int
	WrongKeyPenalty int
	Particles       bool
	ParticleBurst   int
	ScreenShake     bool
	ShakeMagnitude  float64
	ShakeDecay      float64
	FlashDuration   float64
	FlashDecay      float64
	SpawnMargin     float64
	SpeedScale      float64
}

// SettingsFromConfig extracts the simulation settings from a config.
func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		Lives:           cfg.Player.Lives,
		BasePoints:      cfg.Scoring.BasePoints,
		ComboStep:       cfg.Scoring.ComboStep,
		WrongKeyPenalty: cfg.Scoring.WrongKeyPenalty,
		Particles:       cfg.Effects.Particles,
		ParticleBurst:   cfg.Effects.ParticleBurst,
		ScreenShake:     cfg.Effects.ScreenShake,
		ShakeMagnitude:  cfg.Effects.ShakeMagnitude,
		ShakeDecay:      cfg.Effects.ShakeDecay,
		FlashDuration:   cfg.Effects.FlashDuration,
		FlashDecay:      cfg.Effects.FlashDecay,
		SpawnMargin:     cfg.World.SpawnMargin,
		SpeedScale:      cfg.SpeedScale,
	}
}

// DefaultSettings returns the settings of the built-in configuration.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.Default())
}

// Package-level setup applied by New and NewEndless, set by the CLI
// before the host creates the game.
var (
	activeSettings     = DefaultSettings()
	activeCatalog      = DefaultCatalog()
	selectedStartLevel int
)

// Configure sets the settings and catalog used by games created afterwards.
// A nil catalog selects the built-in one.
func Configure(s Settings, c *Catalog) {
	activeSettings = s
	if c == nil {
		c = DefaultCatalog()
	}
	activeCatalog = c
}

// SetStartLevel sets the level preselected in the menu (1-based).
// 0 keeps the mode's default.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// Game is the simulation core: it owns every entity, timer and counter
// and advances them one frame at a time.
type Game struct {
	mode     Mode
	settings Settings
	catalog  *Catalog
	rng      *rand.Rand
	tick     uint64

	phase      Phase
	paused     bool
	selected   int // Level index highlighted in the menu
	levelIndex int // Level index being played
	level      Level

	letters   []Letter
	particles []Particle
	player    Player

	score    int
	combo    int
	maxCombo int
	correct  int
	total    int
	typed    map[rune]int
	errors   map[rune]int

	spawnTimer float64
	elapsed    float64
	shake      Shake
	flash      Flash

	viewport     core.Viewport
	report       *Report
	achievements *Achievements
	events       []core.Event
}

// New creates a campaign game using the configured settings and catalog.
func New() *Game {
	return newGame(ModeCampaign, activeSettings, activeCatalog)
}

// NewEndless creates a game whose menu starts in the endless tier.
func NewEndless() *Game {
	return newGame(ModeEndless, activeSettings, activeCatalog)
}

// NewWith creates a game with explicit settings and catalog.
func NewWith(mode Mode, s Settings, c *Catalog) *Game {
	if c == nil {
		c = DefaultCatalog()
	}
	return newGame(mode, s, c)
}

func newGame(mode Mode, s Settings, c *Catalog) *Game {
	return &Game{
		mode:         mode,
		settings:     s,
		catalog:      c,
		achievements: NewAchievements(),
	}
}

func init() {
	registry.Register("typestrike", func() registry.Game {
		return New()
	})
	registry.Register("typestrike_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "typestrike_endless"
	}
	return "typestrike"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Type Strike (Endless)"
	}
	return "Type Strike"
}

// Reset returns the game to the menu with a fresh random source.
// Unlocked achievements are kept.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.phase = PhaseMenu
	g.viewport = core.Viewport{W: defaultWorldW, H: defaultWorldH}
	g.player = NewPlayer(g.viewport.W/2, g.viewport.H-playerOffset, g.settings.Lives)
	g.events = nil

	lo, _ := g.selectionRange()
	g.selected = lo
	if selectedStartLevel > 0 {
		g.selected = selectedStartLevel - 1
		selectedStartLevel = 0 // Reset after use
	}
	g.levelIndex = g.selected
	g.level = g.catalog.Get(g.selected)
	g.resetSession()
}

// resetSession clears every per-session counter, entity and timer.
func (g *Game) resetSession() {
	g.paused = false
	g.letters = nil
	g.particles = nil
	g.player.Restore()
	g.score = 0
	g.combo = 0
	g.maxCombo = 0
	g.correct = 0
	g.total = 0
	g.typed = make(map[rune]int)
	g.errors = make(map[rune]int)
	g.spawnTimer = 0
	g.elapsed = 0
	g.shake = Shake{}
	g.flash = Flash{}
	g.report = nil
}

// selectionRange returns the level indices the menu can choose from.
func (g *Game) selectionRange() (lo, hi int) {
	n := g.catalog.TotalLevels()
	if g.mode == ModeEndless {
		return n, n + endlessTiers - 1
	}
	return 0, n
}

// Step advances the game by one frame.
func (g *Game) Step(f core.Frame) core.StepResult {
	g.tick++
	g.events = nil
	g.setViewport(f.Viewport)

	delta := math.Max(f.Delta, 0)

	switch g.phase {
	case PhaseMenu:
		g.updateMenu(f.Input)
	case PhasePlaying:
		g.updatePlaying(delta, f.Input)
	case PhaseLevelComplete:
		g.updateLevelComplete(f.Input)
	case PhaseGameOver:
		g.updateGameOver(f.Input)
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// setViewport adopts the host's viewport; zero sizes keep the previous one.
func (g *Game) setViewport(v core.Viewport) {
	if v.W > 0 && v.H > 0 {
		g.viewport = v
	}
	g.player.Pos = core.Vec2{X: g.viewport.W / 2, Y: g.viewport.H - playerOffset}
}

func (g *Game) updateMenu(in core.InputFrame) {
	lo, hi := g.selectionRange()
	switch {
	case in.Has(core.ActionConfirm):
		g.startLevel(g.selected)
	case in.Has(core.ActionLeft):
		if g.selected > lo {
			g.selected--
		}
	case in.Has(core.ActionRight):
		if g.selected < hi {
			g.selected++
		}
	}
}

func (g *Game) updateLevelComplete(in core.InputFrame) {
	next := min(g.levelIndex+1, g.catalog.TotalLevels()-1)
	switch {
	case in.Has(core.ActionConfirm):
		g.startLevel(next)
	case in.Has(core.ActionMenu):
		g.enterMenu(next)
	}
}

func (g *Game) updateGameOver(in core.InputFrame) {
	switch {
	case in.Has(core.ActionConfirm), in.Has(core.ActionRetry):
		g.startLevel(g.levelIndex)
	case in.Has(core.ActionMenu):
		g.enterMenu(g.levelIndex)
	}
}

// startLevel enters Playing on the given level with fresh session state.
func (g *Game) startLevel(index int) {
	g.levelIndex = max(index, 0)
	g.level = g.catalog.Get(g.levelIndex)
	g.resetSession()
	g.setPhase(PhasePlaying)
}

func (g *Game) enterMenu(selected int) {
	g.selected = selected
	g.letters = nil
	g.particles = nil
	g.setPhase(PhaseMenu)
}

func (g *Game) setPhase(p Phase) {
	if g.phase == p {
		return
	}
	g.emit(PhaseChanged{From: g.phase, To: p})
	g.phase = p
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

// updatePlaying runs one frame of the Playing phase.
func (g *Game) updatePlaying(delta float64, in core.InputFrame) {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		g.emit(PauseToggled{Paused: g.paused})
	}
	if g.paused {
		return
	}

	g.elapsed += delta
	g.spawnTimer += delta
	g.shake.Decay(delta, g.settings.ShakeDecay)
	g.flash.Decay(delta, g.settings.FlashDecay)

	if g.spawnTimer >= g.level.SpawnRate {
		g.spawnLetter()
		g.spawnTimer = 0
	}

	for i := range g.letters {
		g.letters[i].Advance(delta)
	}

	g.resolveGroundMisses()

	for _, r := range in.TypedKeys() {
		g.resolveKey(r)
	}

	for i := range g.particles {
		g.particles[i].Advance(delta)
	}
	g.particles = slices.DeleteFunc(g.particles, func(p Particle) bool {
		return p.IsExpired()
	})

	if g.phase == PhasePlaying && g.elapsed >= g.level.Duration && !g.player.IsDead() {
		g.setPhase(PhaseLevelComplete)
	}

	g.markTargets()

	// The report is built once the whole frame has been applied.
	if g.phase != PhasePlaying {
		g.finish()
	}
}

// spawnLetter drops one random letter from the level pool.
func (g *Game) spawnLetter() {
	if len(g.level.Letters) == 0 {
		return
	}
	char := g.level.Letters[g.rng.Intn(len(g.level.Letters))]

	margin := g.settings.SpawnMargin
	x := g.viewport.W / 2
	if span := g.viewport.W - 2*margin; span > 0 {
		x = margin + g.rng.Float64()*span
	}

	g.letters = append(g.letters, NewLetter(char, x, g.level.FallSpeed*g.settings.SpeedScale))
}

// resolveGroundMisses removes letters that fell past the ground, back to
// front so simultaneous misses are each processed once.
func (g *Game) resolveGroundMisses() {
	var missed []int
	for i := range g.letters {
		if g.letters[i].HasPassedBottom(g.viewport.H) {
			missed = append(missed, i)
		}
	}

	for j := len(missed) - 1; j >= 0; j-- {
		i := missed[j]
		char := g.letters[i].Char
		g.letters = slices.Delete(g.letters, i, i+1)

		lives := g.player.LoseLife()
		g.combo = 0
		g.flash.Trigger(FlashGroundMiss, g.settings.FlashDuration)
		g.emit(GroundMiss{Char: char, LivesLeft: lives})

		if lives <= 0 {
			g.setPhase(PhaseGameOver)
		}
	}
}

// resolveKey applies one typed key: the matching letter closest to the
// ground is destroyed, or the press counts as a wrong key.
func (g *Game) resolveKey(r rune) {
	g.total++

	best := -1
	for i := range g.letters {
		if g.letters[i].Char != r {
			continue
		}
		if best < 0 || g.letters[i].Pos.Y > g.letters[best].Pos.Y {
			best = i
		}
	}

	if best < 0 {
		g.combo = 0
		g.score = max(g.score-g.settings.WrongKeyPenalty, 0)
		g.errors[r]++
		g.flash.Trigger(FlashWrongKey, g.settings.FlashDuration)
		g.emit(WrongKey{Char: r})
		return
	}

	pos := g.letters[best].Pos
	g.letters = slices.Delete(g.letters, best, best+1)

	g.correct++
	g.combo++
	g.maxCombo = max(g.maxCombo, g.combo)
	points := g.Points(g.combo)
	g.score += points

	if g.settings.Particles {
		for range g.settings.ParticleBurst {
			g.particles = append(g.particles, NewParticle(g.rng, pos.X, pos.Y))
		}
	}
	if g.settings.ScreenShake {
		g.shake.Kick(g.settings.ShakeMagnitude)
	}
	g.flash.Trigger(FlashHit, g.settings.FlashDuration)
	g.typed[r]++
	g.emit(LetterHit{Char: r, Points: points, Combo: g.combo})
}

// Points returns the award for a hit that brought the combo to combo.
func (g *Game) Points(combo int) int {
	step := max(g.settings.ComboStep, 1)
	return g.settings.BasePoints * (1 + combo/step)
}

// markTargets flags the closest-to-ground letter of each character.
func (g *Game) markTargets() {
	lowest := make(map[rune]int, len(g.letters))
	for i := range g.letters {
		g.letters[i].Targeted = false
		j, ok := lowest[g.letters[i].Char]
		if !ok || g.letters[i].Pos.Y > g.letters[j].Pos.Y {
			lowest[g.letters[i].Char] = i
		}
	}
	for _, i := range lowest {
		g.letters[i].Targeted = true
	}
}

// finish builds the report for the phase the session ended in and checks
// achievements.
func (g *Game) finish() {
	report := g.buildReport(g.phase)
	g.report = &report
	g.emit(SessionEnded{Report: report})

	for _, a := range g.achievements.Check(report) {
		g.emit(AchievementUnlocked{Achievement: a})
	}
}

// State returns the current state for the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:    g.phase.String(),
		Level:    g.level.ID,
		Score:    g.score,
		Accuracy: g.Accuracy(),
		Finished: g.phase == PhaseLevelComplete || g.phase == PhaseGameOver,
		Paused:   g.paused,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Accuracy is 100*correct/total, or 100 before the first attempt.
func (g *Game) Accuracy() float64 {
	if g.total == 0 {
		return 100
	}
	return 100 * float64(g.correct) / float64(g.total)
}

// TimeRemaining is the time left in the level, +Inf for endless levels.
func (g *Game) TimeRemaining() float64 {
	if g.level.IsEndless() {
		return math.Inf(1)
	}
	return math.Max(0, g.level.Duration-g.elapsed)
}

// WPM converts correct letters to words (5 letters) per minute of play.
func (g *Game) WPM() int {
	return wpm(g.correct, g.elapsed)
}

func wpm(correct int, elapsed float64) int {
	if elapsed <= 0 {
		return 0
	}
	return int(math.Round((float64(correct) / 5) / (elapsed / 60)))
}

// Typed returns a copy of the per-character hit tally.
func (g *Game) Typed() map[rune]int {
	return copyTally(g.typed)
}

// Errors returns a copy of the per-character wrong-key tally.
func (g *Game) Errors() map[rune]int {
	return copyTally(g.errors)
}

func copyTally(m map[rune]int) map[rune]int {
	out := make(map[rune]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Report returns the report of the last finished session, or nil.
func (g *Game) Report() *Report {
	return g.report
}

// Achievements returns the achievement tracker.
func (g *Game) Achievements() *Achievements {
	return g.achievements
}
