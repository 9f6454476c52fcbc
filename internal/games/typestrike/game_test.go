package typestrike

import (
	"testing"

	"github.com/vovakirdan/typestrike/internal/core"
)

var testViewport = core.Viewport{W: 800, H: 600}

// frame builds a frame with the given typed keys and actions.
func frame(delta float64, keys string, actions ...core.Action) core.Frame {
	in := core.NewInputFrame()
	for _, r := range keys {
		in.Type(r)
	}
	for _, a := range actions {
		in.Set(a)
	}
	return core.Frame{Delta: delta, Viewport: testViewport, Input: in}
}

func newTestGame(s Settings) *Game {
	g := NewWith(ModeCampaign, s, DefaultCatalog())
	g.Reset(core.RuntimeConfig{Seed: 42})
	return g
}

// newPlaying returns a game that just entered Playing on level 1-1.
func newPlaying(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(DefaultSettings())
	g.Step(frame(0, "", core.ActionConfirm))
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, expected playing", g.Phase())
	}
	return g
}

func letterAt(char rune, y float64) Letter {
	l := NewLetter(char, 400, 100)
	l.Pos.Y = y
	return l
}

func countEvents[T core.Event](events []core.Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

func TestMenuConfirmStartsPlaying(t *testing.T) {
	g := newTestGame(DefaultSettings())
	if g.Phase() != PhaseMenu {
		t.Fatalf("initial phase = %v, expected menu", g.Phase())
	}

	// Typed keys in the menu do nothing
	g.Step(frame(1, "FJ"))
	if g.Phase() != PhaseMenu || g.total != 0 {
		t.Fatal("typing in the menu must not start or score")
	}

	res := g.Step(frame(0, "", core.ActionConfirm))
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, expected playing", g.Phase())
	}
	if res.State.Level != "1-1" || res.State.Phase != "playing" {
		t.Errorf("state = %+v", res.State)
	}
	if countEvents[PhaseChanged](res.Events) != 1 {
		t.Error("expected one PhaseChanged event")
	}
	if g.player.Lives != 5 || g.score != 0 || g.elapsed != 0 || len(g.letters) != 0 {
		t.Error("session should start fresh")
	}
}

func TestMenuLevelSelection(t *testing.T) {
	g := newTestGame(DefaultSettings())

	g.Step(frame(0, "", core.ActionLeft))
	if g.selected != 0 {
		t.Errorf("selected = %d, expected clamp at 0", g.selected)
	}

	for range 20 {
		g.Step(frame(0, "", core.ActionRight))
	}
	if g.selected != TotalLevels() {
		t.Errorf("selected = %d, expected %d (endless entry)", g.selected, TotalLevels())
	}

	g.Step(frame(0, "", core.ActionConfirm))
	if !g.level.IsEndless() {
		t.Errorf("level = %s, expected endless", g.level.ID)
	}
}

func TestStartLevelFromFlag(t *testing.T) {
	SetStartLevel(3)
	g := newTestGame(DefaultSettings())
	if GetStartLevel() != 0 {
		t.Error("start level should be consumed by Reset")
	}

	g.Step(frame(0, "", core.ActionConfirm))
	if g.level.ID != "1-3" {
		t.Errorf("level = %s, expected 1-3", g.level.ID)
	}
}

func TestEndlessModeStartsInEndlessTier(t *testing.T) {
	g := NewWith(ModeEndless, DefaultSettings(), DefaultCatalog())
	g.Reset(core.RuntimeConfig{Seed: 1})
	g.Step(frame(0, "", core.ActionConfirm))

	if !g.level.IsEndless() {
		t.Fatalf("level = %s, expected endless", g.level.ID)
	}
	if g.ID() != "typestrike_endless" {
		t.Errorf("ID() = %q", g.ID())
	}
}

func TestWrongKey(t *testing.T) {
	g := newPlaying(t)
	g.score = 5
	g.combo = 4
	g.letters = []Letter{letterAt('F', 100)}

	res := g.Step(frame(0, "Q"))

	if g.total != 1 || g.correct != 0 {
		t.Errorf("total/correct = %d/%d, expected 1/0", g.total, g.correct)
	}
	if g.combo != 0 {
		t.Errorf("combo = %d, expected 0", g.combo)
	}
	if g.score != 3 {
		t.Errorf("score = %d, expected 3", g.score)
	}
	if g.errors['Q'] != 1 {
		t.Errorf("error tally for Q = %d, expected 1", g.errors['Q'])
	}
	if len(g.letters) != 1 {
		t.Error("a wrong key must not remove letters")
	}
	if g.flash.Color != FlashWrongKey || g.flash.Timer != 0.2 {
		t.Errorf("flash = %+v, expected wrong-key flash", g.flash)
	}
	if countEvents[WrongKey](res.Events) != 1 {
		t.Error("expected one WrongKey event")
	}
}

func TestWrongKeyScoreFloor(t *testing.T) {
	g := newPlaying(t)
	g.score = 1

	g.Step(frame(0, "Z"))
	if g.score != 0 {
		t.Errorf("score = %d, expected floor at 0", g.score)
	}
}

func TestHitTieGoesToFirstLetter(t *testing.T) {
	g := newPlaying(t)
	first := NewLetter('F', 100, 100)
	second := NewLetter('F', 700, 100)
	first.Pos.Y, second.Pos.Y = 300, 300
	g.letters = []Letter{first, second}

	g.Step(frame(0, "F"))

	if len(g.letters) != 1 {
		t.Fatalf("letters = %d, expected 1", len(g.letters))
	}
	if g.letters[0].Pos.X != 700 {
		t.Errorf("remaining letter at x = %v, expected the second one (700)", g.letters[0].Pos.X)
	}
}

func TestHitRemovesLowestMatch(t *testing.T) {
	g := newPlaying(t)
	g.letters = []Letter{letterAt('F', 100), letterAt('F', 300), letterAt('J', 400)}

	res := g.Step(frame(0, "F"))

	if len(g.letters) != 2 {
		t.Fatalf("letters = %d, expected 2", len(g.letters))
	}
	for _, l := range g.letters {
		if l.Char == 'F' && l.Pos.Y == 300 {
			t.Error("the F closest to the ground should have been removed")
		}
	}
	if g.combo != 1 || g.correct != 1 || g.total != 1 {
		t.Errorf("combo/correct/total = %d/%d/%d, expected 1/1/1", g.combo, g.correct, g.total)
	}
	if g.score != 10 {
		t.Errorf("score = %d, expected 10", g.score)
	}
	if len(g.particles) != 15 {
		t.Errorf("particles = %d, expected 15", len(g.particles))
	}
	if g.shake.Magnitude != 2.0 {
		t.Errorf("shake = %v, expected 2.0", g.shake.Magnitude)
	}
	if g.flash.Color != FlashHit {
		t.Errorf("flash color = %+v, expected hit flash", g.flash.Color)
	}
	if g.typed['F'] != 1 {
		t.Errorf("typed tally for F = %d, expected 1", g.typed['F'])
	}
	if countEvents[LetterHit](res.Events) != 1 {
		t.Error("expected one LetterHit event")
	}
}

func TestComboMultiplier(t *testing.T) {
	tests := []struct {
		combo    int
		expected int
	}{
		{0, 10},
		{8, 10},
		{9, 20},
		{29, 40},
		{99, 110},
	}

	for _, tc := range tests {
		g := newPlaying(t)
		g.combo = tc.combo
		g.letters = []Letter{letterAt('J', 200)}

		g.Step(frame(0, "J"))
		if g.combo != tc.combo+1 {
			t.Errorf("combo = %d, expected %d", g.combo, tc.combo+1)
		}
		if g.score != tc.expected {
			t.Errorf("combo %d -> %d: score = %d, expected %d", tc.combo, tc.combo+1, g.score, tc.expected)
		}
	}
}

func TestSeveralKeysInOneFrame(t *testing.T) {
	g := newPlaying(t)
	g.letters = []Letter{letterAt('F', 100), letterAt('J', 200)}

	g.Step(frame(0, "JFK"))

	if g.total != 3 || g.correct != 2 {
		t.Errorf("total/correct = %d/%d, expected 3/2", g.total, g.correct)
	}
	if len(g.letters) != 0 {
		t.Errorf("letters = %d, expected 0", len(g.letters))
	}
	// F and J are processed before K in key table order, so K resets the combo
	if g.combo != 0 || g.errors['K'] != 1 {
		t.Errorf("combo = %d, K errors = %d", g.combo, g.errors['K'])
	}
}

func TestGroundMissesToGameOver(t *testing.T) {
	g := newPlaying(t)
	g.combo = 3
	g.letters = []Letter{letterAt('F', 651), letterAt('J', 700), letterAt('F', 660), letterAt('J', 100)}

	res := g.Step(frame(0, ""))
	if g.player.Lives != 2 {
		t.Fatalf("lives = %d, expected 2", g.player.Lives)
	}
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, expected playing", g.Phase())
	}
	if len(g.letters) != 1 || g.letters[0].Pos.Y != 100 {
		t.Errorf("remaining letters = %+v", g.letters)
	}
	if g.combo != 0 {
		t.Errorf("combo = %d, expected 0", g.combo)
	}
	if g.flash.Color != FlashGroundMiss {
		t.Errorf("flash = %+v, expected ground-miss flash", g.flash.Color)
	}
	if countEvents[GroundMiss](res.Events) != 3 {
		t.Errorf("GroundMiss events = %d, expected 3", countEvents[GroundMiss](res.Events))
	}

	g.letters = append(g.letters, letterAt('F', 655))
	g.Step(frame(0, ""))
	if g.player.Lives != 1 || g.Phase() != PhasePlaying {
		t.Fatalf("lives = %d phase = %v", g.player.Lives, g.Phase())
	}

	g.letters = append(g.letters, letterAt('J', 655))
	res = g.Step(frame(0, ""))
	if g.player.Lives != 0 {
		t.Errorf("lives = %d, expected 0", g.player.Lives)
	}
	if g.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, expected game over", g.Phase())
	}
	if !res.State.Finished {
		t.Error("state should report finished")
	}
	if g.Report() == nil || g.Report().Outcome != PhaseGameOver {
		t.Error("game over should produce a report")
	}
}

func TestSimultaneousMissesPastZero(t *testing.T) {
	g := newPlaying(t)
	for range 7 {
		g.letters = append(g.letters, letterAt('F', 700))
	}

	res := g.Step(frame(0, ""))

	if len(g.letters) != 0 {
		t.Errorf("letters = %d, every missed letter should be removed", len(g.letters))
	}
	if g.player.Lives != 0 || g.Phase() != PhaseGameOver {
		t.Errorf("lives = %d phase = %v", g.player.Lives, g.Phase())
	}
	if n := countEvents[SessionEnded](res.Events); n != 1 {
		t.Errorf("SessionEnded events = %d, expected 1", n)
	}
}

func TestGameOverReportCoversWholeFrame(t *testing.T) {
	g := newPlaying(t)
	g.player.Lives = 1
	g.letters = []Letter{letterAt('F', 700), letterAt('J', 200)}

	res := g.Step(frame(0, "JQ"))

	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected game over", g.Phase())
	}
	if n := countEvents[SessionEnded](res.Events); n != 1 {
		t.Fatalf("SessionEnded events = %d, expected 1", n)
	}
	r := g.Report()
	if r == nil {
		t.Fatal("expected a report")
	}
	if r.Score != g.score || r.Score != 8 {
		t.Errorf("report score = %d, live score = %d, expected 8", r.Score, g.score)
	}
	if r.Total != g.total || r.Correct != g.correct || r.Total != 2 || r.Correct != 1 {
		t.Errorf("report correct/total = %d/%d, live = %d/%d", r.Correct, r.Total, g.correct, g.total)
	}
	if r.Typed['J'] != 1 || r.Errors['Q'] != 1 {
		t.Errorf("report tallies typed=%v errors=%v", r.Typed, r.Errors)
	}
}

func TestLevelCompleteBoundary(t *testing.T) {
	g := newPlaying(t)
	g.elapsed = 29.5

	g.Step(frame(0.25, ""))
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v at elapsed %v, expected playing", g.Phase(), g.elapsed)
	}

	res := g.Step(frame(0.25, ""))
	if g.Phase() != PhaseLevelComplete {
		t.Fatalf("phase = %v at elapsed %v, expected level complete", g.Phase(), g.elapsed)
	}
	if countEvents[SessionEnded](res.Events) != 1 {
		t.Error("expected a SessionEnded event")
	}
	if r := g.Report(); r == nil || !r.Completed() || r.LevelID != "1-1" {
		t.Errorf("report = %+v", r)
	}
}

func TestLevelCompleteTransitions(t *testing.T) {
	g := newPlaying(t)
	g.elapsed = 30
	g.Step(frame(0, ""))
	if g.Phase() != PhaseLevelComplete {
		t.Fatalf("phase = %v", g.Phase())
	}

	// Frozen: further frames do not advance anything
	g.Step(frame(5, "F"))
	if g.Phase() != PhaseLevelComplete || g.total != 0 {
		t.Fatal("level complete should ignore typing and time")
	}

	g.Step(frame(0, "", core.ActionConfirm))
	if g.Phase() != PhasePlaying || g.level.ID != "1-2" {
		t.Fatalf("phase = %v level = %s, expected playing 1-2", g.Phase(), g.level.ID)
	}
	if g.elapsed != 0 || g.score != 0 || g.Report() != nil {
		t.Error("next level should start fresh")
	}

	g.elapsed = 30
	g.Step(frame(0, ""))
	g.Step(frame(0, "", core.ActionMenu))
	if g.Phase() != PhaseMenu {
		t.Fatalf("phase = %v, expected menu", g.Phase())
	}
	if g.selected != 2 {
		t.Errorf("menu selection = %d, expected the following level", g.selected)
	}
}

func TestLevelCompleteClampsToLastFixedLevel(t *testing.T) {
	SetStartLevel(TotalLevels())
	g := newTestGame(DefaultSettings())
	g.Step(frame(0, "", core.ActionConfirm))
	if g.level.ID != "2-3" {
		t.Fatalf("level = %s, expected 2-3", g.level.ID)
	}

	g.elapsed = g.level.Duration
	g.Step(frame(0, ""))
	g.Step(frame(0, "", core.ActionConfirm))

	if g.level.ID != "2-3" || g.levelIndex != TotalLevels()-1 {
		t.Errorf("level = %s, expected to stay on 2-3", g.level.ID)
	}
}

func TestGameOverRetryAndMenu(t *testing.T) {
	SetStartLevel(2)
	g := newTestGame(DefaultSettings())
	g.Step(frame(0, "", core.ActionConfirm))

	g.player.Lives = 1
	g.score = 50
	g.letters = []Letter{letterAt('F', 700)}
	g.Step(frame(0, ""))
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, expected game over", g.Phase())
	}

	g.Step(frame(0, "", core.ActionRetry))
	if g.Phase() != PhasePlaying || g.level.ID != "1-2" {
		t.Fatalf("retry gave phase = %v level = %s", g.Phase(), g.level.ID)
	}
	if g.player.Lives != 5 || g.score != 0 {
		t.Error("retry should restore lives and reset score")
	}

	g.player.Lives = 1
	g.letters = []Letter{letterAt('F', 700)}
	g.Step(frame(0, ""))
	g.Step(frame(0, "", core.ActionConfirm))
	if g.Phase() != PhasePlaying || g.level.ID != "1-2" {
		t.Fatalf("confirm gave phase = %v level = %s", g.Phase(), g.level.ID)
	}

	g.player.Lives = 1
	g.letters = []Letter{letterAt('F', 700)}
	g.Step(frame(0, ""))
	g.Step(frame(0, "", core.ActionMenu))
	if g.Phase() != PhaseMenu {
		t.Fatalf("phase = %v, expected menu", g.Phase())
	}
	if len(g.letters) != 0 {
		t.Error("menu should clear entities")
	}
}

func TestMenuActionIgnoredWhilePlaying(t *testing.T) {
	g := newPlaying(t)
	g.Step(frame(0, "M", core.ActionMenu))
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, M is a letter while playing", g.Phase())
	}
	if g.errors['M'] != 1 {
		t.Error("M should count as a typed key")
	}
}

func TestPauseFreezesUpdate(t *testing.T) {
	g := newPlaying(t)
	g.letters = []Letter{letterAt('F', 100)}

	g.Step(frame(0, "", core.ActionPause))
	if !g.paused {
		t.Fatal("expected paused")
	}

	g.Step(frame(1, "F"))
	if g.elapsed != 0 || g.letters[0].Pos.Y != 100 || g.total != 0 {
		t.Error("paused game must not advance")
	}

	g.Step(frame(0, "", core.ActionPause))
	if g.paused {
		t.Error("expected resumed")
	}
}

func TestSpawning(t *testing.T) {
	g := newPlaying(t)
	rate := g.level.SpawnRate

	g.Step(frame(rate/2, ""))
	if len(g.letters) != 0 {
		t.Fatalf("spawned too early")
	}

	g.Step(frame(rate/2, ""))
	if len(g.letters) != 1 {
		t.Fatalf("letters = %d, expected 1", len(g.letters))
	}
	if g.spawnTimer != 0 {
		t.Errorf("spawn timer = %v, expected reset to 0", g.spawnTimer)
	}

	l := g.letters[0]
	if l.Char != 'F' && l.Char != 'J' {
		t.Errorf("spawned %q, not in the level pool", l.Char)
	}
	if l.Pos.X < 60 || l.Pos.X > testViewport.W-60 {
		t.Errorf("spawned at x=%v, outside the margins", l.Pos.X)
	}
	if l.Speed != g.level.FallSpeed {
		t.Errorf("speed = %v, expected %v", l.Speed, g.level.FallSpeed)
	}
	// Spawned and advanced in the same frame
	if expected := LetterStartY + l.Speed*rate/2; l.Pos.Y != expected {
		t.Errorf("y = %v, expected %v", l.Pos.Y, expected)
	}
}

func TestSpawnIsNoOpWithEmptyPool(t *testing.T) {
	g := newPlaying(t)
	g.level.Letters = nil
	g.Step(frame(10, ""))
	if len(g.letters) != 0 {
		t.Errorf("letters = %d, expected none from an empty pool", len(g.letters))
	}
}

func TestSpeedScale(t *testing.T) {
	s := DefaultSettings()
	s.SpeedScale = 1.5
	g := newTestGame(s)
	g.Step(frame(0, "", core.ActionConfirm))
	g.spawnLetter()

	if g.letters[0].Speed != 150 {
		t.Errorf("speed = %v, expected 150", g.letters[0].Speed)
	}
}

func TestEffectToggles(t *testing.T) {
	s := DefaultSettings()
	s.Particles = false
	s.ScreenShake = false
	g := newTestGame(s)
	g.Step(frame(0, "", core.ActionConfirm))
	g.letters = []Letter{letterAt('F', 100)}

	g.Step(frame(0, "F"))
	if len(g.particles) != 0 {
		t.Errorf("particles = %d, expected none", len(g.particles))
	}
	if g.shake.Magnitude != 0 {
		t.Errorf("shake = %v, expected 0", g.shake.Magnitude)
	}
	if g.score != 10 {
		t.Error("scoring must not depend on effects")
	}
}

func TestParticlesExpireAfterOneSecond(t *testing.T) {
	g := newPlaying(t)
	g.letters = []Letter{letterAt('F', 100)}
	g.Step(frame(0, "F"))
	if len(g.particles) != 15 {
		t.Fatalf("particles = %d, expected 15", len(g.particles))
	}

	g.Step(frame(0.5, ""))
	if len(g.particles) != 15 {
		t.Fatalf("particles = %d after 0.5s, expected 15", len(g.particles))
	}

	g.Step(frame(0.5, ""))
	if len(g.particles) != 0 {
		t.Errorf("particles = %d after 1s, expected 0", len(g.particles))
	}
}

func TestEffectsDecay(t *testing.T) {
	g := newPlaying(t)
	g.letters = []Letter{letterAt('F', 100)}
	g.Step(frame(0, "F"))

	g.Step(frame(0.25, ""))
	if g.shake.Magnitude != 0.75 {
		t.Errorf("shake = %v, expected 0.75", g.shake.Magnitude)
	}
	if g.flash.Timer != 0 {
		t.Errorf("flash timer = %v, expected 0", g.flash.Timer)
	}
}

func TestAccuracy(t *testing.T) {
	g := newPlaying(t)
	if g.Accuracy() != 100 {
		t.Errorf("Accuracy() with no attempts = %v, expected 100", g.Accuracy())
	}

	g.correct, g.total = 7, 10
	if g.Accuracy() != 70 {
		t.Errorf("Accuracy() = %v, expected 70", g.Accuracy())
	}
}

func TestTargeting(t *testing.T) {
	g := newPlaying(t)
	g.letters = []Letter{letterAt('F', 100), letterAt('F', 300), letterAt('J', 50)}

	g.Step(frame(0, ""))

	for _, l := range g.letters {
		expected := (l.Char == 'F' && l.Pos.Y == 300) || l.Char == 'J'
		if l.Targeted != expected {
			t.Errorf("%c at y=%v targeted = %v, expected %v", l.Char, l.Pos.Y, l.Targeted, expected)
		}
	}
}

func TestTimeRemainingAndWPM(t *testing.T) {
	g := newPlaying(t)
	g.elapsed = 12
	if g.TimeRemaining() != 18 {
		t.Errorf("TimeRemaining() = %v, expected 18", g.TimeRemaining())
	}
	g.elapsed = 40
	if g.TimeRemaining() != 0 {
		t.Errorf("TimeRemaining() = %v, expected 0", g.TimeRemaining())
	}

	g.correct, g.elapsed = 50, 60
	if g.WPM() != 10 {
		t.Errorf("WPM() = %d, expected 10", g.WPM())
	}
	if wpm(10, 0) != 0 {
		t.Error("WPM with no elapsed time should be 0")
	}
}

func TestTalliesAreCopies(t *testing.T) {
	g := newPlaying(t)
	g.letters = []Letter{letterAt('F', 100)}
	g.Step(frame(0, "F"))

	typed := g.Typed()
	typed['F'] = 99
	if g.typed['F'] != 1 {
		t.Error("Typed() must return a copy")
	}

	v := g.View()
	v.Letters = append(v.Letters, letterAt('Q', 1))
	if len(g.letters) != 0 {
		t.Error("View() must not alias letters")
	}
}

func TestDeterminism(t *testing.T) {
	run := func(seed int64) Snapshot {
		g := NewWith(ModeCampaign, DefaultSettings(), DefaultCatalog())
		g.Reset(core.RuntimeConfig{Seed: seed})
		g.Step(frame(0, "", core.ActionConfirm))

		for i := range 900 {
			keys := ""
			if i%11 == 0 {
				keys = "F"
			}
			if i%17 == 0 {
				keys += "J"
			}
			if i%53 == 0 {
				keys += "Q"
			}
			g.Step(frame(1.0/60, keys))
		}
		return g.Snapshot()
	}

	a, b := run(12345), run(12345)
	if a.Hash() != b.Hash() {
		t.Errorf("same seed produced different hashes: %d vs %d", a.Hash(), b.Hash())
	}
	if a.Score != b.Score || a.Lives != b.Lives || len(a.Letters) != len(b.Letters) {
		t.Errorf("snapshots differ: %+v vs %+v", a, b)
	}

	c := run(54321)
	if a.Hash() == c.Hash() {
		t.Error("different seeds should produce different runs")
	}
}

func TestResetKeepsAchievements(t *testing.T) {
	g := newPlaying(t)
	g.elapsed = 30
	g.Step(frame(0, ""))
	if !g.Achievements().IsUnlocked(AchFirstSession) {
		t.Fatal("first session should unlock on level complete")
	}

	g.Reset(core.RuntimeConfig{Seed: 1})
	if !g.Achievements().IsUnlocked(AchFirstSession) {
		t.Error("Reset must keep unlocked achievements")
	}
	if g.Phase() != PhaseMenu {
		t.Errorf("phase after Reset = %v, expected menu", g.Phase())
	}
}
