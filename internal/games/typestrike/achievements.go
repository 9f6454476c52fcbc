package typestrike

// Achievement is a milestone unlocked by finished sessions.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Target      int // Progress needed for progressive achievements, 0 otherwise
}

// Achievement identifiers.
const (
	AchFirstSession   = "first-session"
	AchSpeedDemon50   = "speed-demon-50"
	AchSpeedDemon75   = "speed-demon-75"
	AchSpeedDemon100  = "speed-demon-100"
	AchPerfectionist  = "perfectionist"
	AchAccuracyMaster = "accuracy-master"
	AchMarathonRunner = "marathon-runner"
	AchComboKing      = "combo-king-50"
	AchComboMaster    = "combo-master-100"
	AchLevel5         = "level-5"
)

// achievementList is the set of achievements in display order.
var achievementList = []Achievement{
	{ID: AchFirstSession, Name: "First Steps", Description: "Complete your first typing session"},
	{ID: AchSpeedDemon50, Name: "Speed Demon I", Description: "Reach 50 WPM"},
	{ID: AchSpeedDemon75, Name: "Speed Demon II", Description: "Reach 75 WPM"},
	{ID: AchSpeedDemon100, Name: "Speed Master", Description: "Reach 100 WPM"},
	{ID: AchPerfectionist, Name: "Perfectionist", Description: "Complete a level with 100% accuracy"},
	{ID: AchAccuracyMaster, Name: "Accuracy Master", Description: "Complete 5 levels with 95%+ accuracy", Target: 5},
	{ID: AchMarathonRunner, Name: "Marathon Runner", Description: "Type 1000 letters in total", Target: 1000},
	{ID: AchComboKing, Name: "Combo King", Description: "Reach a 50x combo"},
	{ID: AchComboMaster, Name: "Combo Master", Description: "Reach a 100x combo"},
	{ID: AchLevel5, Name: "Home Row Graduate", Description: "Complete level 5"},
}

// AllAchievements returns every achievement in display order.
func AllAchievements() []Achievement {
	return append([]Achievement(nil), achievementList...)
}

// Achievements tracks unlocks and progress for the lifetime of the process.
type Achievements struct {
	unlocked map[string]bool
	progress map[string]int
}

// NewAchievements creates an empty tracker.
func NewAchievements() *Achievements {
	return &Achievements{
		unlocked: make(map[string]bool),
		progress: make(map[string]int),
	}
}

// IsUnlocked reports whether the achievement has been unlocked.
func (a *Achievements) IsUnlocked(id string) bool {
	return a.unlocked[id]
}

// Progress returns the accumulated progress of a progressive achievement.
func (a *Achievements) Progress(id string) int {
	return a.progress[id]
}

// Unlocked returns the unlocked achievements in display order.
func (a *Achievements) Unlocked() []Achievement {
	var out []Achievement
	for _, ach := range achievementList {
		if a.unlocked[ach.ID] {
			out = append(out, ach)
		}
	}
	return out
}

// Check records a finished session and returns the achievements it
// newly unlocked, in display order.
func (a *Achievements) Check(r Report) []Achievement {
	a.progress[AchMarathonRunner] += r.Correct
	if r.Completed() && r.Accuracy >= 95 && r.Total > 0 {
		a.progress[AchAccuracyMaster]++
	}

	met := map[string]bool{
		AchFirstSession:   true,
		AchSpeedDemon50:   r.WPM >= 50,
		AchSpeedDemon75:   r.WPM >= 75,
		AchSpeedDemon100:  r.WPM >= 100,
		AchPerfectionist:  r.Completed() && r.Total > 0 && r.Correct == r.Total,
		AchAccuracyMaster: a.progress[AchAccuracyMaster] >= 5,
		AchMarathonRunner: a.progress[AchMarathonRunner] >= 1000,
		AchComboKing:      r.MaxCombo >= 50,
		AchComboMaster:    r.MaxCombo >= 100,
		AchLevel5:         r.Completed() && r.LevelIndex >= 4,
	}

	var unlocked []Achievement
	for _, ach := range achievementList {
		if met[ach.ID] && !a.unlocked[ach.ID] {
			a.unlocked[ach.ID] = true
			unlocked = append(unlocked, ach)
		}
	}
	return unlocked
}
