package typestrike

// Events reported in core.StepResult. The core never logs; the host
// decides what to do with them.

// PhaseChanged is emitted on every phase transition.
type PhaseChanged struct {
	From, To Phase
}

func (PhaseChanged) EventName() string { return "phase_changed" }

// PauseToggled is emitted when the player pauses or resumes.
type PauseToggled struct {
	Paused bool
}

func (PauseToggled) EventName() string { return "pause_toggled" }

// LetterHit is emitted when a typed key destroys a letter.
type LetterHit struct {
	Char   rune
	Points int
	Combo  int
}

func (LetterHit) EventName() string { return "letter_hit" }

// WrongKey is emitted when a typed key matches no letter.
type WrongKey struct {
	Char rune
}

func (WrongKey) EventName() string { return "wrong_key" }

// GroundMiss is emitted when a letter falls past the ground.
type GroundMiss struct {
	Char      rune
	LivesLeft int
}

func (GroundMiss) EventName() string { return "ground_miss" }

// SessionEnded is emitted when a level is completed or the game is lost.
type SessionEnded struct {
	Report Report
}

func (SessionEnded) EventName() string { return "session_ended" }

// AchievementUnlocked is emitted once per achievement.
type AchievementUnlocked struct {
	Achievement Achievement
}

func (AchievementUnlocked) EventName() string { return "achievement_unlocked" }
