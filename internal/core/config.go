package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this for deterministic simulation and to size the screen.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second the platform aims for (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase    string  // Name of the current top-level phase
	Level    string  // Identifier of the level being played
	Score    int     // Current score
	Accuracy float64 // Percentage of correct attempts
	Finished bool    // Whether the session has ended (won or lost)
	Paused   bool    // Whether the game is paused
}

// Event is something that happened during a tick that the platform may
// want to log or react to. Games define the concrete event types.
type Event interface {
	EventName() string
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
