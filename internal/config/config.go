// Package config provides YAML-based configuration loading, environment
// overrides and difficulty presets for the trainer.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunable parameters of the trainer.
type Config struct {
	World      WorldConfig   `yaml:"world"`
	Player     PlayerConfig  `yaml:"player"`
	Scoring    ScoringConfig `yaml:"scoring"`
	Effects    EffectsConfig `yaml:"effects"`
	Difficulty string        `yaml:"difficulty"`  // Preset name: easy, normal, hard
	SpeedScale float64       `yaml:"speed_scale"` // Multiplier on every level's fall speed
	LevelsDir  string        `yaml:"levels_dir"`  // Optional directory of YAML level files
	Seed       int64         `yaml:"seed"`        // 0 = time based
}

// WorldConfig defines the world area the simulation runs in.
type WorldConfig struct {
	Height      float64 `yaml:"height"`       // World units from top to ground
	SpawnMargin float64 `yaml:"spawn_margin"` // Horizontal spawn margin from each edge
}

// PlayerConfig defines player parameters.
type PlayerConfig struct {
	Lives int `yaml:"lives"`
}

// ScoringConfig defines how hits and misses are scored.
type ScoringConfig struct {
	BasePoints      int `yaml:"base_points"`       // Points per hit before the combo multiplier
	ComboStep       int `yaml:"combo_step"`        // Combo hits per extra multiplier
	WrongKeyPenalty int `yaml:"wrong_key_penalty"` // Points lost on a wrong key
}

// EffectsConfig defines the feedback effects.
type EffectsConfig struct {
	Particles      bool    `yaml:"particles"`
	ParticleBurst  int     `yaml:"particle_burst"`
	ScreenShake    bool    `yaml:"screen_shake"`
	ShakeMagnitude float64 `yaml:"shake_magnitude"`
	ShakeDecay     float64 `yaml:"shake_decay"` // Magnitude lost per second
	FlashDuration  float64 `yaml:"flash_duration"`
	FlashDecay     float64 `yaml:"flash_decay"` // Timer lost per second
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case c.World.Height <= 0:
		return fmt.Errorf("%w: world.height must be positive", ErrInvalidConfig)
	case c.World.SpawnMargin < 0:
		return fmt.Errorf("%w: world.spawn_margin must not be negative", ErrInvalidConfig)
	case c.Player.Lives <= 0:
		return fmt.Errorf("%w: player.lives must be positive", ErrInvalidConfig)
	case c.Scoring.BasePoints < 0 || c.Scoring.WrongKeyPenalty < 0:
		return fmt.Errorf("%w: scoring values must not be negative", ErrInvalidConfig)
	case c.Scoring.ComboStep <= 0:
		return fmt.Errorf("%w: scoring.combo_step must be positive", ErrInvalidConfig)
	case c.Effects.ParticleBurst < 0:
		return fmt.Errorf("%w: effects.particle_burst must not be negative", ErrInvalidConfig)
	case c.Effects.ShakeDecay < 0 || c.Effects.FlashDecay < 0 || c.Effects.FlashDuration < 0:
		return fmt.Errorf("%w: effect rates must not be negative", ErrInvalidConfig)
	case c.SpeedScale <= 0:
		return fmt.Errorf("%w: speed_scale must be positive", ErrInvalidConfig)
	}
	return nil
}
