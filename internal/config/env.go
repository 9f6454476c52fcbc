package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the environment variables that override file values.
// Unset variables leave the pointers nil.
type envOverrides struct {
	Lives       *int     `env:"TYPESTRIKE_LIVES"`
	Particles   *bool    `env:"TYPESTRIKE_PARTICLES"`
	ScreenShake *bool    `env:"TYPESTRIKE_SCREEN_SHAKE"`
	SpeedScale  *float64 `env:"TYPESTRIKE_SPEED_SCALE"`
	Difficulty  *string  `env:"TYPESTRIKE_DIFFICULTY"`
	LevelsDir   *string  `env:"TYPESTRIKE_LEVELS"`
	Seed        *int64   `env:"TYPESTRIKE_SEED"`
}

// Resolve applies the difficulty preset and the TYPESTRIKE_* variables of
// the process environment on top of the file values. Precedence is
// file < preset < env; a non-empty difficulty (the command-line flag)
// picks the preset over the file and environment.
func Resolve(cfg *Config, difficulty string) error {
	return resolve(cfg, difficulty, env.Options{})
}

// ResolveFrom is Resolve with the given environment.
func ResolveFrom(cfg *Config, difficulty string, environ map[string]string) error {
	return resolve(cfg, difficulty, env.Options{Environment: environ})
}

func resolve(cfg *Config, difficulty string, opts env.Options) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}

	name := cfg.Difficulty
	if o.Difficulty != nil {
		name = *o.Difficulty
	}
	if difficulty != "" {
		name = difficulty
	}
	preset, err := ParsePreset(name)
	if err != nil {
		return err
	}
	ApplyPreset(cfg, preset)

	if o.Lives != nil {
		cfg.Player.Lives = *o.Lives
	}
	if o.Particles != nil {
		cfg.Effects.Particles = *o.Particles
	}
	if o.ScreenShake != nil {
		cfg.Effects.ScreenShake = *o.ScreenShake
	}
	if o.SpeedScale != nil {
		cfg.SpeedScale = *o.SpeedScale
	}
	if o.LevelsDir != nil {
		cfg.LevelsDir = *o.LevelsDir
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	return nil
}
