package config

import (
	"errors"
	"fmt"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	PresetEasy   DifficultyPreset = "easy"
	PresetNormal DifficultyPreset = "normal"
	PresetHard   DifficultyPreset = "hard"
)

// ErrInvalidPreset is returned for unknown preset names.
var ErrInvalidPreset = errors.New("config: unknown difficulty preset")

// ParsePreset converts a name to a preset. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", PresetNormal:
		return PresetNormal, nil
	case PresetEasy:
		return PresetEasy, nil
	case PresetHard:
		return PresetHard, nil
	default:
		return "", fmt.Errorf("%w: %q (want easy, normal or hard)", ErrInvalidPreset, name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal keeps the configured values.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty = string(preset)

	switch preset {
	case PresetEasy:
		cfg.Player.Lives = 7
		cfg.SpeedScale = 0.8
	case PresetHard:
		cfg.Player.Lives = 3
		cfg.SpeedScale = 1.25
	}
}
