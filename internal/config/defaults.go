package config

import (
	_ "embed"
)

//go:embed defaults/typestrike.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		World: WorldConfig{
			Height:      600,
			SpawnMargin: 60,
		},
		Player: PlayerConfig{
			Lives: 5,
		},
		Scoring: ScoringConfig{
			BasePoints:      10,
			ComboStep:       10,
			WrongKeyPenalty: 2,
		},
		Effects: EffectsConfig{
			Particles:      true,
			ParticleBurst:  15,
			ScreenShake:    true,
			ShakeMagnitude: 2.0,
			ShakeDecay:     5.0,
			FlashDuration:  0.2,
			FlashDecay:     3.0,
		},
		Difficulty: string(PresetNormal),
		SpeedScale: 1.0,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
