package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/typestrike/internal/config"
	"github.com/vovakirdan/typestrike/internal/core"
	"github.com/vovakirdan/typestrike/internal/games/typestrike"
	"github.com/vovakirdan/typestrike/internal/games/typestrike/levels"
	"github.com/vovakirdan/typestrike/internal/platform/tui"
	"github.com/vovakirdan/typestrike/internal/registry"
	"github.com/vovakirdan/typestrike/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagLevelsDir  string
	flagEndless    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the trainer",
	Long: `Start the typing trainer at the level menu.

Controls:
  Letters      - Destroy the lowest falling copy of that letter
  Space/Enter  - Start level / next level / retry
  Left/Right   - Choose level in the menu
  Esc          - Pause / resume
  R            - Retry after game over
  M            - Back to the menu after a level
  Tab          - Run history (outside play)
  Ctrl+C       - Quit

Difficulty options:
  easy   - 7 lives, letters fall 20% slower
  normal - Configured values
  hard   - 3 lives, letters fall 25% faster

Examples:
  typestrike play
  typestrike play --level 4
  typestrike play --difficulty easy
  typestrike play --endless
  typestrike play --config ./typestrike.yaml --levels ./levels`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level preselected in the menu (1-based)")
	playCmd.Flags().StringVar(&flagLevelsDir, "levels", "", "Directory of YAML level files replacing the built-in catalog")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Start in the endless tiers")
}

// loadSettings resolves config file, environment and flags into settings
// and the level catalog.
func loadSettings() (config.Config, *typestrike.Catalog, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, nil, err
	}
	if err := config.Resolve(&cfg, flagDifficulty); err != nil {
		return cfg, nil, err
	}

	if flagLevelsDir != "" {
		cfg.LevelsDir = flagLevelsDir
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	catalog := typestrike.DefaultCatalog()
	if cfg.LevelsDir != "" {
		catalog, err = levels.NewLoader(cfg.LevelsDir).LoadCatalog()
		if err != nil {
			return cfg, nil, err
		}
	}
	return cfg, catalog, nil
}

// newLogger returns a file logger for --log, or a discarding one.
func newLogger() (*log.Logger, io.Closer, error) {
	if flagLogPath == "" {
		return log.New(io.Discard), nil, nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "typestrike",
		Formatter:       log.LogfmtFormatter,
	})
	return logger, f, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, catalog, err := loadSettings()
	if err != nil {
		return err
	}

	gameID := "typestrike"
	if flagEndless {
		gameID = "typestrike_endless"
	}
	if flagLevel != 0 {
		if flagLevel < 1 || flagLevel > catalog.TotalLevels() {
			return fmt.Errorf("--level must be between 1 and %d", catalog.TotalLevels())
		}
		if flagEndless {
			return errors.New("--level and --endless cannot be combined")
		}
	}

	typestrike.Configure(typestrike.SettingsFromConfig(cfg), catalog)
	typestrike.SetStartLevel(flagLevel)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = cfg.Seed
	}
	rcfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	logger, logFile, err := newLogger()
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// Runs are kept in memory for the history view only
	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("run history disabled", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, logger, rcfg, cfg.World.Height); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
