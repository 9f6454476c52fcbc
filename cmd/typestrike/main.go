// typestrike is a terminal typing trainer: letters fall from the sky and
// the player destroys them by typing them before they reach the ground.
//
// Usage:
//
//	typestrike play      - Start the trainer
//	typestrike levels    - List the level catalog
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible sessions
//	--log <path>    - Write a structured session log to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register it
	_ "github.com/vovakirdan/typestrike/internal/games/typestrike"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "typestrike",
	Short: "Type Strike - a falling-letters typing trainer",
	Long: `Type Strike is a typing trainer for the terminal. Letters fall toward
the ground; type them to destroy them before they land.

Available commands:
  play     - Start the trainer
  levels   - Show the level catalog

Examples:
  typestrike play
  typestrike play --level 3 --difficulty hard
  typestrike play --endless
  typestrike levels --levels ./my-levels`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, else time based)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write a session log to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
}
