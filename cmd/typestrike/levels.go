package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typestrike/internal/games/typestrike"
	"github.com/vovakirdan/typestrike/internal/games/typestrike/levels"
	"github.com/vovakirdan/typestrike/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog",
	Long: `Shows every campaign level with its letters and pacing.

Examples:
  typestrike levels
  typestrike levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var flagListDir string

func init() {
	levelsCmd.Flags().StringVar(&flagListDir, "levels", "", "Directory of YAML level files to list instead of the built-in catalog")
}

func runLevels(cmd *cobra.Command, args []string) error {
	catalog := typestrike.DefaultCatalog()
	if flagListDir != "" {
		c, err := levels.NewLoader(flagListDir).LoadCatalog()
		if err != nil {
			return err
		}
		catalog = c
	}

	fmt.Println("Levels:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for i := range catalog.TotalLevels() {
		if n := len(catalog.Get(i).Name); n > maxNameLen {
			maxNameLen = n
		}
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-6s  %-6s  %-6s  %s\n", "#", maxNameLen, "Name", "Speed", "Spawn", "Time", "Letters")
	fmt.Printf("  %-3s  %-*s  %-6s  %-6s  %-6s  %s\n", "-", maxNameLen, "----", "-----", "-----", "----", "-------")

	// Print levels, then the first endless tier
	for i := range catalog.TotalLevels() + 1 {
		l := catalog.Get(i)
		num := fmt.Sprintf("%d", i+1)
		duration := fmt.Sprintf("%.0fs", l.Duration)
		if math.IsInf(l.Duration, 1) {
			num, duration = "∞", "∞"
		}
		fmt.Printf("  %-3s  %-*s  %-6.0f  %-6.2f  %-6s  %s\n",
			num, maxNameLen, l.Name, l.FallSpeed, l.SpawnRate, duration, string(l.Letters))
	}

	fmt.Println()
	fmt.Println("Modes:")
	for _, g := range registry.List() {
		fmt.Printf("  %-20s  %s\n", g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'typestrike play --level <n>' to start at a level, or --endless for the endless tiers.")
	return nil
}
