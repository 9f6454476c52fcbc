// Package levels loads custom level packs from YAML files.
// Each file holds one level; a directory of them replaces the built-in
// campaign.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/typestrike/internal/games/typestrike"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Letters     string  `yaml:"letters"` // e.g. "ASDF JKL;", spaces ignored
	FallSpeed   float64 `yaml:"fall_speed"`
	SpawnRate   float64 `yaml:"spawn_rate"`
	Duration    float64 `yaml:"duration"` // Seconds, .inf for endless
	Description string  `yaml:"description,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (typestrike.Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return typestrike.Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	var letters []rune
	for _, r := range yl.Letters {
		if unicode.IsSpace(r) {
			continue
		}
		letters = append(letters, unicode.ToUpper(r))
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return typestrike.Level{
		ID:          yl.ID,
		Name:        name,
		Letters:     letters,
		FallSpeed:   yl.FallSpeed,
		SpawnRate:   yl.SpawnRate,
		Duration:    yl.Duration,
		Description: yl.Description,
	}, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
// Any invalid file fails the whole pack.
func (l *Loader) LoadAll() ([]typestrike.Level, error) {
	var levels []typestrike.Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: loading %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	for i := 1; i < len(levels); i++ {
		if levels[i].ID == levels[i-1].ID {
			return nil, fmt.Errorf("levels: duplicate level id %q in %s", levels[i].ID, l.Root)
		}
	}
	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(path string) (typestrike.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return typestrike.Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	level, err := ParseYAML(data)
	if err != nil {
		return typestrike.Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if err := level.Validate(); err != nil {
		return typestrike.Level{}, fmt.Errorf("%s: %w", path, err)
	}
	return level, nil
}

// LoadCatalog loads a directory into a catalog. The endless tier is
// derived from the pack's letters.
func (l *Loader) LoadCatalog() (*typestrike.Catalog, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	c, err := typestrike.NewCatalog(levels)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.Root, err)
	}
	return c, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
