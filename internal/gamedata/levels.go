package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/sneakmap/internal/generator"
)

// ErrUnknownLevel is returned when a preset ID is not in levels.json.
var ErrUnknownLevel = errors.New("unknown level preset")

// LevelDef is a named set of map parameters.
type LevelDef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Seekers      int    `json:"seekers"`
	Collectibles int    `json:"collectibles"`
}

// Params converts the preset into generator parameters.
func (l LevelDef) Params() generator.Params {
	return generator.Params{
		Width:        l.Width,
		Height:       l.Height,
		Seekers:      l.Seekers,
		Collectibles: l.Collectibles,
	}
}

// LevelRegistry holds the loaded presets in file order.
type LevelRegistry struct {
	levels []LevelDef
	byID   map[string]int
}

// NewLevelRegistry creates a registry, rejecting duplicate IDs and unusable parameters.
func NewLevelRegistry(levels []LevelDef) (*LevelRegistry, error) {
	if len(levels) == 0 {
		return nil, errors.New("no levels defined")
	}
	r := &LevelRegistry{
		levels: levels,
		byID:   make(map[string]int, len(levels)),
	}
	for i, l := range levels {
		if _, dup := r.byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate level id %q", l.ID)
		}
		if err := l.Params().Validate(); err != nil {
			return nil, fmt.Errorf("level %q: %w", l.ID, err)
		}
		r.byID[l.ID] = i
	}
	return r, nil
}

// LoadLevelRegistry loads the presets embedded in levels.json.
func LoadLevelRegistry() (*LevelRegistry, error) {
	file, err := loadLevelsFile()
	if err != nil {
		return nil, err
	}
	return NewLevelRegistry(file.Levels)
}

// MustLoadLevelRegistry loads the presets, panicking on error.
func MustLoadLevelRegistry() *LevelRegistry {
	registry, err := LoadLevelRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the preset with the given ID.
func (r *LevelRegistry) GetByID(id string) (LevelDef, error) {
	i, ok := r.byID[id]
	if !ok {
		return LevelDef{}, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
	}
	return r.levels[i], nil
}

// Next returns the preset after id, wrapping around. An unknown id yields the first preset.
func (r *LevelRegistry) Next(id string) LevelDef {
	i, ok := r.byID[id]
	if !ok {
		return r.levels[0]
	}
	return r.levels[(i+1)%len(r.levels)]
}

// All returns all presets in file order.
func (r *LevelRegistry) All() []LevelDef {
	return r.levels
}

// Count returns the number of presets.
func (r *LevelRegistry) Count() int {
	return len(r.levels)
}
