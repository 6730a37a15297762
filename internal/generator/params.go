package generator

import (
	"errors"
	"fmt"

	"github.com/samdwyer/sneakmap/internal/world"
)

// Default map parameters.
const (
	DefaultWidth        = 68
	DefaultHeight       = 15
	DefaultSeekers      = 15
	DefaultCollectibles = 5
)

// ErrInvalidCount is returned for negative seeker or collectible counts.
var ErrInvalidCount = errors.New("invalid tile count")

// Params describes the map a caller wants.
type Params struct {
	Width        int `json:"width"`
	Height       int `json:"height"`
	Seekers      int `json:"seekers"`
	Collectibles int `json:"collectibles"`
}

// DefaultParams returns the standard level size and population.
func DefaultParams() Params {
	return Params{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Seekers:      DefaultSeekers,
		Collectibles: DefaultCollectibles,
	}
}

// Validate rejects parameters that cannot describe a map.
func (p Params) Validate() error {
	if p.Width < world.MinDimension || p.Height < world.MinDimension {
		return fmt.Errorf("%w: %dx%d (minimum %dx%d)",
			world.ErrInvalidDimension, p.Width, p.Height, world.MinDimension, world.MinDimension)
	}
	if p.Seekers < 0 || p.Collectibles < 0 {
		return fmt.Errorf("%w: seekers=%d collectibles=%d", ErrInvalidCount, p.Seekers, p.Collectibles)
	}
	return nil
}
