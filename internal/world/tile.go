// Package world provides the level grid and its text format.
package world

import "fmt"

// Tile represents a single map tile. The underlying rune is the tile's glyph
// in the rendered text format.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileOpen represents passable floor.
	TileOpen Tile = ' '
	// TileStart marks the reachability origin.
	TileStart Tile = 'S'
	// TileEnd marks the level exit.
	TileEnd Tile = 'E'
	// TileSeeker marks a hazard. Seekers do not block reachability.
	TileSeeker Tile = '$'
	// TileCollectible marks an item the player must be able to pick up.
	TileCollectible Tile = 'C'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t != TileWall
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileOpen:
		return "open"
	case TileStart:
		return "start"
	case TileEnd:
		return "end"
	case TileSeeker:
		return "seeker"
	case TileCollectible:
		return "collectible"
	default:
		return fmt.Sprintf("tile(%q)", rune(t))
	}
}

// ParseTile converts a glyph back into a Tile.
func ParseTile(r rune) (Tile, error) {
	switch t := Tile(r); t {
	case TileWall, TileOpen, TileStart, TileEnd, TileSeeker, TileCollectible:
		return t, nil
	}
	return 0, fmt.Errorf("unknown tile glyph %q", r)
}
