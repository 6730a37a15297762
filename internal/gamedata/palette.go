package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/sneakmap/internal/world"
)

// TileColor assigns a display colour to a tile glyph.
type TileColor struct {
	Tile  string `json:"tile"`  // Tile glyph as rendered (e.g., "$")
	Color string `json:"color"` // Hex color code (e.g., "#FFFF00")
}

// Palette maps tiles to terminal colours.
type Palette map[world.Tile]tcell.Color

// LoadPalette builds the palette from levels.json.
func LoadPalette() (Palette, error) {
	file, err := loadLevelsFile()
	if err != nil {
		return nil, err
	}

	palette := make(Palette, len(file.Palette))
	for _, entry := range file.Palette {
		runes := []rune(entry.Tile)
		if len(runes) != 1 {
			return nil, fmt.Errorf("palette entry %q must be a single glyph", entry.Tile)
		}
		tile, err := world.ParseTile(runes[0])
		if err != nil {
			return nil, err
		}
		color, err := ParseHexColor(entry.Color)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", entry.Tile, err)
		}
		palette[tile] = color
	}
	return palette, nil
}

// Color returns the colour for tile, or white if the palette has none.
func (p Palette) Color(tile world.Tile) tcell.Color {
	if color, ok := p[tile]; ok {
		return color
	}
	return tcell.ColorWhite
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}
