package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/sneakmap/internal/gamedata"
	"github.com/samdwyer/sneakmap/internal/world"
)

// Renderer draws maps to the screen.
type Renderer struct {
	screen  *Screen
	palette gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the grid in the top-left corner of the screen.
func (r *Renderer) Render(grid *world.Grid) {
	r.screen.Clear()

	y := 0
	for row := range grid.Render() {
		x := 0
		for _, ch := range row {
			r.screen.SetContent(x, y, ch, r.tileStyle(world.Tile(ch)))
			x++
		}
		y++
	}

	r.screen.Show()
}

// tileStyle returns the style for a tile. Open floor is drawn as a plain cell.
func (r *Renderer) tileStyle(tile world.Tile) tcell.Style {
	style := tcell.StyleDefault.Foreground(r.palette.Color(tile))
	switch tile {
	case world.TileOpen:
		return tcell.StyleDefault
	case world.TileStart, world.TileEnd, world.TileSeeker:
		return style.Bold(true)
	default:
		return style
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
	r.screen.Show()
}
