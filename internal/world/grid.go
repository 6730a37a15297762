package world

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// MinDimension is the smallest width or height a grid may have: a one-tile
// border on every side plus room for start, end and an interior cell.
const MinDimension = 5

var (
	// ErrInvalidDimension is returned when a grid is too small to hold the border, start and end.
	ErrInvalidDimension = errors.New("invalid grid dimension")
	// ErrOutOfBounds is returned when a coordinate falls outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// Grid is a fixed-size rectangle of tiles.
type Grid struct {
	width  int
	height int
	tiles  [][]Tile
}

// New creates a width x height grid filled with walls.
func New(width, height int) (*Grid, error) {
	if width < MinDimension || height < MinDimension {
		return nil, fmt.Errorf("%w: %dx%d (minimum %dx%d)",
			ErrInvalidDimension, width, height, MinDimension, MinDimension)
	}

	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Grid{
		width:  width,
		height: height,
		tiles:  tiles,
	}, nil
}

// FromRows parses the rendered text format back into a grid. Every row must
// have the same length and contain only known tile glyphs.
func FromRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimension)
	}
	width := len([]rune(rows[0]))
	g, err := New(width, len(rows))
	if err != nil {
		return nil, err
	}

	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d has length %d, expected %d", y, len(runes), width)
		}
		for x, r := range runes {
			tile, err := ParseTile(r)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", y, x, err)
			}
			g.tiles[y][x] = tile
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds returns true if (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsBorder returns true if (x, y) lies on the outer ring.
func (g *Grid) IsBorder(x, y int) bool {
	return x == 0 || y == 0 || x == g.width-1 || y == g.height-1
}

// Get returns the tile at the given position.
func (g *Grid) Get(x, y int) (Tile, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: get (%d,%d) on %dx%d grid", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.tiles[y][x], nil
}

// Set replaces the tile at the given position.
func (g *Grid) Set(x, y int, tile Tile) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: set (%d,%d) on %dx%d grid", ErrOutOfBounds, x, y, g.width, g.height)
	}
	g.tiles[y][x] = tile
	return nil
}

// At is Get for a Point.
func (g *Grid) At(p Point) (Tile, error) {
	return g.Get(p.X, p.Y)
}

// Fill sets every tile to the given kind.
func (g *Grid) Fill(tile Tile) {
	for y := range g.tiles {
		for x := range g.tiles[y] {
			g.tiles[y][x] = tile
		}
	}
}

// Positions returns the coordinates of every tile of the given kind in row-major order.
func (g *Grid) Positions(tile Tile) []Point {
	var out []Point
	for y := range g.tiles {
		for x, t := range g.tiles[y] {
			if t == tile {
				out = append(out, Point{X: x, Y: y})
			}
		}
	}
	return out
}

// Count returns how many tiles of the given kind the grid holds.
func (g *Grid) Count(tile Tile) int {
	n := 0
	for y := range g.tiles {
		for _, t := range g.tiles[y] {
			if t == tile {
				n++
			}
		}
	}
	return n
}

// Render yields the grid as text rows, top to bottom, one glyph per tile.
// The sequence reads the grid lazily and can be ranged over any number of times.
func (g *Grid) Render() iter.Seq[string] {
	return func(yield func(string) bool) {
		var sb strings.Builder
		for y := range g.tiles {
			sb.Reset()
			for _, t := range g.tiles[y] {
				sb.WriteRune(t.Rune())
			}
			if !yield(sb.String()) {
				return
			}
		}
	}
}

// Rows collects Render into a slice.
func (g *Grid) Rows() []string {
	rows := make([]string, 0, g.height)
	for row := range g.Render() {
		rows = append(rows, row)
	}
	return rows
}

// String returns the rendered grid joined with newlines.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
