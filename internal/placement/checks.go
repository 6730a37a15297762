package placement

import "github.com/samdwyer/sneakmap/internal/world"

// IsBetweenClosedWalls walks left and right from pt until a wall. It rejects the
// candidate as soon as either walk meets a seeker, and otherwise accepts it when
// at least one side has minCorridorRun or more passable tiles.
func IsBetweenClosedWalls(g *world.Grid, pt world.Point) (bool, error) {
	left, blocked, err := runLength(g, pt, -1)
	if err != nil || blocked {
		return false, err
	}
	right, blocked, err := runLength(g, pt, 1)
	if err != nil || blocked {
		return false, err
	}
	return left >= minCorridorRun || right >= minCorridorRun, nil
}

// runLength counts the passable tiles next to pt in direction dx before a wall.
// blocked is true if a seeker was met first.
func runLength(g *world.Grid, pt world.Point, dx int) (steps int, blocked bool, err error) {
	for x := pt.X + dx; g.InBounds(x, pt.Y); x += dx {
		tile, err := g.Get(x, pt.Y)
		if err != nil {
			return steps, false, err
		}
		switch tile {
		case world.TileWall:
			return steps, false, nil
		case world.TileSeeker:
			return steps, true, nil
		}
		steps++
	}
	return steps, false, nil
}

// SeekersInVicinity reports whether another seeker lies within vicinityRadius of
// pt, measured in Chebyshev distance and clamped to the grid.
func SeekersInVicinity(g *world.Grid, pt world.Point) (bool, error) {
	for y := max(0, pt.Y-vicinityRadius); y <= min(g.Height()-1, pt.Y+vicinityRadius); y++ {
		for x := max(0, pt.X-vicinityRadius); x <= min(g.Width()-1, pt.X+vicinityRadius); x++ {
			if x == pt.X && y == pt.Y {
				continue
			}
			tile, err := g.Get(x, y)
			if err != nil {
				return false, err
			}
			if tile == world.TileSeeker {
				return true, nil
			}
		}
	}
	return false, nil
}
