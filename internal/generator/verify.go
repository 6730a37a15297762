package generator

import (
	"errors"
	"fmt"

	"github.com/samdwyer/sneakmap/internal/placement"
	"github.com/samdwyer/sneakmap/internal/reach"
	"github.com/samdwyer/sneakmap/internal/world"
)

// ErrInvalidMap wraps every invariant violation reported by Verify.
var ErrInvalidMap = errors.New("map violates invariant")

const (
	minSeekerSpacing = 3
	minSeekerRun     = 5
)

// Verify re-checks a finished map from scratch without trusting the generator:
// walled border, single start and end at their fixed positions, every goal
// reachable, and seeker spacing and corridor rules. All violations are joined.
func Verify(g *world.Grid) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidMap}, args...)...))
	}

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if !g.IsBorder(x, y) {
				continue
			}
			if tile, _ := g.Get(x, y); tile != world.TileWall {
				fail("border tile (%d,%d) is %s", x, y, tile)
			}
		}
	}

	start, end := placement.StartPosition(g), placement.EndPosition(g)
	if tile, _ := g.At(start); tile != world.TileStart {
		fail("start position %v holds %s", start, tile)
	}
	if tile, _ := g.At(end); tile != world.TileEnd {
		fail("end position %v holds %s", end, tile)
	}
	if n := g.Count(world.TileStart); n != 1 {
		fail("%d start tiles", n)
	}
	if n := g.Count(world.TileEnd); n != 1 {
		fail("%d end tiles", n)
	}

	reachable := reach.ReachableFrom(g, start)
	seekers := g.Positions(world.TileSeeker)
	goals := append([]world.Point{end}, seekers...)
	goals = append(goals, g.Positions(world.TileCollectible)...)
	for _, p := range goals {
		if !reachable.Has(p) {
			fail("goal %v is unreachable from start", p)
		}
	}

	for i, a := range seekers {
		for _, b := range seekers[i+1:] {
			if a.Chebyshev(b) < minSeekerSpacing {
				fail("seekers %v and %v are closer than %d", a, b, minSeekerSpacing)
			}
		}
		if err := verifySeekerRow(g, a); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// verifySeekerRow checks that the seeker has a long enough run to one side and
// shares its wall-bounded row run with no other seeker.
func verifySeekerRow(g *world.Grid, p world.Point) error {
	longest := 0
	for _, dx := range []int{-1, 1} {
		steps := 0
		for x := p.X + dx; g.InBounds(x, p.Y); x += dx {
			tile, _ := g.Get(x, p.Y)
			if tile == world.TileWall {
				break
			}
			if tile == world.TileSeeker {
				return fmt.Errorf("%w: seeker %v shares a row run with seeker at (%d,%d)", ErrInvalidMap, p, x, p.Y)
			}
			steps++
		}
		longest = max(longest, steps)
	}
	if longest < minSeekerRun {
		return fmt.Errorf("%w: seeker %v has only %d tiles of clearance", ErrInvalidMap, p, longest)
	}
	return nil
}
