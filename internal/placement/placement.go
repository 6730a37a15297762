// Package placement populates a grid with open floor, start, end, seekers and
// collectibles using rejection sampling.
package placement

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/sneakmap/internal/world"
)

const (
	// DefaultOpenProbability is the chance an interior cell is carved open.
	DefaultOpenProbability = 0.6

	// minCorridorRun is the clearance a seeker needs on at least one side of its row.
	minCorridorRun = 5
	// vicinityRadius is the Chebyshev radius in which no other seeker may sit.
	vicinityRadius = 2
)

// ErrCollectiblesStalled is returned when collectible placement gives up after
// its configured number of tries.
var ErrCollectiblesStalled = errors.New("collectible placement stalled")

// Placer places tiles onto a grid. It is not safe for concurrent use because
// it owns its random source.
type Placer struct {
	rng *rand.Rand
	now func() time.Time
	log logrus.FieldLogger
}

// NewPlacer creates a placer drawing from rng. A nil clock uses time.Now and a
// nil logger discards output.
func NewPlacer(rng *rand.Rand, now func() time.Time, log logrus.FieldLogger) *Placer {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Placer{rng: rng, now: now, log: log}
}

// CarveOpenSpace opens each interior cell independently with the given probability.
// The border is left untouched.
func (p *Placer) CarveOpenSpace(g *world.Grid, openProbability float64) error {
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			if p.rng.Float64() >= openProbability {
				continue
			}
			if err := g.Set(x, y, world.TileOpen); err != nil {
				return err
			}
		}
	}
	return nil
}

// StartPosition returns the fixed start tile of a grid.
func StartPosition(g *world.Grid) world.Point {
	return world.Point{X: 1, Y: 1}
}

// EndPosition returns the fixed end tile of a grid.
func EndPosition(g *world.Grid) world.Point {
	return world.Point{X: g.Width() - 2, Y: g.Height() - 2}
}

// PlaceStartEnd overwrites the start and end positions regardless of what is there.
func PlaceStartEnd(g *world.Grid) error {
	start, end := StartPosition(g), EndPosition(g)
	if err := g.Set(start.X, start.Y, world.TileStart); err != nil {
		return fmt.Errorf("placing start: %w", err)
	}
	if err := g.Set(end.X, end.Y, world.TileEnd); err != nil {
		return fmt.Errorf("placing end: %w", err)
	}
	return nil
}

// PlaceSeekers converts up to count open cells into seekers. A candidate must
// sit in a long enough row run without another seeker and must have no seeker
// within the exclusion radius. Sampling stops once the deadline passes; the
// number of seekers actually placed is returned and a shortfall is not an error.
func (p *Placer) PlaceSeekers(ctx context.Context, g *world.Grid, count int, deadline time.Time) (int, error) {
	placed := 0
	for placed < count {
		if err := ctx.Err(); err != nil {
			return placed, err
		}
		if !p.now().Before(deadline) {
			p.log.WithFields(logrus.Fields{
				"requested": count,
				"placed":    placed,
			}).Warn("Seeker time limit reached")
			return placed, nil
		}

		pt := p.randomInterior(g)
		ok, err := p.seekerFits(g, pt)
		if err != nil {
			return placed, err
		}
		if !ok {
			continue
		}

		if err := g.Set(pt.X, pt.Y, world.TileSeeker); err != nil {
			return placed, err
		}
		placed++
		p.log.WithFields(logrus.Fields{"x": pt.X, "y": pt.Y}).Debug("Placed seeker")
	}
	return placed, nil
}

func (p *Placer) seekerFits(g *world.Grid, pt world.Point) (bool, error) {
	tile, err := g.At(pt)
	if err != nil || tile != world.TileOpen {
		return false, err
	}
	roomy, err := IsBetweenClosedWalls(g, pt)
	if err != nil || !roomy {
		return false, err
	}
	crowded, err := SeekersInVicinity(g, pt)
	if err != nil {
		return false, err
	}
	return !crowded, nil
}

// PlaceCollectibles converts exactly count open cells into collectibles.
// maxTries bounds the number of samples drawn; zero means sample until done.
func (p *Placer) PlaceCollectibles(ctx context.Context, g *world.Grid, count, maxTries int) (int, error) {
	placed := 0
	for tries := 0; placed < count; tries++ {
		if err := ctx.Err(); err != nil {
			return placed, err
		}
		if maxTries > 0 && tries >= maxTries {
			return placed, fmt.Errorf("%w: placed %d of %d after %d tries",
				ErrCollectiblesStalled, placed, count, tries)
		}

		pt := p.randomInterior(g)
		tile, err := g.At(pt)
		if err != nil {
			return placed, err
		}
		if tile != world.TileOpen {
			continue
		}

		if err := g.Set(pt.X, pt.Y, world.TileCollectible); err != nil {
			return placed, err
		}
		placed++
		p.log.WithFields(logrus.Fields{"x": pt.X, "y": pt.Y}).Debug("Placed collectible")
	}
	return placed, nil
}

// randomInterior returns a uniformly random non-border coordinate.
func (p *Placer) randomInterior(g *world.Grid) world.Point {
	return world.Point{
		X: 1 + p.rng.Intn(g.Width()-2),
		Y: 1 + p.rng.Intn(g.Height()-2),
	}
}
