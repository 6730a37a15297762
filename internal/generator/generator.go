// Package generator builds validated levels: it carves a random grid, places
// start, end, seekers and collectibles, and regenerates from scratch until every
// goal tile is reachable from the start.
package generator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/sneakmap/internal/placement"
	"github.com/samdwyer/sneakmap/internal/reach"
	"github.com/samdwyer/sneakmap/internal/telemetry"
	"github.com/samdwyer/sneakmap/internal/world"
)

// DefaultSeekerBudget is how long an attempt may spend placing seekers.
const DefaultSeekerBudget = 5 * time.Second

// ErrGenerationExhausted is returned when Config.MaxAttempts attempts all failed validation.
var ErrGenerationExhausted = errors.New("map generation exhausted")

// Config tunes a Generator. The zero value reproduces the standard behaviour:
// 60% open space, a five second seeker budget and unbounded regeneration.
type Config struct {
	// Rand is the only randomness source. Nil seeds one from the clock.
	Rand *rand.Rand
	// Now is the clock for the seeker budget and Result.Elapsed. Nil means time.Now.
	Now func() time.Time
	// Logger receives progress messages. Nil means logrus.StandardLogger().
	Logger logrus.FieldLogger

	OpenProbability float64
	SeekerBudget    time.Duration

	// MaxAttempts caps full regenerations. Zero retries forever.
	MaxAttempts int
	// MaxCollectibleTries caps collectible samples per attempt. Zero samples until done.
	MaxCollectibleTries int
}

// Result is a validated map and how it was produced.
type Result struct {
	ID           uuid.UUID
	Grid         *world.Grid
	Params       Params
	Attempts     int
	Seekers      []world.Point
	Collectibles []world.Point
	Elapsed      time.Duration
}

// SeekerShortfall returns how many requested seekers the time budget did not allow.
func (r *Result) SeekerShortfall() int {
	return r.Params.Seekers - len(r.Seekers)
}

// Generator runs the attempt loop. It owns its random source, so a Generator
// must not be shared between goroutines; create one per request instead.
type Generator struct {
	cfg    Config
	placer *placement.Placer
	log    logrus.FieldLogger
}

// New creates a generator, filling in defaults for unset Config fields.
func New(cfg Config) *Generator {
	if cfg.Rand == nil {
		cfg.Rand = SeededRand(0)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.OpenProbability <= 0 {
		cfg.OpenProbability = placement.DefaultOpenProbability
	}
	if cfg.SeekerBudget <= 0 {
		cfg.SeekerBudget = DefaultSeekerBudget
	}

	return &Generator{
		cfg:    cfg,
		placer: placement.NewPlacer(cfg.Rand, cfg.Now, cfg.Logger),
		log:    cfg.Logger,
	}
}

// SeededRand returns a random source for seed. A seed of 0 picks one from the clock.
func SeededRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generate builds maps until one validates and returns it. Invalid grids are
// discarded whole. The loop ends only on success, cancellation of ctx, or when
// MaxAttempts is set and used up.
func (g *Generator) Generate(ctx context.Context, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	tracer := telemetry.Tracer("generator")
	ctx, span := tracer.Start(ctx, "map.generate")
	defer span.End()

	id := uuid.New()
	log := g.log.WithField("map_id", id.String())
	startTime := g.cfg.Now()

	span.SetAttributes(
		attribute.String("map.id", id.String()),
		attribute.Int("map.width", p.Width),
		attribute.Int("map.height", p.Height),
		attribute.Int("map.seekers_requested", p.Seekers),
		attribute.Int("map.collectibles_requested", p.Collectibles),
	)

	state := StateAttempting
	for attempt := 1; ; attempt++ {
		if g.cfg.MaxAttempts > 0 && attempt > g.cfg.MaxAttempts {
			err := fmt.Errorf("%w: no valid %dx%d map after %d attempts",
				ErrGenerationExhausted, p.Width, p.Height, g.cfg.MaxAttempts)
			span.RecordError(err)
			span.SetStatus(codes.Error, "exhausted")
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, "cancelled")
			return nil, fmt.Errorf("generating map: %w", err)
		}

		grid, err := g.attempt(ctx, p, attempt, log)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("generating map (attempt %d): %w", attempt, err)
		}
		if grid == nil {
			log.WithFields(logrus.Fields{"attempt": attempt, "state": state}).Debug("Map failed validation, regenerating")
			continue
		}

		state = StateDone
		result := &Result{
			ID:           id,
			Grid:         grid,
			Params:       p,
			Attempts:     attempt,
			Seekers:      grid.Positions(world.TileSeeker),
			Collectibles: grid.Positions(world.TileCollectible),
			Elapsed:      g.cfg.Now().Sub(startTime),
		}

		span.SetAttributes(
			attribute.Int("map.attempts", attempt),
			attribute.Int("map.seekers_placed", len(result.Seekers)),
			attribute.Int("map.collectibles_placed", len(result.Collectibles)),
			attribute.Int64("map.generation_ms", result.Elapsed.Milliseconds()),
		)
		log.WithFields(logrus.Fields{
			"state":        state,
			"attempts":     attempt,
			"seekers":      len(result.Seekers),
			"collectibles": len(result.Collectibles),
			"elapsed":      result.Elapsed,
		}).Info("Map generated")
		return result, nil
	}
}

// attempt runs one carve, place, validate cycle. It returns a nil grid when the
// attempt has to be thrown away.
func (g *Generator) attempt(ctx context.Context, p Params, n int, log logrus.FieldLogger) (*world.Grid, error) {
	_, span := telemetry.Tracer("generator").Start(ctx, "map.attempt")
	defer span.End()
	span.SetAttributes(attribute.Int("attempt.number", n))

	attemptStart := g.cfg.Now()
	deadline := attemptStart.Add(g.cfg.SeekerBudget)

	grid, err := world.New(p.Width, p.Height)
	if err != nil {
		return nil, err
	}
	if err := g.placer.CarveOpenSpace(grid, g.cfg.OpenProbability); err != nil {
		return nil, err
	}
	if err := placement.PlaceStartEnd(grid); err != nil {
		return nil, err
	}

	seekers := 0
	if g.cfg.Now().Before(deadline) {
		seekers, err = g.placer.PlaceSeekers(ctx, grid, p.Seekers, deadline)
		if err != nil {
			return nil, err
		}
	} else if p.Seekers > 0 {
		log.WithField("attempt", n).Warn("Seeker time limit reached before placement")
	}
	span.SetAttributes(attribute.Int("attempt.seekers_placed", seekers))

	// Sampling could never finish on this carve, so hand it back to the restart loop.
	if open := grid.Count(world.TileOpen); open < p.Collectibles {
		log.WithFields(logrus.Fields{"attempt": n, "open": open}).Debug("Too few open tiles for collectibles")
		span.SetAttributes(attribute.Bool("attempt.valid", false))
		return nil, nil
	}

	collectibles, err := g.placer.PlaceCollectibles(ctx, grid, p.Collectibles, g.cfg.MaxCollectibleTries)
	if errors.Is(err, placement.ErrCollectiblesStalled) {
		log.WithFields(logrus.Fields{"attempt": n, "placed": collectibles}).Debug("Collectible placement stalled")
		span.SetAttributes(attribute.Bool("attempt.valid", false))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	goals := []world.Point{placement.EndPosition(grid)}
	goals = append(goals, grid.Positions(world.TileSeeker)...)
	goals = append(goals, grid.Positions(world.TileCollectible)...)

	valid := reach.IsReachable(grid, placement.StartPosition(grid), goals)
	span.SetAttributes(attribute.Bool("attempt.valid", valid))
	if !valid {
		return nil, nil
	}
	return grid, nil
}

// GenerateMap builds a validated map with default settings.
func GenerateMap(ctx context.Context, width, height, seekers, collectibles int) (*world.Grid, error) {
	result, err := New(Config{}).Generate(ctx, Params{
		Width:        width,
		Height:       height,
		Seekers:      seekers,
		Collectibles: collectibles,
	})
	if err != nil {
		return nil, err
	}
	return result.Grid, nil
}

// RenderMap returns the text rows of grid.
func RenderMap(grid *world.Grid) iter.Seq[string] {
	return grid.Render()
}
