package generator

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/sneakmap/internal/world"
)

// stepClock advances by step on every reading so seeker budgets expire after a
// fixed number of samples instead of wall time.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testGenerator(seed int64) *Generator {
	clock := &stepClock{t: time.Unix(0, 0), step: time.Millisecond}
	return New(Config{
		Rand:   rand.New(rand.NewSource(seed)),
		Now:    clock.Now,
		Logger: quietLogger(),
	})
}

func TestGenerateInvariants(t *testing.T) {
	params := Params{Width: 30, Height: 12, Seekers: 4, Collectibles: 3}

	for seed := int64(1); seed <= 10; seed++ {
		result, err := testGenerator(seed).Generate(context.Background(), params)
		require.NoError(t, err, "seed %d", seed)

		g := result.Grid
		assert.Equal(t, 30, g.Width())
		assert.Equal(t, 12, g.Height())
		assert.NoError(t, Verify(g), "seed %d\n%s", seed, g)
		assert.Len(t, result.Collectibles, 3)
		assert.LessOrEqual(t, len(result.Seekers), 4)
		assert.GreaterOrEqual(t, result.Attempts, 1)
		assert.Equal(t, params.Seekers-len(result.Seekers), result.SeekerShortfall())
	}
}

func TestGenerateDefaultParams(t *testing.T) {
	result, err := testGenerator(2024).Generate(context.Background(), DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, DefaultWidth, result.Grid.Width())
	assert.Equal(t, DefaultHeight, result.Grid.Height())
	assert.Len(t, result.Collectibles, DefaultCollectibles)
	assert.NoError(t, Verify(result.Grid))
}

func TestGenerateReproducibility(t *testing.T) {
	params := Params{Width: 40, Height: 14, Seekers: 5, Collectibles: 4}

	r1, err := testGenerator(12345).Generate(context.Background(), params)
	require.NoError(t, err)
	r2, err := testGenerator(12345).Generate(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, r1.Attempts, r2.Attempts)
	assert.Equal(t, r1.Grid.Rows(), r2.Grid.Rows())
	assert.NotEqual(t, r1.ID, r2.ID)
}

func TestGenerateDifferentSeeds(t *testing.T) {
	params := Params{Width: 40, Height: 14, Seekers: 5, Collectibles: 4}

	r1, err := testGenerator(12345).Generate(context.Background(), params)
	require.NoError(t, err)
	r2, err := testGenerator(54321).Generate(context.Background(), params)
	require.NoError(t, err)

	assert.NotEqual(t, r1.Grid.Rows(), r2.Grid.Rows())
}

func TestGenerateSmallMap(t *testing.T) {
	params := Params{Width: 10, Height: 10, Seekers: 1, Collectibles: 1}

	withSeeker := 0
	for seed := int64(1); seed <= 40; seed++ {
		result, err := testGenerator(seed).Generate(context.Background(), params)
		require.NoError(t, err)
		require.NoError(t, Verify(result.Grid))

		text := strings.Join(result.Grid.Rows(), "\n")
		assert.Equal(t, 1, strings.Count(text, "C"))
		assert.Equal(t, 1, strings.Count(text, "S"))
		assert.Equal(t, 1, strings.Count(text, "E"))

		// The seeker budget may legitimately expire on a topology with no
		// long enough row, leaving the seeker out.
		seekers := strings.Count(text, "$")
		assert.LessOrEqual(t, seekers, 1)
		withSeeker += seekers
	}
	assert.Positive(t, withSeeker, "no seed produced a seeker")
}

func TestGenerateRejectsTinyMaps(t *testing.T) {
	_, err := GenerateMap(context.Background(), 3, 3, 0, 0)
	assert.ErrorIs(t, err, world.ErrInvalidDimension)

	_, err = testGenerator(1).Generate(context.Background(), Params{Width: 10, Height: 10, Seekers: -1})
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestGenerateSeekerBudget(t *testing.T) {
	// Far more seekers than the spacing rules allow on this map.
	params := Params{Width: 16, Height: 8, Seekers: 40, Collectibles: 2}

	result, err := testGenerator(77).Generate(context.Background(), params)
	require.NoError(t, err)

	assert.Less(t, len(result.Seekers), 40)
	assert.Positive(t, result.SeekerShortfall())
	assert.NoError(t, Verify(result.Grid))
}

func TestGenerateExhausted(t *testing.T) {
	clock := &stepClock{t: time.Unix(0, 0), step: time.Millisecond}
	gen := New(Config{
		Rand:                rand.New(rand.NewSource(5)),
		Now:                 clock.Now,
		Logger:              quietLogger(),
		MaxAttempts:         3,
		MaxCollectibleTries: 200,
	})

	// A 5x5 map has nine interior cells, two of which are start and end.
	_, err := gen.Generate(context.Background(), Params{Width: 5, Height: 5, Collectibles: 20})
	assert.ErrorIs(t, err, ErrGenerationExhausted)
}

func TestGenerateRecarvesWhenOpenTilesRunOut(t *testing.T) {
	// With seed 43 the third carve leaves no open tile for the collectible.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := testGenerator(43).Generate(ctx, Params{Width: 5, Height: 5, Collectibles: 1})
	require.NoError(t, err)
	assert.Len(t, result.Collectibles, 1)
	assert.NoError(t, Verify(result.Grid))
}

func TestGenerateUnplaceableCollectiblesExhaust(t *testing.T) {
	clock := &stepClock{t: time.Unix(0, 0), step: time.Millisecond}
	gen := New(Config{
		Rand:        rand.New(rand.NewSource(43)),
		Now:         clock.Now,
		Logger:      quietLogger(),
		MaxAttempts: 25,
	})

	// Seven carvable cells can never hold eight collectibles, and no try cap is set.
	_, err := gen.Generate(context.Background(), Params{Width: 5, Height: 5, Collectibles: 8})
	assert.ErrorIs(t, err, ErrGenerationExhausted)
}

func TestGenerateElapsedUsesClock(t *testing.T) {
	result, err := testGenerator(3).Generate(context.Background(), Params{Width: 12, Height: 8, Collectibles: 1})
	require.NoError(t, err)

	// Every clock reading advances one millisecond, so elapsed time is a whole
	// number of steps and never zero.
	assert.Positive(t, result.Elapsed)
	assert.Zero(t, result.Elapsed%time.Millisecond)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testGenerator(1).Generate(ctx, DefaultParams())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderMap(t *testing.T) {
	grid, err := GenerateMap(context.Background(), 12, 8, 0, 2)
	require.NoError(t, err)

	var rows []string
	for row := range RenderMap(grid) {
		rows = append(rows, row)
	}
	assert.Len(t, rows, 8)
	assert.Equal(t, grid.Rows(), rows)
	assert.Equal(t, "############", rows[0])
	assert.Equal(t, byte('S'), rows[1][1])
	assert.Equal(t, byte('E'), rows[6][10])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "attempting", StateAttempting.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "unknown", State(9).String())
}
