package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samdwyer/sneakmap/internal/gamedata"
	"github.com/samdwyer/sneakmap/internal/generator"
	"github.com/samdwyer/sneakmap/internal/world"
)

const defaultPreset = "default"

// StatusClientClosedRequest is reported when the caller went away before the
// map was ready. It stays below 500 so it is not logged as a server failure.
const StatusClientClosedRequest = 499

// GeneratorFactory builds a fresh generator for one request.
type GeneratorFactory func(seed int64) *generator.Generator

// MapController serves map generation endpoints.
type MapController struct {
	levels       *gamedata.LevelRegistry
	newGenerator GeneratorFactory
	timeout      time.Duration
}

// NewMapController initializes a MapController. Every request gets its own
// generator from newGenerator and runs under timeout.
func NewMapController(levels *gamedata.LevelRegistry, newGenerator GeneratorFactory, timeout time.Duration) *MapController {
	return &MapController{
		levels:       levels,
		newGenerator: newGenerator,
		timeout:      timeout,
	}
}

// Register registers the map routes.
func (mc *MapController) Register(route *gin.RouterGroup) {
	maps := route.Group("/maps")
	{
		maps.GET("", mc.generate)
		maps.GET("/text", mc.generateText)
	}
	route.GET("/presets", mc.presets)
}

// generate responds with the map as JSON.
func (mc *MapController) generate(ctx *gin.Context) {
	result, seed, ok := mc.run(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, &MapResponse{
		ID:               result.ID,
		Seed:             seed,
		Width:            result.Grid.Width(),
		Height:           result.Grid.Height(),
		Seekers:          len(result.Seekers),
		SeekersRequested: result.Params.Seekers,
		Collectibles:     len(result.Collectibles),
		Attempts:         result.Attempts,
		Rows:             result.Grid.Rows(),
	})
}

// generateText responds with the rendered map, one row per line.
func (mc *MapController) generateText(ctx *gin.Context) {
	result, seed, ok := mc.run(ctx)
	if !ok {
		return
	}

	var sb strings.Builder
	for row := range generator.RenderMap(result.Grid) {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	ctx.Header("X-Map-Id", result.ID.String())
	ctx.Header("X-Map-Seed", strconv.FormatInt(seed, 10))
	ctx.String(http.StatusOK, sb.String())
}

// presets lists the embedded level presets.
func (mc *MapController) presets(ctx *gin.Context) {
	all := mc.levels.All()
	out := make([]PresetResponse, 0, len(all))
	for _, l := range all {
		out = append(out, PresetResponse{
			ID:           l.ID,
			Name:         l.Name,
			Width:        l.Width,
			Height:       l.Height,
			Seekers:      l.Seekers,
			Collectibles: l.Collectibles,
		})
	}
	ctx.JSON(http.StatusOK, out)
}

// run parses the request, generates a map and writes any error response.
func (mc *MapController) run(ctx *gin.Context) (*generator.Result, int64, bool) {
	params, seed, err := mc.parseRequest(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return nil, 0, false
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), mc.timeout)
	defer cancel()

	result, err := mc.newGenerator(seed).Generate(timeoutCtx, params)
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return nil, 0, false
	}
	return result, seed, true
}

// parseRequest starts from the named preset and applies any explicit overrides.
func (mc *MapController) parseRequest(ctx *gin.Context) (generator.Params, int64, error) {
	level, err := mc.levels.GetByID(ctx.DefaultQuery("preset", defaultPreset))
	if err != nil {
		return generator.Params{}, 0, err
	}
	params := level.Params()

	for key, dst := range map[string]*int{
		"width":        &params.Width,
		"height":       &params.Height,
		"seekers":      &params.Seekers,
		"collectibles": &params.Collectibles,
	} {
		value, ok := ctx.GetQuery(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return params, 0, fmt.Errorf("query parameter %s must be an integer", key)
		}
		*dst = n
	}

	var seed int64
	if value, ok := ctx.GetQuery("seed"); ok {
		if seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return params, 0, fmt.Errorf("query parameter seed must be an integer")
		}
	}

	return params, seed, params.Validate()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, world.ErrInvalidDimension), errors.Is(err, generator.ErrInvalidCount):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, generator.ErrGenerationExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
