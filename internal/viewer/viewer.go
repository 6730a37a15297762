// Package viewer shows generated maps in the terminal and lets the user
// regenerate them or step through the level presets.
package viewer

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/sneakmap/internal/gamedata"
	"github.com/samdwyer/sneakmap/internal/generator"
	"github.com/samdwyer/sneakmap/internal/telemetry"
	"github.com/samdwyer/sneakmap/internal/ui"
)

// Viewer holds the interactive session state.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	gen      *generator.Generator
	levels   *gamedata.LevelRegistry
	level    gamedata.LevelDef
	result   *generator.Result
	running  bool
}

// New creates a viewer that starts on level.
func New(screen *ui.Screen, palette gamedata.Palette, gen *generator.Generator,
	levels *gamedata.LevelRegistry, level gamedata.LevelDef) *Viewer {
	return &Viewer{
		screen:   screen,
		renderer: ui.NewRenderer(screen, palette),
		gen:      gen,
		levels:   levels,
		level:    level,
		running:  true,
	}
}

// Result returns the map currently on screen.
func (v *Viewer) Result() *generator.Result {
	return v.result
}

// Run generates the first map and processes input until the user quits or ctx
// is cancelled. The screen is closed on return.
func (v *Viewer) Run(ctx context.Context) error {
	defer v.screen.Close()

	// Closing the screen makes PollEvent return nil, which ends the loop.
	stop := context.AfterFunc(ctx, v.screen.Close)
	defer stop()

	if err := v.regenerate(ctx); err != nil {
		return err
	}

	for v.running {
		v.draw()
		if err := v.handleInput(ctx); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// regenerate replaces the current map with a fresh one for the current level.
func (v *Viewer) regenerate(ctx context.Context) error {
	ctx, span := telemetry.Tracer("viewer").Start(ctx, "viewer.regenerate")
	defer span.End()
	span.SetAttributes(attribute.String("level.id", v.level.ID))

	v.renderer.RenderMessage(fmt.Sprintf("Generating %s...", v.level.Name), 0)

	result, err := v.gen.Generate(ctx, v.level.Params())
	if err != nil {
		return fmt.Errorf("generating %s: %w", v.level.ID, err)
	}
	v.result = result
	return nil
}

// draw renders the map and a status line beneath it.
func (v *Viewer) draw() {
	v.renderer.Render(v.result.Grid)

	status := fmt.Sprintf("%s %dx%d  seekers %d/%d  collectibles %d  attempts %d",
		v.level.Name, v.result.Grid.Width(), v.result.Grid.Height(),
		len(v.result.Seekers), v.result.Params.Seekers,
		len(v.result.Collectibles), v.result.Attempts)
	v.renderer.RenderMessage(status, v.result.Grid.Height()+1)
	v.renderer.RenderMessage("[r] regenerate  [n] next preset  [q] quit", v.result.Grid.Height()+2)
}

// handleInput processes a single input event.
func (v *Viewer) handleInput(ctx context.Context) error {
	switch ev := v.screen.PollEvent().(type) {
	case *tcell.EventKey:
		return v.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		v.screen.Sync()
	case nil:
		// The screen was finalized.
		v.running = false
	}
	return nil
}

// handleKeyEvent processes keyboard input.
func (v *Viewer) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case 'r', 'R':
			return v.regenerate(ctx)
		case 'n', 'N':
			v.level = v.levels.Next(v.level.ID)
			return v.regenerate(ctx)
		}
	}
	return nil
}
