// Package main is the sneakmap command: it generates a level and prints it,
// or opens it in an interactive terminal viewer.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/sneakmap/internal/config"
	"github.com/samdwyer/sneakmap/internal/gamedata"
	"github.com/samdwyer/sneakmap/internal/generator"
	"github.com/samdwyer/sneakmap/internal/telemetry"
	"github.com/samdwyer/sneakmap/internal/ui"
	"github.com/samdwyer/sneakmap/internal/viewer"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("sneakmap: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	width := flag.Int("width", cfg.Width, "map width in tiles")
	height := flag.Int("height", cfg.Height, "map height in tiles")
	seekers := flag.Int("seekers", cfg.Seekers, "number of seekers to place")
	collectibles := flag.Int("collectibles", cfg.Collectibles, "number of collectibles to place")
	seed := flag.Int64("seed", cfg.Seed, "random seed (0 picks one from the clock)")
	preset := flag.String("preset", "", "level preset from levels.json (explicit size flags still win)")
	view := flag.Bool("view", false, "open the interactive terminal viewer")
	verify := flag.Bool("verify", false, "re-check the printed map and fail if it is invalid")
	flag.Parse()

	logrus.SetLevel(cfg.LogLevel)
	logrus.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.TelemetryEnabled() {
		telemetry.ConfigureHoneycomb(cfg.HoneycombAPIKey, cfg.HoneycombDataset)
		shutdown, err := telemetry.Setup(ctx, "cli")
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	levels, err := gamedata.LoadLevelRegistry()
	if err != nil {
		return err
	}
	level := gamedata.LevelDef{ID: "custom", Name: "Custom"}
	if *preset != "" {
		if level, err = levels.GetByID(*preset); err != nil {
			return err
		}
	}
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	for name, apply := range map[string]func(){
		"width":        func() { level.Width = *width },
		"height":       func() { level.Height = *height },
		"seekers":      func() { level.Seekers = *seekers },
		"collectibles": func() { level.Collectibles = *collectibles },
	} {
		if *preset == "" || explicit[name] {
			apply()
		}
	}

	gen := generator.New(generator.Config{
		Rand:         generator.SeededRand(*seed),
		SeekerBudget: cfg.SeekerBudget,
		MaxAttempts:  cfg.MaxAttempts,
	})

	if *view {
		palette, err := gamedata.LoadPalette()
		if err != nil {
			return err
		}
		screen, err := ui.NewScreen()
		if err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		// The screen owns the terminal until Run returns.
		logrus.SetOutput(io.Discard)
		return viewer.New(screen, palette, gen, levels, level).Run(ctx)
	}

	result, err := gen.Generate(ctx, level.Params())
	if err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	for row := range generator.RenderMap(result.Grid) {
		fmt.Fprintln(out, row)
	}
	if err := out.Flush(); err != nil {
		return err
	}

	if *verify {
		if err := generator.Verify(result.Grid); err != nil {
			return err
		}
	}
	return nil
}
