package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/hubastard/gallows/engine/core"
	"github.com/hubastard/gallows/engine/gfx"
	glbackend "github.com/hubastard/gallows/engine/gfx/gl"
	"github.com/hubastard/gallows/engine/platform"
	"github.com/hubastard/gallows/engine/profiler"
	"github.com/hubastard/gallows/hangman"
)

func main() {
	cfg, err := core.LoadConfig(core.ConfigPath())
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	gg.SetLogger(log.With("component", "gg"))

	profiler.Init(1 << 12)

	app := &hangman.App{
		NewFactory: func(win core.Window) (gfx.Factory, error) {
			s, ok := win.(glbackend.Surface)
			if !ok {
				return nil, fmt.Errorf("%w: window %T has no GL surface", gfx.ErrResourceCreation, win)
			}
			return glbackend.NewFactory(s, log.With("component", "gl"))
		},
		NewTextSource: func(win core.Window) (hangman.TextSource, error) {
			return hangman.NewTextSource(cfg.Text.Source, win, cfg.Text.Value)
		},
		TextStyle: gfx.TextStyleDesc{
			Family: cfg.Text.Family,
			Size:   cfg.Text.Size,
			Weight: gfx.FontWeight(cfg.Text.Weight),
		},
		Log: log,
	}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}

	if err := core.Run(app, cfg, newWindow); err != nil {
		log.Error("exiting", "err", err)
		os.Exit(1)
	}
}
