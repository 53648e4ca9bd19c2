// Command snapshot renders the hangman scene offscreen and writes it as PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/hubastard/gallows/engine/core"
	"github.com/hubastard/gallows/engine/gfx"
	"github.com/hubastard/gallows/engine/gfx/soft"
	"github.com/hubastard/gallows/hangman"
)

type size struct{ w, h int }

func (s size) FramebufferSize() (int, int) { return s.w, s.h }

func main() {
	var (
		out  = flag.String("o", "hangman.png", "output PNG path")
		w    = flag.Int("w", 0, "width in pixels (default from config)")
		h    = flag.Int("h", 0, "height in pixels (default from config)")
		text = flag.String("text", "", "text drawn under the grass")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)
	gg.SetLogger(log.With("component", "gg"))

	if err := run(log, *out, *w, *h, *text); err != nil {
		log.Error("snapshot failed", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, out string, w, h int, text string) error {
	cfg, err := core.LoadConfig(core.ConfigPath())
	if err != nil {
		return err
	}
	if w <= 0 {
		w = cfg.Width
	}
	if h <= 0 {
		h = cfg.Height
	}

	f := soft.NewFactory(log)
	defer f.Close()

	r := hangman.NewRenderer(f, size{w, h},
		hangman.WithLogger(log),
		hangman.WithTextStyle(gfx.TextStyleDesc{
			Family: cfg.Text.Family,
			Size:   cfg.Text.Size,
			Weight: gfx.FontWeight(cfg.Text.Weight),
		}),
	)
	defer r.ReleaseResources()

	if err := r.EnsureResources(); err != nil {
		return err
	}
	r.OnTextTrigger(text)
	if !r.Draw() {
		return errors.New("draw failed")
	}

	t, ok := r.Target().(*soft.Target)
	if !ok {
		return fmt.Errorf("unexpected target %T", r.Target())
	}
	if err := t.SavePNG(out); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Info("wrote snapshot", "path", out, "width", w, "height", h)
	return nil
}
