// Package gfxtest provides a recording gfx.Factory for tests. Every target,
// brush and text style gets a sequential ID so tests can assert identity and
// churn; failures and device loss are injected per call.
package gfxtest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hubastard/gallows/engine/colors"
	"github.com/hubastard/gallows/engine/gfx"
)

type Op string

const (
	OpBegin   Op = "begin"
	OpClear   Op = "clear"
	OpLine    Op = "line"
	OpEllipse Op = "ellipse"
	OpText    Op = "text"
	OpEnd     Op = "end"
)

// Command is one recorded draw call.
type Command struct {
	Op      Op
	Color   colors.Color
	BrushID int
	P0, P1  gfx.Point
	Width   float32
	Ellipse gfx.Ellipse
	Text    string
	StyleID int
	Layout  gfx.Rect
}

var ErrInjected = errors.New("gfxtest: injected failure")

// Factory records everything created through it.
type Factory struct {
	mu sync.Mutex

	// FailTargets makes the next n CreateTarget calls fail.
	FailTargets int
	// FailBrushAt makes the Nth brush of the next target (1-based) fail.
	FailBrushAt int
	// FailTextStyles makes the next n CreateTextStyle calls fail.
	FailTextStyles int

	nextID  int
	Targets []*Target
	Styles  []*TextStyle
	Closed  bool
}

func NewFactory() *Factory { return &Factory{} }

func (f *Factory) id() int {
	f.nextID++
	return f.nextID
}

func (f *Factory) CreateTarget(size gfx.Size) (gfx.Target, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Closed {
		return nil, gfx.ErrReleased
	}
	if f.FailTargets > 0 {
		f.FailTargets--
		return nil, fmt.Errorf("%w: target: %w", gfx.ErrResourceCreation, ErrInjected)
	}
	t := &Target{f: f, ID: f.id(), size: size, failBrushAt: f.FailBrushAt}
	f.FailBrushAt = 0
	f.Targets = append(f.Targets, t)
	return t, nil
}

func (f *Factory) CreateTextStyle(desc gfx.TextStyleDesc) (gfx.TextStyle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailTextStyles > 0 {
		f.FailTextStyles--
		return nil, fmt.Errorf("%w: text style: %w", gfx.ErrResourceCreation, ErrInjected)
	}
	s := &TextStyle{ID: f.id(), desc: desc}
	f.Styles = append(f.Styles, s)
	return s, nil
}

func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Last returns the most recently created target, or nil.
func (f *Factory) Last() *Target {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Targets) == 0 {
		return nil
	}
	return f.Targets[len(f.Targets)-1]
}

// Live counts targets not yet released.
func (f *Factory) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.Targets {
		if !t.Released {
			n++
		}
	}
	return n
}

type TextStyle struct {
	ID   int
	desc gfx.TextStyleDesc
}

func (s *TextStyle) Desc() gfx.TextStyleDesc { return s.desc }

type Brush struct {
	ID     int
	Target *Target
	color  colors.Color
}

func (b *Brush) Color() colors.Color { return b.color }

type Target struct {
	f  *Factory
	ID int

	size        gfx.Size
	failBrushAt int

	Brushes  []*Brush
	Commands []Command
	Resizes  []gfx.Size
	Released bool

	// LoseDevice makes the next EndDraw report gfx.ErrDeviceLost.
	LoseDevice bool
	// FailEnd makes the next EndDraw return a generic error.
	FailEnd bool
}

func (t *Target) Size() gfx.Size { return t.size }

func (t *Target) Resize(size gfx.Size) error {
	if t.Released {
		return gfx.ErrReleased
	}
	t.size = size
	t.Resizes = append(t.Resizes, size)
	return nil
}

func (t *Target) CreateSolidBrush(c colors.Color) (gfx.Brush, error) {
	if t.Released {
		return nil, gfx.ErrReleased
	}
	if t.failBrushAt > 0 && len(t.Brushes)+1 == t.failBrushAt {
		return nil, fmt.Errorf("%w: brush: %w", gfx.ErrResourceCreation, ErrInjected)
	}
	t.f.mu.Lock()
	b := &Brush{ID: t.f.id(), Target: t, color: c}
	t.f.mu.Unlock()
	t.Brushes = append(t.Brushes, b)
	return b, nil
}

func (t *Target) record(c Command) {
	t.Commands = append(t.Commands, c)
}

func brushID(b gfx.Brush) int {
	if tb, ok := b.(*Brush); ok {
		return tb.ID
	}
	return 0
}

func (t *Target) BeginDraw() {
	t.record(Command{Op: OpBegin})
}

func (t *Target) Clear(c colors.Color) {
	t.record(Command{Op: OpClear, Color: c})
}

func (t *Target) DrawLine(p0, p1 gfx.Point, b gfx.Brush, width float32) {
	t.record(Command{Op: OpLine, P0: p0, P1: p1, BrushID: brushID(b), Color: b.Color(), Width: width})
}

func (t *Target) FillEllipse(e gfx.Ellipse, b gfx.Brush) {
	t.record(Command{Op: OpEllipse, Ellipse: e, BrushID: brushID(b), Color: b.Color()})
}

func (t *Target) DrawText(s string, style gfx.TextStyle, layout gfx.Rect, b gfx.Brush) {
	c := Command{Op: OpText, Text: s, Layout: layout, BrushID: brushID(b), Color: b.Color()}
	if ts, ok := style.(*TextStyle); ok {
		c.StyleID = ts.ID
	}
	t.record(c)
}

func (t *Target) EndDraw() error {
	t.record(Command{Op: OpEnd})
	switch {
	case t.Released:
		return gfx.ErrReleased
	case t.LoseDevice:
		t.LoseDevice = false
		return gfx.ErrDeviceLost
	case t.FailEnd:
		t.FailEnd = false
		return ErrInjected
	}
	return nil
}

func (t *Target) Release() {
	t.Released = true
}

// Frames splits Commands into begin..end groups.
func (t *Target) Frames() [][]Command {
	var out [][]Command
	var cur []Command
	for _, c := range t.Commands {
		cur = append(cur, c)
		if c.Op == OpEnd {
			out = append(out, cur)
			cur = nil
		}
	}
	return out
}

// Ops returns the op sequence of a frame.
func Ops(frame []Command) []Op {
	ops := make([]Op, len(frame))
	for i, c := range frame {
		ops[i] = c.Op
	}
	return ops
}
