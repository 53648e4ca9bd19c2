package hangman

import (
	"testing"

	"github.com/hubastard/gallows/engine/colors"
	"github.com/hubastard/gallows/engine/gfx"
	"github.com/hubastard/gallows/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSurface struct{ w, h int }

func (s *fixedSurface) FramebufferSize() (int, int) { return s.w, s.h }

type countingInvalidator struct{ n int }

func (c *countingInvalidator) Invalidate() { c.n++ }

func newTestRenderer(w, h int) (*Renderer, *gfxtest.Factory, *countingInvalidator) {
	f := gfxtest.NewFactory()
	inv := &countingInvalidator{}
	return NewRenderer(f, &fixedSurface{w, h}, WithInvalidator(inv)), f, inv
}

func TestLayout_MinRadius(t *testing.T) {
	for _, tc := range []struct {
		w, h   int
		cx, cy float32
		r      float32
	}{
		{400, 600, 200, 300, 200},
		{800, 600, 400, 300, 300},
		{1, 1, 0.5, 0.5, 0.5},
		{1000, 20, 500, 10, 10},
	} {
		l := NewLayout(gfx.Size{W: tc.w, H: tc.h})
		assert.Equal(t, gfx.Point{X: tc.cx, Y: tc.cy}, l.Circle.Center)
		assert.Equal(t, tc.r, l.Radius())
		assert.Equal(t, l.Circle.RX, l.Circle.RY)
	}
}

func TestEnsureResources_CreatesEverything(t *testing.T) {
	r, f, _ := newTestRenderer(400, 600)
	assert.False(t, r.Ready())

	require.NoError(t, r.EnsureResources())
	assert.True(t, r.Ready())

	tg := f.Last()
	require.NotNil(t, tg)
	assert.Equal(t, gfx.Size{W: 400, H: 600}, tg.Size())
	require.Len(t, tg.Brushes, 4)
	assert.Equal(t, colors.Figure, tg.Brushes[roleFigure].Color())
	assert.Equal(t, colors.Ground, tg.Brushes[roleGround].Color())
	assert.Equal(t, colors.Gallows, tg.Brushes[roleGallows].Color())
	assert.Equal(t, colors.Grass, tg.Brushes[roleGrass].Color())
	require.Len(t, f.Styles, 1)
	assert.Equal(t, DefaultTextStyle, f.Styles[0].Desc())
	assert.Equal(t, float32(200), r.Layout().Radius())
}

func TestEnsureResources_Idempotent(t *testing.T) {
	r, f, _ := newTestRenderer(400, 600)
	require.NoError(t, r.EnsureResources())
	target := r.Target()
	brushes := r.brushes
	style := r.style

	require.NoError(t, r.EnsureResources())
	assert.Same(t, target, r.Target())
	assert.Equal(t, brushes, r.brushes)
	assert.Same(t, style, r.style)
	assert.Len(t, f.Targets, 1)
	assert.Len(t, f.Last().Brushes, 4)
	assert.Len(t, f.Styles, 1)
}

func TestEnsureResources_FailureLeavesNothing(t *testing.T) {
	for name, inject := range map[string]func(f *gfxtest.Factory){
		"target":      func(f *gfxtest.Factory) { f.FailTargets = 1 },
		"first brush": func(f *gfxtest.Factory) { f.FailBrushAt = 1 },
		"last brush":  func(f *gfxtest.Factory) { f.FailBrushAt = 4 },
		"text style":  func(f *gfxtest.Factory) { f.FailTextStyles = 1 },
	} {
		t.Run(name, func(t *testing.T) {
			r, f, _ := newTestRenderer(400, 600)
			inject(f)

			err := r.EnsureResources()
			require.ErrorIs(t, err, gfx.ErrResourceCreation)
			assert.False(t, r.Ready())
			assert.Nil(t, r.Target())
			assert.Equal(t, brushSet{}, r.brushes)
			assert.Zero(t, f.Live(), "partially built target must be released")

			require.NoError(t, r.EnsureResources(), "next call retries")
			assert.True(t, r.Ready())
			assert.Equal(t, 1, f.Live())
		})
	}
}

func TestDraw_FailingAcquisitionSkipsFrame(t *testing.T) {
	r, f, _ := newTestRenderer(400, 600)
	f.FailTargets = 1

	assert.NotPanics(t, func() { assert.False(t, r.Draw()) })
	assert.False(t, r.Ready())
	assert.Empty(t, f.Targets)

	f.FailBrushAt = 2
	assert.False(t, r.Draw())
	assert.False(t, r.Ready())
	require.Len(t, f.Targets, 1)
	assert.Empty(t, f.Targets[0].Commands, "no drawing on a half-built target")
}

func TestDraw_CommandSequence(t *testing.T) {
	r, f, _ := newTestRenderer(1280, 720)
	require.True(t, r.Draw())

	tg := f.Last()
	frames := tg.Frames()
	require.Len(t, frames, 1)
	frame := frames[0]

	want := []gfxtest.Op{gfxtest.OpBegin, gfxtest.OpClear}
	for range 2 + len(gallows) {
		want = append(want, gfxtest.OpLine)
	}
	want = append(want, gfxtest.OpEllipse)
	for range figure {
		want = append(want, gfxtest.OpLine)
	}
	want = append(want, gfxtest.OpText, gfxtest.OpEnd)
	assert.Equal(t, want, gfxtest.Ops(frame))

	assert.Equal(t, Background, frame[1].Color)

	groundCmd, grassCmd := frame[2], frame[3]
	assert.Equal(t, colors.Ground, groundCmd.Color)
	assert.Equal(t, float32(1000), groundCmd.Width)
	assert.Equal(t, colors.Grass, grassCmd.Color)
	assert.Equal(t, float32(50), grassCmd.Width)

	for _, c := range frame[4 : 4+len(gallows)] {
		assert.Equal(t, colors.Gallows, c.Color)
		assert.Equal(t, float32(20), c.Width)
	}

	headCmd := frame[4+len(gallows)]
	assert.Equal(t, gfx.Circle(250, 175, 45), headCmd.Ellipse)
	assert.Equal(t, colors.Figure, headCmd.Color)

	textCmd := frame[len(frame)-2]
	assert.Equal(t, colors.Gallows, textCmd.Color)
	assert.Equal(t, TextRegion, textCmd.Layout)
	assert.Equal(t, f.Styles[0].ID, textCmd.StyleID)
	assert.Greater(t, TextRegion.Y, grass.from.Y+grass.width/2, "text sits under the grass")
}

func TestDraw_RendersTriggeredText(t *testing.T) {
	r, f, _ := newTestRenderer(400, 600)
	require.True(t, r.Draw())

	r.OnTextTrigger("Hello")
	require.True(t, r.Draw())

	r.OnTextTrigger("")
	require.True(t, r.Draw())

	frames := f.Last().Frames()
	require.Len(t, frames, 3)
	texts := make([]string, 0, 3)
	for _, fr := range frames {
		texts = append(texts, fr[len(fr)-2].Text)
	}
	assert.Equal(t, []string{"", "Hello", ""}, texts)
}

func TestResize_ScenarioFromCreation(t *testing.T) {
	r, f, inv := newTestRenderer(400, 600)
	require.True(t, r.Draw())
	assert.Equal(t, float32(200), r.Layout().Radius())

	r.Resize(800, 600)
	assert.Equal(t, []gfx.Size{{W: 800, H: 600}}, f.Last().Resizes)
	assert.Equal(t, float32(300), r.Layout().Radius())
	assert.Equal(t, gfx.Point{X: 400, Y: 300}, r.Layout().Circle.Center)
	assert.Equal(t, 1, inv.n)
}

func TestResize_NoopWithoutResources(t *testing.T) {
	r, f, inv := newTestRenderer(400, 600)
	r.Resize(800, 600)
	assert.False(t, r.Ready())
	assert.Empty(t, f.Targets)
	assert.Zero(t, inv.n)

	require.NoError(t, r.EnsureResources())
	assert.Equal(t, gfx.Size{W: 400, H: 600}, f.Last().Size(), "created at natural size")
}

func TestResize_IgnoresEmptySize(t *testing.T) {
	r, f, _ := newTestRenderer(400, 600)
	require.NoError(t, r.EnsureResources())
	r.Resize(0, 0)
	assert.Empty(t, f.Last().Resizes)
	assert.True(t, r.Ready())
}

func TestReleaseResources(t *testing.T) {
	r, f, _ := newTestRenderer(400, 600)
	assert.NotPanics(t, r.ReleaseResources, "release while uninitialised")

	require.NoError(t, r.EnsureResources())
	tg := f.Last()
	style := r.style

	r.ReleaseResources()
	assert.False(t, r.Ready())
	assert.True(t, tg.Released)
	assert.Equal(t, brushSet{}, r.brushes)
	assert.Same(t, style, r.style, "text style survives release")

	r.ReleaseResources()
	assert.False(t, r.Ready())
	assert.Len(t, f.Targets, 1)
}

func TestDraw_DeviceLostRecreatesEverything(t *testing.T) {
	r, f, _ := newTestRenderer(400, 600)
	require.True(t, r.Draw())
	first := f.Last()
	first.LoseDevice = true

	assert.False(t, r.Draw())
	assert.False(t, r.Ready())
	assert.True(t, first.Released)

	require.NoError(t, r.EnsureResources())
	second := f.Last()
	require.NotSame(t, first, second)
	require.Len(t, second.Brushes, 4)
	for i, b := range second.Brushes {
		assert.Same(t, second, b.Target)
		assert.NotEqual(t, first.Brushes[i].ID, b.ID)
	}
	require.Len(t, f.Styles, 2, "text style rebuilt after device loss")
	assert.NotEqual(t, f.Styles[0].ID, f.Styles[1].ID)

	require.True(t, r.Draw())
	assert.Len(t, second.Frames(), 1)
}

func TestDraw_EndDrawFailureDiscards(t *testing.T) {
	r, f, _ := newTestRenderer(400, 600)
	require.NoError(t, r.EnsureResources())
	f.Last().FailEnd = true

	assert.False(t, r.Draw())
	assert.False(t, r.Ready())
	assert.True(t, r.Draw())
	assert.Len(t, f.Targets, 2)
}
