package layout

import (
	"bytes"
	"testing"

	"github.com/hnimtadd/stackview/logger"
	"github.com/hnimtadd/stackview/stack/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Four 500x250 children inside a 500x1000 viewport.
func fourChildren() []geometry.Size {
	size := geometry.NewSize(500, 250)
	return []geometry.Size{size, size, size, size}
}

func viewport() geometry.Size {
	return geometry.NewSize(500, 1000)
}

func rects(res *Result) []geometry.Rect {
	out := make([]geometry.Rect, 0, len(res.Frames))
	for _, f := range res.Frames {
		out = append(out, f.Rect)
	}
	return out
}

func TestLayout_StacksChildren(t *testing.T) {
	res, err := Layout(fourChildren(), Options{Viewport: viewport()})
	require.NoError(t, err)

	assert.Equal(t, []geometry.Rect{
		geometry.NewRect(0, 0, 500, 250),
		geometry.NewRect(0, 250, 500, 250),
		geometry.NewRect(0, 500, 500, 250),
		geometry.NewRect(0, 750, 500, 250),
	}, rects(res))
	assert.Equal(t, geometry.NewSize(500, 1000), res.ContentSize)
}

func TestLayout_Spacing(t *testing.T) {
	res, err := Layout(fourChildren(), Options{
		Spacing:  10,
		Viewport: viewport(),
	})
	require.NoError(t, err)

	assert.Equal(t, []geometry.Rect{
		geometry.NewRect(0, 0, 500, 250),
		geometry.NewRect(0, 260, 500, 250),
		geometry.NewRect(0, 520, 500, 250),
		// Three spacings pushed the last child past the bottom edge.
		geometry.NewRect(0, 780, 500, 220),
	}, rects(res))
	assert.Equal(t, geometry.NewSize(500, 1030), res.ContentSize)
}

func TestLayout_OffsetCollapsesScrolledPastChildren(t *testing.T) {
	tests := map[string]struct {
		offset int
		want   []geometry.Rect
	}{
		"offset 250": {
			offset: 250,
			want: []geometry.Rect{
				geometry.NewRect(0, 250, 500, 0),
				geometry.NewRect(0, 250, 500, 250),
				geometry.NewRect(0, 500, 500, 250),
				geometry.NewRect(0, 750, 500, 250),
			},
		},
		"offset 500": {
			offset: 500,
			want: []geometry.Rect{
				geometry.NewRect(0, 500, 500, 0),
				geometry.NewRect(0, 500, 500, 0),
				geometry.NewRect(0, 500, 500, 250),
				geometry.NewRect(0, 750, 500, 250),
			},
		},
		"offset 750": {
			offset: 750,
			want: []geometry.Rect{
				geometry.NewRect(0, 750, 500, 0),
				geometry.NewRect(0, 750, 500, 0),
				geometry.NewRect(0, 750, 500, 0),
				geometry.NewRect(0, 750, 500, 250),
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := Layout(fourChildren(), Options{
				Offset:   geometry.NewPoint(0, tt.offset),
				Viewport: viewport(),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rects(res))
			assert.Equal(t, 1000, res.ContentSize.Height,
				"content size does not depend on the offset")
		})
	}
}

func TestLayout_StraddlingChildScrollsItsContent(t *testing.T) {
	res, err := Layout(fourChildren(), Options{
		Offset:   geometry.NewPoint(0, 100),
		Viewport: viewport(),
	})
	require.NoError(t, err)

	first := res.Frames[0]
	assert.Equal(t, geometry.NewRect(0, 100, 500, 150), first.Rect)
	assert.Equal(t, 100, first.ContentOffset)

	for _, f := range res.Frames[1:] {
		assert.Equal(t, 0, f.ContentOffset)
	}
}

// Spacing above a straddling child is scrolled past with it: the child is
// only shortened by the rows of its own content above the offset, and the
// last child is limited by the viewport's bottom edge alone.
func TestLayout_StraddlingChildWithSpacing(t *testing.T) {
	res, err := Layout(fourChildren(), Options{
		Spacing:  10,
		Offset:   geometry.NewPoint(0, 300),
		Viewport: viewport(),
	})
	require.NoError(t, err)

	assert.Equal(t, []Frame{
		{Index: 0, Rect: geometry.NewRect(0, 300, 500, 0), ContentOffset: 250},
		{Index: 1, Rect: geometry.NewRect(0, 300, 500, 210), ContentOffset: 40},
		{Index: 2, Rect: geometry.NewRect(0, 520, 500, 250)},
		{Index: 3, Rect: geometry.NewRect(0, 780, 500, 250)},
	}, res.Frames)
	assert.Equal(t, geometry.NewSize(500, 1030), res.ContentSize)
}

func TestLayout_CollapsedChildIsScrolledToItsEnd(t *testing.T) {
	res, err := Layout(fourChildren(), Options{
		Offset:   geometry.NewPoint(0, 600),
		Viewport: viewport(),
	})
	require.NoError(t, err)

	assert.Equal(t, 250, res.Frames[0].ContentOffset)
	assert.Equal(t, 250, res.Frames[1].ContentOffset)
	assert.Equal(t, 100, res.Frames[2].ContentOffset)
	assert.True(t, res.Frames[0].IsCollapsed())
	assert.False(t, res.Frames[2].IsCollapsed())
}

func TestLayout_ChildrenBelowTheViewportKeepFullHeight(t *testing.T) {
	size := geometry.NewSize(80, 10)
	res, err := Layout([]geometry.Size{size, size, size}, Options{
		Viewport: geometry.NewSize(80, 15),
	})
	require.NoError(t, err)

	assert.Equal(t, []geometry.Rect{
		geometry.NewRect(0, 0, 80, 10),
		geometry.NewRect(0, 10, 80, 5),
		geometry.NewRect(0, 20, 80, 10),
	}, rects(res))
}

func TestLayout_LongChildIsClippedToTheViewport(t *testing.T) {
	res, err := Layout([]geometry.Size{geometry.NewSize(80, 100)}, Options{
		Offset:   geometry.NewPoint(0, 30),
		Viewport: geometry.NewSize(80, 24),
	})
	require.NoError(t, err)

	f := res.Frames[0]
	assert.Equal(t, geometry.NewRect(0, 30, 80, 24), f.Rect)
	assert.Equal(t, 30, f.ContentOffset)
	assert.Equal(t, 100, res.ContentSize.Height)
}

func TestLayout_UnsizedViewportDoesNotClip(t *testing.T) {
	size := geometry.NewSize(500, 250)
	res, err := Layout([]geometry.Size{size, size}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []geometry.Rect{
		geometry.NewRect(0, 0, 0, 250),
		geometry.NewRect(0, 250, 0, 250),
	}, rects(res))
}

func TestLayout_NoChildren(t *testing.T) {
	res, err := Layout(nil, Options{Spacing: 10, Viewport: viewport()})
	require.NoError(t, err)
	assert.Empty(t, res.Frames)
	assert.Equal(t, geometry.NewSize(500, 0), res.ContentSize)
}

func TestLayout_ZeroHeightChildTakesNoSpacing(t *testing.T) {
	res, err := Layout([]geometry.Size{
		geometry.NewSize(500, 250),
		geometry.NewSize(500, 0),
		geometry.NewSize(500, 250),
	}, Options{Spacing: 10, Viewport: viewport()})
	require.NoError(t, err)

	assert.Len(t, res.Frames, 3, "empty child keeps its index")
	assert.Equal(t, geometry.NewRect(0, 250, 500, 0), res.Frames[1].Rect)
	assert.Equal(t, geometry.NewRect(0, 260, 500, 250), res.Frames[2].Rect)
	assert.Equal(t, 510, res.ContentSize.Height)
}

func TestLayout_NegativeSpacing(t *testing.T) {
	res, err := Layout(fourChildren(), Options{Spacing: -1, Viewport: viewport()})
	assert.ErrorIs(t, err, ErrNegativeSpacing)
	assert.Nil(t, res)
}

func TestLayout_NegativeContentHeightIsClamped(t *testing.T) {
	var buf bytes.Buffer
	res, err := Layout([]geometry.Size{
		geometry.NewSize(500, -40),
		geometry.NewSize(500, 250),
	}, Options{
		Viewport: viewport(),
		Logger:   logger.New(logger.Options{Buffer: &buf, Level: logger.WarnLevel}),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Frames[0].Rect.Size.Height)
	assert.Equal(t, geometry.NewRect(0, 0, 500, 250), res.Frames[1].Rect)
	assert.Equal(t, 250, res.ContentSize.Height)
	assert.Contains(t, buf.String(), "clamping negative content height")
}

func TestLayout_Properties(t *testing.T) {
	children := []geometry.Size{
		geometry.NewSize(500, 120),
		geometry.NewSize(500, 0),
		geometry.NewSize(500, 333),
		geometry.NewSize(500, 45),
		geometry.NewSize(500, 700),
		geometry.NewSize(500, 10),
	}
	contentHeight := 0
	nonEmpty := 0
	for _, c := range children {
		contentHeight += c.Height
		if c.Height > 0 {
			nonEmpty++
		}
	}

	for _, spacing := range []int{0, 1, 7, 25} {
		for offset := -20; offset <= 1400; offset += 37 {
			opts := Options{
				Spacing:  spacing,
				Offset:   geometry.NewPoint(0, offset),
				Viewport: geometry.NewSize(500, 300),
			}
			res, err := Layout(children, opts)
			require.NoError(t, err)

			for i := 1; i < len(res.Frames); i++ {
				prev, cur := res.Frames[i-1].Rect, res.Frames[i].Rect
				assert.GreaterOrEqual(t, cur.MinY(), prev.MaxY(),
					"spacing %d offset %d frame %d", spacing, offset, i)
			}
			for _, f := range res.Frames {
				assert.GreaterOrEqual(t, f.Rect.Size.Height, 0)
				assert.Equal(t, 500, f.Rect.Size.Width)
			}
			assert.Equal(t, contentHeight+spacing*(nonEmpty-1), res.ContentSize.Height)

			again, err := Layout(children, opts)
			require.NoError(t, err)
			assert.Equal(t, res, again)
			assert.Equal(t, res.Hash(), again.Hash())
		}
	}
}

func TestResult_HashChangesWithFrames(t *testing.T) {
	a, err := Layout(fourChildren(), Options{Viewport: viewport()})
	require.NoError(t, err)
	b, err := Layout(fourChildren(), Options{
		Offset:   geometry.NewPoint(0, 250),
		Viewport: viewport(),
	})
	require.NoError(t, err)

	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Hash(), a.Clone().Hash())
}

func TestResult_CloneIsDeep(t *testing.T) {
	res, err := Layout(fourChildren(), Options{Viewport: viewport()})
	require.NoError(t, err)

	clone := res.Clone()
	clone.Frames[0].Rect.Origin.Y = 42
	assert.Equal(t, 0, res.Frames[0].Rect.Origin.Y)
	assert.Nil(t, (*Result)(nil).Clone())
}

func TestResult_FrameAt(t *testing.T) {
	res, err := Layout(fourChildren(), Options{
		Offset:   geometry.NewPoint(0, 250),
		Viewport: viewport(),
	})
	require.NoError(t, err)

	f, ok := res.FrameAt(250)
	require.True(t, ok)
	assert.Equal(t, 1, f.Index, "collapsed child 0 does not cover row 250")

	f, ok = res.FrameAt(999)
	require.True(t, ok)
	assert.Equal(t, 3, f.Index)

	_, ok = res.FrameAt(1000)
	assert.False(t, ok)
}
