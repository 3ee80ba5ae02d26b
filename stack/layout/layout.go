// Package layout computes where each stacked child sits inside the outer
// scroll surface.
//
// The engine is a pure function of the children's content sizes, the
// spacing, the outer scroll offset and the viewport size. Children scrolled
// entirely above the viewport collapse to a zero-height frame pinned at the
// current offset; a child straddling the top edge is clipped and its own
// content is scrolled by the amount hidden above the fold, so that the stack
// reads as one continuous surface while every child keeps scrolling its own
// content.
package layout

import (
	"errors"
	"fmt"

	"github.com/hnimtadd/stackview/logger"
	"github.com/hnimtadd/stackview/stack/geometry"
	"github.com/hnimtadd/stackview/stack/utils"
	"github.com/mitchellh/hashstructure/v2"
)

var ErrNegativeSpacing = errors.New("spacing must not be negative")

type Options struct {
	// Gap inserted between two consecutive non-empty children. Never added
	// after the last child.
	Spacing int

	// The outer container's scroll offset. Only the Y component takes part
	// in the layout; the stack is a single column.
	Offset geometry.Point

	// The visible window of the outer container. A zero height disables
	// bottom clipping, which is what a container that has not been sized yet
	// gets.
	Viewport geometry.Size

	Logger logger.Logger
}

// Frame is the placement of one child.
type Frame struct {
	// Position of the child in stack order.
	Index int

	// The clipped frame in the outer container's content coordinates.
	Rect geometry.Rect

	// How far the child's own content is scrolled so that the part visible
	// in Rect is the part that would be visible without clipping.
	ContentOffset int
}

// IsCollapsed reports whether the frame has no visible height.
func (f Frame) IsCollapsed() bool {
	return f.Rect.Size.Height == 0
}

type Result struct {
	Frames []Frame

	// Size of the outer container's scrollable content: viewport wide and
	// as tall as every child's full content plus the spacing between them.
	ContentSize geometry.Size
}

// Layout runs one full pass over children, which are the content sizes of
// the stacked children in stack order.
//
// Negative content heights are clamped to zero and logged; they never fail
// the pass. Negative spacing is a configuration error.
func Layout(children []geometry.Size, opts Options) (*Result, error) {
	if opts.Spacing < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeSpacing, opts.Spacing)
	}
	log := logger.OrDiscard(opts.Logger)

	var (
		width  = opts.Viewport.Width
		top    = opts.Offset.Y
		bottom = top + opts.Viewport.Height
		clip   = opts.Viewport.Height > 0

		// Running top edge of the next child in content coordinates.
		cursor int
		// Number of non-empty children placed so far.
		placed int
	)

	res := &Result{
		Frames:      make([]Frame, 0, len(children)),
		ContentSize: geometry.Size{Width: width},
	}
	for i, size := range children {
		if size.Height < 0 {
			log.Warn("clamping negative content height",
				"child", i, "height", size.Height)
		}
		h := utils.NonNegative(size.Height)
		if h > 0 {
			if placed > 0 {
				cursor += opts.Spacing
			}
			placed++
		}

		y, height, inner := cursor, h, 0
		switch {
		case cursor+h <= top:
			// Scrolled past: collapse and pin at the offset.
			y, height, inner = top, 0, h
		case cursor < top:
			// Straddles the top edge.
			y, height, inner = top, cursor+h-top, top-cursor
		}
		if clip && y < bottom {
			height = min(height, bottom-y)
		}

		res.Frames = append(res.Frames, Frame{
			Index:         i,
			Rect:          geometry.NewRect(0, y, width, height),
			ContentOffset: inner,
		})
		cursor += h
	}
	res.ContentSize.Height = cursor

	res.assertIntegrity()
	return res, nil
}

// assertIntegrity checks that frames never move up or overlap in stack order.
func (r *Result) assertIntegrity() {
	for i := 1; i < len(r.Frames); i++ {
		prev, cur := r.Frames[i-1].Rect, r.Frames[i].Rect
		utils.Assertf(cur.MinY() >= prev.MaxY(),
			"frame %d starts at %d above the end of frame %d at %d",
			i, cur.MinY(), i-1, prev.MaxY())
	}
}

// FrameAt returns the visible frame covering content row y.
func (r *Result) FrameAt(y int) (Frame, bool) {
	for _, f := range r.Frames {
		if f.Rect.ContainsY(y) {
			return f, true
		}
	}
	return Frame{}, false
}

// Clone returns a deep copy that callers may keep or mutate.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := *r
	out.Frames = append([]Frame(nil), r.Frames...)
	return &out
}

// Hash identifies the result by value. Two passes with identical inputs
// produce equal hashes.
func (r *Result) Hash() uint64 {
	hashed, err := hashstructure.Hash(r, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, fmt.Sprintf("failed to hash layout result: %v", err))
	return hashed
}
