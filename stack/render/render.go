// Package render draws the visible part of a stack into terminal rows.
package render

import (
	"fmt"
	"strings"

	"github.com/hnimtadd/stackview/stack/content"
	"github.com/hnimtadd/stackview/stack/geometry"
	"github.com/hnimtadd/stackview/stack/layout"
	"github.com/hnimtadd/stackview/stack/utils"
	"github.com/mitchellh/hashstructure/v2"
)

// Drawable is a child that can produce its own content rows. from is a row
// in the child's content coordinates, already adjusted for the child's
// inner scroll offset.
type Drawable interface {
	Lines(from, n, width int) []string
}

// Renderer remembers the last frame it produced so that hosts can skip
// repainting an unchanged viewport, or repaint only the rows that changed.
type Renderer struct {
	lastHash uint64
	rendered bool
	last     []string

	// Rows that differ between the last two frames.
	dirty *utils.BitSet
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns one line per viewport row, each exactly viewport.Width
// cells wide, and whether the lines differ from the previous call.
//
// drawables are indexed like res.Frames; a nil or missing drawable renders
// blank. Rows not covered by any visible frame (spacing, or past the end of
// the content) are blank too.
func (r *Renderer) Render(
	res *layout.Result,
	offset geometry.Point,
	viewport geometry.Size,
	drawables []Drawable,
) ([]string, bool) {
	lines := make([]string, 0, max(viewport.Height, 0))
	blank := strings.Repeat(" ", max(viewport.Width, 0))
	for row := range max(viewport.Height, 0) {
		y := offset.Y + row
		frame, ok := res.FrameAt(y)
		if !ok || frame.Index >= len(drawables) || drawables[frame.Index] == nil {
			lines = append(lines, blank)
			continue
		}
		from := frame.ContentOffset + y - frame.Rect.MinY()
		got := drawables[frame.Index].Lines(from, 1, viewport.Width)
		if len(got) == 0 {
			lines = append(lines, blank)
			continue
		}
		// Children are trusted to pad, but a short or long line would shift
		// every cell after it on a real terminal.
		lines = append(lines, content.FitWidth(got[0], viewport.Width))
	}

	hashed, err := hashstructure.Hash(lines, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, fmt.Sprintf("failed to hash rendered lines: %v", err))
	changed := !r.rendered || hashed != r.lastHash

	r.markDirty(lines, changed)
	r.lastHash, r.rendered = hashed, true
	r.last = append(r.last[:0], lines...)
	return lines, changed
}

func (r *Renderer) markDirty(lines []string, changed bool) {
	if r.dirty == nil || r.dirty.Len() != len(lines) {
		// A resized viewport repaints everything.
		r.dirty = utils.NewBitSet(len(lines))
		r.dirty.SetRange(0, len(lines))
		return
	}
	r.dirty.Clear()
	if !changed {
		return
	}
	for i, line := range lines {
		if i >= len(r.last) || r.last[i] != line {
			r.dirty.Set(i)
		}
	}
}

// DirtyRows lists the viewport rows that changed in the last Render.
func (r *Renderer) DirtyRows() []int {
	if r.dirty == nil {
		return nil
	}
	rows := make([]int, 0, r.dirty.Count())
	for row := range r.dirty.All() {
		rows = append(rows, row)
	}
	return rows
}
