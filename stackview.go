package stackview

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/hnimtadd/stackview/logger"
	"github.com/hnimtadd/stackview/stack"
	"github.com/hnimtadd/stackview/stack/arbiter"
	"github.com/hnimtadd/stackview/stack/content"
	"github.com/hnimtadd/stackview/stack/geometry"
	"github.com/hnimtadd/stackview/stack/render"
)

type StackView struct {
	// The stacking container. It owns the children, the descendant set and
	// the latest layout result, and is renderer-agnostic.
	container *stack.Container

	// Turns the latest layout into terminal rows.
	renderer *render.Renderer

	logger logger.Logger
}

type Options struct {
	Cols, Rows int
	Spacing    int
	Logger     logger.Logger
}

// Initialize the stack view sized to cols x rows cells.
func NewStackView(opts Options) (*StackView, error) {
	log := logger.OrDiscard(opts.Logger)
	container, err := stack.New(stack.Options{
		Spacing: opts.Spacing,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	if err := container.SetViewportSize(geometry.NewSize(opts.Cols, opts.Rows)); err != nil {
		return nil, err
	}
	return &StackView{
		container: container,
		renderer:  render.NewRenderer(),
		logger:    log,
	}, nil
}

// Container exposes the underlying container for hosts that drive it
// directly.
func (s *StackView) Container() *stack.Container {
	return s.container
}

// resize the viewport
func (s *StackView) Resize(cols, rows int) error {
	return s.container.SetViewportSize(geometry.NewSize(cols, rows))
}

func (s *StackView) SetSpacing(spacing int) error {
	return s.container.SetSpacing(spacing)
}

func (s *StackView) AddChild(id string, provider stack.ContentSizeProvider) error {
	return s.container.AddChild(stack.ViewID(id), provider)
}

// AddText appends a text region initialised with text and returns it so the
// caller can keep writing to it.
func (s *StackView) AddText(id string, text string) (*content.Text, error) {
	t := content.NewText(text)
	if err := s.AddChild(id, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *StackView) RemoveChild(id string) error {
	return s.container.RemoveChild(stack.ViewID(id))
}

// Attach registers a scrollable nested anywhere under the child owner.
func (s *StackView) Attach(owner string, scrollable arbiter.Scrollable) error {
	return s.container.AttachDescendant(stack.ViewID(owner), scrollable)
}

func (s *StackView) Detach(scrollable arbiter.Scrollable) error {
	return s.container.DetachDescendant(scrollable)
}

// ScrollTo moves the outer offset to row y without clamping, as a host
// scroll surface would deliver it.
func (s *StackView) ScrollTo(y int) {
	s.container.SetViewportOffset(geometry.NewPoint(0, y))
}

// ScrollBy moves the outer offset by dy rows, clamped to the content.
func (s *StackView) ScrollBy(dy int) int {
	return s.container.ScrollBy(dy).Y
}

// Render draws the viewport. changed is false when the rows are identical
// to the previous Render. A panic raised by a child while drawing is
// recovered and returned as an error.
func (s *StackView) Render() (lines []string, changed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in Render", "panic", r, "stack", string(debug.Stack()))
			lines, changed = nil, false
			err = fmt.Errorf("panic in Render: %v", r)
		}
	}()

	snap := s.container.Snapshot()
	drawables := make([]render.Drawable, len(snap.Providers))
	for i, p := range snap.Providers {
		if d, ok := p.(render.Drawable); ok {
			drawables[i] = d
		}
	}
	lines, changed = s.renderer.Render(snap.Result, snap.Offset, snap.Viewport, drawables)
	return lines, changed, nil
}

// DumpString renders the viewport as plain text with trailing blanks
// removed from every row and trailing empty rows dropped.
func (s *StackView) DumpString() string {
	lines, _, err := s.Render()
	if err != nil {
		return ""
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// DirtyRows lists the viewport rows that changed in the last Render, for
// hosts that repaint row by row.
func (s *StackView) DirtyRows() []int {
	return s.renderer.DirtyRows()
}
