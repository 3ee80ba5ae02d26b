// Package stack stacks child scroll regions into one scroll surface.
//
// A Container owns the ordered children and the live set of nested
// scrollable descendants. Every trigger (a child reporting a new content
// size, a viewport change, a spacing change, a membership change) is
// processed synchronously: the layout or the arbitration is recomputed in
// full before the call returns.
package stack

import (
	"fmt"
	"sync"

	"github.com/hnimtadd/stackview/logger"
	"github.com/hnimtadd/stackview/stack/arbiter"
	"github.com/hnimtadd/stackview/stack/datastruct"
	"github.com/hnimtadd/stackview/stack/geometry"
	"github.com/hnimtadd/stackview/stack/layout"
	"github.com/hnimtadd/stackview/stack/utils"
)

// ViewID is the host's handle for a child. It must be unique within one
// container.
type ViewID string

// ContentSizeProvider reports a child's content size and pushes every
// change to the registered handler until cancel is called. Handlers must not
// be invoked from inside ObserveContentSize.
type ContentSizeProvider interface {
	ContentSize() geometry.Size
	ObserveContentSize(handler func(geometry.Size)) (cancel func())
}

// Child is a read-only view of one stacked child.
type Child struct {
	View        ViewID
	Order       int
	ContentSize geometry.Size
}

type entry struct {
	view        ViewID
	contentSize geometry.Size
	provider    ContentSizeProvider
	cancel      func()

	// Descendants attached under this child, detached with it.
	owned []arbiter.Scrollable
}

type Options struct {
	Spacing int
	Logger  logger.Logger

	// OnLayout receives a copy of every layout result. It runs after the
	// container lock is released and before the triggering call returns.
	OnLayout func(*layout.Result)
}

type Container struct {
	// Guards everything below for the duration of one operation.
	mu sync.Mutex

	children *datastruct.List[*entry]
	views    map[ViewID]*datastruct.Node[*entry]
	owners   map[arbiter.Scrollable]ViewID
	arbiter  *arbiter.Arbiter

	spacing  int
	offset   geometry.Point
	viewport geometry.Size

	result *layout.Result
	passes int

	onLayout func(*layout.Result)
	logger   logger.Logger
}

// Work to hand to the host once the lock is released.
type effects struct {
	result     *layout.Result
	decisions  []arbiter.Decision
	arbitrated bool
}

func New(opts Options) (*Container, error) {
	if opts.Spacing < 0 {
		return nil, &ConfigurationError{
			Field: "spacing",
			Value: opts.Spacing,
			Err:   layout.ErrNegativeSpacing,
		}
	}
	log := logger.OrDiscard(opts.Logger)
	c := &Container{
		children: datastruct.NewList[*entry](),
		views:    make(map[ViewID]*datastruct.Node[*entry]),
		owners:   make(map[arbiter.Scrollable]ViewID),
		arbiter:  arbiter.New(log),
		spacing:  opts.Spacing,
		onLayout: opts.OnLayout,
		logger:   log,
	}
	c.relayoutLocked()
	return c, nil
}

func (c *Container) flush(e effects) {
	if e.arbitrated {
		arbiter.Apply(e.decisions)
	}
	if e.result != nil && c.onLayout != nil {
		c.onLayout(e.result)
	}
}

// relayoutLocked runs one full layout pass over the current children.
func (c *Container) relayoutLocked() *layout.Result {
	sizes := make([]geometry.Size, 0, c.children.Len())
	for e := range c.children.All() {
		sizes = append(sizes, e.contentSize)
	}
	res, err := layout.Layout(sizes, layout.Options{
		Spacing:  c.spacing,
		Offset:   c.offset,
		Viewport: c.viewport,
		Logger:   c.logger,
	})
	// Spacing is validated by every setter.
	utils.Assert(err == nil, fmt.Sprintf("layout failed: %v", err))

	c.result = res
	c.passes++
	c.logger.Debug("layout pass",
		"children", len(sizes),
		"offset", c.offset.Y,
		"content_height", res.ContentSize.Height)
	return res.Clone()
}

func (c *Container) reconcileLocked(e *effects) {
	e.decisions = c.arbiter.Reconcile()
	e.arbitrated = true
}

// AddChild appends a child at the end of stack order, starts observing its
// provider and lays out. A provider that is itself an arbiter.Scrollable is
// attached as a descendant owned by the new child.
func (c *Container) AddChild(view ViewID, provider ContentSizeProvider) error {
	if view == "" || provider == nil {
		return ErrInvalidChild
	}
	var e effects
	err := func() error {
		c.mu.Lock()
		defer c.mu.Unlock()

		if _, ok := c.views[view]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateChild, view)
		}
		node := c.children.PushBack(&entry{
			view:        view,
			contentSize: provider.ContentSize(),
			provider:    provider,
		})
		c.views[view] = node
		node.Data.cancel = provider.ObserveContentSize(func(size geometry.Size) {
			c.contentSizeChanged(node, size)
		})

		if s, ok := provider.(arbiter.Scrollable); ok {
			if err := c.attachLocked(node, s); err != nil {
				c.logger.Warn("child already attached as a descendant",
					"view", view, "err", err)
			} else {
				c.reconcileLocked(&e)
			}
		}
		c.logger.Debug("added child", "view", view, "order", c.children.Len()-1)
		e.result = c.relayoutLocked()
		return nil
	}()
	if err != nil {
		return err
	}
	c.flush(e)
	return nil
}

// RemoveChild stops observing the child, detaches every descendant attached
// under it and lays out again.
func (c *Container) RemoveChild(view ViewID) error {
	var e effects
	err := func() error {
		c.mu.Lock()
		defer c.mu.Unlock()

		node, ok := c.views[view]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownChild, view)
		}
		if node.Data.cancel != nil {
			node.Data.cancel()
		}
		c.children.Remove(node)
		delete(c.views, view)

		for _, s := range node.Data.owned {
			_ = c.arbiter.Remove(s)
			delete(c.owners, s)
		}
		if len(node.Data.owned) > 0 {
			c.reconcileLocked(&e)
		}
		c.logger.Debug("removed child", "view", view)
		e.result = c.relayoutLocked()
		return nil
	}()
	if err != nil {
		return err
	}
	c.flush(e)
	return nil
}

func (c *Container) contentSizeChanged(node *datastruct.Node[*entry], size geometry.Size) {
	var e effects
	func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		// The child may have been removed while the provider was notifying.
		if current, ok := c.views[node.Data.view]; !ok || current != node {
			return
		}
		node.Data.contentSize = size
		e.result = c.relayoutLocked()
	}()
	c.flush(e)
}

func (c *Container) attachLocked(node *datastruct.Node[*entry], s arbiter.Scrollable) error {
	if err := c.arbiter.Add(s); err != nil {
		return err
	}
	c.owners[s] = node.Data.view
	node.Data.owned = append(node.Data.owned, s)
	return nil
}

// AttachDescendant adds s, found at any depth under the child owner, to the
// live descendant set and re-arbitrates.
func (c *Container) AttachDescendant(owner ViewID, s arbiter.Scrollable) error {
	var e effects
	err := func() error {
		c.mu.Lock()
		defer c.mu.Unlock()

		node, ok := c.views[owner]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownChild, owner)
		}
		if err := c.attachLocked(node, s); err != nil {
			return err
		}
		c.reconcileLocked(&e)
		return nil
	}()
	if err != nil {
		return err
	}
	c.flush(e)
	return nil
}

// DetachDescendant removes s from the live descendant set and re-arbitrates.
func (c *Container) DetachDescendant(s arbiter.Scrollable) error {
	var e effects
	err := func() error {
		c.mu.Lock()
		defer c.mu.Unlock()

		if err := c.arbiter.Remove(s); err != nil {
			return err
		}
		if owner, ok := c.owners[s]; ok {
			node := c.views[owner]
			node.Data.owned = removeScrollable(node.Data.owned, s)
			delete(c.owners, s)
		}
		c.reconcileLocked(&e)
		return nil
	}()
	if err != nil {
		return err
	}
	c.flush(e)
	return nil
}

func removeScrollable(list []arbiter.Scrollable, s arbiter.Scrollable) []arbiter.Scrollable {
	out := list[:0]
	for _, item := range list {
		if item != s {
			out = append(out, item)
		}
	}
	return out
}

// SetSpacing rejects negative values without changing anything.
func (c *Container) SetSpacing(spacing int) error {
	if spacing < 0 {
		return &ConfigurationError{
			Field: "spacing",
			Value: spacing,
			Err:   layout.ErrNegativeSpacing,
		}
	}
	c.update(func() { c.spacing = spacing })
	return nil
}

func (c *Container) SetViewportOffset(offset geometry.Point) {
	c.update(func() { c.offset = offset })
}

// SetViewportSize rejects a zero or negative size without changing anything.
func (c *Container) SetViewportSize(size geometry.Size) error {
	if !size.IsPositive() {
		return &ConfigurationError{
			Field: "viewport",
			Value: size,
			Err:   ErrInvalidViewport,
		}
	}
	c.update(func() { c.viewport = size })
	return nil
}

// ScrollBy moves the offset by dy rows, clamped so the viewport never leaves
// the content. It returns the resulting offset.
func (c *Container) ScrollBy(dy int) geometry.Point {
	var offset geometry.Point
	c.update(func() {
		maxY := c.result.ContentSize.Height - c.viewport.Height
		c.offset.Y = utils.Clamp(c.offset.Y+dy, 0, maxY)
		offset = c.offset
	})
	return offset
}

func (c *Container) update(mutate func()) {
	var e effects
	func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		mutate()
		e.result = c.relayoutLocked()
	}()
	c.flush(e)
}

// LayoutResult returns a copy of the latest layout result.
func (c *Container) LayoutResult() *layout.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result.Clone()
}

// LayoutPasses counts layout passes since the container was created,
// including the initial empty one.
func (c *Container) LayoutPasses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passes
}

func (c *Container) Spacing() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spacing
}

// Viewport returns the current offset and size.
func (c *Container) Viewport() (geometry.Point, geometry.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset, c.viewport
}

// Children lists the children in stack order.
func (c *Container) Children() []Child {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Child, 0, c.children.Len())
	for i, node := range c.children.Nodes() {
		out = append(out, Child{
			View:        node.Data.view,
			Order:       i,
			ContentSize: node.Data.contentSize,
		})
	}
	return out
}

// Snapshot is a consistent view of a container: Providers[i] is the
// provider of Result.Frames[i].
type Snapshot struct {
	Result    *layout.Result
	Offset    geometry.Point
	Viewport  geometry.Size
	Providers []ContentSizeProvider
}

// Snapshot copies the layout, the viewport and the providers under one lock,
// so a concurrent membership change cannot pair a frame with another child.
func (c *Container) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	providers := make([]ContentSizeProvider, 0, c.children.Len())
	for e := range c.children.All() {
		providers = append(providers, e.provider)
	}
	return Snapshot{
		Result:    c.result.Clone(),
		Offset:    c.offset,
		Viewport:  c.viewport,
		Providers: providers,
	}
}

// ScrollEnabled reports the arbitrated flag of a live descendant.
func (c *Container) ScrollEnabled(s arbiter.Scrollable) (enabled bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.arbiter.Enabled(s)
}

// Arbitration returns the current decision for every live descendant in
// insertion order.
func (c *Container) Arbitration() []arbiter.Decision {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.arbiter.Decisions()
}
