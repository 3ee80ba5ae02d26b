package content

import (
	"strings"
	"sync"

	"github.com/hnimtadd/stackview/stack/arbiter"
	"github.com/hnimtadd/stackview/stack/geometry"
	dw "github.com/mattn/go-runewidth"
)

// Flow lays labels out along one direction: one per row when vertical, on a
// single row separated by Gap cells when horizontal. It does not declare
// scroll axes itself; they follow the configured direction.
type Flow struct {
	mu        sync.Mutex
	items     []string
	direction arbiter.Axis
	gap       int
	enabled   bool

	observers
}

func NewFlow(direction arbiter.Axis, gap int, items ...string) *Flow {
	if direction != arbiter.AxisHorizontal {
		direction = arbiter.AxisVertical
	}
	return &Flow{
		items:     append([]string(nil), items...),
		direction: direction,
		gap:       max(gap, 0),
	}
}

// Append adds items at the end of the flow.
func (f *Flow) Append(items ...string) {
	f.mu.Lock()
	before := f.sizeLocked()
	f.items = append(f.items, items...)
	after := f.sizeLocked()
	f.mu.Unlock()

	if after != before {
		f.notify(after)
	}
}

func (f *Flow) sizeLocked() geometry.Size {
	if len(f.items) == 0 {
		return geometry.Size{}
	}
	var size geometry.Size
	for _, item := range f.items {
		w := dw.StringWidth(item)
		if f.direction == arbiter.AxisHorizontal {
			size.Width += w
		} else {
			size.Width = max(size.Width, w)
			size.Height++
		}
	}
	if f.direction == arbiter.AxisHorizontal {
		size.Width += f.gap * (len(f.items) - 1)
		size.Height = 1
	}
	return size
}

func (f *Flow) ContentSize() geometry.Size {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sizeLocked()
}

func (f *Flow) ObserveContentSize(handler func(geometry.Size)) (cancel func()) {
	return f.observe(handler)
}

func (f *Flow) ScrollDirection() arbiter.Axis {
	return f.direction
}

// ScrollAxes is left undetermined so that arbitration asks ScrollDirection.
func (f *Flow) ScrollAxes() arbiter.Axis {
	return arbiter.AxisNone
}

func (f *Flow) SetScrollEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = enabled
}

func (f *Flow) ScrollEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

func (f *Flow) Lines(from, n, width int) []string {
	f.mu.Lock()
	rows := f.items
	if f.direction == arbiter.AxisHorizontal && len(f.items) > 0 {
		rows = []string{strings.Join(f.items, strings.Repeat(" ", f.gap))}
	}
	rows = append([]string(nil), rows...)
	f.mu.Unlock()

	out := make([]string, 0, max(n, 0))
	for y := from; y < from+n; y++ {
		line := ""
		if y >= 0 && y < len(rows) {
			line = rows[y]
		}
		out = append(out, FitWidth(line, width))
	}
	return out
}
