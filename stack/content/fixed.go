package content

import (
	"sync"

	"github.com/hnimtadd/stackview/stack/geometry"
)

// Fixed is a block with an explicitly set content size. It draws blank
// lines and does not take part in scroll arbitration.
type Fixed struct {
	mu   sync.Mutex
	size geometry.Size

	observers
}

func NewFixed(size geometry.Size) *Fixed {
	return &Fixed{size: size}
}

func (f *Fixed) ContentSize() geometry.Size {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.size
}

func (f *Fixed) ObserveContentSize(handler func(geometry.Size)) (cancel func()) {
	return f.observe(handler)
}

// SetSize replaces the content size and notifies observers when it changed.
func (f *Fixed) SetSize(size geometry.Size) {
	f.mu.Lock()
	changed := f.size != size
	f.size = size
	f.mu.Unlock()

	if changed {
		f.notify(size)
	}
}

func (f *Fixed) Lines(from, n, width int) []string {
	return blankLines(n, width)
}
