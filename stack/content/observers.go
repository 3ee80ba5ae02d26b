// Package content provides content-size providers for stacked children: a
// fixed-size block, a text region measured in terminal cells and a flow of
// labels laid out along one direction.
package content

import (
	"sync"

	"github.com/hnimtadd/stackview/stack/geometry"
)

type observer struct {
	id      int
	handler func(geometry.Size)
}

// observers fans a content-size change out to every registered handler in
// registration order.
type observers struct {
	mu       sync.Mutex
	nextID   int
	handlers []observer
}

func (o *observers) observe(handler func(geometry.Size)) (cancel func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextID++
	id := o.nextID
	o.handlers = append(o.handlers, observer{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			for i, h := range o.handlers {
				if h.id == id {
					o.handlers = append(o.handlers[:i], o.handlers[i+1:]...)
					return
				}
			}
		})
	}
}

// notify must be called without holding the provider's own lock: handlers
// re-enter the container, which may read the provider back.
func (o *observers) notify(size geometry.Size) {
	o.mu.Lock()
	handlers := make([]func(geometry.Size), 0, len(o.handlers))
	for _, h := range o.handlers {
		handlers = append(handlers, h.handler)
	}
	o.mu.Unlock()

	for _, h := range handlers {
		h(size)
	}
}

func (o *observers) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.handlers)
}
