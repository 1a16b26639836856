package tui

import "datepick-cli/internal/picker"

// listenerHost fans terminal mouse events out to the pickers' dismiss
// listeners. Each registration is removed by the func Listen returns.
type listenerHost struct {
	next    int
	entries map[int]picker.Listener
}

func newListenerHost() *listenerHost {
	return &listenerHost{entries: map[int]picker.Listener{}}
}

func (h *listenerHost) Listen(l picker.Listener) func() {
	id := h.next
	h.next++
	h.entries[id] = l
	return func() { delete(h.entries, id) }
}

func (h *listenerHost) active() int { return len(h.entries) }

// snapshot copies the registrations so a listener may unregister itself mid-dispatch.
func (h *listenerHost) snapshot() []picker.Listener {
	out := make([]picker.Listener, 0, len(h.entries))
	for _, l := range h.entries {
		out = append(out, l)
	}
	return out
}

func (h *listenerHost) pointerDown(x, y int) {
	for _, l := range h.snapshot() {
		l.PointerDown(float64(x), float64(y))
	}
}

func (h *listenerHost) scroll() {
	for _, l := range h.snapshot() {
		l.Scroll()
	}
}
