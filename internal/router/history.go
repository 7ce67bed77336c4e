package router

import "sync"

// History is the navigation stack the TUI walks.
type History struct {
	mu      sync.Mutex
	entries []Location
}

func NewHistory(start Location) *History {
	return &History{entries: []Location{start}}
}

func (h *History) Current() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

func (h *History) Push(loc Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, loc)
}

func (h *History) Replace(loc Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[len(h.entries)-1] = loc
}

// Back pops the current entry and reports whether there was one to go back to.
func (h *History) Back() (Location, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 1 {
		return h.entries[0], false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

// Apply follows d when it is a redirect and returns the location now current.
func (h *History) Apply(d Decision) Location {
	if d.Kind == Redirect {
		if d.Replace {
			h.Replace(d.To)
		} else {
			h.Push(d.To)
		}
	}
	return h.Current()
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
