package editor

import (
	"sync"
)

// Host adapts the single-threaded editor to multi-goroutine callers
// such as HTTP handlers. Every entry point is serialized behind one
// mutex, preserving the one-event-at-a-time contract.
type Host struct {
	mu sync.Mutex
	ed *Editor
}

// NewHost wraps an editor for concurrent hosts
func NewHost(ed *Editor) *Host {
	return &Host{ed: ed}
}

// WithEditor runs fn with exclusive access to the editor
func (h *Host) WithEditor(fn func(*Editor) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.ed)
}

// Replace swaps in a new editor, typically after a canvas hot reload.
// Callers re-register their event subscriptions on the new editor
// before swapping.
func (h *Host) Replace(ed *Editor) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ed = ed
}
