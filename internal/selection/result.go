package selection

import (
	"sync"

	"github.com/Cyclone1070/runbar/internal/listener"
)

// Source is a queryable, observable context source.
// It fires listener.Selection when its membership changes.
type Source[T any] interface {
	listener.Observable
	AllInstances() []T
}

// Result is a mutable Source used by hosts to publish the current selection.
type Result[T any] struct {
	listener.Support

	mu    sync.RWMutex
	items []T
}

// NewResult creates a Result holding items.
func NewResult[T any](items ...T) *Result[T] {
	r := &Result[T]{}
	r.items = append(r.items, items...)
	return r
}

// AllInstances returns a copy of the current members.
func (r *Result[T]) AllInstances() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Set replaces the members and notifies listeners.
func (r *Result[T]) Set(items ...T) {
	r.mu.Lock()
	r.items = append([]T(nil), items...)
	r.mu.Unlock()

	r.Fire(listener.Event{Source: r, Property: listener.Selection})
}

// Clear removes all members and notifies listeners.
func (r *Result[T]) Clear() {
	r.Set()
}
