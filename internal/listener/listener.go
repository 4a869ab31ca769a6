// Package listener provides property-change notification with weak observers.
//
// An observed object keeps a Support and fires Events to its listeners. Controls
// register through Weak proxies so that the observed object never keeps a control
// alive: once the control is collected, its proxy unregisters itself on the next event.
package listener

import (
	"sync"
	"weak"
)

// Selection is fired by context sources when their membership changes.
const Selection = "selection"

// Event describes a change on Source.
type Event struct {
	Source   any
	Property string
}

// Listener receives change notifications.
type Listener interface {
	PropertyChange(ev Event)
}

// Func adapts a function to Listener. Func values are not comparable, so
// register a *Func when the listener must be removed later.
type Func func(ev Event)

func (f *Func) PropertyChange(ev Event) { (*f)(ev) }

// Observable is anything listeners can be attached to.
type Observable interface {
	AddListener(l Listener)
	RemoveListener(l Listener)
}

// Support keeps an ordered listener list. It is safe for concurrent use.
// Listeners are compared by identity; adding the same listener twice registers it twice.
type Support struct {
	mu        sync.Mutex
	listeners []Listener
}

// AddListener registers l.
func (s *Support) AddListener(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// RemoveListener removes the most recent registration of l.
func (s *Support) RemoveListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.listeners) - 1; i >= 0; i-- {
		if s.listeners[i] == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners.
func (s *Support) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Fire delivers ev to a snapshot of the listeners, outside the lock,
// so listeners may add or remove registrations while being notified.
func (s *Support) Fire(ev Event) {
	s.mu.Lock()
	snapshot := make([]Listener, len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		l.PropertyChange(ev)
	}
}

// WeakListener forwards events to a target it does not keep alive.
type WeakListener[T any, PT interface {
	*T
	Listener
}] struct {
	ref    weak.Pointer[T]
	source Observable
}

// Weak wraps target so that source holds no strong reference to it.
// The proxy must be registered on source by the caller.
func Weak[T any, PT interface {
	*T
	Listener
}](target PT, source Observable) *WeakListener[T, PT] {
	return &WeakListener[T, PT]{
		ref:    weak.Make((*T)(target)),
		source: source,
	}
}

// PropertyChange forwards ev, or unregisters the proxy if the target is gone.
func (w *WeakListener[T, PT]) PropertyChange(ev Event) {
	t := w.ref.Value()
	if t == nil {
		if w.source != nil {
			w.source.RemoveListener(w)
		}
		return
	}
	PT(t).PropertyChange(ev)
}

// Alive reports whether the target has not been collected yet.
func (w *WeakListener[T, PT]) Alive() bool {
	return w.ref.Value() != nil
}
