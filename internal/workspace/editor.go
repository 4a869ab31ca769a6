package workspace

import (
	"sync"

	"github.com/Cyclone1070/runbar/internal/project"
)

// EditorRegistry tracks the item shown in the focused editor.
type EditorRegistry struct {
	mu      sync.RWMutex
	focused project.Item
}

// Focus makes item the focused one. nil closes the editor.
func (e *EditorRegistry) Focus(item project.Item) {
	e.mu.Lock()
	e.focused = item
	e.mu.Unlock()
}

// FocusedItem returns the focused item or nil.
func (e *EditorRegistry) FocusedItem() project.Item {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.focused
}
