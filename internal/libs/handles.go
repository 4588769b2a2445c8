package libs

import (
	"sync"

	"github.com/funvibe/palang/pkg/ext"
)

// handleTable maps the Integer handles given to programs onto Go resources.
// Handles start at 1 and are never reused within a process.
type handleTable[T any] struct {
	kind  string
	mu    sync.Mutex
	next  int64
	items map[int64]T
}

func newHandleTable[T any](kind string) *handleTable[T] {
	return &handleTable[T]{kind: kind, items: make(map[int64]T)}
}

func (h *handleTable[T]) add(item T) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.items[h.next] = item
	return h.next
}

func (h *handleTable[T]) get(id int64) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	item, ok := h.items[id]
	if !ok {
		return item, ext.ArgumentError("unknown %s handle: %d.", h.kind, id)
	}
	return item, nil
}

func (h *handleTable[T]) remove(id int64) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	item, ok := h.items[id]
	if !ok {
		return item, ext.ArgumentError("unknown %s handle: %d.", h.kind, id)
	}
	delete(h.items, id)
	return item, nil
}

// handleArg reads the Integer handle parameter at position 0.
func handleArg[T any](h *handleTable[T], args *ext.List, kwargs *ext.Dictionary) (int64, T, error) {
	var zero T
	id, err := ext.IntArg(args, kwargs, 0, "handle")
	if err != nil {
		return 0, zero, err
	}
	item, err := h.get(id)
	if err != nil {
		return 0, zero, err
	}
	return id, item, nil
}
