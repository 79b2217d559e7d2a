package sfoglia

import (
	"log/slog"
	"sync"

	"github.com/patsma/sfoglia/pkg/sfoglia/internal"
)

// Registry associates animation descriptors with live elements. It is pure
// metadata storage: no animation work happens here. Iteration follows attach
// order, which is the order elements animate within a phase.
type Registry struct {
	mu      sync.RWMutex
	entries map[ElementID]registryEntry
	order   []ElementID
	log     *slog.Logger
}

type registryEntry struct {
	el   *Element
	desc Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[ElementID]registryEntry),
		log:     internal.GetInternalLogger(),
	}
}

// Attach stores a descriptor for el, filling unset fields with per-kind
// defaults. A second attach on the same element overwrites the first but
// keeps the element's original iteration position (last-write-wins is a
// policy choice, not an error).
func (r *Registry) Attach(el *Element, d Descriptor) {
	if el == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[el.id]; !exists {
		r.order = append(r.order, el.id)
	}
	r.entries[el.id] = registryEntry{el: el, desc: d.withDefaults()}
}

// Detach removes el's descriptor. It is idempotent: detaching an element
// that has no descriptor is a no-op.
func (r *Registry) Detach(el *Element) {
	if el == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[el.id]; !exists {
		return
	}
	delete(r.entries, el.id)

	for i, id := range r.order {
		if id == el.id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Read returns el's descriptor, if any.
func (r *Registry) Read(el *Element) (Descriptor, bool) {
	if el == nil {
		return Descriptor{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[el.id]
	return entry.desc, ok
}

// Len returns the number of attached descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// each visits entries in attach order. Returning false stops iteration.
// The snapshot is taken under the lock so timelines built mid-iteration
// cannot race a detach.
func (r *Registry) each(fn func(*Element, Descriptor) bool) {
	r.mu.RLock()
	snapshot := make([]registryEntry, 0, len(r.order))
	for _, id := range r.order {
		if entry, ok := r.entries[id]; ok {
			snapshot = append(snapshot, entry)
		}
	}
	r.mu.RUnlock()

	for _, entry := range snapshot {
		if !fn(entry.el, entry.desc) {
			return
		}
	}
}

// forView collects the entries belonging to view, in attach order.
func (r *Registry) forView(view *View) []registryEntry {
	if view == nil {
		return nil
	}

	var entries []registryEntry
	r.each(func(el *Element, d Descriptor) bool {
		if view.Contains(el) {
			entries = append(entries, registryEntry{el: el, desc: d})
		}
		return true
	})
	return entries
}
