// Package registry holds kind-keyed, priority-ordered strategy tables shared
// by the syntax and artifact engines.
package registry

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/origadmin/scaffold/internal/errors"
)

// Entry is what a registry stores.
type Entry[K comparable] interface {
	Name() string
	Kind() K
	Priority() int
}

// Registry keeps the entries of each kind sorted by descending priority.
// Registration is validated eagerly so selection never has to break ties.
type Registry[K comparable, E Entry[K]] struct {
	byKind map[K][]E
	names  map[string]K
}

// New creates an empty registry.
func New[K comparable, E Entry[K]]() *Registry[K, E] {
	return &Registry[K, E]{
		byKind: make(map[K][]E),
		names:  make(map[string]K),
	}
}

// Register adds e. It fails with ErrDuplicateStrategy when the name is taken
// and with ErrAmbiguousStrategy when another entry of the same kind already
// has the same priority.
func (r *Registry[K, E]) Register(e E) error {
	name := e.Name()
	if _, ok := r.names[name]; ok {
		return errors.Markf(errors.ErrDuplicateStrategy, "strategy %q is already registered", name)
	}
	kind := e.Kind()
	for _, other := range r.byKind[kind] {
		if other.Priority() == e.Priority() {
			return errors.WithHint(
				errors.Markf(errors.ErrAmbiguousStrategy,
					"strategy %q conflicts with %q for type %v at priority %d",
					name, other.Name(), kind, e.Priority()),
				"give one of the strategies a different priority or unregister the other one first")
		}
	}

	list := append(r.byKind[kind], e)
	slices.SortStableFunc(list, func(a, b E) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})
	r.byKind[kind] = list
	r.names[name] = kind
	return nil
}

// MustRegister is Register for built-in tables that are known to be valid.
func (r *Registry[K, E]) MustRegister(entries ...E) {
	for _, e := range entries {
		if err := r.Register(e); err != nil {
			panic(fmt.Sprintf("registry: %v", err))
		}
	}
}

// Unregister removes the entry called name and reports whether it existed.
func (r *Registry[K, E]) Unregister(name string) bool {
	kind, ok := r.names[name]
	if !ok {
		return false
	}
	delete(r.names, name)
	r.byKind[kind] = slices.DeleteFunc(r.byKind[kind], func(e E) bool {
		return e.Name() == name
	})
	return true
}

// Candidates returns the entries for kind, highest priority first. The
// returned slice must not be modified.
func (r *Registry[K, E]) Candidates(kind K) []E {
	return r.byKind[kind]
}

// Len is the total number of registered entries.
func (r *Registry[K, E]) Len() int {
	return len(r.names)
}
