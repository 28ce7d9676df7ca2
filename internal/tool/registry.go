package tool

// Registry is the single source of truth for tool ids. It is populated once
// at startup and never mutated afterwards, so no locking is needed.
type Registry struct {
	byID    map[string]Descriptor
	aliases map[string]string
	order   []string
}

// NewRegistry builds a registry from descriptors (insertion order preserved)
// and an alias table mapping historical slugs to canonical ids.
func NewRegistry(descriptors []Descriptor, aliases map[string]string) *Registry {
	r := &Registry{
		byID:    make(map[string]Descriptor, len(descriptors)),
		aliases: aliases,
		order:   make([]string, 0, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, dup := r.byID[d.ID]; dup {
			continue
		}
		r.byID[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r
}

// Lookup resolves a tool id to its descriptor. Ids are case-sensitive exact
// matches; the alias table is consulted before the primary lookup. The
// boolean result is the only not-found signal — Lookup never panics.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	if canonical, ok := r.aliases[id]; ok {
		id = canonical
	}
	d, ok := r.byID[id]
	return d, ok
}

// All returns every descriptor in insertion order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len reports how many tools are registered.
func (r *Registry) Len() int { return len(r.order) }
