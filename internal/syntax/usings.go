package syntax

// UsingSet de-duplicates imports while keeping their insertion order.
type UsingSet struct {
	seen map[string]struct{}
	list []*Using
}

// NewUsingSet creates an empty set.
func NewUsingSet() *UsingSet {
	return &UsingSet{seen: make(map[string]struct{})}
}

// Add appends imports not yet present. It reports whether anything was added.
func (s *UsingSet) Add(usings ...*Using) bool {
	added := false
	for _, u := range usings {
		if u == nil || u.Namespace == "" {
			continue
		}
		key := u.Alias + "=" + u.Namespace
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.list = append(s.list, u)
		added = true
	}
	return added
}

// List returns the imports in insertion order.
func (s *UsingSet) List() []*Using {
	return s.list
}

// Len is the number of distinct imports.
func (s *UsingSet) Len() int {
	return len(s.list)
}

// Plain returns the imports without an alias.
func (s *UsingSet) Plain() []*Using {
	var out []*Using
	for _, u := range s.list {
		if u.Alias == "" {
			out = append(out, u)
		}
	}
	return out
}
