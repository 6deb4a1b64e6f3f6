package nodes

// Set is an insertion-ordered set of node strings. The zero value is ready to use.
type Set struct {
	seen  map[string]struct{}
	items []string
}

// NewSet creates a set seeded with items.
func NewSet(items ...string) *Set {
	s := &Set{}
	s.Add(items...)

	return s
}

// Add appends every item not already present and returns how many were new.
func (s *Set) Add(items ...string) int {
	if s.seen == nil {
		s.seen = make(map[string]struct{}, len(items))
	}

	added := 0

	for _, it := range items {
		if _, ok := s.seen[it]; ok {
			continue
		}

		s.seen[it] = struct{}{}
		s.items = append(s.items, it)
		added++
	}

	return added
}

// Contains reports whether item was added before.
func (s *Set) Contains(item string) bool {
	_, ok := s.seen[item]

	return ok
}

// Len returns the number of distinct items.
func (s *Set) Len() int {
	return len(s.items)
}

// Items returns a copy of the items in first-seen order.
func (s *Set) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)

	return out
}

// Dedupe removes exact duplicates from items, keeping first occurrences.
func Dedupe(items []string) []string {
	return NewSet(items...).Items()
}
