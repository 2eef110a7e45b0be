package drag

// orderedSet keeps insertion order with keyed removal
type orderedSet struct {
	items []string
	index map[string]int
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]int)}
}

// Add returns false when id is already present
func (s *orderedSet) Add(id string) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.items)
	s.items = append(s.items, id)
	return true
}

// Remove returns false when id was not present
func (s *orderedSet) Remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	delete(s.index, id)
	s.items = append(s.items[:i], s.items[i+1:]...)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

func (s *orderedSet) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *orderedSet) Len() int {
	return len(s.items)
}

// Values returns a copy in insertion order
func (s *orderedSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *orderedSet) Clear() {
	s.items = nil
	s.index = make(map[string]int)
}
