package store

import "sort"

// Set maps a source file name to the Store parsed from it.
type Set struct {
	stores map[string]*Store
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{stores: make(map[string]*Store)}
}

// Put stores st under name, replacing any previous entry.
func (s *Set) Put(name string, st *Store) {
	s.stores[name] = st
}

// Get returns the Store for name.
func (s *Set) Get(name string) (*Store, bool) {
	st, ok := s.stores[name]
	return st, ok
}

// Len returns the number of stores in the set.
func (s *Set) Len() int {
	return len(s.stores)
}

// Names returns the file names in lexicographic order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.stores))
	for n := range s.stores {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ChronologicalNames returns the file names ordered by the earliest date each store
// holds, using the Dates ordering. Stores without readings come last; equal earliest
// dates fall back to name order.
func (s *Set) ChronologicalNames() []string {
	names := s.Names()
	firsts := make(map[string]string, len(names))
	keys := make([]string, 0, len(names))
	for _, n := range names {
		if dates := s.stores[n].Dates(); len(dates) > 0 {
			firsts[n] = dates[0]
			keys = append(keys, dates[0])
		}
	}
	SortDates(keys)
	rank := make(map[string]int, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		rank[keys[i]] = i
	}

	sort.SliceStable(names, func(i, j int) bool {
		fi, iok := firsts[names[i]]
		fj, jok := firsts[names[j]]
		if iok != jok {
			return iok
		}
		return iok && rank[fi] < rank[fj]
	})
	return names
}

// Readings returns the total number of readings across all stores.
func (s *Set) Readings() int {
	n := 0
	for _, st := range s.stores {
		n += st.Len()
	}
	return n
}

// Select returns a Set holding only the requested names that are present,
// plus the requested names that were not found (in request order).
func (s *Set) Select(names []string) (*Set, []string) {
	sub := NewSet()
	var missing []string
	for _, n := range names {
		st, ok := s.stores[n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		sub.stores[n] = st
	}
	return sub, missing
}

// Merged combines every store, in Names order, into one Store.
func (s *Set) Merged() *Store {
	names := s.Names()
	stores := make([]*Store, 0, len(names))
	for _, n := range names {
		stores = append(stores, s.stores[n])
	}
	return Merge(stores...)
}
