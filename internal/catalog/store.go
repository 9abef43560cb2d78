package catalog

// Store holds the loaded catalog. It is built once and never mutated.
type Store struct {
	entries []Entry
	byID    map[string]int
}

// NewStore takes ownership of entries.
func NewStore(entries []Entry) *Store {
	byID := make(map[string]int, len(entries))
	for idx, e := range entries {
		if _, dup := byID[e.ID]; !dup {
			byID[e.ID] = idx
		}
	}
	return &Store{entries: entries, byID: byID}
}

// Len returns the number of entries; a nil store is empty.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns the catalog in load order. The returned slice is a copy so
// callers may sort it freely.
func (s *Store) Entries() []Entry {
	if s == nil || len(s.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// All exposes the backing slice for read-only iteration on hot paths.
func (s *Store) All() []Entry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Lookup resolves an entry by identity.
func (s *Store) Lookup(id string) (Entry, bool) {
	if s == nil || id == "" {
		return Entry{}, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[idx], true
}
