package therapist

// Store exposes therapist retrieval for the dev server.
type Store interface {
	List() []Therapist
	FindByID(id string) (Therapist, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Therapist
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied entries.
func NewMemoryStore(items []Therapist) *MemoryStore {
	return &MemoryStore{items: append([]Therapist(nil), items...)}
}

// List returns the directory in seed order.
func (s *MemoryStore) List() []Therapist {
	return append([]Therapist(nil), s.items...)
}

// FindByID looks up a therapist by identifier.
func (s *MemoryStore) FindByID(id string) (Therapist, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Therapist{}, false
}
