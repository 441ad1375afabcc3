package cart

import "sync"

// Store holds the cart for one storefront session. Insertion order is
// preserved and item ids are unique: adding an id that is already present
// merges quantities instead of appending a second line.
//
// The cart is in-memory only. It is created empty, mutated by explicit
// operations and cleared when checkout succeeds; it does not survive a
// restart.
type Store struct {
	mu    sync.Mutex
	items []Item
	subs  []func(Snapshot)
}

func NewStore() *Store {
	return &Store{}
}

// Add puts qty units of the item into the cart. If the id already exists
// the quantity is incremented; any qty below 1 counts as 1.
func (s *Store) Add(it Item, qty int) {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ID == it.ID {
			s.items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		it.Quantity = qty
		s.items = append(s.items, it)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// Remove deletes the line with the given id. Removing an absent id is a
// no-op, not an error.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// SetQuantity overwrites the quantity of the line with the given id.
// Quantities below 1 clamp to 1; deletion requires an explicit Remove.
// Unknown ids are ignored.
func (s *Store) SetQuantity(id string, qty int) {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = qty
			changed = true
			break
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.notify(snap)
	}
}

// Clear empties the cart. Used after a successful checkout.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.notify(nil)
}

// Snapshot returns a defensive copy of the cart lines in insertion order.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called with a fresh snapshot after every
// mutation. Subscribers run outside the store lock.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) snapshotLocked() Snapshot {
	if len(s.items) == 0 {
		return nil
	}
	out := make(Snapshot, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) notify(snap Snapshot) {
	s.mu.Lock()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
