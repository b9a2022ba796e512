package hive

// SparseIndex is a dense vector with a freelist, giving O(1)
// handle-based insert/get/remove without shifting surviving elements.
// Removed slots are tracked in free and reused before the backing
// slice grows, in first-freed-first-reused order.
//
// Grounded on spec.md's description of the sparse index (§4.C); the
// closest in-pack analogue is the teacher's own dense entity vector
// plus recycle queue in entity.go/storage.go, generalized here to hold
// any value type rather than only entities.
type SparseIndex[T any] struct {
	items    []T
	occupied []bool
	free     []uint32
}

// NewSparseIndex returns an empty index.
func NewSparseIndex[T any]() *SparseIndex[T] {
	return &SparseIndex[T]{}
}

// Insert stores value in the next available slot (reused before grown)
// and returns that slot's index.
func (s *SparseIndex[T]) Insert(value T) uint32 {
	if n := len(s.free); n > 0 {
		idx := s.free[0]
		s.free = s.free[1:]
		s.items[idx] = value
		s.occupied[idx] = true
		return idx
	}
	idx := uint32(len(s.items))
	s.items = append(s.items, value)
	s.occupied = append(s.occupied, true)
	return idx
}

// Get returns a pointer to the value at idx, or nil if idx is out of
// range or currently unoccupied.
func (s *SparseIndex[T]) Get(idx uint32) *T {
	if int(idx) >= len(s.items) || !s.occupied[idx] {
		return nil
	}
	return &s.items[idx]
}

// GetMut is an alias for Get, kept distinct for call-site symmetry with
// the column accessors.
func (s *SparseIndex[T]) GetMut(idx uint32) *T {
	return s.Get(idx)
}

// GetTwoMut returns pointers to two distinct slots for simultaneous
// mutation. It refuses to hand back two pointers into the same slot:
// Go's aliasing rules make two live *T into one slice element unsound
// to use as "independent" mutable references, so a==b is reported via
// ok=false rather than silently aliasing. Table's own cross-table
// transfers don't need this: they hold two distinct *Table values
// obtained independently from TableStorage, so the same-slice aliasing
// case GetTwoMut guards against doesn't arise there. It exists as the
// spec-surface primitive for any future same-SparseIndex dual-mutation
// need (spec.md §4.C), exercised directly by its own tests.
func (s *SparseIndex[T]) GetTwoMut(a, b uint32) (pa, pb *T, ok bool) {
	if a == b {
		return nil, nil, false
	}
	pa = s.Get(a)
	pb = s.Get(b)
	if pa == nil || pb == nil {
		return nil, nil, false
	}
	return pa, pb, true
}

// Remove evicts the value at idx, returning it and whether it was
// present. The slot is pushed onto the freelist for reuse.
func (s *SparseIndex[T]) Remove(idx uint32) (T, bool) {
	var zero T
	if int(idx) >= len(s.items) || !s.occupied[idx] {
		return zero, false
	}
	value := s.items[idx]
	s.items[idx] = zero
	s.occupied[idx] = false
	s.free = append(s.free, idx)
	return value, true
}

// Contains reports whether idx currently holds a value.
func (s *SparseIndex[T]) Contains(idx uint32) bool {
	return int(idx) < len(s.items) && s.occupied[idx]
}

// Cap returns the number of slots ever allocated, occupied or not.
func (s *SparseIndex[T]) Cap() int {
	return len(s.items)
}

// Each calls fn for every occupied slot, in index order.
func (s *SparseIndex[T]) Each(fn func(idx uint32, value *T)) {
	for i := range s.items {
		if s.occupied[i] {
			fn(uint32(i), &s.items[i])
		}
	}
}
