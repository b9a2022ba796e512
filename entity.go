package hive

// Entity is a generational handle: Index names a slot, Generation
// disambiguates reuse of that slot over time. Two Entity values compare
// equal only if both fields match, so a stale handle into a recycled
// slot never aliases the entity that now occupies it.
//
// Grounded on original_source/src/entity.rs's Entity, widened from its
// u16/u16 pair to uint32/uint32 per spec.md §9's explicit allowance.
type Entity struct {
	Index      uint32
	Generation uint32
}

// Nil is the zero Entity. It is equal to the first handle a fresh
// EntityAllocator.Create issues (index 0, generation 0), so it is not a
// reserved value; Table uses it only to blank freed slots.
var Nil = Entity{}

// EntityAllocator issues and recycles Entity handles. Freed slots are
// reused in FIFO order before the backing arrays grow, and each reuse
// bumps that slot's generation so prior handles into it stop resolving.
//
// Grounded on original_source/src/entity.rs's EntityGenerator
// (dense generation array + free-index queue).
type EntityAllocator struct {
	generations []uint32
	alive       []bool
	free        []uint32
}

// NewEntityAllocator returns an empty allocator.
func NewEntityAllocator() *EntityAllocator {
	return &EntityAllocator{}
}

// Create issues a fresh Entity handle, reusing a freed slot when one is
// available.
func (a *EntityAllocator) Create() Entity {
	if n := len(a.free); n > 0 {
		idx := a.free[0]
		a.free = a.free[1:]
		a.alive[idx] = true
		return Entity{Index: idx, Generation: a.generations[idx]}
	}
	idx := uint32(len(a.generations))
	a.generations = append(a.generations, 0)
	a.alive = append(a.alive, true)
	return Entity{Index: idx, Generation: 0}
}

// IsAlive reports whether e still names a live entity: its slot must be
// occupied and its generation must match the slot's current one.
func (a *EntityAllocator) IsAlive(e Entity) bool {
	if int(e.Index) >= len(a.generations) {
		return false
	}
	return a.alive[e.Index] && a.generations[e.Index] == e.Generation
}

// Delete retires e's slot, bumping its generation so the handle cannot
// be reused, and queues the slot for reuse by a future Create. It
// reports whether e was alive immediately before the call.
func (a *EntityAllocator) Delete(e Entity) bool {
	if !a.IsAlive(e) {
		return false
	}
	a.alive[e.Index] = false
	a.generations[e.Index]++
	a.free = append(a.free, e.Index)
	return true
}

// Len returns the number of currently live entities.
func (a *EntityAllocator) Len() int {
	n := 0
	for _, alive := range a.alive {
		if alive {
			n++
		}
	}
	return n
}
