package hive

import "iter"

// Table is the columnar storage backing one archetype: one Column per
// component kind in the archetype, plus a row directory mapping each
// resident Entity to its slot. A removed row's slot is queued for
// reuse rather than compacted away, so row order is stable across
// removals and a column's logical length never shrinks below the
// number of slots it has ever handed out.
//
// Grounded on spec.md §3/§4.F's free-slot-queue description
// (add_entity pops the queue or grows every column by one;
// remove_entity pushes the freed slot rather than dropping it) and
// original_source/src/table.rs's Table{columns: HashMap<TypeId,
// BlobVec>} for the column map shape.
type Table struct {
	ArchID     ArchetypeID
	columns    map[KindID]*Column
	rowOf      map[Entity]int
	slotEntity []Entity
	occupied   []bool
	free       []int
	liveCount  int
}

// NewTable allocates a table for the given archetype, with one empty
// Column per kind.
func NewTable(archID ArchetypeID, kinds []KindID) *Table {
	t := &Table{
		ArchID:  archID,
		columns: make(map[KindID]*Column, len(kinds)),
		rowOf:   make(map[Entity]int),
	}
	for _, k := range kinds {
		t.columns[k] = NewColumn(typeInfoByID(k))
	}
	return t
}

// Len returns the number of live rows.
func (t *Table) Len() int { return t.liveCount }

// SlotCount returns the total number of slots t has ever allocated,
// live or freed. Every column's Len() equals this value: columns never
// shrink, and a freed slot keeps its bytes until a later AddEntity
// reuses it and the caller overwrites it.
func (t *Table) SlotCount() int { return len(t.slotEntity) }

// Occupied reports whether row currently holds a live entity.
func (t *Table) Occupied(row int) bool { return t.occupied[row] }

// EntityAt returns the entity occupying row. The caller guarantees row
// is occupied.
func (t *Table) EntityAt(row int) Entity { return t.slotEntity[row] }

// Contains reports whether e currently occupies a row in t.
func (t *Table) Contains(e Entity) bool {
	_, ok := t.rowOf[e]
	return ok
}

// RowOf returns e's slot index and whether e is resident in t.
func (t *Table) RowOf(e Entity) (int, bool) {
	row, ok := t.rowOf[e]
	return row, ok
}

// Column returns the column for kind, or nil if this table's archetype
// doesn't include it.
func (t *Table) Column(kind KindID) *Column {
	return t.columns[kind]
}

// AddEntity reserves a row for e, reusing the oldest freed slot if one
// is queued (FIFO, per spec.md §9) or else growing every column by one
// zeroed slot. The caller is expected to overwrite each column
// immediately afterward.
func (t *Table) AddEntity(e Entity) int {
	var row int
	if n := len(t.free); n > 0 {
		row = t.free[0]
		t.free = t.free[1:]
		t.slotEntity[row] = e
		t.occupied[row] = true
	} else {
		row = len(t.slotEntity)
		t.slotEntity = append(t.slotEntity, e)
		t.occupied = append(t.occupied, true)
		for _, col := range t.columns {
			col.PushEmpty()
		}
	}
	t.rowOf[e] = row
	t.liveCount++
	return row
}

// freeSlot reclaims row for e, queuing it for reuse by a future
// AddEntity. Callers must have already dropped or moved out every
// column's value at row; freeSlot itself never touches column storage.
func (t *Table) freeSlot(e Entity, row int) {
	t.occupied[row] = false
	t.slotEntity[row] = Nil
	delete(t.rowOf, e)
	t.free = append(t.free, row)
	t.liveCount--
}

// RemoveEntity drops e's row, invoking each column's destructor on the
// abandoned slot and queuing the slot for reuse. It reports whether e
// was present.
func (t *Table) RemoveEntity(e Entity) bool {
	row, ok := t.rowOf[e]
	if !ok {
		return false
	}
	for _, col := range t.columns {
		col.DropAt(row)
	}
	t.freeSlot(e, row)
	return true
}

// InsertComponentBytes overwrites row's slot in kind's column with raw
// bytes, used when transferring a row between tables without knowing
// the component's static Go type at the call site.
func (t *Table) InsertComponentBytes(kind KindID, row int, raw []byte) {
	t.columns[kind].OverwriteBytes(row, raw)
}

// TransferWithInsertion moves e's row from t (the origin table) into
// dest (an archetype with exactly one more kind than t), copying every
// shared column byte-for-byte and leaving the new kind's column slot as
// AddEntity left it (zeroed for a newly grown slot, the previous
// occupant's bytes for a reused one) for the caller to overwrite. It
// returns e's new row index in dest.
//
// Grounded on original_source/src/world.rs's
// transfer_line_with_insertion call shape; the byte-level column copy
// mirrors kiwi's BlobVec swap_remove + push_from_slice pairing used for
// cross-table moves without re-deriving each component's Go type.
func (t *Table) TransferWithInsertion(e Entity, dest *Table) (int, bool) {
	row, ok := t.rowOf[e]
	if !ok {
		return 0, false
	}
	newRow := dest.AddEntity(e)
	for kind, col := range t.columns {
		if destCol := dest.columns[kind]; destCol != nil {
			destCol.OverwriteBytes(newRow, col.ByteSlice(row))
		}
	}
	t.freeSlot(e, row)
	return newRow, true
}

// TransferWithDeletion moves e's row from t into dest (an archetype
// with exactly one fewer kind than t), dropping the removed kind's
// value and copying every remaining column byte-for-byte. It returns
// e's new row index in dest.
func (t *Table) TransferWithDeletion(e Entity, dest *Table) (int, bool) {
	row, ok := t.rowOf[e]
	if !ok {
		return 0, false
	}
	newRow := dest.AddEntity(e)
	for kind, col := range t.columns {
		if destCol := dest.columns[kind]; destCol != nil {
			destCol.OverwriteBytes(newRow, col.ByteSlice(row))
		} else {
			col.DropAt(row)
		}
	}
	t.freeSlot(e, row)
	return newRow, true
}

// Rows iterates every live (Entity, row index) pair in t, skipping
// freed slots. Structural mutation of t during iteration invalidates
// the sequence, matching the same restriction TheBitDrifter/warehouse
// places on its own Cursor.
func (t *Table) Rows() iter.Seq2[Entity, int] {
	return func(yield func(Entity, int) bool) {
		for row, occ := range t.occupied {
			if !occ {
				continue
			}
			if !yield(t.slotEntity[row], row) {
				return
			}
		}
	}
}

// TableStorage owns one Table per archetype that has ever held an
// entity, indexed by ArchetypeID.
//
// Grounded on original_source/src/table.rs's TableStorage{tables:
// SparseSet<Table>}.
type TableStorage struct {
	byArch map[ArchetypeID]*Table
}

// NewTableStorage returns an empty table storage.
func NewTableStorage() *TableStorage {
	return &TableStorage{byArch: make(map[ArchetypeID]*Table)}
}

// TableFor returns the table for archID, creating it from info if it
// doesn't exist yet.
func (s *TableStorage) TableFor(info ArchetypeInfo) *Table {
	if t, ok := s.byArch[info.ID]; ok {
		return t
	}
	t := NewTable(info.ID, info.Kinds)
	s.byArch[info.ID] = t
	return t
}

// Get returns the table already allocated for archID, or nil.
func (s *TableStorage) Get(archID ArchetypeID) *Table {
	return s.byArch[archID]
}
