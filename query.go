package hive

func mustNoDuplicates(kinds ...KindID) {
	seen := make(map[KindID]bool, len(kinds))
	for _, k := range kinds {
		if seen[k] {
			panic("hive: query tuple contains the same component kind twice")
		}
		seen[k] = true
	}
}

func sortedCopy(kinds []KindID) []KindID {
	out := append([]KindID(nil), kinds...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func matchingTables(w *World, sorted []KindID) []ArchetypeID {
	key := sortedKey(sorted)
	return w.queryCache.lookup(key, func() []ArchetypeID {
		return w.archetypes.QueryIDs(sorted)
	})
}

// cursor walks the rows of every table matched by a query, one table
// at a time, exposing a Next/Get pair rather than an iter.Seq: Go
// 1.23's range-over-func only accepts yield functions of arity 0, 1,
// or 2, which cannot express a Query5's 5-tuple, so every arity uses
// this uniform cursor shape instead — grounded on
// TheBitDrifter/warehouse's own Cursor (storageIndex/entityIndex/
// remaining fields, a Next() bool method) rather than on an iterator
// trait.
//
// A table's rows are not necessarily dense (freed slots are reused but
// not compacted away, per Table's free-slot queue), so Next walks
// every slot up to the table's SlotCount and skips the ones a freed
// row left behind, rather than treating row count as a row-index
// bound.
type cursor struct {
	w        *World
	tableIDs []ArchetypeID
	tableIdx int
	table    *Table
	row      int
	rowCount int
	closed   bool
}

func newCursor(w *World, sorted []KindID) *cursor {
	w.openQuery()
	return &cursor{w: w, tableIDs: matchingTables(w, sorted), tableIdx: -1, row: -1}
}

// Next advances the cursor to the next live row, returning false once
// every matched table has been exhausted. Exhaustion closes the
// cursor automatically; callers that abandon a cursor early (break out
// of a loop before Next returns false) must call Close themselves.
func (c *cursor) Next() bool {
	for {
		if c.table != nil {
			for c.row+1 < c.rowCount {
				c.row++
				if c.table.Occupied(c.row) {
					return true
				}
			}
		}
		c.tableIdx++
		if c.tableIdx >= len(c.tableIDs) {
			c.table = nil
			c.Close()
			return false
		}
		c.table = c.w.tables.Get(c.tableIDs[c.tableIdx])
		c.row = -1
		if c.table != nil {
			c.rowCount = c.table.SlotCount()
		} else {
			c.rowCount = 0
		}
	}
}

// Close releases this cursor's hold on w, allowing any structural
// mutation deferred while it was open to run. It is safe to call more
// than once.
func (c *cursor) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.w.closeQuery()
}

func (c *cursor) entity() Entity {
	return c.table.EntityAt(c.row)
}

// Query1 iterates every row across every archetype containing A,
// yielding shared references.
type Query1[A any] struct{ c *cursor }

// NewQuery1 constructs a Query1 over w.
func NewQuery1[A any](w *World) *Query1[A] {
	ia := typeInfoFor[A]()
	mustNoDuplicates(ia.ID)
	return &Query1[A]{c: newCursor(w, sortedCopy([]KindID{ia.ID}))}
}

// Next advances to the next matching row.
func (q *Query1[A]) Next() bool { return q.c.Next() }

// Get returns a pointer to the current row's A field.
func (q *Query1[A]) Get() *A {
	return Get[A](q.c.table.Column(typeInfoFor[A]().ID), q.c.row)
}

// Entity returns the current row's owning entity.
func (q *Query1[A]) Entity() Entity { return q.c.entity() }

// Close releases this query's hold on its World.
func (q *Query1[A]) Close() { q.c.Close() }

// MutQuery1 is Query1's exclusive-access counterpart.
type MutQuery1[A any] struct{ c *cursor }

// NewMutQuery1 constructs a MutQuery1 over w.
func NewMutQuery1[A any](w *World) *MutQuery1[A] {
	ia := typeInfoFor[A]()
	return &MutQuery1[A]{c: newCursor(w, sortedCopy([]KindID{ia.ID}))}
}

// Next advances to the next matching row.
func (q *MutQuery1[A]) Next() bool { return q.c.Next() }

// Get returns a write-oriented pointer to the current row's A field.
func (q *MutQuery1[A]) Get() *A {
	return GetMut[A](q.c.table.Column(typeInfoFor[A]().ID), q.c.row)
}

// Entity returns the current row's owning entity.
func (q *MutQuery1[A]) Entity() Entity { return q.c.entity() }

// Close releases this query's hold on its World.
func (q *MutQuery1[A]) Close() { q.c.Close() }

// Query2 iterates every row across every archetype containing both A
// and B, yielding shared references to each.
type Query2[A, B any] struct{ c *cursor }

// NewQuery2 constructs a Query2 over w. Panics if A and B resolve to
// the same kind.
func NewQuery2[A, B any](w *World) *Query2[A, B] {
	ia, ib := typeInfoFor[A](), typeInfoFor[B]()
	mustNoDuplicates(ia.ID, ib.ID)
	return &Query2[A, B]{c: newCursor(w, sortedCopy([]KindID{ia.ID, ib.ID}))}
}

func (q *Query2[A, B]) Next() bool { return q.c.Next() }

func (q *Query2[A, B]) Get() (*A, *B) {
	t := q.c.table
	return Get[A](t.Column(typeInfoFor[A]().ID), q.c.row),
		Get[B](t.Column(typeInfoFor[B]().ID), q.c.row)
}

func (q *Query2[A, B]) Entity() Entity { return q.c.entity() }

// Close releases this query's hold on its World.
func (q *Query2[A, B]) Close() { q.c.Close() }

// MutQuery2 is Query2's exclusive-access counterpart.
type MutQuery2[A, B any] struct{ c *cursor }

func NewMutQuery2[A, B any](w *World) *MutQuery2[A, B] {
	ia, ib := typeInfoFor[A](), typeInfoFor[B]()
	mustNoDuplicates(ia.ID, ib.ID)
	return &MutQuery2[A, B]{c: newCursor(w, sortedCopy([]KindID{ia.ID, ib.ID}))}
}

func (q *MutQuery2[A, B]) Next() bool { return q.c.Next() }

func (q *MutQuery2[A, B]) Get() (*A, *B) {
	t := q.c.table
	return GetMut[A](t.Column(typeInfoFor[A]().ID), q.c.row),
		GetMut[B](t.Column(typeInfoFor[B]().ID), q.c.row)
}

func (q *MutQuery2[A, B]) Entity() Entity { return q.c.entity() }

// Close releases this query's hold on its World.
func (q *MutQuery2[A, B]) Close() { q.c.Close() }

// Query3 iterates every row across every archetype containing A, B,
// and C, yielding shared references to each.
type Query3[A, B, C any] struct{ c *cursor }

func NewQuery3[A, B, C any](w *World) *Query3[A, B, C] {
	ia, ib, ic := typeInfoFor[A](), typeInfoFor[B](), typeInfoFor[C]()
	mustNoDuplicates(ia.ID, ib.ID, ic.ID)
	return &Query3[A, B, C]{c: newCursor(w, sortedCopy([]KindID{ia.ID, ib.ID, ic.ID}))}
}

func (q *Query3[A, B, C]) Next() bool { return q.c.Next() }

func (q *Query3[A, B, C]) Get() (*A, *B, *C) {
	t := q.c.table
	return Get[A](t.Column(typeInfoFor[A]().ID), q.c.row),
		Get[B](t.Column(typeInfoFor[B]().ID), q.c.row),
		Get[C](t.Column(typeInfoFor[C]().ID), q.c.row)
}

func (q *Query3[A, B, C]) Entity() Entity { return q.c.entity() }

// Close releases this query's hold on its World.
func (q *Query3[A, B, C]) Close() { q.c.Close() }

// MutQuery3 is Query3's exclusive-access counterpart.
type MutQuery3[A, B, C any] struct{ c *cursor }

func NewMutQuery3[A, B, C any](w *World) *MutQuery3[A, B, C] {
	ia, ib, ic := typeInfoFor[A](), typeInfoFor[B](), typeInfoFor[C]()
	mustNoDuplicates(ia.ID, ib.ID, ic.ID)
	return &MutQuery3[A, B, C]{c: newCursor(w, sortedCopy([]KindID{ia.ID, ib.ID, ic.ID}))}
}

func (q *MutQuery3[A, B, C]) Next() bool { return q.c.Next() }

func (q *MutQuery3[A, B, C]) Get() (*A, *B, *C) {
	t := q.c.table
	return GetMut[A](t.Column(typeInfoFor[A]().ID), q.c.row),
		GetMut[B](t.Column(typeInfoFor[B]().ID), q.c.row),
		GetMut[C](t.Column(typeInfoFor[C]().ID), q.c.row)
}

func (q *MutQuery3[A, B, C]) Entity() Entity { return q.c.entity() }

// Close releases this query's hold on its World.
func (q *MutQuery3[A, B, C]) Close() { q.c.Close() }

// Query4 iterates every row across every archetype containing A, B, C,
// and D, yielding shared references to each.
type Query4[A, B, C, D any] struct{ c *cursor }

func NewQuery4[A, B, C, D any](w *World) *Query4[A, B, C, D] {
	ia, ib, ic, id := typeInfoFor[A](), typeInfoFor[B](), typeInfoFor[C](), typeInfoFor[D]()
	mustNoDuplicates(ia.ID, ib.ID, ic.ID, id.ID)
	return &Query4[A, B, C, D]{c: newCursor(w, sortedCopy([]KindID{ia.ID, ib.ID, ic.ID, id.ID}))}
}

func (q *Query4[A, B, C, D]) Next() bool { return q.c.Next() }

func (q *Query4[A, B, C, D]) Get() (*A, *B, *C, *D) {
	t := q.c.table
	return Get[A](t.Column(typeInfoFor[A]().ID), q.c.row),
		Get[B](t.Column(typeInfoFor[B]().ID), q.c.row),
		Get[C](t.Column(typeInfoFor[C]().ID), q.c.row),
		Get[D](t.Column(typeInfoFor[D]().ID), q.c.row)
}

func (q *Query4[A, B, C, D]) Entity() Entity { return q.c.entity() }

// Close releases this query's hold on its World.
func (q *Query4[A, B, C, D]) Close() { q.c.Close() }

// MutQuery4 is Query4's exclusive-access counterpart.
type MutQuery4[A, B, C, D any] struct{ c *cursor }

func NewMutQuery4[A, B, C, D any](w *World) *MutQuery4[A, B, C, D] {
	ia, ib, ic, id := typeInfoFor[A](), typeInfoFor[B](), typeInfoFor[C](), typeInfoFor[D]()
	mustNoDuplicates(ia.ID, ib.ID, ic.ID, id.ID)
	return &MutQuery4[A, B, C, D]{c: newCursor(w, sortedCopy([]KindID{ia.ID, ib.ID, ic.ID, id.ID}))}
}

func (q *MutQuery4[A, B, C, D]) Next() bool { return q.c.Next() }

func (q *MutQuery4[A, B, C, D]) Get() (*A, *B, *C, *D) {
	t := q.c.table
	return GetMut[A](t.Column(typeInfoFor[A]().ID), q.c.row),
		GetMut[B](t.Column(typeInfoFor[B]().ID), q.c.row),
		GetMut[C](t.Column(typeInfoFor[C]().ID), q.c.row),
		GetMut[D](t.Column(typeInfoFor[D]().ID), q.c.row)
}

func (q *MutQuery4[A, B, C, D]) Entity() Entity { return q.c.entity() }

// Close releases this query's hold on its World.
func (q *MutQuery4[A, B, C, D]) Close() { q.c.Close() }

// Query5 iterates every row across every archetype containing A, B, C,
// D, and E, yielding shared references to each.
type Query5[A, B, C, D, E any] struct{ c *cursor }

func NewQuery5[A, B, C, D, E any](w *World) *Query5[A, B, C, D, E] {
	ia, ib, ic, id, ie := typeInfoFor[A](), typeInfoFor[B](), typeInfoFor[C](), typeInfoFor[D](), typeInfoFor[E]()
	mustNoDuplicates(ia.ID, ib.ID, ic.ID, id.ID, ie.ID)
	return &Query5[A, B, C, D, E]{c: newCursor(w, sortedCopy([]KindID{ia.ID, ib.ID, ic.ID, id.ID, ie.ID}))}
}

func (q *Query5[A, B, C, D, E]) Next() bool { return q.c.Next() }

func (q *Query5[A, B, C, D, E]) Get() (*A, *B, *C, *D, *E) {
	t := q.c.table
	return Get[A](t.Column(typeInfoFor[A]().ID), q.c.row),
		Get[B](t.Column(typeInfoFor[B]().ID), q.c.row),
		Get[C](t.Column(typeInfoFor[C]().ID), q.c.row),
		Get[D](t.Column(typeInfoFor[D]().ID), q.c.row),
		Get[E](t.Column(typeInfoFor[E]().ID), q.c.row)
}

func (q *Query5[A, B, C, D, E]) Entity() Entity { return q.c.entity() }

// Close releases this query's hold on its World.
func (q *Query5[A, B, C, D, E]) Close() { q.c.Close() }

// MutQuery5 is Query5's exclusive-access counterpart.
type MutQuery5[A, B, C, D, E any] struct{ c *cursor }

func NewMutQuery5[A, B, C, D, E any](w *World) *MutQuery5[A, B, C, D, E] {
	ia, ib, ic, id, ie := typeInfoFor[A](), typeInfoFor[B](), typeInfoFor[C](), typeInfoFor[D](), typeInfoFor[E]()
	mustNoDuplicates(ia.ID, ib.ID, ic.ID, id.ID, ie.ID)
	return &MutQuery5[A, B, C, D, E]{c: newCursor(w, sortedCopy([]KindID{ia.ID, ib.ID, ic.ID, id.ID, ie.ID}))}
}

func (q *MutQuery5[A, B, C, D, E]) Next() bool { return q.c.Next() }

func (q *MutQuery5[A, B, C, D, E]) Get() (*A, *B, *C, *D, *E) {
	t := q.c.table
	return GetMut[A](t.Column(typeInfoFor[A]().ID), q.c.row),
		GetMut[B](t.Column(typeInfoFor[B]().ID), q.c.row),
		GetMut[C](t.Column(typeInfoFor[C]().ID), q.c.row),
		GetMut[D](t.Column(typeInfoFor[D]().ID), q.c.row),
		GetMut[E](t.Column(typeInfoFor[E]().ID), q.c.row)
}

func (q *MutQuery5[A, B, C, D, E]) Entity() Entity { return q.c.entity() }

// Close releases this query's hold on its World.
func (q *MutQuery5[A, B, C, D, E]) Close() { q.c.Close() }
