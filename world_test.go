package hive

import (
	"sort"
	"testing"
)

type worldTestU8 struct{ V uint8 }
type worldTestU16 struct{ V uint16 }
type worldTestU32 struct{ V uint32 }

func TestWorldCreateProducesDistinctAliveEntities(t *testing.T) {
	w := NewWorld()
	e1 := w.Create()
	e2 := w.Create()
	if e1 == e2 {
		t.Fatalf("two Create calls returned the same entity")
	}
	kinds, ok := w.EntityKinds(e1)
	if !ok || len(kinds) != 0 {
		t.Fatalf("freshly created entity has kinds %v, want none", kinds)
	}
}

func TestWorldDeleteRetiresEntity(t *testing.T) {
	w := NewWorld()
	e := w.Create()
	if !w.Delete(e) {
		t.Fatalf("Delete on a live entity returned false")
	}
	if _, ok := w.EntityKinds(e); ok {
		t.Fatalf("EntityKinds still resolves a deleted entity")
	}
	if w.Delete(e) {
		t.Fatalf("second Delete on an already-dead entity returned true")
	}
}

func TestWorldAddComponentThenGet(t *testing.T) {
	w := NewWorld()
	e := w.Create()
	if err := AddComponentT(w, e, worldTestU8{V: 9}); err != nil {
		t.Fatalf("AddComponentT returned error: %v", err)
	}
	got := GetComponent[worldTestU8](w, e)
	if got == nil || got.V != 9 {
		t.Fatalf("GetComponent = %v, want &{9}", got)
	}
}

func TestWorldAddDuplicateComponentErrors(t *testing.T) {
	w := NewWorld()
	e := w.Create()
	AddComponentT(w, e, worldTestU8{V: 1})
	err := AddComponentT(w, e, worldTestU8{V: 2})
	if _, ok := err.(DuplicateComponentError); !ok {
		t.Fatalf("AddComponentT on an existing kind returned %v (%T), want DuplicateComponentError", err, err)
	}
}

func TestWorldRemoveMissingComponentErrors(t *testing.T) {
	w := NewWorld()
	e := w.Create()
	err := RemoveComponentT[worldTestU8](w, e)
	if _, ok := err.(MissingComponentError); !ok {
		t.Fatalf("RemoveComponentT on an absent kind returned %v (%T), want MissingComponentError", err, err)
	}
}

func TestWorldAddComponentOnDeadEntityErrors(t *testing.T) {
	w := NewWorld()
	e := w.Create()
	w.Delete(e)
	err := AddComponentT(w, e, worldTestU8{V: 1})
	if _, ok := err.(NonExistingEntityError); !ok {
		t.Fatalf("AddComponentT on a dead entity returned %v (%T), want NonExistingEntityError", err, err)
	}
}

func TestWorldRemoveComponentMovesToSmallerArchetype(t *testing.T) {
	w := NewWorld()
	e := w.Create()
	AddComponentT(w, e, worldTestU8{V: 1})
	AddComponentT(w, e, worldTestU16{V: 2})

	if err := RemoveComponentT[worldTestU8](w, e); err != nil {
		t.Fatalf("RemoveComponentT returned error: %v", err)
	}
	if GetComponent[worldTestU8](w, e) != nil {
		t.Fatalf("removed component still resolves via GetComponent")
	}
	got := GetComponent[worldTestU16](w, e)
	if got == nil || got.V != 2 {
		t.Fatalf("surviving component lost after RemoveComponentT: %v", got)
	}
}

// TestThreeEntitiesSortedQuery exercises scenario 1 in simplified form:
// all three entities carry a u8-shaped component, the second also a
// u16-shaped one and the third also a u32-shaped one, so they sit in
// three archetypes, and a query over the shared u8 component returns
// every entity regardless of insertion order.
func TestThreeEntitiesSortedQuery(t *testing.T) {
	w := NewWorld()
	e1 := w.Create()
	e2 := w.Create()
	e3 := w.Create()
	AddComponentT(w, e1, worldTestU8{V: 1})
	AddComponentT(w, e2, worldTestU8{V: 2})
	AddComponentT(w, e3, worldTestU8{V: 3})
	AddComponentT(w, e2, worldTestU16{V: 20})
	AddComponentT(w, e3, worldTestU32{V: 300})

	q := NewQuery1[worldTestU8](w)
	var got []int
	for q.Next() {
		got = append(got, int(q.Get().V))
	}
	sort.Ints(got)
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("query over three archetypes returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("query over three archetypes returned %v, want %v", got, want)
		}
	}
}

// TestExclusiveMutationThenSharedReadback exercises scenario 2: a
// MutQuery mutates every matching row, and a subsequent Query observes
// every mutation.
func TestExclusiveMutationThenSharedReadback(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 5; i++ {
		e := w.Create()
		AddComponentT(w, e, worldTestU32{V: uint32(i)})
	}

	mq := NewMutQuery1[worldTestU32](w)
	for mq.Next() {
		v := mq.Get()
		v.V *= 10
	}

	q := NewQuery1[worldTestU32](w)
	var sum uint32
	for q.Next() {
		sum += q.Get().V
	}
	want := uint32((0 + 1 + 2 + 3 + 4) * 10)
	if sum != want {
		t.Fatalf("sum after mutate-then-read = %d, want %d", sum, want)
	}
}

// TestBulkAddRemoveLeavesNoResidue exercises scenario 3 at reduced scale:
// many entities gain then lose a component, and a query over that
// component afterward returns zero rows.
func TestBulkAddRemoveLeavesNoResidue(t *testing.T) {
	w := NewWorld()
	const n = 1000
	entities := make([]Entity, n)
	for i := range entities {
		e := w.Create()
		AddComponentT(w, e, worldTestU8{V: 1})
		entities[i] = e
	}
	for _, e := range entities {
		if err := RemoveComponentT[worldTestU8](w, e); err != nil {
			t.Fatalf("RemoveComponentT failed mid-bulk: %v", err)
		}
	}

	q := NewQuery1[worldTestU8](w)
	count := 0
	for q.Next() {
		count++
	}
	if count != 0 {
		t.Fatalf("query after bulk add-then-remove returned %d rows, want 0", count)
	}
}

// TestComponentDropOnRemove exercises scenario 4: removing a component
// that owns a destructor runs it exactly once.
func TestComponentDropOnRemove(t *testing.T) {
	w := NewWorld()
	e := w.Create()
	count := 0
	AddComponentT(w, e, typeinfoTestDropped{count: &count})
	if err := RemoveComponentT[typeinfoTestDropped](w, e); err != nil {
		t.Fatalf("RemoveComponentT returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("Drop invoked %d times on RemoveComponentT, want 1", count)
	}
}

func TestComponentDropOnEntityDelete(t *testing.T) {
	w := NewWorld()
	e := w.Create()
	count := 0
	AddComponentT(w, e, typeinfoTestDropped{count: &count})
	w.Delete(e)
	if count != 1 {
		t.Fatalf("Drop invoked %d times on entity Delete, want 1", count)
	}
}

func TestDeferredMutationAppliesAfterQueryCloses(t *testing.T) {
	w := NewWorld()
	e := w.Create()
	AddComponentT(w, e, worldTestU8{V: 1})

	q := NewQuery1[worldTestU8](w)
	for q.Next() {
		// Issue a structural mutation while a cursor is open on this
		// goroutine; it must not deadlock and must apply once the
		// query closes.
		AddComponentT(w, e, worldTestU16{V: 99})
	}

	got := GetComponent[worldTestU16](w, e)
	if got == nil || got.V != 99 {
		t.Fatalf("mutation deferred during an open query did not apply: %v", got)
	}
}
