package hive

import "testing"

type tableTestPos struct{ X, Y float64 }
type tableTestVel struct{ X, Y float64 }

func TestTableAddRemoveEntity(t *testing.T) {
	kp := typeInfoFor[tableTestPos]().ID
	tbl := NewTable(0, idsOf(kp))
	e := Entity{Index: 1, Generation: 0}
	row := tbl.AddEntity(e)
	if row != 0 {
		t.Fatalf("AddEntity returned row %d, want 0", row)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
	if !tbl.Contains(e) {
		t.Fatalf("Contains(e) = false right after AddEntity")
	}
	if ok := tbl.RemoveEntity(e); !ok {
		t.Fatalf("RemoveEntity reported false for a resident entity")
	}
	if tbl.Len() != 0 {
		t.Fatalf("Len() = %d after RemoveEntity, want 0", tbl.Len())
	}
}

func TestTableRemoveEntityQueuesSlotInsteadOfSwapBack(t *testing.T) {
	kp := typeInfoFor[tableTestPos]().ID
	tbl := NewTable(0, idsOf(kp))
	e0 := Entity{Index: 0}
	e1 := Entity{Index: 1}
	e2 := Entity{Index: 2}
	tbl.AddEntity(e0)
	tbl.AddEntity(e1)
	tbl.AddEntity(e2)
	Overwrite(tbl.Column(kp), 0, tableTestPos{X: 0})
	Overwrite(tbl.Column(kp), 1, tableTestPos{X: 1})
	Overwrite(tbl.Column(kp), 2, tableTestPos{X: 2})

	tbl.RemoveEntity(e0)

	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d after removing one of three rows, want 2", tbl.Len())
	}
	row, ok := tbl.RowOf(e2)
	if !ok || row != 2 {
		t.Fatalf("RowOf(e2) = %d, %v, want 2, true (row order must not change on removal)", row, ok)
	}
	got := Get[tableTestPos](tbl.Column(kp), row)
	if got.X != 2 {
		t.Fatalf("e2's column data moved despite no swap-back: got X=%v, want 2", got.X)
	}
}

func TestTableAddEntityReusesFreedSlotsFIFO(t *testing.T) {
	kp := typeInfoFor[tableTestPos]().ID
	tbl := NewTable(0, idsOf(kp))
	e0 := Entity{Index: 0}
	e1 := Entity{Index: 1}
	e2 := Entity{Index: 2}
	tbl.AddEntity(e0)
	tbl.AddEntity(e1)

	tbl.RemoveEntity(e0)
	tbl.RemoveEntity(e1)

	e3 := Entity{Index: 3}
	row3 := tbl.AddEntity(e3)
	if row3 != 0 {
		t.Fatalf("first reuse after freeing rows 0 then 1 returned row %d, want 0 (FIFO)", row3)
	}
	row2 := tbl.AddEntity(e2)
	if row2 != 1 {
		t.Fatalf("second reuse returned row %d, want 1 (FIFO)", row2)
	}
	if tbl.SlotCount() != 2 {
		t.Fatalf("SlotCount() = %d after reusing both freed slots, want 2 (no new slots grown)", tbl.SlotCount())
	}
}

func TestTableColumnLengthEqualsLiveRowsPlusFreeSlots(t *testing.T) {
	kp := typeInfoFor[tableTestPos]().ID
	tbl := NewTable(0, idsOf(kp))
	for i := 0; i < 4; i++ {
		tbl.AddEntity(Entity{Index: uint32(i)})
	}
	tbl.RemoveEntity(Entity{Index: 1})
	tbl.RemoveEntity(Entity{Index: 3})

	wantLen := tbl.Len() + len(tbl.free)
	if got := tbl.Column(kp).Len(); got != wantLen {
		t.Fatalf("column length = %d, want liveRows(%d) + freeSlots(%d) = %d", got, tbl.Len(), len(tbl.free), wantLen)
	}
}

func TestTableTransferWithInsertionCopiesSharedColumns(t *testing.T) {
	kp := typeInfoFor[tableTestPos]().ID
	kv := typeInfoFor[tableTestVel]().ID
	src := NewTable(0, idsOf(kp))
	dest := NewTable(1, idsOf(kp, kv))

	e := Entity{Index: 7}
	src.AddEntity(e)
	Overwrite(src.Column(kp), 0, tableTestPos{X: 3, Y: 4})

	newRow, ok := src.TransferWithInsertion(e, dest)
	if !ok {
		t.Fatalf("TransferWithInsertion reported false for a resident entity")
	}
	if src.Contains(e) {
		t.Fatalf("entity still resident in source table after transfer")
	}
	if !dest.Contains(e) {
		t.Fatalf("entity not resident in destination table after transfer")
	}
	got := Get[tableTestPos](dest.Column(kp), newRow)
	if *got != (tableTestPos{X: 3, Y: 4}) {
		t.Fatalf("shared column not copied across transfer: got %+v, want {3 4}", *got)
	}
}

func TestTableTransferWithDeletionDropsRemovedColumn(t *testing.T) {
	count := 0
	kp := typeInfoFor[tableTestPos]().ID
	kd := typeInfoFor[typeinfoTestDropped]().ID
	src := NewTable(0, idsOf(kp, kd))
	dest := NewTable(1, idsOf(kp))

	e := Entity{Index: 3}
	src.AddEntity(e)
	Overwrite(src.Column(kp), 0, tableTestPos{X: 1, Y: 2})
	Overwrite(src.Column(kd), 0, typeinfoTestDropped{count: &count})

	newRow, ok := src.TransferWithDeletion(e, dest)
	if !ok {
		t.Fatalf("TransferWithDeletion reported false for a resident entity")
	}
	if count != 1 {
		t.Fatalf("destructor invoked %d times for the removed column's value, want 1", count)
	}
	got := Get[tableTestPos](dest.Column(kp), newRow)
	if *got != (tableTestPos{X: 1, Y: 2}) {
		t.Fatalf("retained column not copied across deletion transfer: got %+v, want {1 2}", *got)
	}
}

func TestTableRowsIteratesEveryLiveRow(t *testing.T) {
	kp := typeInfoFor[tableTestPos]().ID
	tbl := NewTable(0, idsOf(kp))
	e0 := Entity{Index: 0}
	e1 := Entity{Index: 1}
	tbl.AddEntity(e0)
	tbl.AddEntity(e1)

	seen := map[Entity]int{}
	for e, row := range tbl.Rows() {
		seen[e] = row
	}
	if len(seen) != 2 {
		t.Fatalf("Rows() visited %d entities, want 2", len(seen))
	}
}

func TestTableStorageTableForCreatesOnce(t *testing.T) {
	ts := NewTableStorage()
	info := ArchetypeInfo{ID: 5, Kinds: nil}
	t1 := ts.TableFor(info)
	t2 := ts.TableFor(info)
	if t1 != t2 {
		t.Fatalf("TableFor created a second table for the same archetype id")
	}
	if ts.Get(5) != t1 {
		t.Fatalf("Get(5) did not return the table created by TableFor")
	}
}

func TestTableStorageGetMissingReturnsNil(t *testing.T) {
	ts := NewTableStorage()
	if ts.Get(99) != nil {
		t.Fatalf("Get on an unallocated archetype id returned non-nil")
	}
}
