package hive

import "sync"

// World coordinates every other module: it owns the entity allocator,
// the archetype set, table storage, and resources, and exposes the
// operations the spec calls "the World" (§4.G) — entity lifecycle,
// component add/remove/get, resource access, and query construction.
//
// Grounded on original_source/src/world.rs's World{entity_generator,
// archetypes, storage, resources, entity_to_archetype,
// archetype_to_table} for the field layout and the add_component/
// remove_component control flow (archetype lookup, compute new
// archetype, look up or create its table, transfer the row).
type World struct {
	mu sync.RWMutex

	entities         *EntityAllocator
	archetypes       *Archetypes
	tables           *TableStorage
	resources        *ResourceStore
	entityArchetype  map[Entity]ArchetypeID
	queryCache       *queryCache

	// openQueries counts live cursors reading from this World on the
	// calling goroutine. Structural mutation (AddComponent,
	// RemoveComponent, Delete) while openQueries > 0 cannot safely take
	// mu's write lock (the same goroutine already effectively holds a
	// read view via its open cursor, and a nested Lock would deadlock
	// against itself), so it is deferred into deferred instead and
	// drained once the last cursor closes.
	//
	// Grounded on TheBitDrifter/warehouse's storage.go Locked/AddLock/
	// RemoveLock plus operation_queue.go's EntityOperationsQueue,
	// adapted from "deferred while storage holds a lock bit" to
	// "deferred while a cursor is open".
	openQueries int
	deferred    []func(w *World)
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{
		entities:        NewEntityAllocator(),
		archetypes:      NewArchetypes(),
		tables:          NewTableStorage(),
		resources:       NewResourceStore(),
		entityArchetype: make(map[Entity]ArchetypeID),
		queryCache:      newQueryCache(),
	}
}

// Create allocates a fresh entity with the empty component set.
func (w *World) Create() Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	e := w.entities.Create()
	emptyArch := w.archetypes.GetOrCreate(nil)
	w.entityArchetype[e] = emptyArch.ID
	hadTable := w.tables.Get(emptyArch.ID) != nil
	w.tables.TableFor(emptyArch).AddEntity(e)
	if !hadTable {
		Config.worldEvents.fireTableCreated(emptyArch.ID)
	}
	Config.worldEvents.fireEntityCreated(e)
	return e
}

// Delete retires e, dropping every component it still carries. It
// reports whether e was alive immediately before the call.
func (w *World) Delete(e Entity) bool {
	if w.openQueries > 0 {
		w.deferred = append(w.deferred, func(w *World) { w.Delete(e) })
		return w.entities.IsAlive(e)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.entities.IsAlive(e) {
		return false
	}
	archID := w.entityArchetype[e]
	if t := w.tables.Get(archID); t != nil {
		t.RemoveEntity(e)
	}
	delete(w.entityArchetype, e)
	w.entities.Delete(e)
	Config.worldEvents.fireEntityDestroyed(e)
	return true
}

// EntityKinds returns the sorted kind set currently attached to e, or
// (nil, false) if e is not alive.
func (w *World) EntityKinds(e Entity) ([]KindID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.entities.IsAlive(e) {
		return nil, false
	}
	info := w.archetypes.Get(w.entityArchetype[e])
	return info.Kinds, true
}

// addComponentBytesOrDeferred contains AddComponentT's control flow,
// split out so the generic AddComponentT wrapper below can supply a
// typed writer without duplicating the archetype/table transfer logic.
func addComponentBytesOrDeferred(w *World, e Entity, kind KindID, write func(t *Table, row int)) error {
	if w.openQueries > 0 {
		w.deferred = append(w.deferred, func(w *World) { _ = addComponentBytesOrDeferred(w, e, kind, write) })
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.entities.IsAlive(e) {
		return NonExistingEntityError{Entity: e}
	}
	oldArchID := w.entityArchetype[e]
	oldInfo := w.archetypes.Get(oldArchID)
	for _, k := range oldInfo.Kinds {
		if k == kind {
			return DuplicateComponentError{Entity: e, Kind: kind}
		}
	}

	newKinds := append(append([]KindID(nil), oldInfo.Kinds...), kind)
	archCount := w.archetypes.Len()
	newInfo := w.archetypes.GetOrCreate(newKinds)
	if w.archetypes.Len() != archCount {
		w.queryCache.invalidate()
		Config.worldEvents.fireArchetypeCreated(newInfo)
	}

	oldTable := w.tables.Get(oldArchID)
	hadTable := w.tables.Get(newInfo.ID) != nil
	newTable := w.tables.TableFor(newInfo)
	if !hadTable {
		Config.worldEvents.fireTableCreated(newInfo.ID)
	}

	var newRow int
	if oldTable != nil {
		newRow, _ = oldTable.TransferWithInsertion(e, newTable)
	} else {
		newRow = newTable.AddEntity(e)
	}
	w.entityArchetype[e] = newInfo.ID
	write(newTable, newRow)
	return nil
}

// RemoveComponent detaches e's component of kind T, moving e into the
// archetype one kind smaller. If e does not carry T, it returns
// MissingComponentError and leaves e untouched.
func (w *World) RemoveComponent(e Entity, kind KindID) error {
	if w.openQueries > 0 {
		w.deferred = append(w.deferred, func(w *World) { _ = w.RemoveComponent(e, kind) })
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.entities.IsAlive(e) {
		return NonExistingEntityError{Entity: e}
	}
	oldArchID := w.entityArchetype[e]
	oldInfo := w.archetypes.Get(oldArchID)

	found := false
	newKinds := make([]KindID, 0, len(oldInfo.Kinds))
	for _, k := range oldInfo.Kinds {
		if k == kind {
			found = true
			continue
		}
		newKinds = append(newKinds, k)
	}
	if !found {
		return MissingComponentError{Entity: e, Kind: kind}
	}

	archCount := w.archetypes.Len()
	newInfo := w.archetypes.GetOrCreate(newKinds)
	if w.archetypes.Len() != archCount {
		w.queryCache.invalidate()
		Config.worldEvents.fireArchetypeCreated(newInfo)
	}

	oldTable := w.tables.Get(oldArchID)
	hadTable := w.tables.Get(newInfo.ID) != nil
	newTable := w.tables.TableFor(newInfo)
	if !hadTable {
		Config.worldEvents.fireTableCreated(newInfo.ID)
	}

	oldTable.TransferWithDeletion(e, newTable)
	w.entityArchetype[e] = newInfo.ID
	return nil
}

// GetComponent returns a read-oriented pointer to e's component of kind
// T, or nil if e lacks it or isn't alive.
func GetComponent[T any](w *World, e Entity) *T {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return getComponentLocked[T](w, e)
}

func getComponentLocked[T any](w *World, e Entity) *T {
	if !w.entities.IsAlive(e) {
		return nil
	}
	archID, ok := w.entityArchetype[e]
	if !ok {
		return nil
	}
	t := w.tables.Get(archID)
	if t == nil {
		return nil
	}
	row, ok := t.RowOf(e)
	if !ok {
		return nil
	}
	col := t.Column(typeInfoFor[T]().ID)
	if col == nil {
		return nil
	}
	return Get[T](col, row)
}

// GetComponentMut returns a write-oriented pointer to e's component of
// kind T, or nil if e lacks it or isn't alive. It must not be called on
// the same goroutine as an open query cursor over w: like
// AddComponent/RemoveComponent it needs mu's write lock, but unlike
// them it has no deferred path, so it would deadlock against the read
// lock openQuery already holds. Fetch everything a system needs through
// the query's own Get instead of reaching back into the World mid-loop.
func GetComponentMut[T any](w *World, e Entity) *T {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := getComponentLocked[T](w, e)
	return p
}

// AddComponentT attaches value (of static type T) to e.
func AddComponentT[T any](w *World, e Entity, value T) error {
	info := typeInfoFor[T]()
	return addComponentBytesOrDeferred(w, e, info.ID, func(t *Table, row int) {
		Overwrite(t.columns[info.ID], row, value)
	})
}

// RemoveComponentT detaches the component of kind T from e.
func RemoveComponentT[T any](w *World, e Entity) error {
	return w.RemoveComponent(e, typeInfoFor[T]().ID)
}

// openQuery and closeQuery bracket a cursor's lifetime, tracked so
// AddComponent/RemoveComponent/Delete know to defer structural
// mutation while a query is being read on the same goroutine.
func (w *World) openQuery() {
	w.mu.RLock()
	w.openQueries++
}

func (w *World) closeQuery() {
	w.openQueries--
	drainNeeded := w.openQueries == 0 && len(w.deferred) > 0
	w.mu.RUnlock()
	if drainNeeded {
		w.drainDeferred()
	}
}

func (w *World) drainDeferred() {
	pending := w.deferred
	w.deferred = nil
	for _, op := range pending {
		op(w)
	}
}
