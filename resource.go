package hive

// ResourceStore holds at most one value of each component kind, keyed
// by KindID, with each value backed by a one-slot Column so the same
// byte-level Drop machinery as table columns applies to resources.
//
// Grounded on original_source/src/resources.rs's Resources{columns:
// HashMap<TypeId, BlobVec>}.
type ResourceStore struct {
	columns map[KindID]*Column
}

// NewResourceStore returns an empty resource store.
func NewResourceStore() *ResourceStore {
	return &ResourceStore{columns: make(map[KindID]*Column)}
}

func storeAdd[T any](s *ResourceStore, value T) {
	info := typeInfoFor[T]()
	col, ok := s.columns[info.ID]
	if !ok {
		col = NewColumn(info)
		col.PushEmpty()
		s.columns[info.ID] = col
	} else {
		col.DropAt(0)
	}
	Overwrite(col, 0, value)
}

func storeRemove[T any](s *ResourceStore) bool {
	info := typeInfoFor[T]()
	col, ok := s.columns[info.ID]
	if !ok {
		return false
	}
	col.DropAt(0)
	delete(s.columns, info.ID)
	return true
}

func storeGet[T any](s *ResourceStore) *T {
	info := typeInfoFor[T]()
	col, ok := s.columns[info.ID]
	if !ok {
		return nil
	}
	return Get[T](col, 0)
}

func storeGetMut[T any](s *ResourceStore) *T {
	info := typeInfoFor[T]()
	col, ok := s.columns[info.ID]
	if !ok {
		return nil
	}
	return GetMut[T](col, 0)
}

func storeHas[T any](s *ResourceStore) bool {
	_, ok := s.columns[typeInfoFor[T]().ID]
	return ok
}

// AddResource installs value as the World-scoped singleton resource of
// its static type, dropping any prior value of the same kind in place
// before overwriting it — resources.rs's add: "it is safe to swap
// previous instance with new one; old instance will be dropped here."
func AddResource[T any](w *World, value T) {
	storeAdd(w.resources, value)
}

// RemoveResource evicts the resource of kind T, running its destructor
// if it has one, and reports whether it was present.
func RemoveResource[T any](w *World) bool {
	return storeRemove[T](w.resources)
}

// GetResource returns a read-oriented pointer to the resource of kind
// T, or nil if absent.
func GetResource[T any](w *World) *T {
	return storeGet[T](w.resources)
}

// GetResourceMut returns a write-oriented pointer to the resource of
// kind T, or nil if absent.
func GetResourceMut[T any](w *World) *T {
	return storeGetMut[T](w.resources)
}

// HasResource reports whether a resource of kind T is present.
func HasResource[T any](w *World) bool {
	return storeHas[T](w.resources)
}
