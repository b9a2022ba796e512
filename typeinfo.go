package hive

import (
	"reflect"
	"sync"
	"unsafe"
)

// KindID is a process-stable identifier for a component kind. Two values
// of the same Go type always resolve to the same KindID for the life of
// the process; two different types never share one.
type KindID uint32

// Dropper is implemented by component kinds that own resources needing
// explicit release when a value is overwritten, removed, or evicted from
// a resource slot. A kind that does not implement Dropper is treated as
// trivially droppable: the storage backing its slot is simply reused.
type Dropper interface {
	Drop()
}

// TypeInfo is the metadata the type registry produces for a component
// kind: its stable id, its memory layout, a debug name, and an optional
// destructor.
type TypeInfo struct {
	ID      KindID
	Size    uintptr
	Align   uintptr
	Name    string
	HasDrop bool
	goType  reflect.Type
}

type typeRegistry struct {
	mu   sync.RWMutex
	ids  map[reflect.Type]KindID
	info []TypeInfo
}

var globalTypes = &typeRegistry{
	ids: make(map[reflect.Type]KindID),
}

// typeInfoFor returns the TypeInfo for T, registering T on first use.
func typeInfoFor[T any]() TypeInfo {
	rt := reflect.TypeFor[T]()
	return globalTypes.lookup(rt)
}

func (r *typeRegistry) lookup(rt reflect.Type) TypeInfo {
	r.mu.RLock()
	if id, ok := r.ids[rt]; ok {
		info := r.info[id]
		r.mu.RUnlock()
		return info
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[rt]; ok {
		return r.info[id]
	}

	id := KindID(len(r.info))
	_, hasDrop := reflect.New(rt).Interface().(Dropper)
	info := TypeInfo{
		ID:      id,
		Size:    rt.Size(),
		Align:   uintptr(rt.Align()),
		Name:    rt.String(),
		HasDrop: hasDrop,
		goType:  rt,
	}
	r.ids[rt] = id
	r.info = append(r.info, info)
	return info
}

// typeInfoByID returns the TypeInfo previously registered under id. It
// panics if id was never allocated; callers only ever hold ids produced
// by typeInfoFor, so this indicates a corrupted invariant.
func typeInfoByID(id KindID) TypeInfo {
	globalTypes.mu.RLock()
	defer globalTypes.mu.RUnlock()
	return globalTypes.info[id]
}

// dropAt invokes info's destructor, if any, on the value living at ptr.
// Storage is left untouched; only the destructor runs.
func dropAt(info TypeInfo, ptr unsafe.Pointer) {
	if !info.HasDrop {
		return
	}
	if d, ok := reflect.NewAt(info.goType, ptr).Interface().(Dropper); ok {
		d.Drop()
	}
}
