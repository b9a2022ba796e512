package hive

import (
	"math"
	"reflect"
	"unsafe"
)

// Column is a type-erased, contiguous, byte-addressable array of
// fixed-stride slots. It holds every value of one component kind within
// one table. Columns never drop on reallocation: all destructor
// invocation is explicit, via DropAt.
//
// Grounded on delaneyj-arche's ecs/storage.go (reflect.New(reflect.ArrayOf)
// + unsafe.Pointer arithmetic for type-erased Go storage) and kiwi's
// blobvec.rs for the operation set.
type Column struct {
	info     TypeInfo
	buffer   reflect.Value
	addr     unsafe.Pointer
	stride   uintptr
	len      uint32
	cap      uint32
	template []byte
}

const columnInitialCap = 8

// NewColumn allocates an empty column for the given component kind.
func NewColumn(info TypeInfo) *Column {
	c := &Column{
		info:     info,
		stride:   info.Size,
		template: make([]byte, info.Size),
	}
	c.grow(columnInitialCap)
	return c
}

func (c *Column) grow(newCap uint32) {
	if newCap <= c.cap {
		return
	}
	old := c.buffer
	c.buffer = reflect.New(reflect.ArrayOf(int(newCap), c.info.goType)).Elem()
	c.addr = c.buffer.Addr().UnsafePointer()
	if old.IsValid() && c.len > 0 {
		reflect.Copy(c.buffer, old)
	}
	c.cap = newCap
}

func (c *Column) ensureCap() {
	if c.len >= c.cap {
		next := c.cap * 2
		if next == 0 {
			next = columnInitialCap
		}
		c.grow(next)
	}
}

// Len reports the column's logical length (number of occupied slots,
// including any abandoned-but-not-yet-dropped ones).
func (c *Column) Len() int { return int(c.len) }

// Stride returns the byte size of one slot.
func (c *Column) Stride() int { return int(c.stride) }

func (c *Column) slotPtr(i int) unsafe.Pointer {
	return unsafe.Add(c.addr, uintptr(i)*c.stride)
}

func (c *Column) byteWindow(ptr unsafe.Pointer) []byte {
	size := int(c.stride)
	return (*[math.MaxInt32]byte)(ptr)[:size:size]
}

// Push appends value, logically moving it into the column. Go has no
// move semantics to suppress a finalizer with, so the caller must not
// reuse value as an owner of the same resources afterward.
func Push[T any](c *Column, value T) int {
	c.ensureCap()
	idx := int(c.len)
	dst := c.slotPtr(idx)
	*(*T)(dst) = value
	c.len++
	return idx
}

// PushBytes appends stride raw bytes, duplicating them byte for byte.
func (c *Column) PushBytes(raw []byte) int {
	c.ensureCap()
	idx := int(c.len)
	dst := c.slotPtr(idx)
	copy(c.byteWindow(dst), raw)
	c.len++
	return idx
}

// PushEmpty appends a zeroed slot (the column's template), used to
// reserve a row before every column in a table has been written.
func (c *Column) PushEmpty() int {
	c.ensureCap()
	idx := int(c.len)
	dst := c.slotPtr(idx)
	copy(c.byteWindow(dst), c.template)
	c.len++
	return idx
}

// Overwrite copies value over slot i in place. The caller guarantees the
// prior occupant has already been moved out or dropped.
func Overwrite[T any](c *Column, i int, value T) {
	dst := (*T)(c.slotPtr(i))
	*dst = value
}

// OverwriteBytes copies raw bytes over slot i in place.
func (c *Column) OverwriteBytes(i int, raw []byte) {
	copy(c.byteWindow(c.slotPtr(i)), raw)
}

// Get returns a typed, read-oriented pointer to slot i. The caller
// guarantees T matches the column's kind.
func Get[T any](c *Column, i int) *T {
	return (*T)(c.slotPtr(i))
}

// GetMut returns a typed, write-oriented pointer to slot i.
func GetMut[T any](c *Column, i int) *T {
	return (*T)(c.slotPtr(i))
}

// ByteSlice returns a raw byte view of slot i.
func (c *Column) ByteSlice(i int) []byte {
	return c.byteWindow(c.slotPtr(i))
}

// DropAt invokes the registered destructor, if any, on slot i. Storage
// is not reclaimed; the slot's bytes are left as-is until overwritten.
func (c *Column) DropAt(i int) {
	dropAt(c.info, c.slotPtr(i))
}

// Swap exchanges value into slot i and returns the prior occupant.
func Swap[T any](c *Column, i int, value T) T {
	dst := (*T)(c.slotPtr(i))
	prior := *dst
	*dst = value
	return prior
}

// AsSlice returns a typed view over every occupied slot in declaration
// order. The caller guarantees T matches the column's kind.
func AsSlice[T any](c *Column) []T {
	if c.len == 0 {
		return nil
	}
	return unsafe.Slice((*T)(c.addr), c.len)
}

// AsSliceMut returns a mutable typed view over every occupied slot.
func AsSliceMut[T any](c *Column) []T {
	return AsSlice[T](c)
}
