package hive

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// DuplicateComponentError is returned by AddComponent when the entity
// already carries the component's kind.
type DuplicateComponentError struct {
	Entity Entity
	Kind   KindID
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("component %s already exists on entity %v", typeInfoByID(e.Kind).Name, e.Entity)
}

// MissingComponentError is returned by RemoveComponent and
// RemoveComponentT when the entity lacks the component's kind.
// GetComponent and GetComponentMut report a missing component by
// returning nil, not this error.
type MissingComponentError struct {
	Entity Entity
	Kind   KindID
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("component %s does not exist on entity %v", typeInfoByID(e.Kind).Name, e.Entity)
}

// NonExistingEntityError is returned by AddComponentT, RemoveComponent
// and RemoveComponentT for a handle whose generation is stale or whose
// index was never allocated. Delete, EntityKinds, GetComponent and
// GetComponentMut report such a handle through their false or nil
// results instead.
type NonExistingEntityError struct {
	Entity Entity
}

func (e NonExistingEntityError) Error() string {
	return fmt.Sprintf("entity %v does not exist", e.Entity)
}

// DuplicateArchetypeError is an internal error: the archetype set was
// told to insert a kind-set it already holds. It indicates a broken
// get-or-create invariant rather than a caller mistake.
type DuplicateArchetypeError struct {
	Kinds []KindID
}

func (e DuplicateArchetypeError) Error() string {
	return fmt.Sprintf("archetype for kind-set %v already exists", e.Kinds)
}

// MissingArchetypeError is an internal error: an archetype-id lookup
// missed.
type MissingArchetypeError struct {
	ID ArchetypeID
}

func (e MissingArchetypeError) Error() string {
	return fmt.Sprintf("no archetype registered for id %d", e.ID)
}

// MissingTableError is an internal error: a table-id lookup missed,
// indicating a broken archetype-to-table invariant.
type MissingTableError struct {
	ArchID ArchetypeID
}

func (e MissingTableError) Error() string {
	return fmt.Sprintf("no table registered for archetype %d", e.ArchID)
}

// ResourceNotPresentError describes a resource kind with no stored
// value. No function in this package returns it: GetResource and
// GetResourceMut return nil, and RemoveResource returns false, when the
// resource is absent.
type ResourceNotPresentError struct {
	Kind KindID
}

func (e ResourceNotPresentError) Error() string {
	return fmt.Sprintf("resource %s is not present", typeInfoByID(e.Kind).Name)
}

// traceInternal wraps an internal-invariant error with a stack trace
// before it crosses back out to the caller, matching
// TheBitDrifter/warehouse's bark.AddTrace call sites in query.go and
// entity.go.
func traceInternal(err error) error {
	return bark.AddTrace(err)
}
