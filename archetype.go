package hive

import (
	"sort"
	"strconv"
	"strings"

	"github.com/TheBitDrifter/mask"
)

// ArchetypeID identifies one canonical, sorted set of component kinds.
type ArchetypeID uint32

// ArchetypeInfo is the immutable identity of one archetype: its sorted
// kind set and a cached bitmask over that set, used by QueryIDs as a
// fast-reject test before the exact sorted subset check.
//
// Grounded on TheBitDrifter/warehouse's storage.go (archetypes keyed by
// mask.Mask, archetypeID, asSlice) for the indexing shape, and query.go
// (archeMask.ContainsAll(nodeMask)) for how the cached mask is used.
type ArchetypeInfo struct {
	ID    ArchetypeID
	Kinds []KindID
	mask  mask.Mask256
}

func maskFor(kinds []KindID) mask.Mask256 {
	var m mask.Mask256
	for _, k := range kinds {
		m.Mark(uint32(k))
	}
	return m
}

func sortedKey(kinds []KindID) string {
	sorted := append([]KindID(nil), kinds...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var b strings.Builder
	for i, k := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(k), 10))
	}
	return b.String()
}

// trieNode is one node of the archetype trie: a path from the root
// through trieNode.kind values names a sorted kind subsequence, and
// archetypeID is set whenever that exact subsequence is itself a
// registered archetype.
//
// Grounded on original_source/src/archetype.rs's ComponentTrie /
// ComponentNode shape (component, archetype: Option<ArchetypeId>,
// following_components), which is a stub there (todo!() bodies) — the
// node shape is taken from it, but the traversal algorithm implemented
// in QueryIDs below follows spec.md §4.E directly.
type trieNode struct {
	kind        KindID
	archetypeID ArchetypeID
	hasArch     bool
	children    []*trieNode
}

func (n *trieNode) childFor(kind KindID) *trieNode {
	for _, c := range n.children {
		if c.kind == kind {
			return c
		}
	}
	return nil
}

func (n *trieNode) childOrCreate(kind KindID) *trieNode {
	if c := n.childFor(kind); c != nil {
		return c
	}
	c := &trieNode{kind: kind}
	n.children = append(n.children, c)
	return c
}

// Archetypes owns every registered ArchetypeInfo plus the trie and
// by-key index used to find or create them.
type Archetypes struct {
	byID     *SparseIndex[ArchetypeInfo]
	byKey    map[string]ArchetypeID
	root     *trieNode
	worklist *Arena[*trieNode]
}

// NewArchetypes returns an empty archetype set, seeded with the empty
// archetype (no components) at ArchetypeID 0.
func NewArchetypes() *Archetypes {
	a := &Archetypes{
		byID:     NewSparseIndex[ArchetypeInfo](),
		byKey:    make(map[string]ArchetypeID),
		root:     &trieNode{},
		worklist: NewArena[*trieNode](),
	}
	a.getOrCreate(nil)
	return a
}

// GetOrCreate returns the archetype matching the given kind set
// (order-independent), creating it if it doesn't exist yet.
func (a *Archetypes) GetOrCreate(kinds []KindID) ArchetypeInfo {
	return a.getOrCreate(kinds)
}

func (a *Archetypes) getOrCreate(kinds []KindID) ArchetypeInfo {
	sorted := append([]KindID(nil), kinds...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	key := sortedKey(sorted)
	if id, ok := a.byKey[key]; ok {
		return *a.byID.Get(uint32(id))
	}

	info := ArchetypeInfo{Kinds: sorted, mask: maskFor(sorted)}
	idx := a.byID.Insert(info)
	info.ID = ArchetypeID(idx)
	a.byID.items[idx] = info
	a.byKey[key] = info.ID

	node := a.root
	for _, k := range sorted {
		node = node.childOrCreate(k)
	}
	node.archetypeID = info.ID
	node.hasArch = true

	return info
}

// Get returns the archetype previously allocated under id. A miss means
// some other part of the package handed out an id it never registered,
// which is an invariant violation rather than a recoverable condition.
func (a *Archetypes) Get(id ArchetypeID) ArchetypeInfo {
	info := a.byID.Get(uint32(id))
	if info == nil {
		panic(traceInternal(MissingArchetypeError{ID: id}))
	}
	return *info
}

// Len returns the number of registered archetypes.
func (a *Archetypes) Len() int {
	return a.byID.Cap()
}

// QueryIDs returns the id of every archetype whose kind set is a
// superset of required. It walks the trie level by level from the root
// and visits every node: no branch is pruned on the way down, so every
// registered archetype is examined once. For each node that marks an
// archetype, the archetype's cached mask.Mask256 is tested against
// required's mask (ContainsAll) as a fast reject, and only then is the
// exact sorted subset check run. An empty required matches every
// archetype, the empty one included.
//
// The mask fast-reject mirrors the teacher's own
// archeMask.ContainsAll(nodeMask) idiom in query.go.
//
// The result is always a freshly allocated slice, never one carved from
// a.worklist: callers (matchingTables, via queryCache) memoize the
// returned slice directly, and a.worklist's backing array is reset and
// reused by the very next QueryIDs call, so anything from it escaping
// this function would alias memory a later, unrelated query overwrites.
// a.worklist is scratch for the frontier/next traversal only.
func (a *Archetypes) QueryIDs(required []KindID) []ArchetypeID {
	a.worklist.Reset()

	if len(required) == 0 {
		result := make([]ArchetypeID, 0, a.byID.Cap())
		a.byID.Each(func(idx uint32, info *ArchetypeInfo) {
			result = append(result, ArchetypeID(idx))
		})
		return result
	}

	reqMask := maskFor(required)
	var result []ArchetypeID

	frontier := a.worklist.NewSlice(8)
	frontier = append(frontier, a.root)

	for len(frontier) > 0 {
		next := a.worklist.NewSlice(len(frontier) * 2)
		for _, node := range frontier {
			if node.hasArch {
				info := a.byID.Get(uint32(node.archetypeID))
				if info.mask.ContainsAll(reqMask) && containsAllSorted(info.Kinds, required) {
					result = append(result, node.archetypeID)
				}
			}
			next = append(next, node.children...)
		}
		frontier = next
	}

	return result
}

// containsAllSorted reports whether superset (sorted, unique) contains
// every element of subset (sorted, unique).
func containsAllSorted(superset, subset []KindID) bool {
	i := 0
	for _, want := range subset {
		for i < len(superset) && superset[i] < want {
			i++
		}
		if i >= len(superset) || superset[i] != want {
			return false
		}
	}
	return true
}

// DebugString returns a sorted, bracketed rendering of an archetype's
// kind names, for diagnostics.
//
// Supplemented from TheBitDrifter/warehouse's entity.go
// ComponentsAsString, generalized from per-entity component lists to
// per-archetype kind sets.
func (info ArchetypeInfo) DebugString() string {
	if len(info.Kinds) == 0 {
		return "[]"
	}
	names := make([]string, len(info.Kinds))
	for i, k := range info.Kinds {
		names[i] = typeInfoByID(k).Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}
