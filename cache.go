package hive

// queryCache memoizes, per distinct sorted-kind-set key, the set of
// archetype ids currently known to match a query shape. New archetypes
// created after a key was cached invalidate the whole cache rather
// than patching individual entries, since archetype creation is rare
// relative to query execution.
//
// Adapted from TheBitDrifter/warehouse's cache.go SimpleCache[T]
// (itemIndices map[string]int + items []T), repurposed from a
// string-to-registered-item cache into a sorted-kind-set-to-matched-
// archetype-ids cache.
type queryCache struct {
	tables map[string][]ArchetypeID
}

func newQueryCache() *queryCache {
	return &queryCache{tables: make(map[string][]ArchetypeID)}
}

func (qc *queryCache) lookup(key string, compute func() []ArchetypeID) []ArchetypeID {
	if ids, ok := qc.tables[key]; ok {
		return ids
	}
	ids := compute()
	qc.tables[key] = ids
	return ids
}

// invalidate clears every memoized entry, called whenever a new
// archetype is registered since an existing cached entry for a subset
// key may now be missing a newly created superset.
func (qc *queryCache) invalidate() {
	qc.tables = make(map[string][]ArchetypeID)
}
