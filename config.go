package hive

// Config holds process-wide configuration for the package, mirroring
// TheBitDrifter/warehouse's package-level `var Config config` plus
// `Set*` convention.
var Config config

type config struct {
	worldEvents WorldEvents
}

// SetWorldEvents installs the hook set invoked by every World from then
// on, including Worlds created earlier: a World reads Config each time
// an event fires. Hooks left nil are simply skipped.
func (c *config) SetWorldEvents(we WorldEvents) {
	c.worldEvents = we
}

// WorldEvents are optional observation hooks fired by a World as it
// creates archetypes, tables, and entities, and as it destroys
// entities. They exist for diagnostics and tooling (e.g. a debug
// overlay listing live archetypes); no internal logic depends on them
// running. The empty archetype, which every World registers while it is
// being built, is not reported through OnArchetypeCreated.
//
// Grounded on TheBitDrifter/warehouse's config.go (table.TableEvents
// hook struct threaded through newArchetype's WithEvents call).
type WorldEvents struct {
	OnArchetypeCreated func(ArchetypeInfo)
	OnTableCreated     func(ArchetypeID)
	OnEntityCreated    func(Entity)
	OnEntityDestroyed  func(Entity)
}

func (we WorldEvents) fireArchetypeCreated(info ArchetypeInfo) {
	if we.OnArchetypeCreated != nil {
		we.OnArchetypeCreated(info)
	}
}

func (we WorldEvents) fireTableCreated(id ArchetypeID) {
	if we.OnTableCreated != nil {
		we.OnTableCreated(id)
	}
}

func (we WorldEvents) fireEntityCreated(e Entity) {
	if we.OnEntityCreated != nil {
		we.OnEntityCreated(e)
	}
}

func (we WorldEvents) fireEntityDestroyed(e Entity) {
	if we.OnEntityDestroyed != nil {
		we.OnEntityDestroyed(e)
	}
}
