/*
Package hive is an archetype-based Entity-Component-System data engine.

Entities are generational handles; components are plain Go structs
registered automatically the first time they're used; entities sharing
the same set of component kinds are stored together in a columnar
table so that iterating a query walks contiguous memory. Systems are
registered on a Scheduler with an explicit parameter-fetch function
per argument, run in registration order.

Basic usage:

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	w := hive.NewWorld()

	e := w.Create()
	hive.AddComponentT(w, e, Position{})
	hive.AddComponentT(w, e, Velocity{X: 1, Y: 0})

	q := hive.NewMutQuery2[Position, Velocity](w)
	for q.Next() {
		pos, vel := q.Get()
		pos.X += vel.X
		pos.Y += vel.Y
	}

A query holds a read lock on the World for its lifetime; ranging it to
exhaustion (Next returning false) releases the lock automatically, and
any AddComponentT/RemoveComponentT/Delete call issued while a query is
still open on the same goroutine is queued and applied once the last
open query closes. A query abandoned before exhaustion (an early break
or return) must call Close itself to release its hold early.

Resources are World-scoped singletons, one value per static type:

	hive.AddResource(w, Clock{})
	clock := hive.GetResourceMut[Clock](w)

Events are a resource-backed queue per event type, written and read
through EventWriter/EventReader and drained with a scheduled
ClearEvents system:

	hive.AddEvent[DamageEvent](w)

	sched := hive.NewScheduler()
	hive.AddSystem1(sched, hive.FetchEventWriter[DamageEvent](), func(w hive.EventWriter[DamageEvent]) {
		w.Send(DamageEvent{Amount: 10})
	})
	hive.AddSystem1(sched, hive.FetchEventReader[DamageEvent](), func(r hive.EventReader[DamageEvent]) {
		for _, ev := range r.All() {
			_ = ev
		}
	})
	hive.AddSystem0(sched, hive.ClearEvents[DamageEvent])

	sched.Run(w)
*/
package hive
