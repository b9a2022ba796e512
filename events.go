package hive

// Events is the resource backing one event kind's queue: writers
// append to it through an EventWriter, readers read it (without
// draining it) through an EventReader, and a scheduled ClearEvents
// system empties it between frames.
//
// Grounded on original_source/src/events.rs's Events<E>{events: Vec<E>}.
type Events[E any] struct {
	items []E
}

// AddEvent registers the Events[E] resource on w, so that
// EventWriter[E]/EventReader[E] have somewhere to fetch. It is a no-op
// if already registered.
//
// Grounded on original_source/src/world.rs's add_event (self.resources.add(Events::<E>::default())).
func AddEvent[E any](w *World) {
	if !HasResource[Events[E]](w) {
		AddResource(w, Events[E]{})
	}
}

// EventWriter appends values to one event kind's queue.
//
// Grounded on original_source/src/events.rs's EventWriter.
type EventWriter[E any] struct {
	events *Events[E]
}

// Send appends value to the queue.
func (w EventWriter[E]) Send(value E) {
	w.events.items = append(w.events.items, value)
}

// Len reports the number of events currently queued.
func (w EventWriter[E]) Len() int { return len(w.events.items) }

// EventReader reads (but does not drain) one event kind's queue.
//
// Grounded on original_source/src/events.rs's EventReader.
type EventReader[E any] struct {
	events *Events[E]
}

// All returns every currently queued event, in send order. The
// returned slice aliases the queue's backing array and must not be
// retained past the current system's invocation.
func (r EventReader[E]) All() []E { return r.events.items }

// Len reports the number of events currently queued.
func (r EventReader[E]) Len() int { return len(r.events.items) }

// IsEmpty reports whether the queue is currently empty.
func (r EventReader[E]) IsEmpty() bool { return len(r.events.items) == 0 }

// NewEventWriter fetches a writer for event kind E from w. Panics if
// AddEvent[E] was never called, matching
// original_source/src/events.rs's fetch ("couldn't find event type").
func NewEventWriter[E any](w *World) EventWriter[E] {
	events := GetResourceMut[Events[E]](w)
	if events == nil {
		panic("hive: event kind not registered, call AddEvent first")
	}
	return EventWriter[E]{events: events}
}

// NewEventReader fetches a reader for event kind E from w.
func NewEventReader[E any](w *World) EventReader[E] {
	events := GetResourceMut[Events[E]](w)
	if events == nil {
		panic("hive: event kind not registered, call AddEvent first")
	}
	return EventReader[E]{events: events}
}

// ClearEvents empties event kind E's queue. It is a system function,
// meant to be registered with a Scheduler and run once per frame after
// every reader has had a chance to observe the current batch — kept as
// a schedulable function rather than a World method, matching
// original_source/src/events.rs's clear_events(mut events: ResMut<Events<E>>)
// being a free function taking a system parameter, not a World method.
func ClearEvents[E any](w *World) {
	events := GetResourceMut[Events[E]](w)
	if events == nil {
		return
	}
	events.items = events.items[:0]
}
