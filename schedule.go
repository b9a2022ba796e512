package hive

// Fetcher turns a World into one system parameter value. It is the Go
// analogue of original_source/src/system.rs's SystemParameterFetch
// trait: Go has no trait-associated-type mechanism to let a generic
// parameter type name its own fetch function, so the fetch function is
// supplied explicitly alongside the system function at registration
// time instead of being derived from the parameter's type.
type Fetcher[T any] func(w *World) T

// FetchWorld is a Fetcher that hands a system the World itself, for
// systems that need direct, unrestricted access.
func FetchWorld(w *World) *World { return w }

// FetchResource returns a Fetcher producing a write-oriented pointer to
// the resource of kind T.
func FetchResource[T any]() Fetcher[*T] {
	return func(w *World) *T { return GetResourceMut[T](w) }
}

// FetchEventReader returns a Fetcher producing an EventReader[E].
func FetchEventReader[E any]() Fetcher[EventReader[E]] {
	return func(w *World) EventReader[E] { return NewEventReader[E](w) }
}

// FetchEventWriter returns a Fetcher producing an EventWriter[E].
func FetchEventWriter[E any]() Fetcher[EventWriter[E]] {
	return func(w *World) EventWriter[E] { return NewEventWriter[E](w) }
}

// system is a fully bound, zero-argument unit of work, produced by
// closing over a system function and its parameter fetchers.
//
// Grounded on original_source/src/system.rs's FunctionSystem (system +
// cache, run by fetching params then calling the wrapped function).
type system func(w *World)

// Scheduler runs a fixed set of startup systems exactly once, followed
// by a fixed set of regular systems on every Run call, both in
// insertion order.
//
// Grounded on original_source/src/system.rs's Systems (is_startup bool
// + startup_systems/systems Vec<Box<dyn System>>, run() draining
// startup first).
type Scheduler struct {
	startup     []system
	regular     []system
	ranStartup  bool
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Run executes every startup system exactly once (only on the first
// call), then every regular system, in registration order.
func (s *Scheduler) Run(w *World) {
	if !s.ranStartup {
		for _, sys := range s.startup {
			sys(w)
		}
		s.ranStartup = true
	}
	for _, sys := range s.regular {
		sys(w)
	}
}

// AddSystem0 registers a zero-parameter regular system.
func AddSystem0(s *Scheduler, fn func(w *World)) {
	s.regular = append(s.regular, fn)
}

// AddStartupSystem0 registers a zero-parameter startup system.
func AddStartupSystem0(s *Scheduler, fn func(w *World)) {
	s.startup = append(s.startup, fn)
}

// AddSystem1 registers a one-parameter regular system, fetching its
// argument with f1 on every run.
func AddSystem1[P1 any](s *Scheduler, f1 Fetcher[P1], fn func(P1)) {
	s.regular = append(s.regular, func(w *World) { fn(f1(w)) })
}

// AddStartupSystem1 registers a one-parameter startup system.
func AddStartupSystem1[P1 any](s *Scheduler, f1 Fetcher[P1], fn func(P1)) {
	s.startup = append(s.startup, func(w *World) { fn(f1(w)) })
}

// AddSystem2 registers a two-parameter regular system.
func AddSystem2[P1, P2 any](s *Scheduler, f1 Fetcher[P1], f2 Fetcher[P2], fn func(P1, P2)) {
	s.regular = append(s.regular, func(w *World) { fn(f1(w), f2(w)) })
}

// AddStartupSystem2 registers a two-parameter startup system.
func AddStartupSystem2[P1, P2 any](s *Scheduler, f1 Fetcher[P1], f2 Fetcher[P2], fn func(P1, P2)) {
	s.startup = append(s.startup, func(w *World) { fn(f1(w), f2(w)) })
}

// AddSystem3 registers a three-parameter regular system.
func AddSystem3[P1, P2, P3 any](s *Scheduler, f1 Fetcher[P1], f2 Fetcher[P2], f3 Fetcher[P3], fn func(P1, P2, P3)) {
	s.regular = append(s.regular, func(w *World) { fn(f1(w), f2(w), f3(w)) })
}

// AddStartupSystem3 registers a three-parameter startup system.
func AddStartupSystem3[P1, P2, P3 any](s *Scheduler, f1 Fetcher[P1], f2 Fetcher[P2], f3 Fetcher[P3], fn func(P1, P2, P3)) {
	s.startup = append(s.startup, func(w *World) { fn(f1(w), f2(w), f3(w)) })
}

// AddSystem4 registers a four-parameter regular system.
func AddSystem4[P1, P2, P3, P4 any](s *Scheduler, f1 Fetcher[P1], f2 Fetcher[P2], f3 Fetcher[P3], f4 Fetcher[P4], fn func(P1, P2, P3, P4)) {
	s.regular = append(s.regular, func(w *World) { fn(f1(w), f2(w), f3(w), f4(w)) })
}

// AddStartupSystem4 registers a four-parameter startup system.
func AddStartupSystem4[P1, P2, P3, P4 any](s *Scheduler, f1 Fetcher[P1], f2 Fetcher[P2], f3 Fetcher[P3], f4 Fetcher[P4], fn func(P1, P2, P3, P4)) {
	s.startup = append(s.startup, func(w *World) { fn(f1(w), f2(w), f3(w), f4(w)) })
}

// AddSystem5 registers a five-parameter regular system.
func AddSystem5[P1, P2, P3, P4, P5 any](s *Scheduler, f1 Fetcher[P1], f2 Fetcher[P2], f3 Fetcher[P3], f4 Fetcher[P4], f5 Fetcher[P5], fn func(P1, P2, P3, P4, P5)) {
	s.regular = append(s.regular, func(w *World) { fn(f1(w), f2(w), f3(w), f4(w), f5(w)) })
}

// AddStartupSystem5 registers a five-parameter startup system.
func AddStartupSystem5[P1, P2, P3, P4, P5 any](s *Scheduler, f1 Fetcher[P1], f2 Fetcher[P2], f3 Fetcher[P3], f4 Fetcher[P4], f5 Fetcher[P5], fn func(P1, P2, P3, P4, P5)) {
	s.startup = append(s.startup, func(w *World) { fn(f1(w), f2(w), f3(w), f4(w), f5(w)) })
}
