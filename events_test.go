package hive

import "testing"

type eventsTestDamage struct{ Amount int }

func TestEventWriterReaderRoundTrip(t *testing.T) {
	w := NewWorld()
	AddEvent[eventsTestDamage](w)

	writer := NewEventWriter[eventsTestDamage](w)
	writer.Send(eventsTestDamage{Amount: 1})
	writer.Send(eventsTestDamage{Amount: 2})

	reader := NewEventReader[eventsTestDamage](w)
	all := reader.All()
	if len(all) != 2 || all[0].Amount != 1 || all[1].Amount != 2 {
		t.Fatalf("EventReader.All() = %v, want [{1} {2}] in send order", all)
	}
}

func TestNewEventWriterPanicsIfUnregistered(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("NewEventWriter on an unregistered event kind did not panic")
		}
	}()
	w := NewWorld()
	_ = NewEventWriter[eventsTestDamage](w)
}

// TestEventPipelineSumThenClear exercises scenario 5 with direct
// writer/reader calls rather than scheduled systems: a writer sends 10
// values, a reader sums them to 45, and a clear-events pass empties the
// reader's view.
func TestEventPipelineSumThenClear(t *testing.T) {
	w := NewWorld()
	AddEvent[eventsTestDamage](w)

	writer := NewEventWriter[eventsTestDamage](w)
	for i := 0; i < 10; i++ {
		writer.Send(eventsTestDamage{Amount: i})
	}

	reader := NewEventReader[eventsTestDamage](w)
	sum := 0
	for _, ev := range reader.All() {
		sum += ev.Amount
	}
	if sum != 45 {
		t.Fatalf("sum of ten written events = %d, want 45", sum)
	}

	ClearEvents[eventsTestDamage](w)
	if !reader.IsEmpty() {
		t.Fatalf("reader still sees events after ClearEvents: %v", reader.All())
	}
}

func TestClearEventsOnUnregisteredKindIsNoop(t *testing.T) {
	w := NewWorld()
	ClearEvents[eventsTestDamage](w)
}

func TestAddEventIsIdempotent(t *testing.T) {
	w := NewWorld()
	AddEvent[eventsTestDamage](w)
	writer := NewEventWriter[eventsTestDamage](w)
	writer.Send(eventsTestDamage{Amount: 1})

	AddEvent[eventsTestDamage](w)
	reader := NewEventReader[eventsTestDamage](w)
	if reader.Len() != 1 {
		t.Fatalf("second AddEvent call reset the queue: Len() = %d, want 1", reader.Len())
	}
}
