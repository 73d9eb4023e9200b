package observability

import "context"

// NoOpObserver discards every event.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(context.Context, Event) {}

// FuncObserver adapts a function to the Observer interface.
type FuncObserver func(ctx context.Context, event Event)

func (f FuncObserver) OnEvent(ctx context.Context, event Event) {
	f(ctx, event)
}

// MultiObserver delivers each event to its observers in order.
type MultiObserver struct {
	sinks []Observer
}

// NewMultiObserver combines observers. Nil entries are skipped and nested
// MultiObservers are flattened.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	m := &MultiObserver{}
	for _, obs := range observers {
		switch o := obs.(type) {
		case nil:
		case *MultiObserver:
			m.sinks = append(m.sinks, o.sinks...)
		default:
			m.sinks = append(m.sinks, o)
		}
	}
	return m
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, sink := range m.sinks {
		sink.OnEvent(ctx, event)
	}
}

// Len returns the number of observers events are delivered to.
func (m *MultiObserver) Len() int {
	return len(m.sinks)
}

// MinLevel forwards to next only the events at or above min.
func MinLevel(min Level, next Observer) Observer {
	return FuncObserver(func(ctx context.Context, event Event) {
		if event.Level >= min {
			next.OnEvent(ctx, event)
		}
	})
}
