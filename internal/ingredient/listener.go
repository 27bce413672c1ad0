package ingredient

import "context"

// Event describes one batch of ingredients added to or removed from a single type.
type Event struct {
	Type        AnyType
	Helper      AnyHelper
	Ingredients []AnyTyped
}

// Listener is notified synchronously, on the main goroutine, after a runtime
// add or remove changed the ingredient set.
type Listener interface {
	IngredientsAdded(e Event)
	IngredientsRemoved(e Event)
}

// ListenerFuncs adapts optional callbacks to Listener.
type ListenerFuncs struct {
	Added   func(Event)
	Removed func(Event)
}

func (f ListenerFuncs) IngredientsAdded(e Event) {
	if f.Added != nil {
		f.Added(e)
	}
}

func (f ListenerFuncs) IngredientsRemoved(e Event) {
	if f.Removed != nil {
		f.Removed(e)
	}
}

type listenerEntry struct {
	ctx      context.Context
	listener Listener
	removed  bool
}

func (e *listenerEntry) live() bool {
	return !e.removed && e.ctx.Err() == nil
}
