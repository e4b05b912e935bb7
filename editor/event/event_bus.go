// Package event provides the editor's broadcast channel: selection and
// transform notifications fanned out synchronously to every subscriber.
package event

import (
	"sync"

	"github.com/quarry3d/quarry/editor/scenegraph"
)

// Kind identifies an editor event variant.
type Kind string

const (
	// KindSelect fires when an object becomes the current selection.
	KindSelect Kind = "select"

	// KindDeselect fires when the selection is cleared.
	KindDeselect Kind = "deselect"

	// KindTransformStart fires when a gizmo manipulation begins.
	KindTransformStart Kind = "transform-start"

	// KindTransformChange fires on every gizmo manipulation delta.
	KindTransformChange Kind = "transform-change"

	// KindTransformEnd fires when a gizmo manipulation ends.
	KindTransformEnd Kind = "transform-end"
)

// Event is a single editor notification.
type Event struct {
	// Kind is the event variant.
	Kind Kind

	// Object is the affected scene object. Nil for deselect.
	Object *scenegraph.SceneObject

	// Mode is the active manipulation mode for transform events
	// ("translate", "rotate", or "scale"); empty otherwise.
	Mode string
}

// Listener receives emitted events.
type Listener func(Event)

// Bus fans editor events out to subscribers. Emission is synchronous and in
// registration order; there is no buffering and no replay for late
// subscribers.
type Bus interface {
	// Subscribe registers a listener and returns its unsubscribe function.
	// The unsubscribe function is idempotent.
	//
	// Parameters:
	//   - listener: the function to invoke on each event
	//
	// Returns:
	//   - func(): removes the listener when called
	Subscribe(listener Listener) func()

	// Emit synchronously invokes every current subscriber in registration
	// order.
	//
	// Parameters:
	//   - e: the event to broadcast
	Emit(e Event)
}

type busImpl struct {
	mu     *sync.Mutex
	nextID uint64
	subs   []subscription
}

type subscription struct {
	id       uint64
	listener Listener
}

var _ Bus = &busImpl{}

// NewBus creates an empty event bus.
//
// Returns:
//   - Bus: the newly created bus
func NewBus() Bus {
	return &busImpl{
		mu: &sync.Mutex{},
	}
}

func (b *busImpl) Subscribe(listener Listener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription{id: id, listener: listener})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *busImpl) Emit(e Event) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	// Invoked outside the lock so listeners may subscribe or unsubscribe
	// without deadlocking.
	for _, s := range subs {
		s.listener(e)
	}
}
