package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quarry3d/quarry/editor/scenegraph"
)

func TestEmitReachesSubscribersInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var order []string

	bus.Subscribe(func(e Event) { order = append(order, "first:"+string(e.Kind)) })
	bus.Subscribe(func(e Event) { order = append(order, "second:"+string(e.Kind)) })

	bus.Emit(Event{Kind: KindSelect, Object: &scenegraph.SceneObject{ID: "sphere"}})

	assert.Equal(t, []string{"first:select", "second:select"}, order)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	var count int

	unsub := bus.Subscribe(func(Event) { count++ })
	bus.Emit(Event{Kind: KindDeselect})
	unsub()
	bus.Emit(Event{Kind: KindDeselect})

	assert.Equal(t, 1, count)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus()
	var count int

	unsub := bus.Subscribe(func(Event) { count++ })
	bus.Subscribe(func(Event) { count++ })

	unsub()
	unsub()
	bus.Emit(Event{Kind: KindTransformEnd})

	assert.Equal(t, 1, count)
}

func TestNoReplayForLateSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Emit(Event{Kind: KindSelect})

	var got []Event
	bus.Subscribe(func(e Event) { got = append(got, e) })

	assert.Empty(t, got)
}

func TestListenerMayUnsubscribeDuringEmit(t *testing.T) {
	bus := NewBus()
	var count int

	var unsub func()
	unsub = bus.Subscribe(func(Event) {
		count++
		unsub()
	})

	bus.Emit(Event{Kind: KindTransformChange})
	bus.Emit(Event{Kind: KindTransformChange})

	assert.Equal(t, 1, count)
}

func TestTransformEventCarriesObjectAndMode(t *testing.T) {
	bus := NewBus()
	var got Event
	bus.Subscribe(func(e Event) { got = e })

	obj := &scenegraph.SceneObject{ID: "cube"}
	bus.Emit(Event{Kind: KindTransformStart, Object: obj, Mode: "rotate"})

	assert.Equal(t, KindTransformStart, got.Kind)
	assert.Equal(t, obj, got.Object)
	assert.Equal(t, "rotate", got.Mode)
}
