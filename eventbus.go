package koudou

import "reflect"

// MaxEventTypes defines the maximum number of unique event types that can be
// registered in the EventBus.
const MaxEventTypes = 256

// EventBus is a synchronous, type-safe event bus. Handlers subscribe to an
// event type and are called in subscription order for every published event
// of that type.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]handlerEntry
	nextEventTypeID int
	nextHandlerID   uint64
}

type handlerEntry struct {
	id uint64
	fn any
}

// Subscription identifies a handler registered with Subscribe.
type Subscription struct {
	typeID uint8
	id     uint64
}

// Subscribe registers a handler to be called when an event of type T is
// published.
func Subscribe[T any](bus *EventBus, handler func(T)) Subscription {
	id := bus.getEventTypeID(reflect.TypeFor[T]())
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]handlerEntry, 0, 4)
	}
	bus.nextHandlerID++
	bus.handlers[id] = append(bus.handlers[id], handlerEntry{id: bus.nextHandlerID, fn: handler})
	return Subscription{typeID: id, id: bus.nextHandlerID}
}

// Unsubscribe removes a handler. Unknown subscriptions are ignored. A handler
// removed while an event is being published still receives that event.
func Unsubscribe(bus *EventBus, sub Subscription) {
	hs := bus.handlers[sub.typeID]
	for i, h := range hs {
		if h.id != sub.id {
			continue
		}
		// Build a new slice so an in-flight Publish keeps its view.
		next := make([]handlerEntry, 0, len(hs)-1)
		next = append(next, hs[:i]...)
		bus.handlers[sub.typeID] = append(next, hs[i+1:]...)
		return
	}
}

// Publish calls every handler subscribed to T with event, synchronously and
// in subscription order. Publishing on a nil bus is a no-op.
func Publish[T any](bus *EventBus, event T) {
	if bus == nil {
		return
	}
	if id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]; ok {
		for _, h := range bus.handlers[id] {
			h.fn.(func(T))(event)
		}
	}
}

// getEventTypeID retrieves or assigns an ID for the event type.
func (bus *EventBus) getEventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if bus.nextEventTypeID >= MaxEventTypes {
		panic("koudou: too many event types")
	}
	id := uint8(bus.nextEventTypeID)
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}
