package koudou

import (
	"testing"
)

type testEvent struct {
	Value int
}

type otherEvent struct {
	X float32
}

func TestEventBusSubscribeAndPublish(t *testing.T) {
	bus := &EventBus{}
	received := 0
	Subscribe(bus, func(e testEvent) {
		received += e.Value
	})
	Subscribe(bus, func(e testEvent) {
		received += e.Value * 2
	})
	Publish(bus, testEvent{Value: 1})
	if received != 3 {
		t.Errorf("expected received 3, got %d", received)
	}
	Publish(bus, testEvent{Value: 2})
	if received != 3+6 {
		t.Errorf("expected received 9, got %d", received)
	}
}

func TestEventBusMultipleTypes(t *testing.T) {
	bus := &EventBus{}
	received1 := 0
	received2 := 0
	Subscribe(bus, func(e testEvent) {
		received1 += e.Value
	})
	Subscribe(bus, func(e otherEvent) {
		received2 += int(e.X)
	})
	Publish(bus, testEvent{Value: 42})
	Publish(bus, otherEvent{X: 10})
	if received1 != 42 {
		t.Errorf("expected received1 42, got %d", received1)
	}
	if received2 != 10 {
		t.Errorf("expected received2 10, got %d", received2)
	}
}

func TestEventBusNoHandlers(t *testing.T) {
	bus := &EventBus{}
	// No panic expected
	Publish(bus, testEvent{Value: 42})
	Publish[testEvent](nil, testEvent{})
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := &EventBus{}
	var order []int
	Subscribe(bus, func(testEvent) { order = append(order, 1) })
	sub := Subscribe(bus, func(testEvent) { order = append(order, 2) })
	Subscribe(bus, func(testEvent) { order = append(order, 3) })

	Unsubscribe(bus, sub)
	Unsubscribe(bus, sub)
	Unsubscribe(bus, Subscription{})
	Publish(bus, testEvent{})

	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("expected [1 3], got %v", order)
	}
}

func TestEventBusUnsubscribeDuringPublish(t *testing.T) {
	bus := &EventBus{}
	calls := 0
	var sub Subscription
	sub = Subscribe(bus, func(testEvent) {
		calls++
		Unsubscribe(bus, sub)
	})
	Subscribe(bus, func(testEvent) { calls++ })

	Publish(bus, testEvent{})
	if calls != 2 {
		t.Errorf("expected both handlers to run, got %d calls", calls)
	}
	Publish(bus, testEvent{})
	if calls != 3 {
		t.Errorf("expected only the remaining handler to run, got %d calls", calls)
	}
}
