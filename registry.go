package koudou

import (
	"context"
	"log/slog"
	"reflect"
	"slices"
)

// BehaviorComponent stores the behaviors attached to an entity, in attach
// order.
type BehaviorComponent struct {
	Behaviors []Behavior
}

// release invalidates every member that is not carried over into next. It
// runs when the component is removed, overwritten or its entity is removed.
func (c *BehaviorComponent) release(next *BehaviorComponent) {
	for _, b := range c.Behaviors {
		base := baseOf(b)
		if base == nil || (next != nil && next.holds(base)) {
			continue
		}
		base.handle.Invalidate()
	}
}

func (c *BehaviorComponent) holds(base *Base) bool {
	for _, b := range c.Behaviors {
		if baseOf(b) == base {
			return true
		}
	}
	return false
}

// BehaviorAttached is published on the world's event bus after a behavior is
// attached.
type BehaviorAttached struct {
	Entity   Entity
	Behavior Behavior
}

// BehaviorRemoved is published after a behavior is removed from its entity.
type BehaviorRemoved struct {
	Entity   Entity
	Behavior Behavior
}

// Attach binds b to e, appends it to the entity's behavior list and returns
// it. The list is created on first use. If e is not a live entity nothing is
// stored and b is returned unbound.
//
// It panics if b has already been attached, to e or any other entity.
func Attach[B Behavior](w *World, e Entity, b B) B {
	base := baseOf(b)
	if base == nil {
		panic("koudou: cannot attach a nil behavior")
	}
	if base.bound {
		panic("koudou: behavior is already bound to an entity")
	}
	comp, ok := AddComponent[BehaviorComponent](w, e)
	if !ok {
		return b
	}
	base.bound = true
	base.handle = Handle{world: w, entity: e}
	comp.Behaviors = append(comp.Behaviors, b)
	if w.debugEnabled() {
		w.logger.Debug("behavior attached", "entity", e, "behavior", behaviorName(b))
	}
	Publish(w.events, BehaviorAttached{Entity: e, Behavior: b})
	return b
}

// AttachFunc attaches a FuncBehavior running fn on every update.
func AttachFunc(w *World, e Entity, fn UpdateFunc) *FuncBehavior {
	return Attach(w, e, NewFuncBehavior(fn))
}

// Behaviors returns a copy of the entity's behavior list, or nil.
func Behaviors(w *World, e Entity) []Behavior {
	comp, ok := GetComponent[BehaviorComponent](w, e)
	if !ok || len(comp.Behaviors) == 0 {
		return nil
	}
	return slices.Clone(comp.Behaviors)
}

// BehaviorsOfType returns the entity's behaviors of dynamic type B in attach
// order.
func BehaviorsOfType[B Behavior](w *World, e Entity) []B {
	comp, ok := GetComponent[BehaviorComponent](w, e)
	if !ok {
		return nil
	}
	var out []B
	for _, b := range comp.Behaviors {
		if tb, ok := b.(B); ok {
			out = append(out, tb)
		}
	}
	return out
}

// HasBehavior reports whether the entity has a behavior of dynamic type B.
func HasBehavior[B Behavior](w *World, e Entity) bool {
	comp, ok := GetComponent[BehaviorComponent](w, e)
	if !ok {
		return false
	}
	for _, b := range comp.Behaviors {
		if _, ok := b.(B); ok {
			return true
		}
	}
	return false
}

// RemoveOfType removes every behavior of dynamic type B from the entity and
// returns how many were removed. When B is an interface type, every behavior
// implementing it is removed.
//
//	koudou.RemoveOfType[*Seeker](w, e)
func RemoveOfType[B Behavior](w *World, e Entity) int {
	return removeWhere(w, e, func(b Behavior) bool {
		_, ok := b.(B)
		return ok
	})
}

// Remove removes the given behavior instance from the entity. It is a no-op
// if the entity does not hold it or b is nil.
func Remove(w *World, e Entity, b Behavior) bool {
	target := baseOf(b)
	if target == nil {
		return false
	}
	return removeWhere(w, e, func(x Behavior) bool {
		return x.behaviorBase() == target
	}) > 0
}

// RemoveAll removes every behavior from the entity.
func RemoveAll(w *World, e Entity) int {
	return removeWhere(w, e, func(Behavior) bool { return true })
}

// removeWhere drops matching behaviors from e's list and invalidates them.
func removeWhere(w *World, e Entity, match func(Behavior) bool) int {
	comp, ok := GetComponent[BehaviorComponent](w, e)
	if !ok {
		return 0
	}
	kept, dropped := splitFunc(comp.Behaviors, match)
	comp.Behaviors = kept
	debug := w.debugEnabled()
	for _, b := range dropped {
		b.behaviorBase().handle.Invalidate()
		if debug {
			w.logger.Debug("behavior removed", "entity", e, "behavior", behaviorName(b))
		}
		Publish(w.events, BehaviorRemoved{Entity: e, Behavior: b})
	}
	return len(dropped)
}

// baseOf returns the embedded Base of b, or nil for a nil interface or a
// typed nil pointer.
func baseOf(b Behavior) *Base {
	if b == nil {
		return nil
	}
	if v := reflect.ValueOf(b); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return b.behaviorBase()
}

func (w *World) debugEnabled() bool {
	return w.logger.Enabled(context.Background(), slog.LevelDebug)
}

func behaviorName(b Behavior) string {
	return reflect.TypeOf(b).String()
}
