package koudou

import "time"

// Behavior is per-entity logic driven by a System. Implementations embed Base,
// which binds them to their entity and provides no-op defaults for every hook,
// so a behavior only overrides what it needs.
type Behavior interface {
	Update(dt time.Duration)

	MouseMove(ev MouseEvent)
	MouseDrag(ev MouseEvent)
	MouseDown(ev MouseEvent)
	MouseUp(ev MouseEvent)

	behaviorBase() *Base
}

// Base is embedded by every Behavior. A behavior is bound to exactly one
// entity when it is attached; that binding never moves to another entity.
type Base struct {
	handle Handle
	bound  bool
}

func (b *Base) behaviorBase() *Base { return b }

func (b *Base) Update(time.Duration) {}

func (b *Base) MouseMove(MouseEvent) {}
func (b *Base) MouseDrag(MouseEvent) {}
func (b *Base) MouseDown(MouseEvent) {}
func (b *Base) MouseUp(MouseEvent)   {}

// Handle returns the behavior's handle to its entity.
func (b *Base) Handle() Handle { return b.handle }

// Entity returns the entity the behavior is attached to.
func (b *Base) Entity() Entity { return b.handle.entity }

// World returns the owning world, or nil once the behavior is removed.
func (b *Base) World() *World { return b.handle.world }

// Valid reports whether the behavior is attached to a live entity.
func (b *Base) Valid() bool { return b.handle.Valid() }

// Remove detaches the behavior from its entity and invalidates its handle.
// Subsequent dispatches skip it. Calling Remove again is a no-op.
func (b *Base) Remove() {
	if w := b.handle.world; w != nil {
		removeWhere(w, b.handle.entity, func(x Behavior) bool {
			return x.behaviorBase() == b
		})
	}
	b.handle.Invalidate()
}

// UpdateFunc is the callback run by a FuncBehavior.
type UpdateFunc func(h Handle, dt time.Duration)

// FuncBehavior adapts a plain update callback into a Behavior.
type FuncBehavior struct {
	Base
	fn UpdateFunc
}

// NewFuncBehavior returns an unattached behavior running fn on each update.
func NewFuncBehavior(fn UpdateFunc) *FuncBehavior {
	return &FuncBehavior{fn: fn}
}

// Update runs the callback with the behavior's handle.
func (f *FuncBehavior) Update(dt time.Duration) {
	if f.fn == nil || !f.Valid() {
		return
	}
	f.fn(f.Handle(), dt)
}
