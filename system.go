package koudou

import "time"

// System dispatches updates and pointer events to every attached behavior.
//
// Entities are visited in ID order and behaviors in attach order. Each
// entity's list is snapshotted before dispatch, so behaviors may attach or
// remove behaviors (including themselves) and remove entities while the
// system is running. A behavior invalidated earlier in the same pass is
// skipped; one attached to an entity that has already been visited waits for
// the next pass.
type System struct {
	world    *World
	entities []Entity
	scratch  []Behavior
}

// NewSystem returns a System driving the behaviors of w.
func NewSystem(w *World) *System {
	return &System{world: w}
}

// World returns the world the system dispatches over.
func (s *System) World() *World { return s.world }

// Update calls Update(dt) on every valid behavior.
func (s *System) Update(dt time.Duration) {
	s.each(func(b Behavior) { b.Update(dt) })
}

func (s *System) MouseMove(ev MouseEvent) { s.each(func(b Behavior) { b.MouseMove(ev) }) }
func (s *System) MouseDrag(ev MouseEvent) { s.each(func(b Behavior) { b.MouseDrag(ev) }) }
func (s *System) MouseDown(ev MouseEvent) { s.each(func(b Behavior) { b.MouseDown(ev) }) }
func (s *System) MouseUp(ev MouseEvent)   { s.each(func(b Behavior) { b.MouseUp(ev) }) }

// Dispatch routes ev to the hook selected by kind. Unknown kinds are ignored.
func (s *System) Dispatch(kind MouseEventKind, ev MouseEvent) {
	switch kind {
	case MouseMoved:
		s.MouseMove(ev)
	case MouseDragged:
		s.MouseDrag(ev)
	case MousePressed:
		s.MouseDown(ev)
	case MouseReleased:
		s.MouseUp(ev)
	}
}

func (s *System) each(fn func(Behavior)) {
	// Take the buffers so a nested dispatch from inside a behavior allocates
	// its own instead of clobbering ours.
	ents, buf := s.entities, s.scratch
	s.entities, s.scratch = nil, nil

	ents = AppendEntitiesWith[BehaviorComponent](s.world, ents[:0])
	for _, e := range ents {
		comp, ok := GetComponent[BehaviorComponent](s.world, e)
		if !ok || len(comp.Behaviors) == 0 {
			continue
		}
		buf = append(buf[:0], comp.Behaviors...)
		for _, b := range buf {
			if b.behaviorBase().Valid() {
				fn(b)
			}
		}
	}

	clear(buf)
	s.entities, s.scratch = ents[:0], buf[:0]
}
