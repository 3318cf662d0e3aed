// Package tcellmouse turns tcell mouse events into behavior dispatches.
//
// tcell reports only the current pointer position and button state, so the
// Translator remembers the previous state and derives move, drag, down and up
// events from the difference.
package tcellmouse

import (
	"github.com/gdamore/tcell/v2"

	"github.com/edwinsyarief/koudou"
)

// Event is one translated pointer event.
type Event struct {
	Kind  koudou.MouseEventKind
	Mouse koudou.MouseEvent
}

// buttonOrder fixes the order in which simultaneous changes are emitted.
var buttonOrder = [...]struct {
	mask   tcell.ButtonMask
	button koudou.MouseButton
}{
	{tcell.ButtonPrimary, koudou.MouseLeft},
	{tcell.ButtonMiddle, koudou.MouseMiddle},
	{tcell.ButtonSecondary, koudou.MouseRight},
}

// Translator tracks pointer state between tcell events. The zero value is
// ready to use.
type Translator struct {
	held koudou.MouseButton
	x, y int
	seen bool
	buf  []Event
}

// Buttons returns the buttons currently considered held.
func (t *Translator) Buttons() koudou.MouseButton { return t.held }

// Reset forgets the tracked state, for example after the terminal lost focus.
func (t *Translator) Reset() {
	t.held = koudou.MouseNone
	t.seen = false
}

// Translate appends the events derived from ev to dst.
//
// Motion is reported first, as a drag if any button was already held and as a
// move otherwise, followed by releases and then presses, one event per
// button. Wheel-only events that do not move the pointer produce nothing.
func (t *Translator) Translate(dst []Event, ev *tcell.EventMouse) []Event {
	x, y := ev.Position()
	now := buttonsOf(ev.Buttons())
	mods := modifiersOf(ev.Modifiers())

	if !t.seen || x != t.x || y != t.y {
		kind := koudou.MouseMoved
		if t.held != koudou.MouseNone {
			kind = koudou.MouseDragged
		}
		dst = append(dst, Event{Kind: kind, Mouse: koudou.MouseEvent{
			X: x, Y: y, Buttons: t.held, Mods: mods,
		}})
	}
	t.x, t.y, t.seen = x, y, true

	released := t.held &^ now
	pressed := now &^ t.held
	for _, b := range buttonOrder {
		if released&b.button == 0 {
			continue
		}
		t.held &^= b.button
		dst = append(dst, Event{Kind: koudou.MouseReleased, Mouse: koudou.MouseEvent{
			X: x, Y: y, Button: b.button, Buttons: t.held, Mods: mods,
		}})
	}
	for _, b := range buttonOrder {
		if pressed&b.button == 0 {
			continue
		}
		t.held |= b.button
		dst = append(dst, Event{Kind: koudou.MousePressed, Mouse: koudou.MouseEvent{
			X: x, Y: y, Button: b.button, Buttons: t.held, Mods: mods,
		}})
	}
	return dst
}

// Feed translates ev and dispatches the result to sys. It returns the number
// of dispatched events.
func (t *Translator) Feed(sys *koudou.System, ev *tcell.EventMouse) int {
	t.buf = t.Translate(t.buf[:0], ev)
	for _, e := range t.buf {
		sys.Dispatch(e.Kind, e.Mouse)
	}
	return len(t.buf)
}

func buttonsOf(m tcell.ButtonMask) koudou.MouseButton {
	var out koudou.MouseButton
	for _, b := range buttonOrder {
		if m&b.mask != 0 {
			out |= b.button
		}
	}
	return out
}

func modifiersOf(m tcell.ModMask) koudou.Modifier {
	var out koudou.Modifier
	if m&tcell.ModShift != 0 {
		out |= koudou.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= koudou.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= koudou.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= koudou.ModMeta
	}
	return out
}
