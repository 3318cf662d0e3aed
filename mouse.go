package koudou

// MouseButton is a set of pointer buttons.
type MouseButton uint8

const (
	MouseLeft MouseButton = 1 << iota
	MouseMiddle
	MouseRight

	MouseNone MouseButton = 0
)

// Modifier is a set of keyboard modifiers held during a pointer event.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// MouseEvent describes a pointer event in screen cells.
type MouseEvent struct {
	X, Y int
	// Button is the button that changed state. It is MouseNone for move and
	// drag events.
	Button MouseButton
	// Buttons holds every button pressed once the event has been applied.
	Buttons MouseButton
	Mods    Modifier
}

func (e MouseEvent) IsLeft() bool   { return e.Button == MouseLeft }
func (e MouseEvent) IsMiddle() bool { return e.Button == MouseMiddle }
func (e MouseEvent) IsRight() bool  { return e.Button == MouseRight }

func (e MouseEvent) IsLeftDown() bool   { return e.Buttons&MouseLeft != 0 }
func (e MouseEvent) IsMiddleDown() bool { return e.Buttons&MouseMiddle != 0 }
func (e MouseEvent) IsRightDown() bool  { return e.Buttons&MouseRight != 0 }

func (e MouseEvent) IsShiftDown() bool   { return e.Mods&ModShift != 0 }
func (e MouseEvent) IsControlDown() bool { return e.Mods&ModCtrl != 0 }
func (e MouseEvent) IsAltDown() bool     { return e.Mods&ModAlt != 0 }
func (e MouseEvent) IsMetaDown() bool    { return e.Mods&ModMeta != 0 }

// MouseEventKind selects which behavior hook an event is routed to.
type MouseEventKind uint8

const (
	MouseMoved MouseEventKind = iota + 1
	MouseDragged
	MousePressed
	MouseReleased
)

func (k MouseEventKind) String() string {
	switch k {
	case MouseMoved:
		return "move"
	case MouseDragged:
		return "drag"
	case MousePressed:
		return "down"
	case MouseReleased:
		return "up"
	default:
		return "unknown"
	}
}
