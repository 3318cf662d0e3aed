package tcellmouse

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/edwinsyarief/koudou"
)

func mouse(x, y int, btn tcell.ButtonMask, mod tcell.ModMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, btn, mod)
}

func kinds(evs []Event) []koudou.MouseEventKind {
	out := make([]koudou.MouseEventKind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}

func expectKinds(t *testing.T, got []Event, want ...koudou.MouseEventKind) {
	t.Helper()
	k := kinds(got)
	if len(k) != len(want) {
		t.Fatalf("expected %v, got %v", want, k)
	}
	for i := range want {
		if k[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, k)
		}
	}
}

func TestTranslatePressDragRelease(t *testing.T) {
	var tr Translator

	evs := tr.Translate(nil, mouse(3, 4, tcell.ButtonNone, tcell.ModNone))
	expectKinds(t, evs, koudou.MouseMoved)
	if evs[0].Mouse.X != 3 || evs[0].Mouse.Y != 4 {
		t.Errorf("unexpected position %+v", evs[0].Mouse)
	}

	evs = tr.Translate(nil, mouse(3, 4, tcell.ButtonPrimary, tcell.ModNone))
	expectKinds(t, evs, koudou.MousePressed)
	if !evs[0].Mouse.IsLeft() || !evs[0].Mouse.IsLeftDown() {
		t.Errorf("expected a left press, got %+v", evs[0].Mouse)
	}

	evs = tr.Translate(nil, mouse(5, 4, tcell.ButtonPrimary, tcell.ModNone))
	expectKinds(t, evs, koudou.MouseDragged)
	if evs[0].Mouse.Button != koudou.MouseNone || !evs[0].Mouse.IsLeftDown() {
		t.Errorf("drag should carry held buttons only, got %+v", evs[0].Mouse)
	}

	evs = tr.Translate(nil, mouse(5, 4, tcell.ButtonNone, tcell.ModNone))
	expectKinds(t, evs, koudou.MouseReleased)
	if !evs[0].Mouse.IsLeft() || evs[0].Mouse.Buttons != koudou.MouseNone {
		t.Errorf("expected a left release with nothing held, got %+v", evs[0].Mouse)
	}
	if tr.Buttons() != koudou.MouseNone {
		t.Errorf("expected no held buttons, got %v", tr.Buttons())
	}
}

func TestTranslateDuplicateSuppressed(t *testing.T) {
	var tr Translator
	tr.Translate(nil, mouse(1, 1, tcell.ButtonPrimary, tcell.ModNone))
	evs := tr.Translate(nil, mouse(1, 1, tcell.ButtonPrimary, tcell.ModNone))
	if len(evs) != 0 {
		t.Errorf("expected no events for an unchanged state, got %v", kinds(evs))
	}
}

func TestTranslateWheelOnly(t *testing.T) {
	var tr Translator
	tr.Translate(nil, mouse(2, 2, tcell.ButtonNone, tcell.ModNone))
	evs := tr.Translate(nil, mouse(2, 2, tcell.WheelUp, tcell.ModNone))
	if len(evs) != 0 {
		t.Errorf("expected wheel to be ignored, got %v", kinds(evs))
	}
}

func TestTranslateMoveAndPressTogether(t *testing.T) {
	var tr Translator
	tr.Translate(nil, mouse(0, 0, tcell.ButtonNone, tcell.ModNone))

	evs := tr.Translate(nil, mouse(4, 4, tcell.ButtonSecondary, tcell.ModShift|tcell.ModCtrl))
	expectKinds(t, evs, koudou.MouseMoved, koudou.MousePressed)
	down := evs[1].Mouse
	if !down.IsRight() || !down.IsShiftDown() || !down.IsControlDown() || down.IsAltDown() {
		t.Errorf("unexpected press %+v", down)
	}
}

func TestTranslateButtonSwap(t *testing.T) {
	var tr Translator
	tr.Translate(nil, mouse(0, 0, tcell.ButtonPrimary, tcell.ModNone))

	evs := tr.Translate(nil, mouse(0, 0, tcell.ButtonMiddle, tcell.ModNone))
	expectKinds(t, evs, koudou.MouseReleased, koudou.MousePressed)
	if !evs[0].Mouse.IsLeft() || evs[0].Mouse.Buttons != koudou.MouseNone {
		t.Errorf("expected left release first, got %+v", evs[0].Mouse)
	}
	if !evs[1].Mouse.IsMiddle() || evs[1].Mouse.Buttons != koudou.MouseMiddle {
		t.Errorf("expected middle press second, got %+v", evs[1].Mouse)
	}
}

func TestTranslateReset(t *testing.T) {
	var tr Translator
	tr.Translate(nil, mouse(0, 0, tcell.ButtonPrimary, tcell.ModNone))
	tr.Reset()
	evs := tr.Translate(nil, mouse(0, 0, tcell.ButtonPrimary, tcell.ModNone))
	expectKinds(t, evs, koudou.MouseMoved, koudou.MousePressed)
}

type journal struct {
	koudou.Base
	got []string
}

func (j *journal) MouseMove(koudou.MouseEvent) { j.got = append(j.got, "move") }
func (j *journal) MouseDrag(koudou.MouseEvent) { j.got = append(j.got, "drag") }
func (j *journal) MouseDown(koudou.MouseEvent) { j.got = append(j.got, "down") }
func (j *journal) MouseUp(koudou.MouseEvent)   { j.got = append(j.got, "up") }

func TestFeed(t *testing.T) {
	w := koudou.NewWorld(1)
	sys := koudou.NewSystem(w)
	j := koudou.Attach(w, w.CreateEntity(), &journal{})

	var tr Translator
	n := tr.Feed(sys, mouse(1, 1, tcell.ButtonPrimary, tcell.ModNone))
	n += tr.Feed(sys, mouse(2, 1, tcell.ButtonPrimary, tcell.ModNone))
	n += tr.Feed(sys, mouse(2, 1, tcell.ButtonNone, tcell.ModNone))
	sys.Update(time.Millisecond)

	want := []string{"move", "down", "drag", "up"}
	if n != len(want) || len(j.got) != len(want) {
		t.Fatalf("expected %v, got %v (n=%d)", want, j.got, n)
	}
	for i := range want {
		if j.got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, j.got)
		}
	}
}
