package main

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/edwinsyarief/koudou"
)

// Glyph is a character drawn at a fractional cell position.
type Glyph struct {
	X, Y      float64
	Rune      rune
	Color     tcell.Color
	Highlight bool
}

// Cell returns the screen cell the glyph occupies.
func (g *Glyph) Cell() (int, int) {
	return int(math.Round(g.X)), int(math.Round(g.Y))
}

// Hit reports whether the event landed on the glyph.
func (g *Glyph) Hit(ev koudou.MouseEvent) bool {
	x, y := g.Cell()
	return x == ev.X && y == ev.Y
}

// bounds is the playfield size, kept as a world resource.
type bounds struct {
	W, H int
}

func glyphOf(b *koudou.Base) (*Glyph, bool) {
	if !b.Valid() {
		return nil, false
	}
	return koudou.GetComponent[Glyph](b.World(), b.Entity())
}

// drifter moves its glyph at a constant velocity and bounces off the edges.
// A right click stops it.
type drifter struct {
	koudou.Base
	VX, VY float64 // cells per second
}

func (d *drifter) Update(dt time.Duration) {
	g, ok := glyphOf(&d.Base)
	if !ok {
		return
	}
	g.X += d.VX * dt.Seconds()
	g.Y += d.VY * dt.Seconds()

	b, ok := koudou.GetResource[bounds](d.World().Resources())
	if !ok {
		return
	}
	// Row 0 holds the status line.
	g.X, d.VX = bounce(g.X, d.VX, 0, float64(b.W-1))
	g.Y, d.VY = bounce(g.Y, d.VY, 1, float64(b.H-1))
}

func (d *drifter) MouseDown(ev koudou.MouseEvent) {
	if g, ok := glyphOf(&d.Base); ok && ev.IsRight() && g.Hit(ev) {
		d.Remove()
	}
}

func bounce(pos, vel, lo, hi float64) (float64, float64) {
	if hi < lo {
		return lo, 0
	}
	switch {
	case pos < lo:
		return lo, math.Abs(vel)
	case pos > hi:
		return hi, -math.Abs(vel)
	}
	return pos, vel
}

// draggable lets the left button pick the glyph up. Grabbing it removes any
// drifter so the glyph stays where it is dropped.
type draggable struct {
	koudou.Base
	grabbed bool
}

func (d *draggable) MouseDown(ev koudou.MouseEvent) {
	g, ok := glyphOf(&d.Base)
	if !ok || !ev.IsLeft() || !g.Hit(ev) {
		return
	}
	d.grabbed = true
	g.Highlight = true
	koudou.RemoveOfType[*drifter](d.World(), d.Entity())
}

func (d *draggable) MouseDrag(ev koudou.MouseEvent) {
	if !d.grabbed {
		return
	}
	if g, ok := glyphOf(&d.Base); ok {
		g.X, g.Y = float64(ev.X), float64(ev.Y)
	}
}

func (d *draggable) MouseUp(ev koudou.MouseEvent) {
	if !d.grabbed || !ev.IsLeft() {
		return
	}
	d.grabbed = false
	if g, ok := glyphOf(&d.Base); ok {
		g.Highlight = false
	}
}

// clicker beeps and throws a spark when its glyph is clicked with the middle
// button or shift-clicked.
type clicker struct {
	koudou.Base
	tone  *tone
	freq  float64
	spawn func(x, y int)
}

func (c *clicker) MouseDown(ev koudou.MouseEvent) {
	g, ok := glyphOf(&c.Base)
	if !ok || !g.Hit(ev) {
		return
	}
	if !ev.IsMiddle() && !(ev.IsLeft() && ev.IsShiftDown()) {
		return
	}
	c.tone.play(c.freq)
	if c.spawn != nil {
		c.spawn(ev.X, ev.Y)
	}
}

// sparkUpdate returns the update function of a spark: it rises and removes
// its own entity once lifetime has elapsed.
func sparkUpdate(lifetime time.Duration) koudou.UpdateFunc {
	var age time.Duration
	return func(h koudou.Handle, dt time.Duration) {
		age += dt
		w := h.World()
		if age >= lifetime {
			w.RemoveEntity(h.Entity())
			return
		}
		if g, ok := koudou.GetComponent[Glyph](w, h.Entity()); ok {
			g.Y -= 4 * dt.Seconds()
		}
	}
}
