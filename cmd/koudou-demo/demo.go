package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/edwinsyarief/koudou"
	"github.com/edwinsyarief/koudou/tcellmouse"
)

const glyphRunes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@#$%&"

var glyphColors = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorBlue,
	tcell.ColorAqua,
	tcell.ColorPurple,
	tcell.ColorWhite,
}

type demo struct {
	cfg    *Config
	logger *slog.Logger
	screen tcell.Screen
	world  *koudou.World
	sys    *koudou.System
	clock  *koudou.Clock
	mouse  tcellmouse.Translator
	rng    *rand.Rand
	tone   *tone
	frames uint64
}

func newDemo(cfg *Config, logger *slog.Logger, screen tcell.Screen, t *tone) *demo {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	world := koudou.NewWorld(cfg.Glyphs*2, koudou.WithLogger(logger))
	koudou.AddResource(world.Resources(), &bounds{})

	d := &demo{
		cfg:    cfg,
		logger: logger,
		screen: screen,
		world:  world,
		sys:    koudou.NewSystem(world),
		clock:  koudou.NewClock(cfg.MaxStep, nil),
		rng:    rand.New(rand.NewSource(seed)),
		tone:   t,
	}
	koudou.Subscribe(world.Events(), func(ev koudou.BehaviorRemoved) {
		logger.Info("behavior removed", "entity", ev.Entity, "behavior", fmt.Sprintf("%T", ev.Behavior))
	})
	d.resize()
	return d
}

func (d *demo) resize() {
	b, _ := koudou.GetResource[bounds](d.world.Resources())
	b.W, b.H = d.screen.Size()
}

// populate spawns the configured number of glyphs.
func (d *demo) populate() {
	b, _ := koudou.GetResource[bounds](d.world.Resources())
	for i := 0; i < d.cfg.Glyphs; i++ {
		e := d.world.CreateEntity()
		koudou.SetComponent(d.world, e, Glyph{
			X:     d.rng.Float64() * float64(max(b.W-1, 0)),
			Y:     1 + d.rng.Float64()*float64(max(b.H-2, 0)),
			Rune:  rune(glyphRunes[d.rng.Intn(len(glyphRunes))]),
			Color: glyphColors[d.rng.Intn(len(glyphColors))],
		})
		koudou.Attach(d.world, e, &drifter{
			VX: (d.rng.Float64()*2 - 1) * 8,
			VY: (d.rng.Float64()*2 - 1) * 4,
		})
		koudou.Attach(d.world, e, &draggable{})
		if i%3 == 0 {
			koudou.Attach(d.world, e, &clicker{
				tone:  d.tone,
				freq:  440 + float64(d.rng.Intn(8))*110,
				spawn: d.spawnSpark,
			})
		}
	}
	d.logger.Info("world populated", "glyphs", d.cfg.Glyphs, "entities", d.world.Len())
}

func (d *demo) spawnSpark(x, y int) {
	e := d.world.CreateEntity()
	koudou.SetComponent(d.world, e, Glyph{
		X:     float64(x),
		Y:     float64(y - 1),
		Rune:  '*',
		Color: tcell.ColorYellow,
	})
	koudou.AttachFunc(d.world, e, sparkUpdate(d.cfg.SparkLifetime))
}

// reset drops every entity and starts over.
func (d *demo) reset() {
	d.world.ClearEntities()
	d.mouse.Reset()
	d.populate()
}

// handleEvent applies one terminal event. It returns false when the demo
// should quit.
func (d *demo) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			d.reset()
		}
	case *tcell.EventMouse:
		d.mouse.Feed(d.sys, ev)
	case *tcell.EventResize:
		d.resize()
		d.screen.Sync()
	case *tcell.EventFocus:
		if !ev.Focused {
			d.mouse.Reset()
		}
	}
	return true
}

// frame advances the world by one clock tick and redraws.
func (d *demo) frame() {
	d.sys.Update(d.clock.Tick())
	d.frames++
	d.draw()
}

func (d *demo) draw() {
	d.screen.Clear()
	behaviors := 0
	for _, e := range koudou.EntitiesWith[Glyph](d.world) {
		g, _ := koudou.GetComponent[Glyph](d.world, e)
		style := tcell.StyleDefault.Foreground(g.Color)
		if g.Highlight {
			style = style.Reverse(true)
		}
		x, y := g.Cell()
		d.screen.SetContent(x, y, g.Rune, nil, style)
		behaviors += len(koudou.Behaviors(d.world, e))
	}

	status := fmt.Sprintf(" entities %d  behaviors %d  | drag: left  stop: right  spark: middle  r: reset  esc: quit",
		d.world.Len(), behaviors)
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	for i, r := range status {
		d.screen.SetContent(i, 0, r, nil, statusStyle)
	}
	d.screen.Show()
}

// loop runs frames until ctx is done, the event channel closes or the user
// quits.
func (d *demo) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(d.cfg.FrameInterval())
	defer ticker.Stop()

	d.frame()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !d.handleEvent(ev) {
				d.logger.Info("demo stopped", "frames", d.frames)
				return nil
			}
		case <-ticker.C:
			d.frame()
		}
	}
}
