// Profiling:
// go build ./profile/behaviors
// ./behaviors -mode cpu
// go tool pprof -http=":8000" -nodefraction=0.001 ./behaviors cpu.pprof

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/DataDog/sketches-go/ddsketch"
	"github.com/edwinsyarief/koudou"
	"github.com/pkg/profile"
)

type mover struct {
	koudou.Base
	x, v float64
}

func (m *mover) Update(dt time.Duration) { m.x += m.v * dt.Seconds() }

type blinker struct {
	koudou.Base
	on bool
}

func (b *blinker) Update(time.Duration) { b.on = !b.on }

func main() {
	mode := flag.String("mode", "mem", "profile mode: cpu or mem")
	rounds := flag.Int("rounds", 20, "number of worlds to build")
	frames := flag.Int("frames", 500, "frames per world")
	entities := flag.Int("entities", 1000, "entities per world")
	flag.Parse()

	var p interface{ Stop() }
	switch *mode {
	case "cpu":
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		p = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
	sketch, err := ddsketch.NewDefaultDDSketch(0.01)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create sketch: %v\n", err)
		os.Exit(1)
	}
	run(*rounds, *frames, *entities, sketch)
	p.Stop()

	report(sketch)
}

func run(rounds, frames, numEntities int, sketch *ddsketch.DDSketch) {
	quiet := slog.New(slog.DiscardHandler)
	for range rounds {
		w := koudou.NewWorld(numEntities, koudou.WithLogger(quiet))
		sys := koudou.NewSystem(w)
		for i, e := range w.CreateEntities(numEntities) {
			koudou.Attach(w, e, &mover{v: float64(i)})
			koudou.Attach(w, e, &blinker{})
		}
		for f := range frames {
			start := time.Now()
			sys.Update(16 * time.Millisecond)
			// Churn: every tenth frame swaps the blinkers out and back in.
			if f%10 == 0 {
				for _, e := range koudou.EntitiesWith[koudou.BehaviorComponent](w) {
					koudou.RemoveOfType[*blinker](w, e)
					koudou.Attach(w, e, &blinker{})
				}
			}
			if err := sketch.Add(float64(time.Since(start).Microseconds())); err != nil {
				fmt.Fprintf(os.Stderr, "record frame: %v\n", err)
			}
		}
	}
}

func report(sketch *ddsketch.DDSketch) {
	fmt.Printf("frames: %.0f\n", sketch.GetCount())
	for _, q := range []float64{0.50, 0.90, 0.99} {
		v, err := sketch.GetValueAtQuantile(q)
		if err != nil {
			continue
		}
		fmt.Printf("p%-3.0f %8.1fµs\n", q*100, v)
	}
}
