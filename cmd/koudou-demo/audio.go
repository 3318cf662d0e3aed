package main

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	toneDuration = 50 * time.Millisecond
)

// tone plays short sine beeps. A nil *tone is silent.
type tone struct {
	rate beep.SampleRate
}

func newTone() (*tone, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &tone{rate: sampleRate}, nil
}

func (t *tone) play(freq float64) {
	if t == nil {
		return
	}
	sine, err := generators.SineTone(t.rate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(t.rate.N(toneDuration), sine))
}

func (t *tone) close() {
	if t == nil {
		return
	}
	speaker.Close()
}
