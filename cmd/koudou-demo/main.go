// Command koudou-demo is a terminal playground for entity behaviors: glyphs
// drift, can be dragged with the mouse and throw short-lived sparks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintf(os.Stderr, "koudou-demo: %v\n", err)
		os.Exit(1)
	}
}

func realMain() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	glyphs := flag.Int("glyphs", -1, "number of glyphs (overrides config)")
	logFile := flag.String("log", "", "write logs to this file (overrides config)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *glyphs >= 0 {
		cfg.Glyphs = *glyphs
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *mute {
		cfg.Sound = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	return run(cfg, logger)
}

func run(cfg *Config, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	var t *tone
	if cfg.Sound {
		// Non-fatal, the demo runs without sound.
		if t, err = newTone(); err != nil {
			logger.Warn("audio disabled", "error", err)
		}
	}
	defer t.close()

	d := newDemo(cfg, logger, screen, t)
	d.populate()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	loopCtx, cancelLoop := context.WithCancel(ctx)

	events := make(chan tcell.Event, 64)
	g.Go(func() error {
		for {
			// PollEvent returns nil once the screen is finalized.
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-loopCtx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		defer screen.Fini()
		defer cancelLoop()
		return d.loop(loopCtx, events)
	})
	return g.Wait()
}
