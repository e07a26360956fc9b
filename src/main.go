package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"lifeterm/src/config"
	"lifeterm/src/life"
	"lifeterm/src/pattern"
	"lifeterm/src/universe"
	"lifeterm/src/view"
)

func main() {
	cfg, err := initOptions()
	if err != nil {
		log.Fatalf("lifeterm: %+v", err)
	}

	tmpl, err := seedTemplate(cfg)
	if err != nil {
		log.Fatalf("lifeterm: %+v", err)
	}

	if cfg.Interactive {
		err = runInteractive(cfg, tmpl)
	} else {
		err = runHeadless(cfg, tmpl)
	}
	if err != nil {
		log.Fatalf("lifeterm: %+v", err)
	}
}

//newUniverse creates the universe settled with the template and adds the built-in templates
func newUniverse(cfg config.Config, tmpl *pattern.Template, stateCh chan universe.Status) (*universe.Simulation, error) {
	o := cfg.Options()
	if tmpl != nil {
		o.Live = tmpl.Center(o.Width, o.Height).Cells
	}
	u, err := universe.New(&o, stateCh)
	if err != nil {
		return nil, err
	}
	for _, t := range pattern.Library() {
		u.AddTemplate(t)
	}
	return u, nil
}

func initOptions() (config.Config, error) {
	cfg := config.Default()
	var (
		configFile string
		interval   = time.Duration(cfg.Interval)
	)

	flaggy.SetName("lifeterm")
	flaggy.SetDescription("Conway's Game of Life in the terminal")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&configFile, "c", "config", "JSON configuration file, its values override the flags")
	flaggy.Int(&cfg.Width, "x", "width", "Width of a simulation field, 0 means the terminal width in the interactive mode")
	flaggy.Int(&cfg.Height, "y", "height", "Height of a simulation field, 0 means the terminal height in the interactive mode")
	flaggy.Duration(&interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&cfg.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 means no limit")
	flaggy.Bool(&cfg.Interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&cfg.Random, "r", "random", "Settle with random data")
	flaggy.Int64(&cfg.Seed, "S", "seed", "Random seed, 0 means the current time")
	flaggy.String(&cfg.Rule, "R", "rule", "Rule ["+strings.Join(life.RuleNames(), "|")+"] or B/S notation, for example B36/S23")
	flaggy.String(&cfg.Pattern, "p", "pattern", "Seeding template ["+strings.Join(pattern.Names(), "|")+"], empty for none")
	flaggy.String(&cfg.PatternFile, "f", "file", "Seeding pattern file in plaintext (.cells) or RLE format")

	flaggy.Parse()
	cfg.Interval = config.Duration(interval)

	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile, cfg); err != nil {
			return cfg, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

//seedTemplate returns the pattern to settle on start, nil for none
func seedTemplate(cfg config.Config) (*pattern.Template, error) {
	if cfg.PatternFile != "" {
		t, err := pattern.Load(cfg.PatternFile)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	if cfg.Pattern == "" {
		return nil, nil
	}
	t, ok := pattern.Lookup(cfg.Pattern)
	if !ok {
		return nil, errors.Errorf("unknown pattern %q, known patterns: %s", cfg.Pattern, strings.Join(pattern.Names(), ", "))
	}
	return &t, nil
}

func runInteractive(cfg config.Config, tmpl *pattern.Template) error {
	v, err := view.NewViewTerminal()
	if err != nil {
		return errors.Wrap(err, "terminal setup")
	}
	//zero dimensions take the size of the field view
	w, h := v.FieldSize()
	if cfg.Width == 0 {
		cfg.Width = w
	}
	if cfg.Height == 0 {
		cfg.Height = h
	}
	u, err := newUniverse(cfg, tmpl, nil)
	if err != nil {
		v.Close()
		return err
	}
	defer u.Close()
	u.RegisterViewer(v)
	return v.Start()
}

func runHeadless(cfg config.Config, tmpl *pattern.Template) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stateCh := make(chan universe.Status, 10) //the buffered channel to getting the universe status
	u, err := newUniverse(cfg, tmpl, stateCh)
	if err != nil {
		return err
	}
	defer u.Close()

	out := view.NewConsoleOut(os.Stdout, isTerminal(os.Stdout))
	u.RegisterViewer(out)
	if err := out.Start(); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	finished := make(chan struct{})
	eg.Go(func() error {
		defer close(finished)
		for {
			select {
			case st := <-stateCh:
				if st.RunningMode == universe.RunningStateFinished {
					return nil
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
	eg.Go(func() error {
		select {
		case <-ctx.Done():
			u.Stop()
			fmt.Println("\nInterrupted")
		case <-finished:
		}
		return nil
	})

	u.Run()
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
