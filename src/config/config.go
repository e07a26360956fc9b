package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"lifeterm/src/life"
	"lifeterm/src/universe"
)

// Duration is a time.Duration which reads and writes JSON as "250ms"
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int64
		if err := json.Unmarshal(b, &n); err != nil {
			return errors.Errorf("duration must be a string like \"250ms\" or nanoseconds, got %s", b)
		}
		*d = Duration(n)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", s)
	}
	*d = Duration(v)
	return nil
}

// Config holds the configuration of the simulation
type Config struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Interval    Duration `json:"interval"`
	MaxSteps    int      `json:"max_steps"`
	Rule        string   `json:"rule"`
	Pattern     string   `json:"pattern"`
	PatternFile string   `json:"pattern_file"`
	Random      bool     `json:"random"`
	Seed        int64    `json:"seed"`
	Interactive bool     `json:"interactive"`
}

// Default returns the configuration used when nothing is given
func Default() Config {
	o := universe.DefaultOptions
	return Config{
		Width:    o.Width,
		Height:   o.Height,
		Interval: Duration(o.Interval),
		MaxSteps: o.MaxSteps,
		Rule:     "conway",
		Pattern:  "sample",
	}
}

// Load overlays the JSON file on top of c, keys missing in the file keep their values
func Load(filename string, c Config) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return c, errors.Wrapf(err, "[Load] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &c); err != nil {
		return c, errors.Wrapf(err, "[Load] failed to unmarshal data from file: %+v", filename)
	}

	return c, nil
}

// Validate checks the values which cannot be used to start the simulation
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errors.Errorf("field size %dx%d must not be negative", c.Width, c.Height)
	}
	if c.Interval < 0 {
		return errors.Errorf("interval %v must not be negative", time.Duration(c.Interval))
	}
	if c.MaxSteps < 0 {
		return errors.Errorf("max steps %d must not be negative", c.MaxSteps)
	}
	if _, err := life.Named(c.Rule); err != nil {
		return err
	}
	return nil
}

// Options converts the configuration to the universe options
func (c Config) Options() universe.Options {
	o := universe.DefaultOptions
	o.Width = c.Width
	o.Height = c.Height
	o.Interval = time.Duration(c.Interval)
	o.MaxSteps = c.MaxSteps
	o.Rule = c.Rule
	o.Seed = c.Seed
	o.Random = c.Random
	return o
}
