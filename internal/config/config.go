package config

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/pulse/internal/judge"
	"gopkg.in/alecthomas/kingpin.v2"
)

const version = "0.3.0"

type Config struct {
	BPM         float64
	Lookahead   time.Duration
	Delay       time.Duration
	FramePeriod time.Duration
	WindowsFile string
	EnvFile     string
	Database    string
	LogFile     string
	Key         string // empty means any key taps

	Windows judge.Windows
}

func app(c *Config) *kingpin.Application {
	a := kingpin.New("pulse", "Tap along to a fixed tempo and see how close to the beat you land.")
	a.Version(version)
	a.Flag("bpm", "Tempo in beats per minute").Default("120").Short('b').Float64Var(&c.BPM)
	a.Flag("lookahead", "How far ahead beats are shown").Default("2s").Short('l').DurationVar(&c.Lookahead)
	a.Flag("delay", "Start delay before beat 0").Default("1.5s").Short('d').DurationVar(&c.Delay)
	a.Flag("frame-period", "Render frame period").Default("4ms").Short('p').DurationVar(&c.FramePeriod)
	a.Flag("config", "Judgement windows file (yaml)").Short('c').StringVar(&c.WindowsFile)
	a.Flag("env-file", "Environment file read before the config").Default(".env").StringVar(&c.EnvFile)
	a.Flag("db", "Score history database").Default("./scores.db").StringVar(&c.Database)
	a.Flag("log", "Log file, the terminal is busy drawing").Default("pulse.log").StringVar(&c.LogFile)
	a.Flag("key", "Key to tap with, any key when empty").Short('k').Default(" ").StringVar(&c.Key)
	return a
}

// Parse reads the command line, then the judgement windows.
func Parse(args []string) (*Config, error) {
	c := &Config{}
	if _, err := app(c).Parse(args); nil != err {
		return nil, err
	}
	if len([]rune(c.Key)) > 1 {
		return nil, fmt.Errorf("%w: tap key %q must be a single character", ErrInvalidConfig, c.Key)
	}
	if c.FramePeriod <= 0 {
		return nil, fmt.Errorf("%w: frame period %v must be positive", ErrInvalidConfig, c.FramePeriod)
	}

	w, err := LoadWindows(c.WindowsFile, c.EnvFile)
	if nil != err {
		return nil, err
	}
	c.Windows = w
	return c, nil
}

// TapKey returns the tap key, or 0 when any key counts
func (c *Config) TapKey() rune {
	for _, r := range c.Key {
		return r
	}
	return 0
}
