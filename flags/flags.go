// Package flags provides support for slist-demo CLI args
package flags

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"hop.computer/slist/config"
)

// ErrExcessArgs is returned when unparsed arguments remain
var ErrExcessArgs = errors.New("excess arguments provided")

// RunnerFlags holds CLI arguments for the demo runner. Zero values mean "not
// given" and leave the config file's setting alone, except for Pause, where
// PauseSet tells the two apart.
type RunnerFlags struct {
	ConfigPath string

	Run        []string // glob patterns selecting demos; repeatable
	Pause      time.Duration
	PauseSet   bool
	Workers    int
	IgnoreCase bool
	Verbose    bool // debug logging
	NoColor    bool
	List       bool // list demos and exit
}

// defineRunnerFlags calls fs.StringVar and friends for RunnerFlags
func defineRunnerFlags(fs *flag.FlagSet, f *RunnerFlags) {
	fs.StringVar(&f.ConfigPath, "C", "", "path to runner config (uses ~/.slist/config.toml when unspecified)")
	fs.Func("run", "glob pattern of demos to run; may be repeated", func(s string) error {
		if s == "" {
			return errors.New("empty pattern")
		}
		f.Run = append(f.Run, s)
		return nil
	})
	fs.Func("pause", "pause between demos, e.g. 500ms", func(s string) error {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		f.Pause, f.PauseSet = d, true
		return nil
	})
	fs.IntVar(&f.Workers, "workers", 0, "goroutines per concurrency demo")
	fs.BoolVar(&f.IgnoreCase, "i", false, "match -run patterns case-insensitively")
	fs.BoolVar(&f.Verbose, "v", false, "log at debug level")
	fs.BoolVar(&f.NoColor, "no-color", false, "disable styled output")
	fs.BoolVar(&f.List, "list", false, "list the selected demos and exit")
}

// ParseRunnerArgs defines and parses the flags from the command line. args[0]
// is the program name.
func ParseRunnerArgs(args []string, output io.Writer) (*RunnerFlags, error) {
	f := new(RunnerFlags)
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(output)
	defineRunnerFlags(fs, f)

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, ErrExcessArgs
	}
	if f.Workers < 0 {
		return nil, fmt.Errorf("-workers must be positive, got %d", f.Workers)
	}
	return f, nil
}

func mergeRunnerFlagsAndConfig(f *RunnerFlags, c *config.RunnerConfig) error {
	if len(f.Run) > 0 {
		c.Run = f.Run
	}
	if f.PauseSet {
		c.Pause = f.Pause.String()
	}
	if f.Workers > 0 {
		c.Workers = f.Workers
	}
	if f.IgnoreCase {
		c.IgnoreCase = true
	}
	if f.Verbose {
		c.LogLevel = "debug"
	}
	if f.NoColor {
		color := false
		c.Color = &color
	}
	return c.Validate()
}

// LoadRunnerConfigFromFlags loads the config file named in flags (or the
// default) and applies the flags on top of it.
func LoadRunnerConfigFromFlags(f *RunnerFlags) (*config.RunnerConfig, error) {
	c, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := mergeRunnerFlagsAndConfig(f, c); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return c, nil
}
