// Package config contains the structures for parsing the demo runner
// configuration from TOML or YAML files.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"hop.computer/slist/common"
	"hop.computer/slist/pkg/combinators"
	"hop.computer/slist/pkg/loader"
	"hop.computer/slist/pkg/thunks"
)

// Errors returned by Validate and by the loaders.
var (
	ErrUnknownFormat   = errors.New("unknown config format")
	ErrInvalidWorkers  = errors.New("workers must be at least 1")
	ErrNegativePause   = errors.New("pause must not be negative")
	ErrEmptyPattern    = errors.New("run patterns must not be empty")
	ErrUnknownSettings = errors.New("unknown settings")
)

// Format is a configuration file syntax.
type Format int

// Supported formats.
const (
	FormatTOML Format = iota + 1
	FormatYAML
)

// FormatOf picks the format from the file extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, errors.Wrapf(ErrUnknownFormat, "%q", path)
	}
}

// RunnerConfig holds the settings for a run of the demos.
type RunnerConfig struct {
	// Pause is waited between two demos, as a time.ParseDuration string.
	Pause string `toml:"pause" yaml:"pause"`
	// Workers is the number of goroutines each concurrency demo spawns.
	Workers int `toml:"workers" yaml:"workers"`
	// Run holds glob patterns; demos whose names match any of them are run.
	Run        []string `toml:"run" yaml:"run"`
	IgnoreCase bool     `toml:"ignore_case" yaml:"ignore_case"`
	LogLevel   string   `toml:"log_level" yaml:"log_level"`
	// Color enables styled output on terminals. Unset means true.
	Color *bool `toml:"color" yaml:"color"`

	pause time.Duration
	level logrus.Level
}

// Default returns a validated configuration with every setting at its default.
func Default() *RunnerConfig {
	c := new(RunnerConfig)
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}

func (c *RunnerConfig) applyDefaults() {
	c.Pause = combinators.StringOr(c.Pause, common.DefaultPause)
	c.Workers = combinators.Or(c.Workers, common.DefaultWorkers)
	c.LogLevel = combinators.StringOr(c.LogLevel, common.DefaultLogLevel)
	if len(c.Run) == 0 {
		c.Run = []string{"*"}
	}
	if c.Color == nil {
		color := true
		c.Color = &color
	}
}

// Validate fills unset fields with defaults and checks the result. It must be
// called again after a field is changed.
func (c *RunnerConfig) Validate() error {
	c.applyDefaults()
	pause, err := time.ParseDuration(c.Pause)
	if err != nil {
		return errors.Wrap(err, "invalid pause")
	}
	if pause < 0 {
		return errors.Wrapf(ErrNegativePause, "got %s", c.Pause)
	}
	if c.Workers < 1 {
		return errors.Wrapf(ErrInvalidWorkers, "got %d", c.Workers)
	}
	for _, p := range c.Run {
		if p == "" {
			return ErrEmptyPattern
		}
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log_level")
	}
	c.pause = pause
	c.level = level
	return nil
}

// PauseDuration returns the parsed Pause. Only meaningful after Validate.
func (c *RunnerConfig) PauseDuration() time.Duration {
	return c.pause
}

// Level returns the parsed LogLevel. Only meaningful after Validate.
func (c *RunnerConfig) Level() logrus.Level {
	return c.level
}

// ColorEnabled reports whether styled output is allowed.
func (c *RunnerConfig) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// Parse decodes b in the given format and validates the result. Unknown keys
// are an error.
func Parse(b []byte, format Format) (*RunnerConfig, error) {
	var c RunnerConfig
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(b), &c)
		if err != nil {
			return nil, errors.Wrap(err, "unable to decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return nil, errors.Wrapf(ErrUnknownSettings, "%s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF; treat it as all defaults.
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "unable to decode yaml")
		}
	default:
		return nil, ErrUnknownFormat
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// files holds every configuration parsed by this process, keyed by path. A
// file is read at most once, so later edits on disk are not picked up until
// the process restarts. Callers get copies and cannot alter the cached value.
var (
	filesMu sync.Mutex
	files   = loader.Loader{}
)

// LoadFile reads, parses and validates the file at path. The format comes from
// the extension. Results are cached by path for the life of the process, and
// every call returns a fresh copy.
func LoadFile(path string) (*RunnerConfig, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	filesMu.Lock()
	contents, _, err := files.LoadOrGet(path, func(b []byte) (interface{}, error) {
		return Parse(b, format)
	})
	filesMu.Unlock()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load config %q", path)
	}
	c := *contents.Parsed.(*RunnerConfig)
	c.Run = append([]string(nil), c.Run...)
	return &c, nil
}

// Load loads the configuration at path. An empty path means DefaultPath, and a
// missing file at the default path yields Default instead of an error.
func Load(path string) (*RunnerConfig, error) {
	if path != "" {
		return LoadFile(path)
	}
	path = DefaultPath()
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logrus.WithField("path", path).Debug("no config file, using defaults")
		return Default(), nil
	}
	return LoadFile(path)
}

// UserDirectory returns the directory holding the current user's
// configuration, or "" if the home directory is unknown.
func UserDirectory() string {
	home, err := thunks.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, common.UserConfigDirectory)
}

// DefaultPath returns the path of the configuration file used when none is
// given, or "" if there is no home directory.
func DefaultPath() string {
	dir := UserDirectory()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, common.DefaultConfigFile)
}
