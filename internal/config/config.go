package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/conio/internal/driver"
	"github.com/dshills/conio/internal/logging"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "CONIO_"

// Duration is a time.Duration written as a Go duration string ("500ms").
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the duration string.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config is the complete set of conio settings.
type Config struct {
	Driver   DriverConfig   `toml:"driver"`
	Input    InputConfig    `toml:"input"`
	Requests RequestsConfig `toml:"requests"`
	Logging  LoggingConfig  `toml:"logging"`
}

// DriverConfig selects and configures the console driver.
type DriverConfig struct {
	// Kind is one of auto, vt, legacy or fake.
	Kind string `toml:"kind"`
	// Mouse enables mouse reporting.
	Mouse bool `toml:"mouse"`
}

// InputConfig tunes input decoding.
type InputConfig struct {
	ClickWindow    Duration `toml:"click_window"`
	ClickTolerance int      `toml:"click_tolerance"`
	EscapeTimeout  Duration `toml:"escape_timeout"`
}

// RequestsConfig tunes request/response correlation.
type RequestsConfig struct {
	Timeout Duration `toml:"timeout"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File is the log file path. Empty discards log output.
	File string `toml:"file"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Driver: DriverConfig{
			Kind:  driver.KindAuto,
			Mouse: true,
		},
		Input: InputConfig{
			ClickWindow:    Duration(500 * time.Millisecond),
			ClickTolerance: 1,
			EscapeTimeout:  Duration(50 * time.Millisecond),
		},
		Requests: RequestsConfig{
			Timeout: Duration(time.Second),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is
// not an error. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadReader reads TOML from r over the defaults.
func LoadReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", data)
}

func parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return cfg, nil
}

// envSetters maps environment variables to the setting they override.
var envSetters = map[string]func(*Config, string) error{
	EnvPrefix + "DRIVER": func(c *Config, v string) error {
		c.Driver.Kind = strings.ToLower(strings.TrimSpace(v))
		return nil
	},
	EnvPrefix + "MOUSE": func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		c.Driver.Mouse = b
		return nil
	},
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
		c.Logging.Level = strings.TrimSpace(v)
		return nil
	},
	EnvPrefix + "LOG_FILE": func(c *Config, v string) error {
		c.Logging.File = v
		return nil
	},
	EnvPrefix + "CLICK_WINDOW": func(c *Config, v string) error {
		return c.Input.ClickWindow.UnmarshalText([]byte(v))
	},
	EnvPrefix + "ESCAPE_TIMEOUT": func(c *Config, v string) error {
		return c.Input.EscapeTimeout.UnmarshalText([]byte(v))
	},
	EnvPrefix + "REQUEST_TIMEOUT": func(c *Config, v string) error {
		return c.Requests.Timeout.UnmarshalText([]byte(v))
	},
}

// ApplyEnv applies CONIO_* overrides read through lookup, which has the
// signature of os.LookupEnv. Empty values are treated as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var errs []error
	for name, set := range envSetters {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(c, v); err != nil {
			errs = append(errs, &ParseError{Path: name, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(setting, format string, args ...any) {
		errs = append(errs, &ValidationError{Setting: setting, Message: fmt.Sprintf(format, args...)})
	}

	switch c.Driver.Kind {
	case driver.KindAuto, driver.KindVT, driver.KindLegacy, driver.KindFake:
	default:
		invalid("driver.kind", "unknown driver %q", c.Driver.Kind)
	}
	if c.Input.ClickWindow <= 0 {
		invalid("input.click_window", "must be positive, got %s", c.Input.ClickWindow)
	}
	if c.Input.ClickTolerance < 0 {
		invalid("input.click_tolerance", "must not be negative, got %d", c.Input.ClickTolerance)
	}
	if c.Input.EscapeTimeout <= 0 {
		invalid("input.escape_timeout", "must be positive, got %s", c.Input.EscapeTimeout)
	}
	if c.Requests.Timeout <= 0 {
		invalid("requests.timeout", "must be positive, got %s", c.Requests.Timeout)
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		invalid("logging.level", "unknown level %q", c.Logging.Level)
	}
	return errors.Join(errs...)
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

// Marshal encodes the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
