// Package config provides the run configuration for the bfir command and
// builds the execution stack it describes.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfir/api"
	"github.com/sarchlab/bfir/core"
	"gopkg.in/yaml.v3"
)

// Engines that a program can run on.
const (
	EngineDirect = "direct"
	EngineSim    = "sim"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LogConfig configures the default logger.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Config is the run configuration.
type Config struct {
	// Engine selects direct interpretation or the cycle-level simulation.
	Engine string `yaml:"engine" toml:"engine"`

	// FreqGHz is the core frequency of the simulation.
	FreqGHz float64 `yaml:"freq_ghz" toml:"freq_ghz"`

	Log LogConfig `yaml:"log" toml:"log"`

	DumpTape    bool `yaml:"dump_tape" toml:"dump_tape"`
	DumpProgram bool `yaml:"dump_program" toml:"dump_program"`
	Lint        bool `yaml:"lint" toml:"lint"`

	// Monitor starts the akita monitoring server. Only used by the sim
	// engine.
	Monitor bool `yaml:"monitor" toml:"monitor"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Engine:  EngineDirect,
		FreqGHz: 1,
		Log: LogConfig{
			Level:  "warn",
			Format: FormatText,
		},
		Lint: true,
	}
}

// Load reads a YAML or TOML file, chosen by extension, on top of the
// defaults.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("cannot read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	case ".toml":
		err = toml.Unmarshal(data, &c)
	default:
		return c, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	if err != nil {
		return c, fmt.Errorf("parse error in %s: %w", path, err)
	}

	return c, c.Validate()
}

// Validate rejects values the command cannot act on.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineDirect, EngineSim:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}

	if c.FreqGHz <= 0 {
		return fmt.Errorf("frequency must be positive, got %v GHz", c.FreqGHz)
	}

	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	return nil
}

// Level returns the slog level named by the configuration.
func (c Config) Level() slog.Level {
	return levels[strings.ToLower(c.Log.Level)]
}

// Freq returns the simulated core frequency.
func (c Config) Freq() sim.Freq {
	return sim.Freq(c.FreqGHz) * sim.GHz
}

// NewLogger creates a logger that writes to w in the configured format.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}

	if strings.ToLower(c.Log.Format) == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// BuildDriver creates a driver on engine. Instructions are traced when the
// log level lets core.LevelTrace records through.
func (c Config) BuildDriver(engine sim.Engine, in core.LineReader) api.Driver {
	b := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(c.Freq()).
		WithInput(in)

	if c.Level() <= core.LevelTrace {
		b = b.WithHook(core.NewInstTracer())
	}

	return b.Build("Driver")
}
