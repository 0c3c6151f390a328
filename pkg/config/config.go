// Package config handles intcode.toml run configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/fortiblox/intcode/pkg/loader"
)

// FileName is the conventional configuration file name.
const FileName = "intcode.toml"

// Log levels accepted in Log.Level.
var LogLevels = []string{"error", "warn", "info", "debug"}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is an intcode.toml run configuration.
type Config struct {
	Program Program `toml:"program"`
	Run     Run     `toml:"run"`
	Log     Log     `toml:"log"`
}

// Program selects the program and patches applied before it runs.
type Program struct {
	Path    string  `toml:"path"`
	Patches []Patch `toml:"patch"`
}

// Patch overwrites one memory cell before the run starts.
type Patch struct {
	Address int   `toml:"address"`
	Value   int64 `toml:"value"`
}

// Apply writes the patches into memory in order.
func (p Program) Apply(memory []int64) error {
	for _, patch := range p.Patches {
		if patch.Address < 0 || patch.Address >= len(memory) {
			return fmt.Errorf("%w: patch address %d outside program of %d cells", ErrInvalidConfig, patch.Address, len(memory))
		}
		memory[patch.Address] = patch.Value
	}
	return nil
}

// Run configures execution.
type Run struct {
	// Input is a file of newline-separated values; empty or "-" means stdin.
	Input       string `toml:"input"`
	MaxSteps    uint64 `toml:"max-steps"`
	RequireHalt bool   `toml:"require-halt"`
	// Separator is written after every printed value.
	Separator   string `toml:"separator"`
	DumpMemory  bool   `toml:"dump-memory"`
	Fingerprint string `toml:"fingerprint"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
	// File, if set, receives log output instead of stderr.
	File string `toml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Run: Run{
			Separator:   "\n",
			Fingerprint: string(loader.HashBlake3),
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load parses a configuration file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if !validLevel(c.Log.Level) {
		return fmt.Errorf("%w: log level %q (want one of %v)", ErrInvalidConfig, c.Log.Level, LogLevels)
	}
	if _, err := loader.ParseHashAlgorithm(c.Run.Fingerprint); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for i, p := range c.Program.Patches {
		if p.Address < 0 {
			return fmt.Errorf("%w: patch %d has negative address %d", ErrInvalidConfig, i, p.Address)
		}
	}
	return nil
}

func validLevel(level string) bool {
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Verbosity maps Log.Level to a commonlog verbosity. commonlog treats 0 as
// Notice, so info is 1.
func (l Log) Verbosity() int {
	switch l.Level {
	case "error":
		return -2
	case "warn":
		return -1
	case "debug":
		return 2
	default:
		return 1
	}
}
