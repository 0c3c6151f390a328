package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() failed: %v", err)
	}
	if c.Run.Separator != "\n" || c.Run.Fingerprint != "blake3" || c.Log.Level != "info" {
		t.Errorf("Default() = %+v", c)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[program]
path = "day5.txt"

[[program.patch]]
address = 1
value = 12

[[program.patch]]
address = 2
value = 2

[run]
max-steps = 1000
require-halt = true
separator = ","

[log]
level = "debug"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if c.Program.Path != "day5.txt" {
		t.Errorf("Program.Path = %q", c.Program.Path)
	}
	wantPatches := []Patch{{Address: 1, Value: 12}, {Address: 2, Value: 2}}
	if !reflect.DeepEqual(c.Program.Patches, wantPatches) {
		t.Errorf("Patches = %v, want %v", c.Program.Patches, wantPatches)
	}
	if c.Run.MaxSteps != 1000 || !c.Run.RequireHalt || c.Run.Separator != "," {
		t.Errorf("Run = %+v", c.Run)
	}
	// Unset keys keep their defaults.
	if c.Run.Fingerprint != "blake3" {
		t.Errorf("Run.Fingerprint = %q, want default", c.Run.Fingerprint)
	}
	if c.Log.Level != "debug" || c.Log.Verbosity() != 2 {
		t.Errorf("Log = %+v", c.Log)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"bad level", "[log]\nlevel = \"loud\"\n", true},
		{"bad hash", "[run]\nfingerprint = \"md5\"\n", true},
		{"negative patch", "[[program.patch]]\naddress = -1\nvalue = 0\n", true},
		{"syntax", "[run\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() succeeded")
			}
			if errors.Is(err, ErrInvalidConfig) != tt.invalid {
				t.Errorf("Load() = %v, want ErrInvalidConfig: %v", err, tt.invalid)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestApply(t *testing.T) {
	memory := []int64{1, 0, 0, 3, 99}
	p := Program{Patches: []Patch{{Address: 1, Value: 12}, {Address: 2, Value: 2}, {Address: 1, Value: 9}}}
	if err := p.Apply(memory); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if !reflect.DeepEqual(memory, []int64{1, 9, 2, 3, 99}) {
		t.Errorf("memory = %v", memory)
	}

	p = Program{Patches: []Patch{{Address: 5, Value: 1}}}
	if err := p.Apply(memory); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Apply(out of range) = %v, want ErrInvalidConfig", err)
	}
}

func TestVerbosity(t *testing.T) {
	tests := []struct {
		level     string
		allowed   commonlog.Level
		hidden    commonlog.Level
		hasHidden bool
	}{
		{"error", commonlog.Error, commonlog.Warning, true},
		{"warn", commonlog.Warning, commonlog.Notice, true},
		{"info", commonlog.Info, commonlog.Debug, true},
		{"debug", commonlog.Debug, 0, false},
	}
	if len(tests) != len(LogLevels) {
		t.Fatalf("%d levels tested, LogLevels has %d", len(tests), len(LogLevels))
	}

	for _, tt := range tests {
		commonlog.Configure((Log{Level: tt.level}).Verbosity(), nil)
		log := commonlog.GetLogger("intcode")
		if !log.AllowLevel(tt.allowed) {
			t.Errorf("level %s does not allow %v", tt.level, tt.allowed)
		}
		if tt.hasHidden && log.AllowLevel(tt.hidden) {
			t.Errorf("level %s allows %v", tt.level, tt.hidden)
		}
	}
}
