package wheels

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

const testConfigTOML = `
debug = true
log_level = "info"
growth = "double"
max_vertices = 1024
max_indices = 1536

[watch]
enabled = true
dir = "assets"
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(testConfigTOML))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := Config{
		Debug:       true,
		LogLevel:    "info",
		Growth:      "double",
		MaxVertices: 1024,
		MaxIndices:  1536,
		Watch:       WatchConfig{Enabled: true, Dir: "assets"},
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}

	opts, err := cfg.BackendOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Growth != GrowthDouble || !opts.Debug {
		t.Errorf("BackendOptions = %+v", opts)
	}
	if cfg.DeviceConfig() != (DeviceConfig{MaxVertices: 1024, MaxIndices: 1536}) {
		t.Errorf("DeviceConfig = %+v", cfg.DeviceConfig())
	}
}

func TestParseConfigEmptyUsesDefaults(t *testing.T) {
	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestParseConfigUnknownKey(t *testing.T) {
	_, err := ParseConfig([]byte("growht = \"double\"\n"))
	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		t.Errorf("err = %v, want *toml.StrictMissingError", err)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"syntax", "debug = = true"},
		{"growth", `growth = "triple"`},
		{"log level", `log_level = "loud"`},
		{"negative limit", "max_vertices = -1"},
		{"watch without dir", "[watch]\nenabled = true"},
		{"wrong type", `max_indices = "many"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.toml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheels.toml")
	if err := os.WriteFile(path, []byte(testConfigTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Growth != "double" {
		t.Errorf("Growth = %q", cfg.Growth)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	l, err := cfg.Logger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if l.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", l.GetLevel())
	}

	cfg.Debug = true
	l, err = cfg.Logger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("frame", "draws", 3)
	if !strings.Contains(buf.String(), "draws=3") {
		t.Errorf("debug output = %q, want draws=3", buf.String())
	}
}
