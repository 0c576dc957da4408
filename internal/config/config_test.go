package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(defaultPlatformerYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Errorf("embedded yaml and DefaultPlatformerConfig differ:\n%+v\n%+v", cfg, DefaultPlatformerConfig())
	}
}

func TestDefaultParamsMatchEngine(t *testing.T) {
	if got, want := DefaultPlatformerConfig().Params(), engine.DefaultParams(); got != want {
		t.Errorf("Params() = %+v, want %+v", got, want)
	}
}

func TestLoadPlatformerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := "player:\n  jump_grace: 3\nwalker:\n  speed: 2.5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer failed: %v", err)
	}
	if cfg.Player.JumpGrace != 3 || cfg.Walker.Speed != 2.5 {
		t.Errorf("overrides not applied: grace=%d speed=%v", cfg.Player.JumpGrace, cfg.Walker.Speed)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Physics.TileSize != 16 || cfg.Scoring.Clear != 5000 {
		t.Errorf("defaults lost: tile=%d clear=%d", cfg.Physics.TileSize, cfg.Scoring.Clear)
	}
}

func TestLoadPlatformerErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadPlatformer(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPlatformer(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadPlatformerLocalDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir) // keep a real user config out of the way
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", "platformer.yaml"), []byte("input:\n  hold_ticks: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := LoadPlatformer("")
	if err != nil {
		t.Fatalf("LoadPlatformer failed: %v", err)
	}
	if cfg.Input.HoldTicks != 12 {
		t.Errorf("HoldTicks = %d, want 12", cfg.Input.HoldTicks)
	}
}

func TestApplyPlatformerPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		initial float64
		powered bool
	}{
		{DifficultyEasy, true, 0.0, true},
		{DifficultyNormal, true, 0.3, false},
		{DifficultyHard, true, 0.7, false},
		{DifficultyFixed, false, 0.0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPlatformerPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.initial {
				t.Errorf("InitialLevel = %v, want %v", cfg.Difficulty.InitialLevel, tt.initial)
			}
			if cfg.Player.StartPowered != tt.powered {
				t.Errorf("StartPowered = %v, want %v", cfg.Player.StartPowered, tt.powered)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"easy", "normal", "hard", "fixed"} {
		if got := ParsePreset(name); string(got) != name {
			t.Errorf("ParsePreset(%q) = %q", name, got)
		}
	}
	if got := ParsePreset("insane"); got != "" {
		t.Errorf("ParsePreset(insane) = %q, want empty", got)
	}
}

func TestMarshalPlatformerRoundTrip(t *testing.T) {
	data, err := MarshalPlatformer(DefaultPlatformerConfig())
	if err != nil {
		t.Fatalf("MarshalPlatformer failed: %v", err)
	}
	var cfg PlatformerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Errorf("round trip changed config:\n%s", data)
	}
}
