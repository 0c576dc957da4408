package config

import (
	"math"
	"testing"
)

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, GraceReduction: 4},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.5},
		{500, 0.75},
		{1000, 1.0},
		{5000, 1.0},
	}
	for _, tt := range tests {
		if got := d.Level(tt.score, 0); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}

	if got := d.Speed(1.0, 1000, 0); got != 2.0 {
		t.Errorf("Speed at max = %v, want 2", got)
	}
	if got := d.JumpGrace(8, 1000, 0); got != 4 {
		t.Errorf("JumpGrace at max = %d, want 4", got)
	}
	if got := d.JumpGrace(2, 1000, 0); got != 1 {
		t.Errorf("JumpGrace floor = %d, want 1", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
	})
	if got := d.Level(0, 50); got != 0.5 {
		t.Errorf("time progression = %v, want 0.5", got)
	}

	d.SetEnabled(false)
	d.SetInitialLevel(1.5)
	if d.IsEnabled() {
		t.Error("expected disabled")
	}
	if got := d.Level(0, 50); got != 1.0 {
		t.Errorf("disabled level = %v, want clamped initial 1.0", got)
	}
}
