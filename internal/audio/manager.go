// Package audio plays the game's sound effects. Effects are synthesised
// at play time; nothing is loaded from disk.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
)

// Config controls output format and loudness.
type Config struct {
	SampleRate beep.SampleRate
	// Volume is the master volume in [0, 1].
	Volume float64
	// Effects overrides the volume of single sounds. Missing entries are 1.
	Effects map[engine.Sound]float64
}

// DefaultConfig returns a 44.1kHz config at a moderate volume.
func DefaultConfig() Config {
	return Config{
		SampleRate: beep.SampleRate(44100),
		Volume:     0.4,
		Effects: map[engine.Sound]float64{
			engine.SoundStomp: 0.8,
			engine.SoundDeath: 0.7,
		},
	}
}

func (c Config) volumeFor(s engine.Sound) float64 {
	if v, ok := c.Effects[s]; ok {
		return v
	}
	return 1
}

// Manager owns the speaker and mixes effects into it. It implements
// engine.Sounder. Until Initialize succeeds every Play is dropped.
type Manager struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	played      int
}

// NewManager creates a manager; no audio device is opened yet.
func NewManager(cfg Config) *Manager {
	return &Manager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	// 100ms buffer
	if err := speaker.Init(m.cfg.SampleRate, m.cfg.SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Play mixes a sound in without blocking.
func (m *Manager) Play(s engine.Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	st := Effect(s, m.cfg)
	if st == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(st)
	speaker.Unlock()
	m.played++
}

// Played returns how many sounds were handed to the mixer.
func (m *Manager) Played() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played
}

// Cleanup silences everything still playing. beep has no speaker Close,
// so the device stays open but idle.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}
