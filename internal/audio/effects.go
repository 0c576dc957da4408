package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/engine"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves. The frequency slides linearly from
// freq to endFreq over the duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator whose pitch slides from one frequency to another.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		endFreq:  to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + (o.endFreq-o.freq)*float64(o.position)/float64(o.duration)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates a linear attack/release envelope.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero
// volume is rendered silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is one shaped note with a short click-free attack.
func tone(from, to float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// notes plays fixed-pitch square notes back to back.
func notes(d time.Duration, rate beep.SampleRate, freqs ...float64) beep.Streamer {
	seq := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		seq[i] = tone(f, f, d, WaveSquare, rate)
	}
	return beep.Seq(seq...)
}

// Note frequencies in Hz.
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteB5 = 987.77
	noteC6 = 1046.50
	noteE6 = 1318.51
	noteG6 = 1567.98
)

// Effect synthesises the streamer for a sound, or nil for unknown sounds.
func Effect(s engine.Sound, cfg Config) beep.Streamer {
	rate := cfg.SampleRate
	var st beep.Streamer
	switch s {
	case engine.SoundJump:
		st = tone(300, 700, 120*time.Millisecond, WaveSquare, rate)
	case engine.SoundCoin:
		st = beep.Seq(
			tone(noteB5, noteB5, 60*time.Millisecond, WaveSquare, rate),
			tone(noteE6, noteE6, 200*time.Millisecond, WaveSquare, rate),
		)
	case engine.SoundBump:
		st = tone(140, 90, 80*time.Millisecond, WaveSquare, rate)
	case engine.SoundPowerup:
		st = notes(50*time.Millisecond, rate, noteC5, noteE5, noteG5, noteC6, noteE6, noteG6)
	case engine.SoundStomp:
		st = beep.Seq(
			tone(0, 0, 30*time.Millisecond, WaveNoise, rate),
			tone(400, 100, 90*time.Millisecond, WaveSaw, rate),
		)
	case engine.SoundDeath:
		st = tone(600, 80, 600*time.Millisecond, WaveSaw, rate)
	case engine.SoundClear:
		st = beep.Seq(
			notes(90*time.Millisecond, rate, noteC5, noteE5, noteG5),
			tone(noteC6, noteC6, 350*time.Millisecond, WaveSquare, rate),
		)
	default:
		return nil
	}
	return newVolume(st, cfg.Volume*cfg.volumeFor(s))
}
