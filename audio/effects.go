package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/blockfall/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
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

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	totalSamples int
}

// NewEnvelope wraps s with an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:     s,
		attack:       rate.N(attack),
		release:      rate.N(release),
		totalSamples: rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.totalSamples - e.position; remaining < e.release {
			vol = min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; math.Log2(0) is -Inf so zero volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is one shaped note
func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, d, wave, rate)
	return NewEnvelope(osc, d, constants.EffectAttack, constants.EffectRelease, rate)
}

// semitones shifts freq by n equal-tempered steps
func semitones(freq float64, n int) float64 {
	return freq * math.Pow(2, float64(n)/12)
}

// CreateLandedSound generates a short low thud for a settled piece
func CreateLandedSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	thud := beep.Mix(
		newVolume(tone(constants.LandSoundFreq, constants.LandSoundDuration, WaveSine, rate), 0.8),
		newVolume(tone(0, constants.LandSoundDuration, WaveNoise, rate), 0.2),
	)
	return newVolume(thud, cfg.volume(SoundLanded))
}

// CreateRowsClearedSound generates a rising arpeggio, one note per cleared row up to four
func CreateRowsClearedSound(cfg *AudioConfig, rows int) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	rows = min(max(rows, 1), constants.RowClearMaxNotes)

	steps := [...]int{0, 4, 7, 12}
	notes := make([]beep.Streamer, rows)
	for i := range notes {
		notes[i] = tone(semitones(constants.RowClearBaseFreq, steps[i]), constants.RowClearNoteDuration, WaveSquare, rate)
	}
	return newVolume(beep.Seq(notes...), cfg.volume(SoundRowsCleared)*0.5)
}

// CreateGameOverSound generates a falling three-note phrase
func CreateGameOverSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	seq := beep.Seq(
		tone(constants.GameOverBaseFreq, constants.GameOverNoteDuration, WaveSaw, rate),
		tone(semitones(constants.GameOverBaseFreq, -3), constants.GameOverNoteDuration, WaveSaw, rate),
		tone(semitones(constants.GameOverBaseFreq, -7), 2*constants.GameOverNoteDuration, WaveSaw, rate),
	)
	return newVolume(seq, cfg.volume(SoundGameOver)*0.5)
}

// CreateModeSwitchSound generates a two-tone blip
func CreateModeSwitchSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	half := constants.ModeSwitchDuration / 2
	seq := beep.Seq(
		tone(constants.ModeSwitchFreq, half, WaveSine, rate),
		tone(semitones(constants.ModeSwitchFreq, 7), half, WaveSine, rate),
	)
	return newVolume(seq, cfg.volume(SoundModeSwitch))
}

// GetSoundEffect returns the streamer for soundType, rows only applies to SoundRowsCleared
func GetSoundEffect(soundType SoundType, cfg *AudioConfig, rows int) beep.Streamer {
	switch soundType {
	case SoundLanded:
		return CreateLandedSound(cfg)
	case SoundRowsCleared:
		return CreateRowsClearedSound(cfg, rows)
	case SoundGameOver:
		return CreateGameOverSound(cfg)
	case SoundModeSwitch:
		return CreateModeSwitchSound(cfg)
	default:
		return nil
	}
}
