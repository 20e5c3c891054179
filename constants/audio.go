package constants

import "time"

// Audio Engine Constants
const (
	// SampleRate is the default output sample rate
	SampleRate = 48000

	// SpeakerBuffer is the speaker buffer duration
	SpeakerBuffer = 100 * time.Millisecond

	// EffectAttack and EffectRelease shape every note
	EffectAttack  = 5 * time.Millisecond
	EffectRelease = 30 * time.Millisecond
)

// Landing Sound Timing
const (
	LandSoundDuration = 60 * time.Millisecond
	LandSoundFreq     = 180.0
)

// Row Clear Sound Timing
const (
	RowClearNoteDuration = 90 * time.Millisecond
	RowClearBaseFreq     = 523.25
	RowClearMaxNotes     = 4
)

// Game Over Sound Timing
const (
	GameOverNoteDuration = 220 * time.Millisecond
	GameOverBaseFreq     = 392.0
)

// Mode Switch Sound Timing
const (
	ModeSwitchDuration = 120 * time.Millisecond
	ModeSwitchFreq     = 660.0
)
