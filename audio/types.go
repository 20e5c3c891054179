package audio

import (
	"errors"

	"github.com/lixenwraith/blockfall/constants"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundLanded      SoundType = iota // Piece settled
	SoundRowsCleared                  // One or more full rows removed
	SoundGameOver                     // Insertion failed in a game
	SoundModeSwitch                   // Autoplay and game swapped
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"landed", "rows", "gameover", "mode"}

func (t SoundType) String() string {
	if t < 0 || t >= soundTypeCount {
		return "unknown"
	}
	return soundNames[t]
}

// AudioConfig holds audio settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultAudioConfig returns the default configuration
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: map[SoundType]float64{
			SoundLanded:      0.6,
			SoundRowsCleared: 0.9,
			SoundGameOver:    1.0,
			SoundModeSwitch:  0.5,
		},
		SampleRate: constants.SampleRate,
	}
}

// volume returns the effective volume of a sound
func (c *AudioConfig) volume(t SoundType) float64 {
	return c.EffectVolumes[t] * c.MasterVolume
}

// ErrAudioDisabled is returned when playback was switched off by configuration
var ErrAudioDisabled = errors.New("audio disabled")
