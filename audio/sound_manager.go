package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/blockfall/constants"
)

// SoundManager plays the game cues through the speaker
// Every Play call is safe before Initialize, after Cleanup and without an audio device
type SoundManager struct {
	mu          sync.Mutex
	config      *AudioConfig
	initialized bool

	muted  atomic.Bool
	played atomic.Uint64
}

// NewSoundManager creates a sound manager, nil cfg selects the defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{config: cfg}
}

// Initialize opens the speaker
// A disabled configuration returns ErrAudioDisabled and leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.config.Enabled {
		return ErrAudioDisabled
	}

	rate := beep.SampleRate(sm.config.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.SpeakerBuffer)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	sm.initialized = true
	log.Printf("[audio] speaker ready at %d Hz", sm.config.SampleRate)
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Enabled reports whether cues currently reach the speaker
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized && !sm.muted.Load()
}

// ToggleMute flips the mute state, returns true if now muted
func (sm *SoundManager) ToggleMute() bool {
	muted := !sm.muted.Load()
	sm.muted.Store(muted)
	return muted
}

// Played returns the number of cues handed to the speaker
func (sm *SoundManager) Played() uint64 {
	return sm.played.Load()
}

func (sm *SoundManager) play(soundType SoundType, rows int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted.Load() {
		return
	}
	streamer := GetSoundEffect(soundType, sm.config, rows)
	if streamer == nil {
		return
	}
	speaker.Play(streamer)
	sm.played.Add(1)
}

// PlayLanded plays the settle thud
func (sm *SoundManager) PlayLanded() {
	sm.play(SoundLanded, 0)
}

// PlayRowsCleared plays an arpeggio for rows removed rows
func (sm *SoundManager) PlayRowsCleared(rows int) {
	sm.play(SoundRowsCleared, rows)
}

// PlayGameOver plays the falling phrase
func (sm *SoundManager) PlayGameOver() {
	sm.play(SoundGameOver, 0)
}

// PlayModeSwitch plays the mode blip
func (sm *SoundManager) PlayModeSwitch() {
	sm.play(SoundModeSwitch, 0)
}
