package audio

import (
	"encoding/json"
	"os"
	"strconv"
)

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("BLOCKFALL_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume 0-100 converted to 0.0-1.0
	if volume := os.Getenv("BLOCKFALL_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	// Effect volumes as JSON keyed by sound name: {"landed":0.5,"rows":1}
	if effectVols := os.Getenv("BLOCKFALL_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for t := SoundType(0); t < soundTypeCount; t++ {
				if v, ok := volumes[t.String()]; ok {
					cfg.EffectVolumes[t] = v
				}
			}
		}
	}

	if sampleRate := os.Getenv("BLOCKFALL_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
