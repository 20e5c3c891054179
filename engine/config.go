package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/blockfall/constants"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Color modes accepted by the renderer
const (
	ColorAuto      = "auto"
	Color256       = "256"
	ColorTrueColor = "truecolor"
)

// Config holds the board and timing setup
type Config struct {
	Width          int
	Height         int
	TickInterval   time.Duration
	Banner         string
	Seed           uint64 // 0 picks a random seed
	AutoplayHeight int
	ColorMode      string
}

// DefaultConfig returns the compiled-in defaults
func DefaultConfig() *Config {
	return &Config{
		Width:          constants.BoardWidth,
		Height:         constants.BoardHeight,
		TickInterval:   constants.TickInterval,
		Banner:         constants.DefaultBanner,
		AutoplayHeight: constants.AutoplayHeight,
		ColorMode:      ColorAuto,
	}
}

// LoadConfig loads configuration from environment variables over the defaults
// Unparsable values are ignored
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("BLOCKFALL_WIDTH"); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			cfg.Width = val
		}
	}

	if v := os.Getenv("BLOCKFALL_HEIGHT"); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			cfg.Height = val
		}
	}

	// Milliseconds or a Go duration string
	if v := os.Getenv("BLOCKFALL_TICK"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.TickInterval = time.Duration(ms) * time.Millisecond
		} else if d, err := time.ParseDuration(v); err == nil {
			cfg.TickInterval = d
		}
	}

	if v, ok := os.LookupEnv("BLOCKFALL_BANNER"); ok {
		cfg.Banner = v
	}

	if v := os.Getenv("BLOCKFALL_SEED"); v != "" {
		if val, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = val
		}
	}

	if v := os.Getenv("BLOCKFALL_AUTOPLAY_HEIGHT"); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			cfg.AutoplayHeight = val
		}
	}

	if v := os.Getenv("BLOCKFALL_COLOR"); v != "" {
		cfg.ColorMode = v
	}

	return cfg
}

// Validate reports the first unusable field
func (c *Config) Validate() error {
	if c.Width < 4 {
		return fmt.Errorf("%w: width %d, need at least 4", ErrInvalidConfig, c.Width)
	}
	if c.Height < 4 {
		return fmt.Errorf("%w: height %d, need at least 4", ErrInvalidConfig, c.Height)
	}
	if c.TickInterval < constants.MaxSpeedInterval {
		return fmt.Errorf("%w: tick interval %v below %v", ErrInvalidConfig, c.TickInterval, constants.MaxSpeedInterval)
	}
	if c.AutoplayHeight < 1 || c.AutoplayHeight >= c.Height {
		return fmt.Errorf("%w: autoplay height %d outside [1,%d)", ErrInvalidConfig, c.AutoplayHeight, c.Height)
	}
	switch c.ColorMode {
	case ColorAuto, Color256, ColorTrueColor:
	default:
		return fmt.Errorf("%w: color mode %q", ErrInvalidConfig, c.ColorMode)
	}
	return nil
}

// NewRand returns the piece RNG for the configured seed
func (c *Config) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
