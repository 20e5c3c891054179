package constants

import "time"

// Board Geometry Constants
const (
	// BoardWidth is the default number of columns
	BoardWidth = 10

	// BoardHeight is the default number of rows
	BoardHeight = 20
)

// Engine Tuning Constants
const (
	// InsertionTries bounds the probe/nudge loop of a piece insertion
	InsertionTries = 16

	// AutoplayHeight is the stack height at which autoplay starts cheating
	AutoplayHeight = 15

	// DefaultBanner is painted character by character onto falling pieces
	DefaultBanner = "Herzlichen Glückwunsch zum Geburtstag!!"
)

// Tick Timing Constants
const (
	// TickInterval is the default interval between timed events
	TickInterval = 1000 * time.Millisecond

	// SpeedCoarseStep is applied to long intervals by the speed keys
	SpeedCoarseStep = 100 * time.Millisecond

	// SpeedFineStep is applied to short intervals by the speed keys
	SpeedFineStep = 10 * time.Millisecond

	// SlowestFineInterval is where slowing down switches from fine to coarse steps
	SlowestFineInterval = 100 * time.Millisecond

	// FastestCoarseInterval is where speeding up switches from coarse to fine steps
	FastestCoarseInterval = 200 * time.Millisecond

	// MinSlowInterval is the floor the slow-down key snaps very short intervals to
	MinSlowInterval = 20 * time.Millisecond

	// MinFineInterval is the lowest interval reachable with fine steps
	MinFineInterval = 30 * time.Millisecond

	// MaxSpeedInterval is the fastest tick the speed-up key allows
	MaxSpeedInterval = 10 * time.Millisecond
)

// Input Constants
const (
	// InputQueueSize is the capacity of the dispatcher's input ring buffer, power of two
	InputQueueSize = 256

	// InputQueueMask maps a sequence number to a ring slot
	InputQueueMask = InputQueueSize - 1
)
