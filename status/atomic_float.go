package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat stores a float64 as its bit pattern
// Zero value is ready to use (represents 0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores val
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// SetRatio stores num/den clamped to [0,1], 0 when den is not positive
func (f *AtomicFloat) SetRatio(num, den int) {
	if den <= 0 {
		f.Set(0)
		return
	}
	f.Set(math.Min(1, math.Max(0, float64(num)/float64(den))))
}
