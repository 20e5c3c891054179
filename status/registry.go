package status

import "sync/atomic"

// Metric keys shared by the modes that write them and the HUD that reads them
const (
	KeyMode        = "page.mode"
	KeyInterval    = "page.interval_ms"
	KeyTimerPaused = "page.timer_paused"

	KeyPieces     = "board.pieces"
	KeyRows       = "board.rows"
	KeyMaxHeight  = "board.max_height"
	KeyFill       = "board.fill"
	KeyLastResult = "board.last_result"

	KeyGames     = "game.played"
	KeyGameRows  = "game.rows"
	KeyBestRows  = "game.best_rows"
	KeyAutoTicks = "autoplay.ticks"

	KeyFrames = "render.frames"
)

// Registry is the central metrics facade
// Writers cache pointers at construction and store into the atomics on the dispatch goroutine
// The renderer reads them without locking
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// RecordMax raises the int metric at key to v if v is larger, returns the stored value
func (r *Registry) RecordMax(key string, v int64) int64 {
	p := r.Ints.Get(key)
	for {
		cur := p.Load()
		if v <= cur {
			return cur
		}
		if p.CompareAndSwap(cur, v) {
			return v
		}
	}
}
