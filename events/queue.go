package events

import (
	"sync/atomic"

	"github.com/lixenwraith/blockfall/constants"
)

// InputQueue is a lock-free MPSC ring buffer between the poll goroutine and the dispatch loop
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (dispatch loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full
type InputQueue struct {
	events    [constants.InputQueueSize]InputEvent
	published [constants.InputQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                         // Read index
	tail      atomic.Uint64                         // Write index

	// Wakes the consumer, capacity 1 so pushes never block
	notify chan struct{}
}

func NewInputQueue() *InputQueue {
	return &InputQueue{
		notify: make(chan struct{}, 1),
	}
}

// Push adds event using lock-free CAS with published flags pattern
// Safe for concurrent producers. O(1) amortized
func (q *InputQueue) Push(event InputEvent) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & constants.InputQueueMask

			q.events[idx] = event
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread events
			currentHead := q.head.Load()
			if nextTail-currentHead > constants.InputQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-constants.InputQueueSize)
			}
			break
		}
	}

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Notify returns the wake-up channel, one signal may cover many pushes
func (q *InputQueue) Notify() <-chan struct{} {
	return q.notify
}

// Len returns the number of unread events, clamped to capacity
func (q *InputQueue) Len() int {
	n := q.tail.Load() - q.head.Load()
	if n > constants.InputQueueSize {
		n = constants.InputQueueSize
	}
	return int(n)
}

// Consume returns all pending events in FIFO order and advances head
// Single-consumer design (dispatch loop). Checks published flags for safety
func (q *InputQueue) Consume() []InputEvent {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > constants.InputQueueSize {
			maxAvailable = constants.InputQueueSize
			currentHead = currentTail - constants.InputQueueSize
		}

		result := make([]InputEvent, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & constants.InputQueueMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.events[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}
