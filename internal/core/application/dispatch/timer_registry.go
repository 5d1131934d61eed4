package dispatch

import (
	"sync"
	"time"
)

// timerRegistry tracks the pending availability timers, one per order.
// Scheduling a key again replaces the previous timer, and a fired or
// cancelled timer leaves no entry behind.
type timerRegistry struct {
	mu        sync.Mutex
	afterFunc func(d time.Duration, f func()) *time.Timer
	timers    map[string]*time.Timer
}

func newTimerRegistry(afterFunc func(d time.Duration, f func()) *time.Timer) *timerRegistry {
	if afterFunc == nil {
		afterFunc = time.AfterFunc
	}
	return &timerRegistry{
		afterFunc: afterFunc,
		timers:    make(map[string]*time.Timer),
	}
}

// schedule arms a timer for key. The fire callback runs at most once; if the
// key is cancelled or rescheduled first, the old callback never runs.
func (r *timerRegistry) schedule(key string, d time.Duration, fire func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if timer, ok := r.timers[key]; ok {
		timer.Stop()
	}

	// The wrapper only forgets its own entry, so a callback from a timer
	// that was already replaced cannot evict its successor.
	var timer *time.Timer
	timer = r.afterFunc(d, func() {
		r.mu.Lock()
		live := r.timers[key] == timer
		if live {
			delete(r.timers, key)
		}
		r.mu.Unlock()

		if live {
			fire()
		}
	})
	r.timers[key] = timer
}

// cancel stops and forgets the timer for key. Reports whether a live timer
// was cancelled.
func (r *timerRegistry) cancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	timer, ok := r.timers[key]
	if !ok {
		return false
	}

	delete(r.timers, key)
	return timer.Stop()
}

// active returns the number of armed timers.
func (r *timerRegistry) active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}
