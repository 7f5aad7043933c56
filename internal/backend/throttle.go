package backend

import (
	"sync"
	"time"
)

// throttle spaces out tree requests. A zero interval disables it so every
// event triggers an immediate fetch.
type throttle struct {
	interval time.Duration
	sleep    func(time.Duration)
	now      func() time.Time

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	t := &throttle{sleep: time.Sleep, now: time.Now}
	if interval > 0 {
		t.interval = interval
	}
	return t
}

// wait blocks until the next slot is free and claims it.
func (t *throttle) wait() {
	if t == nil || t.interval <= 0 {
		return
	}
	for {
		t.mu.Lock()
		now := t.now()
		wait := t.next.Sub(now)
		if wait <= 0 {
			t.next = now.Add(t.interval)
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
		if wait > t.interval {
			wait = t.interval
		}
		t.sleep(wait)
	}
}
