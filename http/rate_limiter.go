package http

import (
	"sync"
	"time"
)

const (
	idleWindowTTL = 1 * time.Hour
	sweepInterval = 30 * time.Minute
)

// window counts the requests a client made since start.
type window struct {
	start time.Time
	used  int
}

// RateLimiter admits at most limit requests per client key in each fixed
// window. Idle clients are swept in the background until Stop is called.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Allow reports whether key may make another request now.
func (r *RateLimiter) Allow(key string) bool {
	ok, _ := r.Reserve(key)
	return ok
}

// Reserve takes one request from key's window. When the window is used up it
// returns false and how long until the next window opens.
func (r *RateLimiter) Reserve(key string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.windows[key]
	if !ok || now.Sub(w.start) >= r.period {
		w = &window{start: now}
		r.windows[key] = w
	}

	if w.used >= r.limit {
		return false, w.start.Add(r.period).Sub(now)
	}
	w.used++
	return true, 0
}

// Stop ends the background sweep. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.done:
			return
		}
	}
}

func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, w := range r.windows {
		if now.Sub(w.start) > idleWindowTTL {
			delete(r.windows, key)
		}
	}
}
