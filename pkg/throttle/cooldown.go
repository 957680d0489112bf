// Package throttle carries the rate limiting used by the API: a per-key
// cool-down after successful actions and per-IP request limits.
package throttle

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Cooldown enforces a fixed quiet period per key after each successful
// action. Failed actions do not start the timer. A key holds at most one
// outstanding reservation at a time.
type Cooldown struct {
	period time.Duration
	now    func() time.Time

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	pending  map[string]struct{}
}

// NewCooldown builds a cool-down of period. A non-positive period disables it.
func NewCooldown(period time.Duration) *Cooldown {
	return &Cooldown{
		period:   period,
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
		pending:  make(map[string]struct{}),
	}
}

// WithClock overrides the time source.
func (c *Cooldown) WithClock(now func() time.Time) *Cooldown {
	c.now = now
	return c
}

// Period returns the configured quiet period.
func (c *Cooldown) Period() time.Duration {
	return c.period
}

// Reservation holds a key's slot between Reserve and the outcome of the
// action. Exactly one of Commit or Release takes effect; later calls are
// no-ops, so callers can defer Release and Commit on success.
type Reservation struct {
	c    *Cooldown
	key  string
	once sync.Once
}

// Reserve claims key's slot. When the key is cooling down or another
// action for it is still in flight, ok is false and wait says how long to
// back off.
func (c *Cooldown) Reserve(key string) (res *Reservation, ok bool, wait time.Duration) {
	if c.period <= 0 {
		return &Reservation{}, true, 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.pending[key]; busy {
		return nil, false, c.period
	}
	if wait := c.remaining(key); wait > 0 {
		return nil, false, wait
	}
	c.pending[key] = struct{}{}
	return &Reservation{c: c, key: key}, true, 0
}

// Commit starts the quiet period for the reserved key.
func (r *Reservation) Commit() {
	r.settle(true)
}

// Release gives the slot back without starting the quiet period.
func (r *Reservation) Release() {
	r.settle(false)
}

func (r *Reservation) settle(success bool) {
	if r == nil || r.c == nil {
		return
	}
	r.once.Do(func() {
		c := r.c
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.pending, r.key)
		if success {
			c.limiter(r.key).AllowN(c.now(), 1)
		}
	})
}

// Forget drops the state for key.
func (c *Cooldown) Forget(key string) {
	c.mu.Lock()
	delete(c.limiters, key)
	c.mu.Unlock()
}

// remaining must be called with mu held.
func (c *Cooldown) remaining(key string) time.Duration {
	lim, ok := c.limiters[key]
	if !ok {
		return 0
	}
	tokens := lim.TokensAt(c.now())
	if tokens >= 1 {
		return 0
	}
	return time.Duration((1 - tokens) * float64(c.period)).Round(time.Millisecond)
}

// limiter must be called with mu held.
func (c *Cooldown) limiter(key string) *rate.Limiter {
	lim, ok := c.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(c.period), 1)
		c.limiters[key] = lim
	}
	return lim
}
