package throttle

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCooldown() (*Cooldown, *clock) {
	clk := &clock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return NewCooldown(5 * time.Second).WithClock(clk.Now), clk
}

func TestCooldownBlocksUntilPeriodElapses(t *testing.T) {
	cd, clk := newTestCooldown()

	res, ok, _ := cd.Reserve("C001")
	require.True(t, ok)
	res.Commit()

	clk.Advance(2 * time.Second)
	_, ok, wait := cd.Reserve("C001")
	assert.False(t, ok)
	assert.Equal(t, 3*time.Second, wait)

	other, ok, _ := cd.Reserve("C002")
	assert.True(t, ok)
	other.Release()

	clk.Advance(3 * time.Second)
	_, ok, _ = cd.Reserve("C001")
	assert.True(t, ok)
}

func TestCooldownReleaseDoesNotBlock(t *testing.T) {
	cd, _ := newTestCooldown()

	for i := 0; i < 3; i++ {
		res, ok, _ := cd.Reserve("C001")
		require.True(t, ok)
		res.Release()
	}
}

func TestCooldownInFlightReservationBlocksKey(t *testing.T) {
	cd, _ := newTestCooldown()

	res, ok, _ := cd.Reserve("C001")
	require.True(t, ok)

	_, ok, wait := cd.Reserve("C001")
	assert.False(t, ok)
	assert.Equal(t, 5*time.Second, wait)

	res.Release()
	res.Commit()
	_, ok, _ = cd.Reserve("C001")
	assert.True(t, ok, "commit after release must not start the period")
}

func TestCooldownConcurrentReserveAdmitsOne(t *testing.T) {
	cd, _ := newTestCooldown()

	var granted int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if res, ok, _ := cd.Reserve("C001"); ok {
				atomic.AddInt32(&granted, 1)
				res.Commit()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), granted)
}

func TestCooldownForgetAndDisabled(t *testing.T) {
	cd, _ := newTestCooldown()
	res, _, _ := cd.Reserve("C001")
	res.Commit()
	cd.Forget("C001")
	_, ok, _ := cd.Reserve("C001")
	assert.True(t, ok)

	off := NewCooldown(0)
	res, _, _ = off.Reserve("C001")
	res.Commit()
	_, ok, wait := off.Reserve("C001")
	assert.True(t, ok)
	assert.Zero(t, wait)
}
