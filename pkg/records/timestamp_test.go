package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatIST(t *testing.T) {
	f := IST()
	at := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "11 Mar 2025, 05:00 AM", f.Format(at))
	assert.Equal(t, "2025-03-11", f.Date(at))
	assert.Equal(t, f.Format(at), f.Format(at.In(time.FixedZone("X", -7*3600))))
	assert.Equal(t, "", f.Format(time.Time{}))
}

func TestFormatterFallsBackToFixedOffset(t *testing.T) {
	f := NewTimestampFormatter("Nowhere/Imaginary", 5*time.Hour+30*time.Minute)
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "10 Mar 2025, 05:30 PM", f.Format(at))
	_, offset := at.In(f.Location()).Zone()
	assert.Equal(t, 19800, offset)
}

func TestIsNew(t *testing.T) {
	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsNew(now.Add(-23*time.Hour), now, 24*time.Hour))
	assert.False(t, IsNew(now.Add(-25*time.Hour), now, 24*time.Hour))
	assert.False(t, IsNew(time.Time{}, now, 0))
	assert.True(t, IsNew(now.Add(-time.Hour), now, 0))
}

func TestIsNewFlipsWithClock(t *testing.T) {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsNew(created, created.Add(23*time.Hour), 24*time.Hour))
	assert.False(t, IsNew(created, created.Add(24*time.Hour), 24*time.Hour))
}
