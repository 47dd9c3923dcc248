package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	_ Timer = System{}
	_ Timer = (*CachedTimer)(nil)
	_ Timer = (*Manual)(nil)
)

func TestCachedTimer(t *testing.T) {
	ct := NewCachedTimer(5 * time.Millisecond)
	defer ct.Stop()

	first := ct.Now()
	assert.WithinDuration(t, time.Now(), first, time.Second)

	assert.Eventually(t, func() bool {
		return ct.Now().After(first)
	}, time.Second, 5*time.Millisecond)
}

func TestCachedTimer_StopTwice(t *testing.T) {
	ct := NewCachedTimer(time.Millisecond)
	ct.Stop()
	assert.NotPanics(t, ct.Stop)
}

func TestManual(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewManual(start)

	assert.Equal(t, start, m.Now())
	m.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), m.Now())
}
