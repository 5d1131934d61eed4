package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManualRegistry() (*timerRegistry, *[]func()) {
	fires := &[]func(){}
	registry := newTimerRegistry(func(_ time.Duration, fire func()) *time.Timer {
		*fires = append(*fires, fire)
		return time.AfterFunc(time.Hour, func() {})
	})
	return registry, fires
}

func TestTimerRegistry_ScheduleAndCancel(t *testing.T) {
	registry, _ := newManualRegistry()

	registry.schedule("order-1", time.Minute, func() {})
	registry.schedule("order-2", time.Minute, func() {})
	require.Equal(t, 2, registry.active())

	assert.True(t, registry.cancel("order-1"))
	assert.Equal(t, 1, registry.active())

	assert.False(t, registry.cancel("order-1"), "cancelling twice finds no timer")
	assert.False(t, registry.cancel("unknown"))
}

func TestTimerRegistry_FireRemovesEntry(t *testing.T) {
	registry, fires := newManualRegistry()

	fired := 0
	registry.schedule("order-1", time.Minute, func() { fired++ })

	require.Len(t, *fires, 1)
	(*fires)[0]()

	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, registry.active())
	assert.False(t, registry.cancel("order-1"))
}

func TestTimerRegistry_RescheduleReplacesExistingTimer(t *testing.T) {
	registry, fires := newManualRegistry()

	firstFired := false
	secondFired := false
	registry.schedule("order-1", time.Minute, func() { firstFired = true })
	registry.schedule("order-1", time.Minute, func() { secondFired = true })

	require.Len(t, *fires, 2)
	assert.Equal(t, 1, registry.active())

	// A stale wrapper must neither run its callback nor evict the live entry.
	(*fires)[0]()
	assert.False(t, firstFired)
	assert.Equal(t, 1, registry.active())

	(*fires)[1]()
	assert.True(t, secondFired)
	assert.Equal(t, 0, registry.active())
}

func TestTimerRegistry_DefaultsToRealTimers(t *testing.T) {
	registry := newTimerRegistry(nil)

	done := make(chan struct{})
	registry.schedule("order-1", time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	assert.Equal(t, 0, registry.active())
}
