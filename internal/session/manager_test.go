package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestManager_ResolveCreatesAndReuses(t *testing.T) {
	m := NewManager(time.Hour)

	id, ws, created := m.Resolve("")
	require.True(t, created)
	require.NotEmpty(t, id)

	again, ws2, created := m.Resolve(id)
	assert.False(t, created)
	assert.Equal(t, id, again)
	assert.Same(t, ws, ws2)

	other, ws3, created := m.Resolve("unknown")
	assert.True(t, created)
	assert.NotEqual(t, "unknown", other)
	assert.NotSame(t, ws, ws3)
	assert.Equal(t, 2, m.Len())
}

func TestManager_SweepDropsIdleWorkspaces(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	var live []int
	m := NewManager(time.Hour, WithClock(clock.Now), WithLiveHook(func(n int) { live = append(live, n) }))

	oldID, _, _ := m.Resolve("")
	clock.t = clock.t.Add(45 * time.Minute)
	freshID, fresh, _ := m.Resolve("")

	clock.t = clock.t.Add(30 * time.Minute)
	fresh.ClearSelection()

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())

	_, ws, created := m.Resolve(freshID)
	assert.False(t, created)
	assert.Same(t, fresh, ws)
	assert.Equal(t, []int{1, 2, 1}, live)

	again, _, created := m.Resolve(oldID)
	assert.True(t, created, "expired id gets a new workspace")
	assert.NotEqual(t, oldID, again)
}

func TestManager_SweepDisabled(t *testing.T) {
	m := NewManager(0)
	m.Resolve("")
	assert.Equal(t, 0, m.Sweep())
	assert.Equal(t, 1, m.Len())
}
