package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sherinayrs16/Monitoring-Metering-MUX/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 5, 10, hour, min, 0, 0, time.UTC)
}

func TestNewResolverRejectsBadSlots(t *testing.T) {
	_, err := NewResolver(nil)
	assert.Error(t, err)
	_, err = NewResolver([]string{"25:00"})
	assert.Error(t, err)
	_, err = NewResolver([]string{"06:61"})
	assert.Error(t, err)
	_, err = NewResolver([]string{"0600"})
	assert.Error(t, err)
}

func TestResolveAlarmWindow(t *testing.T) {
	r, err := NewResolver(models.Slots)
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		slot string
		hit  bool
	}{
		{"center of alarm window", at(1, 40), "02:00", true},
		{"lower edge inclusive", at(1, 35), "02:00", true},
		{"upper edge inclusive", at(1, 45), "02:00", true},
		{"just before window", at(1, 30), "", false},
		{"just after window", at(1, 46), "", false},
		{"afternoon slot", at(13, 40), "14:00", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			win, ok := r.Resolve(tc.now)
			require.Equal(t, tc.hit, ok)
			if tc.hit {
				assert.Equal(t, ActionAlarm, win.Action)
				assert.Equal(t, tc.slot, win.Slot)
			}
		})
	}
}

func TestResolveCheckWindow(t *testing.T) {
	r, err := NewResolver(models.Slots)
	require.NoError(t, err)

	win, ok := r.Resolve(at(3, 0))
	require.True(t, ok)
	assert.Equal(t, ActionCheck, win.Action)
	assert.Equal(t, "02:00", win.Slot)
	assert.Equal(t, at(2, 0), win.Target)

	win, ok = r.Resolve(at(19, 3))
	require.True(t, ok)
	assert.Equal(t, ActionCheck, win.Action)
	assert.Equal(t, "18:00", win.Slot)

	// Late-evening check for the 22:00 slot stays on the same day.
	win, ok = r.Resolve(at(23, 2))
	require.True(t, ok)
	assert.Equal(t, ActionCheck, win.Action)
	assert.Equal(t, "22:00", win.Slot)
	assert.Equal(t, at(22, 0), win.Target)

	_, ok = r.Resolve(at(4, 30))
	assert.False(t, ok)
}

func TestTargetForLastSlotLooksBack(t *testing.T) {
	r, err := NewResolver(models.Slots)
	require.NoError(t, err)

	last := len(r.slots) - 1

	// Before the first slot hour the 22:00 reading still belongs to
	// the previous day.
	target := r.targetFor(at(1, 0), last)
	assert.Equal(t, time.Date(2025, 5, 9, 22, 0, 0, 0, time.UTC), target)

	target = r.targetFor(at(21, 40), last)
	assert.Equal(t, time.Date(2025, 5, 10, 22, 0, 0, 0, time.UTC), target)

	// Only the last slot looks back.
	target = r.targetFor(at(1, 0), 0)
	assert.Equal(t, time.Date(2025, 5, 10, 2, 0, 0, 0, time.UTC), target)
}

func TestResolveFirstDeclaredSlotWins(t *testing.T) {
	r, err := NewResolver([]string{"02:00", "02:05"})
	require.NoError(t, err)

	// 01:42 falls in both alarm windows: 01:40±5m and 01:45±5m.
	win, ok := r.Resolve(at(1, 42))
	require.True(t, ok)
	assert.Equal(t, "02:00", win.Slot)
	assert.Equal(t, ActionAlarm, win.Action)
}
