package quota

import (
	"sync"
	"testing"

	"gallery/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanUpload(t *testing.T) {
	tests := []struct {
		name               string
		requested, current int
		want               bool
	}{
		{"first upload", 1, 0, true},
		{"exactly at the limit", 5, 25, true},
		{"one over", 6, 25, false},
		{"already full", 1, 30, false},
		{"nothing requested", 0, 0, false},
		{"negative current", 1, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanUpload(MaxUploads, tt.requested, tt.current))
		})
	}
}

func TestTracker_ReserveNeverExceedsLimit(t *testing.T) {
	tracker := NewTracker(0, "")
	accepted := 0
	for i := 0; i < 40; i++ {
		if tracker.Reserve("device", 1, 0) {
			accepted++
		}
	}
	assert.Equal(t, MaxUploads, accepted)
	assert.Equal(t, MaxUploads, tracker.Count("device"))
	assert.True(t, tracker.Reserve("other-device", 1, 0))
}

func TestTracker_ReserveConcurrently(t *testing.T) {
	tracker := NewTracker(10, "")
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tracker.Reserve("device", 1, 0) {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, accepted)
}

func TestTracker_ReportedCountWins(t *testing.T) {
	tracker := NewTracker(0, "")
	assert.False(t, tracker.Reserve("device", 1, 30))
	assert.True(t, tracker.Reserve("device", 2, 28))
	assert.Equal(t, 30, tracker.Count("device"))
	assert.False(t, tracker.CanUpload("device", 1, 0))
}

func TestTracker_ReleaseAndRecord(t *testing.T) {
	tracker := NewTracker(5, "")
	require.True(t, tracker.Reserve("device", 3, 0))
	tracker.Release("device", 1)
	assert.Equal(t, 2, tracker.Count("device"))
	tracker.Release("device", 10)
	assert.Equal(t, 0, tracker.Count("device"))

	tracker.RecordUpload("device", 4)
	tracker.RecordUpload("device", 4)
	assert.Equal(t, 5, tracker.Count("device"))
}

func TestTracker_ResetCount(t *testing.T) {
	tracker := NewTracker(0, "s3cret")
	tracker.RecordUpload("a", 30)
	tracker.RecordUpload("b", 12)

	err := tracker.ResetCount("wrong", "a")
	assert.True(t, models.IsAuth(err))
	assert.Equal(t, 30, tracker.Count("a"))

	require.NoError(t, tracker.ResetCount("s3cret", "a"))
	assert.Equal(t, 0, tracker.Count("a"))
	assert.Equal(t, 12, tracker.Count("b"))

	require.NoError(t, tracker.ResetCount("s3cret", ""))
	assert.Equal(t, 0, tracker.Count("b"))
}

func TestTracker_ResetCountDisabledWithoutPasscode(t *testing.T) {
	tracker := NewTracker(0, "")
	tracker.RecordUpload("a", 3)
	assert.Error(t, tracker.ResetCount("", "a"))
	assert.Equal(t, 3, tracker.Count("a"))
}
