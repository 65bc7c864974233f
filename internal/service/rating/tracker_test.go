package rating

import (
	"testing"

	"github.com/gocomet/taxi-dispatch/internal/domain/vehicle"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecord_RunningAverage tests the average over an ordered sequence
func TestRecord_RunningAverage(t *testing.T) {
	tracker := NewTracker()
	v := vehicle.New("Driver 1", "North")

	scores := []int{5, 3, 4, 2, 5}
	var sum int
	for i, score := range scores {
		avg, err := tracker.Record(v, uuid.New(), score, "")
		require.NoError(t, err)
		sum += score
		assert.InDelta(t, float64(sum)/float64(i+1), avg, 1e-9)
	}
	assert.Equal(t, len(scores), v.FeedbackCount)
}

// TestRecord_RejectsOutOfRangeScores tests that bad scores change nothing
func TestRecord_RejectsOutOfRangeScores(t *testing.T) {
	tracker := NewTracker()
	v := vehicle.New("Driver 1", "North")

	_, err := tracker.Record(v, uuid.New(), 5, "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		score int
	}{
		{name: "zero", score: 0},
		{name: "negative", score: -3},
		{name: "above max", score: 6},
		{name: "far above max", score: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, err := tracker.Record(v, uuid.New(), tt.score, "")
			assert.ErrorIs(t, err, ErrInvalidScore)
			assert.Equal(t, 5.0, avg, "rejected score returns the unchanged rating")
			assert.Equal(t, 5.0, v.Rating)
			assert.Equal(t, 1, v.FeedbackCount)
		})
	}
}

// TestRecord_OncePerTrip tests per-trip idempotency
func TestRecord_OncePerTrip(t *testing.T) {
	tracker := NewTracker()
	v := vehicle.New("Driver 1", "North")
	tripID := uuid.New()

	avg, err := tracker.Record(v, tripID, 4, "smooth ride")
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)

	// the second attempt is rejected, not double-counted
	avg, err = tracker.Record(v, tripID, 5, "")
	assert.ErrorIs(t, err, ErrAlreadyRecorded)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 1, v.FeedbackCount)
}

// TestHistory_KeepsArrivalOrder tests the feedback log
func TestHistory_KeepsArrivalOrder(t *testing.T) {
	tracker := NewTracker()
	v := vehicle.New("Driver 1", "North")

	first := uuid.New()
	second := uuid.New()
	_, err := tracker.Record(v, first, 5, "great")
	require.NoError(t, err)
	_, err = tracker.Record(v, second, 2, "late pickup")
	require.NoError(t, err)

	history := tracker.History()
	require.Len(t, history, 2)
	assert.Equal(t, first, history[0].TripID)
	assert.Equal(t, "great", history[0].Comment)
	assert.Equal(t, second, history[1].TripID)
	assert.Equal(t, 2, history[1].Score)
}
