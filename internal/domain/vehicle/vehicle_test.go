package vehicle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBeginEndTrip_AvailabilityInvariant tests that availability tracks
// the active-trip reference
func TestBeginEndTrip_AvailabilityInvariant(t *testing.T) {
	v := New("Driver 1", "North")
	tripID := uuid.New()

	assert.True(t, v.Available)
	assert.Nil(t, v.ActiveTripID)

	require.NoError(t, v.BeginTrip(tripID))
	assert.False(t, v.Available)
	require.NotNil(t, v.ActiveTripID)
	assert.Equal(t, tripID, *v.ActiveTripID)

	// a busy vehicle cannot take another trip
	err := v.BeginTrip(uuid.New())
	assert.ErrorIs(t, err, ErrVehicleBusy)

	require.NoError(t, v.EndTrip(17.50))
	assert.True(t, v.Available)
	assert.Nil(t, v.ActiveTripID)
	assert.Equal(t, 17.50, v.TotalEarnings)
}

// TestEndTrip_WithoutActiveTrip tests the idle-vehicle error
func TestEndTrip_WithoutActiveTrip(t *testing.T) {
	v := New("Driver 1", "North")

	err := v.EndTrip(10.0)
	assert.ErrorIs(t, err, ErrNoActiveTrip)
	assert.Zero(t, v.TotalEarnings)
}

// TestEarnings_Accumulate tests earnings across trips
func TestEarnings_Accumulate(t *testing.T) {
	v := New("Driver 1", "North")

	require.NoError(t, v.BeginTrip(uuid.New()))
	require.NoError(t, v.EndTrip(17.50))
	require.NoError(t, v.BeginTrip(uuid.New()))
	require.NoError(t, v.EndTrip(15.00))

	assert.Equal(t, 32.50, v.TotalEarnings)
}

// TestRelocate_OnlyWhenIdle tests zone updates
func TestRelocate_OnlyWhenIdle(t *testing.T) {
	v := New("Driver 1", "North")

	require.NoError(t, v.Relocate("South"))
	assert.Equal(t, "South", v.Zone)

	require.NoError(t, v.BeginTrip(uuid.New()))
	err := v.Relocate("East")
	assert.ErrorIs(t, err, ErrVehicleBusy)
	assert.Equal(t, "South", v.Zone)
}

// TestApplyFeedback_RunningAverage tests the rating formula over a sequence
func TestApplyFeedback_RunningAverage(t *testing.T) {
	v := New("Driver 1", "North")

	assert.Equal(t, 5.0, v.ApplyFeedback(5), "first feedback becomes the rating")
	assert.Equal(t, 4.0, v.ApplyFeedback(3), "(5+3)/2")
	assert.InDelta(t, 4.0, v.ApplyFeedback(4), 1e-9, "(5+3+4)/3")
	assert.InDelta(t, 3.25, v.ApplyFeedback(1), 1e-9, "(5+3+4+1)/4")
	assert.Equal(t, 4, v.FeedbackCount)
}
