package rating

import (
	"fmt"
	"sync"
	"time"

	"github.com/gocomet/taxi-dispatch/internal/domain/vehicle"
	"github.com/google/uuid"
)

const (
	MinScore = 1
	MaxScore = 5
)

// FeedbackRecord captures one passenger's post-trip rating
type FeedbackRecord struct {
	TripID     uuid.UUID `json:"trip_id"`
	VehicleID  uuid.UUID `json:"vehicle_id"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Tracker folds feedback scores into each vehicle's running average.
// At most one record is accepted per trip.
type Tracker struct {
	mu       sync.Mutex
	recorded map[uuid.UUID]struct{} // trip IDs already rated
	history  []FeedbackRecord
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{recorded: make(map[uuid.UUID]struct{})}
}

// Record validates the score, applies it to the vehicle's running average
// and returns the new average. The vehicle is left untouched when the
// score is out of range or the trip was already rated.
func (t *Tracker) Record(v *vehicle.Vehicle, tripID uuid.UUID, score int, comment string) (float64, error) {
	if score < MinScore || score > MaxScore {
		return v.Rating, fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.recorded[tripID]; ok {
		return v.Rating, ErrAlreadyRecorded
	}

	average := v.ApplyFeedback(score)
	t.recorded[tripID] = struct{}{}
	t.history = append(t.history, FeedbackRecord{
		TripID:     tripID,
		VehicleID:  v.ID,
		Score:      score,
		Comment:    comment,
		RecordedAt: time.Now(),
	})
	return average, nil
}

// History returns a snapshot of all recorded feedback in arrival order.
func (t *Tracker) History() []FeedbackRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]FeedbackRecord, len(t.history))
	copy(out, t.history)
	return out
}
