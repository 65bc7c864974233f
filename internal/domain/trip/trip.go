package trip

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents trip lifecycle status
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Request is a passenger's ride request. Immutable once created.
type Request struct {
	PassengerID  string    `json:"passenger_id"`
	Pickup       string    `json:"pickup"`
	Destination  string    `json:"destination"`
	DiscountCode string    `json:"discount_code,omitempty"`
	RequestedAt  time.Time `json:"requested_at"`
}

// Trip represents one ride from request through a terminal outcome
type Trip struct {
	ID            uuid.UUID  `json:"id"`
	Request       Request    `json:"request"`
	VehicleID     *uuid.UUID `json:"vehicle_id,omitempty"`
	Status        Status     `json:"status"`
	DistanceMiles *float64   `json:"distance_miles,omitempty"`
	Fare          *float64   `json:"fare,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	FeedbackScore *int       `json:"feedback_score,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// allowedTransitions encodes the trip state flow as data.
// Terminal states have no outgoing edges.
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusFailed, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// New creates a Trip in Pending with no vehicle, distance or fare.
func New(req Request) *Trip {
	return &Trip{
		ID:        uuid.New(),
		Request:   req,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
}

// Assign moves the trip to InProgress and pins the vehicle and distance.
// Distance is computed once here and reused at completion.
func (t *Trip) Assign(vehicleID uuid.UUID, distanceMiles float64, at time.Time) error {
	if err := t.transition(StatusInProgress); err != nil {
		return err
	}
	t.VehicleID = &vehicleID
	t.DistanceMiles = &distanceMiles
	t.StartedAt = &at
	return nil
}

// Complete moves the trip to Completed and records the final fare.
// The fare is set exactly once and must not be negative.
func (t *Trip) Complete(fare float64, at time.Time) error {
	if fare < 0 {
		return fmt.Errorf("%w: %.2f", ErrNegativeFare, fare)
	}
	if err := t.transition(StatusCompleted); err != nil {
		return err
	}
	t.Fare = &fare
	t.EndedAt = &at
	return nil
}

// Fail marks a Pending trip as Failed when no vehicle could be matched.
// Fare and distance stay unset.
func (t *Trip) Fail() error {
	return t.transition(StatusFailed)
}

// Cancel aborts a Pending trip before any vehicle is assigned.
func (t *Trip) Cancel() error {
	return t.transition(StatusCancelled)
}

// Terminal reports whether the trip reached a final state.
func (t *Trip) Terminal() bool {
	switch t.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// RecordFeedback pins the passenger score on the trip. At most one score
// is accepted per trip; the rating tracker enforces the same rule.
func (t *Trip) RecordFeedback(score int) error {
	if t.Status != StatusCompleted {
		return fmt.Errorf("%w: feedback on %s trip", ErrInvalidTransition, t.Status)
	}
	if t.FeedbackScore != nil {
		return ErrFeedbackRecorded
	}
	t.FeedbackScore = &score
	return nil
}

func (t *Trip) transition(to Status) error {
	if !CanTransition(t.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, to)
	}
	t.Status = to
	return nil
}
