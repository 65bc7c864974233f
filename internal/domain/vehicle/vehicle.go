package vehicle

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle represents a dispatchable taxi with one active trip at a time.
//
// Invariant: Available == false exactly when ActiveTripID != nil. All
// mutations happen under the dispatcher's pool lock.
type Vehicle struct {
	ID            uuid.UUID  `json:"id"`
	DriverName    string     `json:"driver_name"`
	Zone          string     `json:"zone"`
	Available     bool       `json:"available"`
	ActiveTripID  *uuid.UUID `json:"active_trip_id,omitempty"`
	TotalEarnings float64    `json:"total_earnings"`
	Rating        float64    `json:"rating"`
	FeedbackCount int        `json:"feedback_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// New creates an available vehicle stationed in the given zone.
func New(driverName, zone string) *Vehicle {
	return &Vehicle{
		ID:         uuid.New(),
		DriverName: driverName,
		Zone:       zone,
		Available:  true,
		CreatedAt:  time.Now(),
	}
}

// BeginTrip claims the vehicle for a trip, taking it out of the pool.
func (v *Vehicle) BeginTrip(tripID uuid.UUID) error {
	if !v.Available || v.ActiveTripID != nil {
		return ErrVehicleBusy
	}
	v.Available = false
	v.ActiveTripID = &tripID
	return nil
}

// EndTrip credits earnings, clears the active trip and returns the
// vehicle to the pool.
func (v *Vehicle) EndTrip(fare float64) error {
	if v.ActiveTripID == nil {
		return ErrNoActiveTrip
	}
	v.TotalEarnings += fare
	v.ActiveTripID = nil
	v.Available = true
	return nil
}

// AbortTrip releases the vehicle without crediting earnings.
func (v *Vehicle) AbortTrip() error {
	if v.ActiveTripID == nil {
		return ErrNoActiveTrip
	}
	v.ActiveTripID = nil
	v.Available = true
	return nil
}

// Relocate moves an idle vehicle to a new zone.
func (v *Vehicle) Relocate(zone string) error {
	if !v.Available {
		return ErrVehicleBusy
	}
	v.Zone = zone
	return nil
}

// ApplyFeedback folds a score into the running average rating.
// The caller validates the score range.
func (v *Vehicle) ApplyFeedback(score int) float64 {
	v.Rating = (v.Rating*float64(v.FeedbackCount) + float64(score)) / float64(v.FeedbackCount+1)
	v.FeedbackCount++
	return v.Rating
}
