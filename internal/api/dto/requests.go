package dto

import (
	"github.com/gocomet/taxi-dispatch/internal/domain/trip"
	"github.com/gocomet/taxi-dispatch/internal/domain/vehicle"
)

// CreateRequestRequest submits a new ride request
type CreateRequestRequest struct {
	PassengerID    string `json:"passenger_id" binding:"required"`
	Pickup         string `json:"pickup" binding:"required"`
	Destination    string `json:"destination" binding:"required"`
	DiscountCode   string `json:"discount_code"`
	IdempotencyKey string `json:"idempotency_key"`
}

// FeedbackRequest records a post-trip rating
type FeedbackRequest struct {
	VehicleID string `json:"vehicle_id" binding:"required"`
	TripID    string `json:"trip_id" binding:"required"`
	Score     int    `json:"score" binding:"required"`
	Comment   string `json:"comment"`
}

// MoveVehicleRequest relocates an idle vehicle
type MoveVehicleRequest struct {
	Zone string `json:"zone" binding:"required"`
}

// DispatchResponse is the outcome of a dispatch call
type DispatchResponse struct {
	Trip    trip.Trip        `json:"trip"`
	Vehicle *vehicle.Vehicle `json:"vehicle,omitempty"`
	Matched bool             `json:"matched"`
}

// CompletionResponse reports a finalized trip
type CompletionResponse struct {
	Trip           trip.Trip `json:"trip"`
	Fare           float64   `json:"fare"`
	PaymentReceipt string    `json:"payment_receipt,omitempty"`
}

// FeedbackResponse reports the vehicle's new running average
type FeedbackResponse struct {
	VehicleID string  `json:"vehicle_id"`
	Rating    float64 `json:"rating"`
}

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
