package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gocomet/taxi-dispatch/internal/domain/trip"
	"github.com/gocomet/taxi-dispatch/internal/domain/vehicle"
	"github.com/gocomet/taxi-dispatch/internal/service/pricing"
	"github.com/gocomet/taxi-dispatch/internal/service/rating"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// BadRequest creates a 400 error
func BadRequest(message string, err error) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: message, Status: http.StatusBadRequest, Err: err}
}

// NotFound creates a 404 error
func NotFound(message string, err error) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: message, Status: http.StatusNotFound, Err: err}
}

// Conflict creates a 409 error
func Conflict(message string, err error) *AppError {
	return &AppError{Code: "CONFLICT", Message: message, Status: http.StatusConflict, Err: err}
}

// Unprocessable creates a 422 error
func Unprocessable(message string, err error) *AppError {
	return &AppError{Code: "UNPROCESSABLE", Message: message, Status: http.StatusUnprocessableEntity, Err: err}
}

// Internal creates a 500 error
func Internal(message string, err error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: message, Status: http.StatusInternalServerError, Err: err}
}

// FromDomain maps engine sentinel errors to API errors. Unknown errors
// become 500s.
func FromDomain(err error) *AppError {
	switch {
	case errors.Is(err, trip.ErrTripNotFound):
		return NotFound("trip not found", err)
	case errors.Is(err, vehicle.ErrVehicleNotFound):
		return NotFound("vehicle not found", err)
	case errors.Is(err, trip.ErrInvalidTransition):
		return &AppError{Code: "INVALID_STATE_TRANSITION", Message: "illegal trip state transition", Status: http.StatusConflict, Err: err}
	case errors.Is(err, trip.ErrFeedbackRecorded), errors.Is(err, rating.ErrAlreadyRecorded):
		return &AppError{Code: "FEEDBACK_ALREADY_RECORDED", Message: "feedback already recorded for this trip", Status: http.StatusConflict, Err: err}
	case errors.Is(err, rating.ErrInvalidScore):
		return &AppError{Code: "INVALID_FEEDBACK_SCORE", Message: "feedback score must be between 1 and 5", Status: http.StatusBadRequest, Err: err}
	case errors.Is(err, vehicle.ErrNoActiveTrip):
		return &AppError{Code: "NO_ACTIVE_TRIP", Message: "vehicle has no active trip", Status: http.StatusConflict, Err: err}
	case errors.Is(err, vehicle.ErrVehicleBusy):
		return &AppError{Code: "VEHICLE_BUSY", Message: "vehicle already has an active trip", Status: http.StatusConflict, Err: err}
	case errors.Is(err, pricing.ErrUnknownRoute):
		return Unprocessable("no distance configured for route", err)
	default:
		return Internal("internal error", err)
	}
}
