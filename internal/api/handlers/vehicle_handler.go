package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocomet/taxi-dispatch/internal/api/dto"
	"github.com/gocomet/taxi-dispatch/pkg/logger"
	"github.com/google/uuid"
)

// ListVehicles handles GET /v1/vehicles
func (h *Handlers) ListVehicles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vehicles": h.Dispatcher.Vehicles()})
}

// GetVehicle handles GET /v1/vehicles/:id
func (h *Handlers) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: "invalid vehicle id"})
		return
	}

	v, err := h.Dispatcher.Vehicle(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// MoveVehicle handles POST /v1/vehicles/:id/location
func (h *Handlers) MoveVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: "invalid vehicle id"})
		return
	}

	var req dto.MoveVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
		return
	}
	if !h.Validator.IsValid(req.Zone) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    "INVALID_LOCATION",
			Message: fmt.Sprintf("unknown zone %q", req.Zone),
		})
		return
	}

	if err := h.Dispatcher.MoveVehicle(id, req.Zone); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle relocated"})
}

// CompleteTrip handles POST /v1/vehicles/:id/complete: finalizes the
// vehicle's active trip, then charges the passenger. Payment failures
// are logged and swallowed; the completed trip stands either way.
func (h *Handlers) CompleteTrip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: "invalid vehicle id"})
		return
	}

	ctx := c.Request.Context()
	t, err := h.Trips.CompleteTrip(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var receipt string
	if h.Payments != nil && t.Fare != nil {
		receipt, err = h.Payments.ProcessPayment(ctx, t.Request.PassengerID, *t.Fare)
		if err != nil {
			h.Logger.Error("Payment failed",
				logger.String("trip_id", t.ID.String()),
				logger.Err(err),
			)
			receipt = ""
		}
	}

	h.broadcast("trip_completed", t)
	if t.Fare != nil {
		h.notify(t.Request.PassengerID, fmt.Sprintf("Trip complete, fare %.2f", *t.Fare))
		if h.Monitor != nil && t.DistanceMiles != nil {
			h.Monitor.RecordTripCompleted(t.ID.String(), *t.Fare, *t.DistanceMiles)
		}
	}

	var fare float64
	if t.Fare != nil {
		fare = *t.Fare
	}
	c.JSON(http.StatusOK, dto.CompletionResponse{Trip: t, Fare: fare, PaymentReceipt: receipt})
}
