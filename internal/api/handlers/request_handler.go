package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocomet/taxi-dispatch/internal/api/dto"
	"github.com/gocomet/taxi-dispatch/internal/domain/trip"
	"github.com/gocomet/taxi-dispatch/pkg/cache"
	"github.com/gocomet/taxi-dispatch/pkg/logger"
)

// CreateRequest handles POST /v1/requests: validates the zones, runs
// dispatch and files the trip. A request that finds no vehicle is a
// normal outcome and still returns the Failed trip.
func (h *Handlers) CreateRequest(c *gin.Context) {
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
		return
	}

	for _, zone := range []string{req.Pickup, req.Destination} {
		if !h.Validator.IsValid(zone) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    "INVALID_LOCATION",
				Message: fmt.Sprintf("unknown zone %q", zone),
			})
			return
		}
	}

	ctx := c.Request.Context()

	if h.Redis != nil && req.IdempotencyKey != "" {
		claimed, err := cache.ClaimIdempotencyKey(ctx, h.Redis, req.IdempotencyKey, "pending", h.IdempotencyTTL)
		if err != nil {
			h.Logger.Warn("Idempotency check failed, continuing", logger.Err(err))
		} else if !claimed {
			tripID, _, _ := cache.LookupIdempotencyKey(ctx, h.Redis, req.IdempotencyKey)
			c.JSON(http.StatusConflict, dto.ErrorResponse{
				Code:    "DUPLICATE_REQUEST",
				Message: fmt.Sprintf("request already dispatched as trip %s", tripID),
			})
			return
		}
	}

	result, err := h.Trips.StartTrip(ctx, trip.Request{
		PassengerID:  req.PassengerID,
		Pickup:       req.Pickup,
		Destination:  req.Destination,
		DiscountCode: req.DiscountCode,
		RequestedAt:  time.Now(),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.Redis != nil && req.IdempotencyKey != "" {
		h.Redis.Set(ctx, "idempotency:"+req.IdempotencyKey, result.Trip.ID.String(), h.IdempotencyTTL)
	}

	if result.Vehicle != nil {
		h.broadcast("trip_dispatched", result)
		h.notify(req.PassengerID, fmt.Sprintf("Driver %s is on the way", result.Vehicle.DriverName))
		if h.Monitor != nil {
			h.Monitor.RecordTripDispatched(req.Pickup, 1)
		}
		c.JSON(http.StatusCreated, dto.DispatchResponse{
			Trip:    result.Trip,
			Vehicle: result.Vehicle,
			Matched: true,
		})
		return
	}

	h.broadcast("trip_failed", result.Trip)
	h.notify(req.PassengerID, "No vehicles available right now, please retry")
	if h.Monitor != nil {
		h.Monitor.RecordTripFailed(req.Pickup)
	}
	c.JSON(http.StatusOK, dto.DispatchResponse{Trip: result.Trip, Matched: false})
}
