package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocomet/taxi-dispatch/internal/api/dto"
	"github.com/google/uuid"
)

// GetTrips handles GET /v1/trips. The default listing is the matched
// trip history; ?status=failed returns the unmatched trips instead.
func (h *Handlers) GetTrips(c *gin.Context) {
	if c.Query("status") == "failed" {
		c.JSON(http.StatusOK, gin.H{"trips": h.Trips.FailedTrips()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": h.Trips.History()})
}

// GetTrip handles GET /v1/trips/:id
func (h *Handlers) GetTrip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: "invalid trip id"})
		return
	}

	t, err := h.Dispatcher.Trip(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// CancelTrip handles POST /v1/trips/:id/cancel. Only Pending trips can
// be cancelled; anything else is an illegal transition.
func (h *Handlers) CancelTrip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: "invalid trip id"})
		return
	}

	t, err := h.Trips.CancelTrip(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.broadcast("trip_cancelled", t)
	c.JSON(http.StatusOK, t)
}
