package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocomet/taxi-dispatch/internal/api/dto"
	"github.com/google/uuid"
)

// RecordFeedback handles POST /v1/feedback
func (h *Handlers) RecordFeedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
		return
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: "invalid vehicle id"})
		return
	}
	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "BAD_REQUEST", Message: "invalid trip id"})
		return
	}

	rating, err := h.Dispatcher.RecordFeedback(vehicleID, tripID, req.Score, req.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.broadcast("feedback_recorded", dto.FeedbackResponse{VehicleID: req.VehicleID, Rating: rating})
	c.JSON(http.StatusOK, dto.FeedbackResponse{VehicleID: req.VehicleID, Rating: rating})
}
