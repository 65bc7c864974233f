package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gocomet/taxi-dispatch/internal/api/handlers"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, nrApp *newrelic.Application) {
	if nrApp != nil {
		r.Use(nrgin.Middleware(nrApp))
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	v1 := r.Group("/v1")
	{
		// Event stream
		v1.GET("/ws", h.HandleWebSocket)

		// Ride requests
		v1.POST("/requests", h.CreateRequest)

		// Vehicles
		vehicles := v1.Group("/vehicles")
		{
			vehicles.GET("", h.ListVehicles)
			vehicles.GET("/:id", h.GetVehicle)
			vehicles.POST("/:id/location", h.MoveVehicle)
			vehicles.POST("/:id/complete", h.CompleteTrip)
		}

		// Trips (?status=failed lists unmatched trips)
		trips := v1.Group("/trips")
		{
			trips.GET("", h.GetTrips)
			trips.GET("/:id", h.GetTrip)
			trips.POST("/:id/cancel", h.CancelTrip)
		}

		// Feedback
		v1.POST("/feedback", h.RecordFeedback)
	}
}
