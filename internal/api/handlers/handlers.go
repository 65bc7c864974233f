package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocomet/taxi-dispatch/internal/api/dto"
	"github.com/gocomet/taxi-dispatch/internal/service/dispatch"
	"github.com/gocomet/taxi-dispatch/internal/service/location"
	"github.com/gocomet/taxi-dispatch/internal/service/trips"
	apperrors "github.com/gocomet/taxi-dispatch/pkg/errors"
	"github.com/gocomet/taxi-dispatch/pkg/logger"
	"github.com/gocomet/taxi-dispatch/pkg/monitoring"
	"github.com/gocomet/taxi-dispatch/pkg/payment"
	"github.com/gocomet/taxi-dispatch/pkg/websocket"
	"github.com/redis/go-redis/v9"
)

// Handlers holds all handler dependencies. Hub, Redis and Monitor are
// optional; handlers degrade gracefully when they are nil.
type Handlers struct {
	Trips          *trips.Manager
	Dispatcher     *dispatch.Dispatcher
	Validator      *location.Validator
	Payments       payment.Service
	Hub            *websocket.Hub
	Redis          *redis.Client
	IdempotencyTTL time.Duration
	Monitor        *monitoring.App
	Logger         *logger.Logger
}

// NewHandlers creates a Handlers instance
func NewHandlers(
	manager *trips.Manager,
	dispatcher *dispatch.Dispatcher,
	validator *location.Validator,
	payments payment.Service,
	hub *websocket.Hub,
	redisClient *redis.Client,
	idempotencyTTL time.Duration,
	monitor *monitoring.App,
	log *logger.Logger,
) *Handlers {
	return &Handlers{
		Trips:          manager,
		Dispatcher:     dispatcher,
		Validator:      validator,
		Payments:       payments,
		Hub:            hub,
		Redis:          redisClient,
		IdempotencyTTL: idempotencyTTL,
		Monitor:        monitor,
		Logger:         log,
	}
}

// respondError maps a domain error to the uniform error payload
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr := apperrors.FromDomain(err)
	if appErr.Status >= 500 {
		h.Logger.Error("Request failed", logger.Err(err))
	}
	c.JSON(appErr.Status, dto.ErrorResponse{Code: appErr.Code, Message: appErr.Message})
}

func (h *Handlers) broadcast(eventType string, data interface{}) {
	if h.Hub == nil {
		return
	}
	h.Hub.Broadcast(websocket.Message{Type: eventType, Data: data})
}

func (h *Handlers) notify(userID, message string) {
	if h.Hub == nil {
		return
	}
	h.Hub.Notify(userID, message)
}
