package trips

import (
	"context"
	"sync"

	"github.com/gocomet/taxi-dispatch/internal/domain/trip"
	"github.com/gocomet/taxi-dispatch/internal/service/dispatch"
	"github.com/gocomet/taxi-dispatch/pkg/logger"
	"github.com/google/uuid"
)

// Archiver receives trips that reached a terminal state. Implementations
// are sinks only; the manager never reads trips back from them.
type Archiver interface {
	Archive(ctx context.Context, t trip.Trip) error
}

// Manager files dispatched trips into ordered succeeded and failed
// collections. It routes and records; the dispatcher holds the business
// logic.
type Manager struct {
	mu         sync.Mutex
	succeeded  []uuid.UUID // insertion order = dispatch order
	failed     []uuid.UUID
	dispatcher *dispatch.Dispatcher
	archive    Archiver // optional
	logger     *logger.Logger
}

// NewManager creates a trip manager bound to a dispatcher. The archiver
// may be nil when no trip archive is configured.
func NewManager(d *dispatch.Dispatcher, archive Archiver, log *logger.Logger) *Manager {
	return &Manager{dispatcher: d, archive: archive, logger: log}
}

// StartTrip delegates to the dispatcher and files the trip by outcome.
func (m *Manager) StartTrip(ctx context.Context, req trip.Request) (*dispatch.Result, error) {
	result, err := m.dispatcher.Dispatch(req)
	if err != nil {
		return result, err
	}

	m.mu.Lock()
	if result.Vehicle != nil {
		m.succeeded = append(m.succeeded, result.Trip.ID)
	} else {
		m.failed = append(m.failed, result.Trip.ID)
	}
	m.mu.Unlock()

	if result.Vehicle == nil {
		m.archiveTrip(ctx, result.Trip)
	}
	return result, nil
}

// CompleteTrip finalizes the vehicle's active trip and archives it.
func (m *Manager) CompleteTrip(ctx context.Context, vehicleID uuid.UUID) (trip.Trip, error) {
	t, err := m.dispatcher.CompleteTrip(vehicleID)
	if err != nil {
		return t, err
	}
	m.archiveTrip(ctx, t)
	return t, nil
}

// CancelTrip aborts a Pending trip and archives the cancellation.
func (m *Manager) CancelTrip(ctx context.Context, tripID uuid.UUID) (trip.Trip, error) {
	t, err := m.dispatcher.CancelTrip(tripID)
	if err != nil {
		return t, err
	}
	m.archiveTrip(ctx, t)
	return t, nil
}

// History returns matched trips in dispatch order.
func (m *Manager) History() []trip.Trip {
	return m.snapshot(m.ids(&m.succeeded))
}

// FailedTrips returns unmatched trips in dispatch order.
func (m *Manager) FailedTrips() []trip.Trip {
	return m.snapshot(m.ids(&m.failed))
}

func (m *Manager) ids(list *[]uuid.UUID) []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uuid.UUID, len(*list))
	copy(out, *list)
	return out
}

func (m *Manager) snapshot(ids []uuid.UUID) []trip.Trip {
	out := make([]trip.Trip, 0, len(ids))
	for _, id := range ids {
		if t, err := m.dispatcher.Trip(id); err == nil {
			out = append(out, t)
		}
	}
	return out
}

func (m *Manager) archiveTrip(ctx context.Context, t trip.Trip) {
	if m.archive == nil {
		return
	}
	if err := m.archive.Archive(ctx, t); err != nil {
		// the archive is a best-effort sink; the in-process engine
		// stays authoritative
		m.logger.Warn("Failed to archive trip",
			logger.String("trip_id", t.ID.String()),
			logger.Err(err),
		)
	}
}
