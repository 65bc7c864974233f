package dispatch

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gocomet/taxi-dispatch/internal/domain/trip"
	"github.com/gocomet/taxi-dispatch/internal/domain/vehicle"
	"github.com/gocomet/taxi-dispatch/internal/service/pricing"
	"github.com/gocomet/taxi-dispatch/internal/service/rating"
	"github.com/gocomet/taxi-dispatch/pkg/logger"
	"github.com/google/uuid"
)

// Config holds dispatcher configuration
type Config struct {
	// Selector picks one index among n matching candidates. Defaults to
	// a uniform pick from a rand source seeded with Seed, which keeps
	// matching reproducible in tests.
	Selector func(n int) int
	Seed     int64
	// Clock supplies assignment and completion timestamps. Defaults to
	// time.Now; injected so surge pricing is deterministic in tests.
	Clock func() time.Time
}

// Result is the outcome of one dispatch call. Vehicle is nil when no
// match was found; Trip is always present so callers can inspect the
// Failed state.
type Result struct {
	Trip    trip.Trip
	Vehicle *vehicle.Vehicle
}

// Dispatcher owns the vehicle pool and runs zone-based matching.
//
// All pool and trip mutations are serialized by one mutex so that
// candidate selection and the claim of the chosen vehicle are atomic:
// two concurrent dispatches for the same zone can never pick the same
// vehicle.
type Dispatcher struct {
	mu       sync.Mutex
	vehicles map[uuid.UUID]*vehicle.Vehicle
	order    []uuid.UUID // registration order, keeps candidate scans stable
	trips    map[uuid.UUID]*trip.Trip

	pricing *pricing.Engine
	ratings *rating.Tracker
	pick    func(n int) int
	now     func() time.Time
	logger  *logger.Logger
}

// New creates a dispatcher with an empty pool
func New(engine *pricing.Engine, ratings *rating.Tracker, log *logger.Logger, cfg Config) *Dispatcher {
	pick := cfg.Selector
	if pick == nil {
		rng := rand.New(rand.NewSource(cfg.Seed))
		pick = rng.Intn
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		vehicles: make(map[uuid.UUID]*vehicle.Vehicle),
		trips:    make(map[uuid.UUID]*trip.Trip),
		pricing:  engine,
		ratings:  ratings,
		pick:     pick,
		now:      now,
		logger:   log,
	}
}

// AddVehicle registers a new vehicle in the pool and returns a snapshot.
func (d *Dispatcher) AddVehicle(driverName, zone string) vehicle.Vehicle {
	v := vehicle.New(driverName, zone)
	d.mu.Lock()
	d.vehicles[v.ID] = v
	d.order = append(d.order, v.ID)
	d.mu.Unlock()
	return *v
}

// SeedFleet spreads a fleet of vehicles across the given zones using the
// seeded source, mirroring how the pool is provisioned in production.
func (d *Dispatcher) SeedFleet(size int, zones []string, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := 1; i <= size; i++ {
		zone := zones[rng.Intn(len(zones))]
		d.AddVehicle(fmt.Sprintf("Driver %d", i), zone)
	}
}

// Dispatch creates a Pending trip for the request and tries to match it
// to an available vehicle in the pickup zone. With no candidate the trip
// is Failed and still returned; that is a normal outcome, not an error.
// The returned error is non-nil only when the route distance cannot be
// resolved in strict mode, in which case the trip is Cancelled and the
// pool is untouched.
func (d *Dispatcher) Dispatch(req trip.Request) (*Result, error) {
	t := trip.New(req)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.trips[t.ID] = t

	var candidates []*vehicle.Vehicle
	for _, id := range d.order {
		v := d.vehicles[id]
		if v.Available && v.Zone == req.Pickup {
			candidates = append(candidates, v)
		}
	}

	if len(candidates) == 0 {
		_ = t.Fail()
		d.logger.Warn("No vehicles available in pickup zone",
			logger.String("trip_id", t.ID.String()),
			logger.String("zone", req.Pickup),
		)
		return &Result{Trip: *t}, nil
	}

	miles, err := d.pricing.Distance(req.Pickup, req.Destination)
	if err != nil {
		_ = t.Cancel()
		d.logger.Error("Route distance lookup failed",
			logger.String("trip_id", t.ID.String()),
			logger.Err(err),
		)
		return &Result{Trip: *t}, err
	}

	v := candidates[d.pick(len(candidates))]
	if err := v.BeginTrip(t.ID); err != nil {
		// cannot happen while the pool lock is held
		_ = t.Fail()
		return &Result{Trip: *t}, nil
	}
	_ = t.Assign(v.ID, miles, d.now())

	d.logger.Info("Trip dispatched",
		logger.String("trip_id", t.ID.String()),
		logger.String("vehicle_id", v.ID.String()),
		logger.String("passenger_id", req.PassengerID),
		logger.String("pickup", req.Pickup),
		logger.String("destination", req.Destination),
		logger.Float64("distance_miles", miles),
	)

	snapshot := *v
	return &Result{Trip: *t, Vehicle: &snapshot}, nil
}

// CompleteTrip finalizes the vehicle's active trip: the fare is computed
// from the distance pinned at assignment, earnings are credited and the
// vehicle returns to the pool. Completions on different vehicles are
// independent; a second call without a new assignment returns
// vehicle.ErrNoActiveTrip.
func (d *Dispatcher) CompleteTrip(vehicleID uuid.UUID) (trip.Trip, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := d.vehicles[vehicleID]
	if !ok {
		return trip.Trip{}, vehicle.ErrVehicleNotFound
	}
	if v.ActiveTripID == nil {
		return trip.Trip{}, vehicle.ErrNoActiveTrip
	}

	t := d.trips[*v.ActiveTripID]
	now := d.now()
	fare := d.pricing.Fare(*t.DistanceMiles, t.Request.DiscountCode, now)
	if err := t.Complete(fare, now); err != nil {
		return trip.Trip{}, err
	}
	_ = v.EndTrip(fare)

	d.logger.Info("Trip completed",
		logger.String("trip_id", t.ID.String()),
		logger.String("vehicle_id", v.ID.String()),
		logger.Float64("fare", fare),
		logger.Float64("total_earnings", v.TotalEarnings),
	)

	return *t, nil
}

// CancelTrip aborts a Pending trip before assignment.
func (d *Dispatcher) CancelTrip(tripID uuid.UUID) (trip.Trip, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.trips[tripID]
	if !ok {
		return trip.Trip{}, trip.ErrTripNotFound
	}
	if err := t.Cancel(); err != nil {
		return trip.Trip{}, err
	}

	d.logger.Info("Trip cancelled", logger.String("trip_id", tripID.String()))
	return *t, nil
}

// RecordFeedback folds a passenger score into the vehicle's running
// average. The trip must be completed by that vehicle, and at most one
// score is accepted per trip.
func (d *Dispatcher) RecordFeedback(vehicleID, tripID uuid.UUID, score int, comment string) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := d.vehicles[vehicleID]
	if !ok {
		return 0, vehicle.ErrVehicleNotFound
	}
	t, ok := d.trips[tripID]
	if !ok {
		return v.Rating, trip.ErrTripNotFound
	}
	if t.VehicleID == nil || *t.VehicleID != vehicleID {
		return v.Rating, fmt.Errorf("%w: trip %s was not served by vehicle %s",
			trip.ErrTripNotFound, tripID, vehicleID)
	}
	if t.Status != trip.StatusCompleted {
		return v.Rating, fmt.Errorf("%w: feedback on %s trip", trip.ErrInvalidTransition, t.Status)
	}

	average, err := d.ratings.Record(v, tripID, score, comment)
	if err != nil {
		return average, err
	}
	_ = t.RecordFeedback(score)

	d.logger.Info("Feedback recorded",
		logger.String("trip_id", tripID.String()),
		logger.String("vehicle_id", vehicleID.String()),
		logger.Int("score", score),
		logger.Float64("rating", average),
	)
	return average, nil
}

// MoveVehicle relocates an idle vehicle to a new zone.
func (d *Dispatcher) MoveVehicle(vehicleID uuid.UUID, zone string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := d.vehicles[vehicleID]
	if !ok {
		return vehicle.ErrVehicleNotFound
	}
	if err := v.Relocate(zone); err != nil {
		return err
	}
	d.logger.Info("Vehicle relocated",
		logger.String("vehicle_id", vehicleID.String()),
		logger.String("zone", zone),
	)
	return nil
}

// Trip returns a snapshot of a trip by ID.
func (d *Dispatcher) Trip(tripID uuid.UUID) (trip.Trip, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.trips[tripID]
	if !ok {
		return trip.Trip{}, trip.ErrTripNotFound
	}
	return *t, nil
}

// Vehicle returns a snapshot of a vehicle by ID.
func (d *Dispatcher) Vehicle(vehicleID uuid.UUID) (vehicle.Vehicle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := d.vehicles[vehicleID]
	if !ok {
		return vehicle.Vehicle{}, vehicle.ErrVehicleNotFound
	}
	return *v, nil
}

// Vehicles returns a snapshot of the whole pool in registration order.
func (d *Dispatcher) Vehicles() []vehicle.Vehicle {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]vehicle.Vehicle, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, *d.vehicles[id])
	}
	return out
}

// AvailableInZone counts available vehicles in a zone.
func (d *Dispatcher) AvailableInZone(zone string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, v := range d.vehicles {
		if v.Available && v.Zone == zone {
			n++
		}
	}
	return n
}
