package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gocomet/taxi-dispatch/internal/domain/trip"
)

// TripArchive writes terminal trips to PostgreSQL. It is a write-only
// sink for reporting; the dispatcher never reads from it.
type TripArchive struct {
	db *sql.DB
}

// NewTripArchive creates an archive backed by the given connection pool.
func NewTripArchive(db *sql.DB) *TripArchive {
	return &TripArchive{db: db}
}

// EnsureSchema creates the archive table if it does not exist.
func (a *TripArchive) EnsureSchema(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS trip_archive (
			id UUID PRIMARY KEY,
			passenger_id TEXT NOT NULL,
			pickup TEXT NOT NULL,
			destination TEXT NOT NULL,
			vehicle_id UUID,
			status TEXT NOT NULL,
			distance_miles DOUBLE PRECISION,
			fare DOUBLE PRECISION,
			requested_at TIMESTAMPTZ NOT NULL,
			started_at TIMESTAMPTZ,
			ended_at TIMESTAMPTZ
		)`)
	if err != nil {
		return fmt.Errorf("failed to create trip_archive table: %w", err)
	}
	return nil
}

// Archive inserts one terminal trip. Re-archiving the same trip (e.g. a
// completed trip that later receives feedback) updates the row.
func (a *TripArchive) Archive(ctx context.Context, t trip.Trip) error {
	var vehicleID interface{}
	if t.VehicleID != nil {
		vehicleID = t.VehicleID.String()
	}

	_, err := a.db.ExecContext(ctx, `
		INSERT INTO trip_archive (
			id, passenger_id, pickup, destination, vehicle_id,
			status, distance_miles, fare, requested_at, started_at, ended_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			distance_miles = EXCLUDED.distance_miles,
			fare = EXCLUDED.fare,
			started_at = EXCLUDED.started_at,
			ended_at = EXCLUDED.ended_at`,
		t.ID.String(),
		t.Request.PassengerID,
		t.Request.Pickup,
		t.Request.Destination,
		vehicleID,
		string(t.Status),
		t.DistanceMiles,
		t.Fare,
		t.Request.RequestedAt,
		t.StartedAt,
		t.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to archive trip %s: %w", t.ID, err)
	}
	return nil
}
