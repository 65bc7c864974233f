package vehicle

import "errors"

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrVehicleBusy     = errors.New("vehicle already has an active trip")
	ErrNoActiveTrip    = errors.New("vehicle has no active trip")
)
