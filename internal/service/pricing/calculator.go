package pricing

import (
	"fmt"
	"math"
	"time"
)

// Route is a directed pickup/destination pair
type Route struct {
	From string
	To   string
}

// Config holds pricing configuration
type Config struct {
	BaseFare     float64
	PerMileRate  float64
	Distances    map[Route]float64
	DefaultMiles float64 // fallback distance for unknown routes
	StrictRoutes bool    // surface ErrUnknownRoute instead of falling back

	PeakStartHour  int // inclusive, local hour of day
	PeakEndHour    int // exclusive
	PeakMultiplier float64

	Discounts map[string]float64 // code -> fraction in [0,1)
}

// Engine computes fares from the static distance table. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	config Config
}

// DefaultConfig returns the zone distance table and rates the fleet runs with.
func DefaultConfig() Config {
	return Config{
		BaseFare:    2.50,
		PerMileRate: 1.25,
		Distances: map[Route]float64{
			{From: "North", To: "South"}: 12.0,
			{From: "East", To: "West"}:   15.5,
			{From: "South", To: "North"}: 10.0,
			{From: "West", To: "East"}:   18.2,
		},
		DefaultMiles:   10.0,
		PeakStartHour:  17,
		PeakEndHour:    20,
		PeakMultiplier: 1.5,
		Discounts: map[string]float64{
			"WELCOME10": 0.10,
			"LOYAL20":   0.20,
		},
	}
}

// NewEngine creates a pricing engine
func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// Distance looks up the directed route distance in miles. Unknown routes
// fall back to the configured default, or return ErrUnknownRoute in
// strict mode. Deterministic for a given table.
func (e *Engine) Distance(pickup, destination string) (float64, error) {
	if miles, ok := e.config.Distances[Route{From: pickup, To: destination}]; ok {
		return miles, nil
	}
	if e.config.StrictRoutes {
		return 0, fmt.Errorf("%w: %s -> %s", ErrUnknownRoute, pickup, destination)
	}
	return e.config.DefaultMiles, nil
}

// Fare prices a trip of known distance: base fare plus per-mile charge,
// times the peak multiplier when the timestamp falls inside the peak
// window, minus any recognized discount. Unrecognized codes apply no
// discount. The result is rounded to cents and never negative.
func (e *Engine) Fare(distanceMiles float64, discountCode string, at time.Time) float64 {
	fare := e.config.BaseFare + distanceMiles*e.config.PerMileRate
	if e.IsPeak(at) {
		fare *= e.config.PeakMultiplier
	}
	if fraction, ok := e.config.Discounts[discountCode]; ok {
		fare *= 1 - fraction
	}
	return math.Round(fare*100) / 100
}

// CalculateFare prices a route end to end
func (e *Engine) CalculateFare(pickup, destination, discountCode string, at time.Time) (float64, error) {
	miles, err := e.Distance(pickup, destination)
	if err != nil {
		return 0, err
	}
	return e.Fare(miles, discountCode, at), nil
}

// IsPeak reports whether the timestamp falls inside the surge window.
// A zero-width window disables surge entirely.
func (e *Engine) IsPeak(at time.Time) bool {
	if e.config.PeakStartHour == e.config.PeakEndHour {
		return false
	}
	hour := at.Hour()
	if e.config.PeakStartHour < e.config.PeakEndHour {
		return hour >= e.config.PeakStartHour && hour < e.config.PeakEndHour
	}
	// window wraps midnight
	return hour >= e.config.PeakStartHour || hour < e.config.PeakEndHour
}
