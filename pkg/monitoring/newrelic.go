package monitoring

import (
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Config holds New Relic configuration
type Config struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// App wraps the New Relic application; a disabled app is a no-op.
type App struct {
	*newrelic.Application
	enabled bool
}

// New creates a New Relic application
func New(cfg Config) (*App, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return &App{nil, false}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create New Relic application: %w", err)
	}

	return &App{app, true}, nil
}

// IsEnabled reports whether the agent is active
func (a *App) IsEnabled() bool {
	return a.enabled && a.Application != nil
}

// RecordCustomEvent records a custom event
func (a *App) RecordCustomEvent(eventType string, params map[string]interface{}) {
	if !a.IsEnabled() {
		return
	}
	a.Application.RecordCustomEvent(eventType, params)
}

// Shutdown gracefully shuts down the agent
func (a *App) Shutdown(timeout time.Duration) {
	if !a.IsEnabled() {
		return
	}
	a.Application.Shutdown(timeout)
}

// RecordTripDispatched records a successful match
func (a *App) RecordTripDispatched(zone string, candidates int) {
	a.RecordCustomEvent("TripDispatched", map[string]interface{}{
		"zone":       zone,
		"candidates": candidates,
		"timestamp":  time.Now().Unix(),
	})
}

// RecordTripFailed records a dispatch that found no vehicle
func (a *App) RecordTripFailed(zone string) {
	a.RecordCustomEvent("TripFailed", map[string]interface{}{
		"zone":      zone,
		"timestamp": time.Now().Unix(),
	})
}

// RecordTripCompleted records a completed trip with its final fare
func (a *App) RecordTripCompleted(tripID string, fare, distance float64) {
	a.RecordCustomEvent("TripCompleted", map[string]interface{}{
		"trip_id":  tripID,
		"fare":     fare,
		"distance": distance,
	})
}
