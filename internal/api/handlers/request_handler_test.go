package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocomet/taxi-dispatch/internal/api/dto"
	"github.com/gocomet/taxi-dispatch/internal/api/handlers"
	"github.com/gocomet/taxi-dispatch/internal/api/routes"
	"github.com/gocomet/taxi-dispatch/internal/service/dispatch"
	"github.com/gocomet/taxi-dispatch/internal/service/location"
	"github.com/gocomet/taxi-dispatch/internal/service/pricing"
	"github.com/gocomet/taxi-dispatch/internal/service/rating"
	"github.com/gocomet/taxi-dispatch/internal/service/trips"
	"github.com/gocomet/taxi-dispatch/pkg/logger"
	"github.com/gocomet/taxi-dispatch/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var offPeak = time.Date(2024, 3, 12, 10, 30, 0, 0, time.UTC)

func testRouter(vehicleZones ...string) (*gin.Engine, *dispatch.Dispatcher) {
	gin.SetMode(gin.TestMode)

	engine := pricing.NewEngine(pricing.DefaultConfig())
	d := dispatch.New(engine, rating.NewTracker(), logger.NewNop(), dispatch.Config{
		Clock: func() time.Time { return offPeak },
	})
	for i, zone := range vehicleZones {
		d.AddVehicle(fmt.Sprintf("Driver %d", i+1), zone)
	}

	manager := trips.NewManager(d, nil, logger.NewNop())
	validator := location.NewValidator([]string{"North", "South", "East", "West"})
	h := handlers.NewHandlers(manager, d, validator, payment.NewStubGateway(), nil, nil, 0, nil, logger.NewNop())

	router := gin.New()
	routes.SetupRoutes(router, h, nil)
	return router, d
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestCreateRequest_MatchesVehicle tests the dispatch endpoint happy path
func TestCreateRequest_MatchesVehicle(t *testing.T) {
	router, _ := testRouter("North")

	w := postJSON(router, "/v1/requests", dto.CreateRequestRequest{
		PassengerID: "alice",
		Pickup:      "North",
		Destination: "South",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Matched)
	require.NotNil(t, resp.Vehicle)
	assert.Equal(t, "Driver 1", resp.Vehicle.DriverName)
	assert.Equal(t, "in_progress", string(resp.Trip.Status))
}

// TestCreateRequest_NoVehicleAvailable tests the failed-dispatch response
func TestCreateRequest_NoVehicleAvailable(t *testing.T) {
	router, _ := testRouter("North")

	w := postJSON(router, "/v1/requests", dto.CreateRequestRequest{
		PassengerID: "bob",
		Pickup:      "East",
		Destination: "West",
	})

	require.Equal(t, http.StatusOK, w.Code, "no vehicle is a normal outcome, not an error")

	var resp dto.DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Matched)
	assert.Nil(t, resp.Vehicle)
	assert.Equal(t, "failed", string(resp.Trip.Status))
}

// TestCreateRequest_RejectsUnknownZone tests location validation
func TestCreateRequest_RejectsUnknownZone(t *testing.T) {
	router, _ := testRouter("North")

	w := postJSON(router, "/v1/requests", dto.CreateRequestRequest{
		PassengerID: "carol",
		Pickup:      "Atlantis",
		Destination: "South",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_LOCATION", resp.Code)
}

// TestCreateRequest_RejectsMissingFields tests request binding
func TestCreateRequest_RejectsMissingFields(t *testing.T) {
	router, _ := testRouter("North")

	w := postJSON(router, "/v1/requests", map[string]string{"pickup": "North"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestCompleteTrip_EndToEnd tests dispatch followed by completion and feedback
func TestCompleteTrip_EndToEnd(t *testing.T) {
	router, _ := testRouter("North")

	w := postJSON(router, "/v1/requests", dto.CreateRequestRequest{
		PassengerID:  "alice",
		Pickup:       "North",
		Destination:  "South",
		DiscountCode: "WELCOME10",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var dispatched dto.DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dispatched))
	require.NotNil(t, dispatched.Vehicle)
	vehicleID := dispatched.Vehicle.ID.String()

	w = postJSON(router, "/v1/vehicles/"+vehicleID+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var completion dto.CompletionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completion))
	assert.Equal(t, 15.75, completion.Fare, "17.50 with the 10 percent welcome discount")
	assert.NotEmpty(t, completion.PaymentReceipt)

	// a second completion without a new assignment is rejected
	w = postJSON(router, "/v1/vehicles/"+vehicleID+"/complete", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "NO_ACTIVE_TRIP", errResp.Code)

	// feedback lands on the vehicle's running average
	w = postJSON(router, "/v1/feedback", dto.FeedbackRequest{
		VehicleID: vehicleID,
		TripID:    dispatched.Trip.ID.String(),
		Score:     5,
		Comment:   "smooth ride",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var feedback dto.FeedbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feedback))
	assert.Equal(t, 5.0, feedback.Rating)
}

// TestRecordFeedback_RejectsOutOfRangeScore tests score validation over HTTP
func TestRecordFeedback_RejectsOutOfRangeScore(t *testing.T) {
	router, d := testRouter("North")

	w := postJSON(router, "/v1/requests", dto.CreateRequestRequest{
		PassengerID: "alice",
		Pickup:      "North",
		Destination: "South",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var dispatched dto.DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dispatched))
	require.NotNil(t, dispatched.Vehicle)

	_, err := d.CompleteTrip(dispatched.Vehicle.ID)
	require.NoError(t, err)

	w = postJSON(router, "/v1/feedback", dto.FeedbackRequest{
		VehicleID: dispatched.Vehicle.ID.String(),
		TripID:    dispatched.Trip.ID.String(),
		Score:     9,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "INVALID_FEEDBACK_SCORE", errResp.Code)
}

// TestGetTrips_ListsHistoryAndFailures tests the listing endpoints
func TestGetTrips_ListsHistoryAndFailures(t *testing.T) {
	router, _ := testRouter("North")

	postJSON(router, "/v1/requests", dto.CreateRequestRequest{
		PassengerID: "alice", Pickup: "North", Destination: "South",
	})
	postJSON(router, "/v1/requests", dto.CreateRequestRequest{
		PassengerID: "bob", Pickup: "East", Destination: "West",
	})

	get := func(path string) map[string][]json.RawMessage {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string][]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}

	assert.Len(t, get("/v1/trips")["trips"], 1)
	assert.Len(t, get("/v1/trips?status=failed")["trips"], 1)
}
