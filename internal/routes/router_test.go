package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flightdesk/airline/internal/api"
	"flightdesk/airline/internal/common"
	"flightdesk/airline/internal/config"
	"flightdesk/airline/internal/db/dbtest"
	"flightdesk/airline/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	calls int
	err   error
}

func (s *stubNotifier) SendConfirmation(context.Context, string, string, string) error {
	s.calls++
	return s.err
}

type envelope struct {
	Status string              `json:"status"`
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
	Data   json.RawMessage     `json:"data"`
}

type testServer struct {
	handler  http.Handler
	notifier *stubNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gdb, reader := dbtest.Open(t)
	notifier := &stubNotifier{}
	deps := api.InitDependencies(
		gdb,
		reader,
		common.NewCacheService(time.Minute, time.Minute),
		time.Minute,
		notifier,
		metrics.NewMetricsRegistry(prometheus.NewRegistry()),
	)
	cfg := &config.Config{
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		AllowedOrigins: []string{"http://localhost:8081"},
	}
	return &testServer{handler: RegisterRoutes(cfg, deps, time.Now()), notifier: notifier}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	}
	return rr.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type idOnly struct {
	ID              uint   `json:"id"`
	ReservationCode string `json:"reservation_code"`
	Capacity        int    `json:"capacity"`
	Status          bool   `json:"status"`
}

func (s *testServer) createAircraft(t *testing.T, tail string, capacity int) uint {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/v1/aircraft", map[string]any{
		"tail_number": tail, "model": "A320", "capacity": capacity, "production_year": 2015,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	return decodeData[idOnly](t, env).ID
}

func (s *testServer) createFlight(t *testing.T, number string, aircraftID uint) uint {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/v1/flights", map[string]any{
		"flight_number":  number,
		"departure":      "Lisbon",
		"destination":    "Porto",
		"departure_time": "2024-07-01T08:00:00Z",
		"arrival_time":   "2024-07-01T09:00:00Z",
		"aircraft_id":    aircraftID,
	})
	require.Equal(t, http.StatusCreated, code, env.Fields)
	return decodeData[idOnly](t, env).ID
}

func TestAircraftEndpoints(t *testing.T) {
	s := newTestServer(t)
	id := s.createAircraft(t, "CS-HTA", 120)

	code, env := s.do(t, http.MethodGet, "/api/v1/aircraft", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]idOnly](t, env), 1)

	code, env = s.do(t, http.MethodPatch, "/api/v1/aircraft/1", map[string]any{"capacity": -1})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Fields, "capacity")

	code, env = s.do(t, http.MethodGet, "/api/v1/aircraft/1", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 120, decodeData[idOnly](t, env).Capacity)

	code, env = s.do(t, http.MethodPut, "/api/v1/aircraft/1", map[string]any{"capacity": 10})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Fields, "tail_number")

	code, env = s.do(t, http.MethodPatch, "/api/v1/aircraft/1", `{"status": "yes"}`)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []string{"Must be a valid boolean."}, env.Fields["status"])

	code, _ = s.do(t, http.MethodDelete, "/api/v1/aircraft/1", nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = s.do(t, http.MethodGet, "/api/v1/aircraft/1", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.NotZero(t, id)

	code, _ = s.do(t, http.MethodGet, "/api/v1/aircraft/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/api/v1/aircraft", "{not json")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFlightEndpoints(t *testing.T) {
	s := newTestServer(t)
	aircraftID := s.createAircraft(t, "CS-HTB", 2)
	s.createFlight(t, "TP700", aircraftID)

	code, env := s.do(t, http.MethodPost, "/api/v1/flights", map[string]any{
		"flight_number":  "TP701",
		"departure":      "Lisbon",
		"destination":    "Porto",
		"departure_time": "2024-07-01T10:00:00Z",
		"arrival_time":   "2024-07-01T09:00:00Z",
		"aircraft_id":    aircraftID,
	})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Fields, "arrival_time")

	code, env = s.do(t, http.MethodGet, "/api/v1/aircraft/1/flights", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]idOnly](t, env), 1)

	code, env = s.do(t, http.MethodGet, "/api/v1/flights?destination=Porto&departure_time=2024-07-01T08:00:00Z", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]idOnly](t, env), 1)

	code, env = s.do(t, http.MethodGet, "/api/v1/flights?departure_time=yesterday", nil)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Fields, "departure_time")

	code, _ = s.do(t, http.MethodGet, "/api/v1/aircraft/99/flights", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReservationEndpoints(t *testing.T) {
	s := newTestServer(t)
	aircraftID := s.createAircraft(t, "CS-HTC", 2)
	flightID := s.createFlight(t, "TP800", aircraftID)

	body := func(email string) map[string]any {
		return map[string]any{"passenger_name": "Jane", "passenger_email": email, "flight_id": flightID}
	}

	code, env := s.do(t, http.MethodPost, "/api/v1/reservations", body("a@example.com"))
	require.Equal(t, http.StatusCreated, code)
	first := decodeData[idOnly](t, env)
	assert.Len(t, first.ReservationCode, 6)
	assert.True(t, first.Status)

	code, env = s.do(t, http.MethodPost, "/api/v1/reservations", body("bad-email"))
	require.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Fields, "passenger_email")

	code, _ = s.do(t, http.MethodPost, "/api/v1/reservations", body("b@example.com"))
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(t, http.MethodPost, "/api/v1/reservations", body("c@example.com"))
	require.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Fields, "flight_id")
	assert.Equal(t, 2, s.notifier.calls)

	code, env = s.do(t, http.MethodGet, "/api/v1/flights/1/reservations", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]idOnly](t, env), 2)

	code, env = s.do(t, http.MethodGet, "/api/v1/reservations?flight_id=1", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeData[[]idOnly](t, env), 2)

	code, _ = s.do(t, http.MethodGet, "/api/v1/reservations?flight_id=x", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodPatch, "/api/v1/reservations/1", map[string]any{"status": false})
	require.Equal(t, http.StatusOK, code)
	assert.False(t, decodeData[idOnly](t, env).Status)

	code, _ = s.do(t, http.MethodDelete, "/api/v1/flights/1", nil)
	require.Equal(t, http.StatusNoContent, code)

	code, env = s.do(t, http.MethodGet, "/api/v1/reservations", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decodeData[[]idOnly](t, env))
}

func TestReservationDeliveryFailureReturnsBadGateway(t *testing.T) {
	s := newTestServer(t)
	aircraftID := s.createAircraft(t, "CS-HTD", 5)
	flightID := s.createFlight(t, "TP900", aircraftID)
	s.notifier.err = errors.New("mail down")

	code, env := s.do(t, http.MethodPost, "/api/v1/reservations", map[string]any{
		"passenger_name": "Jane", "passenger_email": "jane@example.com", "flight_id": flightID, "reservation_code": "KEEP01",
	})
	require.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "KEEP01", decodeData[idOnly](t, env).ReservationCode)

	code, _ = s.do(t, http.MethodGet, "/api/v1/reservations/1", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthCheck", nil)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Status   string `json:"status"`
		Services map[string]struct {
			Status string `json:"status"`
		} `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Services["database"].Status)
	assert.Equal(t, "ok", body.Services["cache"].Status)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
