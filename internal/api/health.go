package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"flightdesk/airline/internal/models/entities"
)

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Verifies the database and cache are reachable.
// @Tags Misc
// @Success 200 {object} entities.HealthCheckResponse
// @Failure 503 {object} entities.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(database Pinger, cache Pinger, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus)
		services["database"] = probe(ctx, database, "Database connected")
		services["cache"] = probe(ctx, cache, "Cache reachable")

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince.UTC(),
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		if overallStatus != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func probe(ctx context.Context, p Pinger, okDetails string) entities.ServiceStatus {
	if p == nil {
		return entities.ServiceStatus{Status: "ok", Details: "Not configured"}
	}
	if err := p.Ping(ctx); err != nil {
		return entities.ServiceStatus{Status: "down", Details: err.Error()}
	}
	return entities.ServiceStatus{Status: "ok", Details: okDetails}
}
