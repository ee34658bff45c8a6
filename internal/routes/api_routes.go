package routes

import (
	"flightdesk/airline/internal/api"
	"flightdesk/airline/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, limiter *middleware.RateLimiter) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(limiter.Middleware)

		v1.Route("/aircraft", func(aircraft chi.Router) {
			aircraft.Get("/", handlers.ListAircraft())
			aircraft.Post("/", handlers.CreateAircraft())
			aircraft.Route("/{id}", func(item chi.Router) {
				item.Get("/", handlers.GetAircraft())
				item.Patch("/", handlers.UpdateAircraft(false))
				item.Put("/", handlers.UpdateAircraft(true))
				item.Delete("/", handlers.DeleteAircraft())
				item.Get("/flights", handlers.FlightsOfAircraft())
			})
		})

		v1.Route("/flights", func(flights chi.Router) {
			flights.Get("/", handlers.ListFlights())
			flights.Post("/", handlers.CreateFlight())
			flights.Route("/{id}", func(item chi.Router) {
				item.Get("/", handlers.GetFlight())
				item.Patch("/", handlers.UpdateFlight(false))
				item.Put("/", handlers.UpdateFlight(true))
				item.Delete("/", handlers.DeleteFlight())
				item.Get("/reservations", handlers.ReservationsOfFlight())
			})
		})

		v1.Route("/reservations", func(reservations chi.Router) {
			reservations.Get("/", handlers.ListReservations())
			reservations.Post("/", handlers.CreateReservation())
			reservations.Route("/{id}", func(item chi.Router) {
				item.Get("/", handlers.GetReservation())
				item.Patch("/", handlers.UpdateReservation(false))
				item.Put("/", handlers.UpdateReservation(true))
				item.Delete("/", handlers.DeleteReservation())
			})
		})
	})
}
