// Command seed creates a demo aircraft, flight and reservation through the
// same services the API uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"flightdesk/airline/internal/common"
	"flightdesk/airline/internal/config"
	"flightdesk/airline/internal/db"
	"flightdesk/airline/internal/db/repositories"
	"flightdesk/airline/internal/logging"
	"flightdesk/airline/internal/models/dtos/requests"
	"flightdesk/airline/internal/providers"
	"flightdesk/airline/internal/services"
)

func main() {
	tail := flag.String("tail", "CS-DEMO", "tail number of the demo aircraft")
	capacity := flag.Int("capacity", 180, "seats on the demo aircraft")
	flightNumber := flag.String("flight", "FD100", "demo flight number")
	email := flag.String("email", "demo@example.com", "passenger email for the demo reservation")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	gdb, err := db.InitORM(cfg)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	reader, err := db.InitReader(cfg, gdb)
	if err != nil {
		log.Fatalf("open reader: %v", err)
	}

	store := repositories.NewStore(gdb)
	loader := common.NewCacheLoader(nil, 0)
	query := services.NewQueryService(repositories.NewListingRepository(reader, nil), loader, nil)
	aircraftSvc := services.NewAircraftService(store, loader, nil)
	flightSvc := services.NewFlightService(store, query, loader, nil)
	reservationSvc := services.NewReservationService(store, query, loader, providers.NewLogNotifier(), nil)

	ctx := context.Background()
	year := time.Now().Year() - 5
	model := "Airbus A320"
	aircraft, err := aircraftSvc.Create(ctx, requests.AircraftRequest{
		TailNumber:     tail,
		Model:          &model,
		Capacity:       capacity,
		ProductionYear: &year,
	})
	if err != nil {
		log.Fatalf("create aircraft: %v", err)
	}

	dep := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	depRaw, arrRaw := dep.Format(time.RFC3339), dep.Add(2*time.Hour).Format(time.RFC3339)
	from, to := "Lisbon", "London"
	flight, err := flightSvc.Create(ctx, requests.FlightRequest{
		FlightNumber:  flightNumber,
		Departure:     &from,
		Destination:   &to,
		DepartureTime: &depRaw,
		ArrivalTime:   &arrRaw,
		AircraftID:    &aircraft.ID,
	})
	if err != nil {
		log.Fatalf("create flight: %v", err)
	}

	name := "Demo Passenger"
	reservation, err := reservationSvc.Create(ctx, requests.ReservationRequest{
		PassengerName:  &name,
		PassengerEmail: email,
		FlightID:       &flight.ID,
	})
	if err != nil {
		log.Fatalf("create reservation: %v", err)
	}

	fmt.Println("Aircraft:", aircraft)
	fmt.Println(flight)
	fmt.Println(reservation)
}
