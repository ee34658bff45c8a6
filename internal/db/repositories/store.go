package repositories

import (
	"context"
	"errors"

	"flightdesk/airline/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("record not found")

// Store groups the write-side repositories so they can share a transaction.
type Store struct {
	db           *gorm.DB
	Aircraft     *AircraftRepository
	Flights      *FlightRepository
	Reservations *ReservationRepository
}

func NewStore(gdb *gorm.DB) *Store {
	return &Store{
		db:           gdb,
		Aircraft:     NewAircraftRepository(gdb),
		Flights:      NewFlightRepository(gdb),
		Reservations: NewReservationRepository(gdb),
	}
}

// Transaction runs fn against a Store bound to one database transaction.
// fn must only use the Store it is given.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// forUpdate adds FOR UPDATE where the dialect has row locks. SQLite
// serialises writers on its own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if db.SupportsRowLocks(tx) {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
