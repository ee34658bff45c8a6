package gorm

import (
	"fmt"
	"time"
)

// Flight is a scheduled journey operated by one aircraft
type Flight struct {
	ID            uint      `gorm:"column:id;primaryKey" db:"id"`
	FlightNumber  string    `gorm:"column:flight_number;type:varchar(20);not null;uniqueIndex" db:"flight_number"`
	Departure     string    `gorm:"column:departure;type:varchar(100);not null;index" db:"departure"`
	Destination   string    `gorm:"column:destination;type:varchar(100);not null;index" db:"destination"`
	DepartureTime time.Time `gorm:"column:departure_time;not null" db:"departure_time"`
	ArrivalTime   time.Time `gorm:"column:arrival_time;not null" db:"arrival_time"`
	AircraftID    uint      `gorm:"column:aircraft_id;not null;index" db:"aircraft_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" db:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`

	// Relationships
	Reservations []Reservation `gorm:"foreignKey:FlightID;constraint:OnDelete:CASCADE" db:"-"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}

func (f Flight) String() string {
	return fmt.Sprintf("Flight %s from %s to %s", f.FlightNumber, f.Departure, f.Destination)
}
