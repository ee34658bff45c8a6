package gorm

import (
	"fmt"
	"time"
)

// Reservation is a passenger booking on one flight
type Reservation struct {
	ID              uint   `gorm:"column:id;primaryKey" db:"id"`
	PassengerName   string `gorm:"column:passenger_name;type:varchar(100);not null" db:"passenger_name"`
	PassengerEmail  string `gorm:"column:passenger_email;type:varchar(254);not null" db:"passenger_email"`
	ReservationCode string `gorm:"column:reservation_code;type:varchar(10);not null;uniqueIndex" db:"reservation_code"`
	FlightID        uint   `gorm:"column:flight_id;not null;index" db:"flight_id"`
	Status          bool   `gorm:"column:status;not null" db:"status"`
	// created_at is written on insert only
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;<-:create" db:"created_at"`
}

// TableName specifies the table name for GORM
func (Reservation) TableName() string {
	return "reservations"
}

func (r Reservation) String() string {
	return fmt.Sprintf("Reservation %s for %s", r.ReservationCode, r.PassengerName)
}
