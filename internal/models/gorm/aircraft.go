package gorm

import (
	"fmt"
	"time"
)

// Aircraft is a physical airplane with a seating capacity
type Aircraft struct {
	ID             uint      `gorm:"column:id;primaryKey" db:"id"`
	TailNumber     string    `gorm:"column:tail_number;type:varchar(20);not null;uniqueIndex" db:"tail_number"`
	Model          string    `gorm:"column:model;type:varchar(50);not null" db:"model"`
	Capacity       int       `gorm:"column:capacity;not null" db:"capacity"`
	ProductionYear int       `gorm:"column:production_year;not null" db:"production_year"`
	Status         bool      `gorm:"column:status;not null" db:"status"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" db:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`

	// Relationships
	Flights []Flight `gorm:"foreignKey:AircraftID;constraint:OnDelete:CASCADE" db:"-"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "aircraft"
}

func (a Aircraft) String() string {
	return fmt.Sprintf("%s (%s)", a.Model, a.TailNumber)
}
