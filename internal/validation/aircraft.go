package validation

import "time"

const (
	FieldTailNumber     = "tail_number"
	FieldModel          = "model"
	FieldCapacity       = "capacity"
	FieldProductionYear = "production_year"
	FieldStatus         = "status"

	MaxTailNumberLength = 20
	MaxModelLength      = 50
	MinProductionYear   = 1907
)

func TailNumber(v string) *FieldError {
	return maxLength(FieldTailNumber, v, MaxTailNumberLength)
}

// TailNumberUnique rejects a tail number already used by another aircraft.
func TailNumberUnique(taken bool) *FieldError {
	if taken {
		return reject(FieldTailNumber, "Tail number must be unique.")
	}
	return nil
}

func Model(v string) *FieldError {
	return maxLength(FieldModel, v, MaxModelLength)
}

func Capacity(v int) *FieldError {
	if v <= 0 {
		return reject(FieldCapacity, "Capacity must be a positive integer greater than zero.")
	}
	return nil
}

// ProductionYear bounds the year to [1907, now.Year()]. The upper bound moves
// with the clock.
func ProductionYear(year int, now time.Time) *FieldError {
	if year < MinProductionYear {
		return reject(FieldProductionYear, "Ensure this value is greater than or equal to %d.", MinProductionYear)
	}
	if max := now.Year(); year > max {
		return reject(FieldProductionYear, "Ensure this value is less than or equal to %d.", max)
	}
	return nil
}
