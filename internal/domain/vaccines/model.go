package vaccines

import "time"

// DefaultValidity es el refuerzo anual que se asume cuando no viene NextDueDate.
const DefaultValidity = 365 * 24 * time.Hour

type Vaccine struct {
	ID       string
	AnimalID string

	Name             string
	DateAdministered time.Time
	NextDueDate      time.Time
	Veterinarian     string
	BatchNumber      string
	Cost             float64
	Notes            string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDue indica si el refuerzo ya venció a la fecha dada.
func (v Vaccine) IsDue(now time.Time) bool {
	return !v.NextDueDate.After(now)
}
