package contacts

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusReplied Status = "replied"
	StatusClosed  Status = "closed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusReplied || s == StatusClosed
}

// Contact es un mensaje del formulario público.
type Contact struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Subject    string
	AnimalType string // especie opcional, mismos valores que animals.Species
	Message    string
	Status     Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
