package animals

import "time"

// Species define las especies que atiende la clínica.
// @Enum dog, cat, bird, reptile, exotic, other
type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesBird    Species = "bird"
	SpeciesReptile Species = "reptile"
	SpeciesExotic  Species = "exotic"
	SpeciesOther   Species = "other"
)

// SpeciesValues se usa también en los tags de validación (in(...)).
const SpeciesValues = "dog|cat|bird|reptile|exotic|other"

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesReptile, SpeciesExotic, SpeciesOther:
		return true
	}
	return false
}

// Animal es el registro público de un paciente. CertificateNumber es la clave de verificación.
type Animal struct {
	ID                string
	CertificateNumber string

	Name        string
	Species     Species
	Breed       string
	DateOfBirth time.Time
	Weight      float64 // kg

	OwnerName  string
	OwnerEmail string
	OwnerPhone string

	RegistrationDate time.Time
	ImageURL         string
	Notes            string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeAt devuelve años cumplidos usando años de 365.25 días.
func (a Animal) AgeAt(now time.Time) int {
	if a.DateOfBirth.IsZero() || now.Before(a.DateOfBirth) {
		return 0
	}
	const year = 365.25 * 24 * float64(time.Hour)
	return int(float64(now.Sub(a.DateOfBirth)) / year)
}
