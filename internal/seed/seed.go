package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/medreports"
	"github.com/godyclif/vet/internal/domain/treatments"
	"github.com/godyclif/vet/internal/domain/vaccines"
	"github.com/godyclif/vet/internal/platform/logger"
)

var sampleAnimals = []animals.Animal{
	{
		CertificateNumber: "VET-2024-001234",
		Name:              "Max",
		Species:           animals.SpeciesDog,
		Breed:             "Golden Retriever",
		DateOfBirth:       date(2020, 3, 15),
		Weight:            32.5,
		OwnerName:         "Maria van der Berg",
		OwnerEmail:        "maria@example.com",
		OwnerPhone:        "+31 6 12345678",
		RegistrationDate:  date(2020, 5, 1),
	},
	{
		CertificateNumber: "VET-2024-002345",
		Name:              "Spike",
		Species:           animals.SpeciesReptile,
		Breed:             "Bearded Dragon",
		DateOfBirth:       date(2022, 7, 20),
		Weight:            0.45,
		OwnerName:         "Jan de Vries",
		OwnerEmail:        "jan@example.com",
		OwnerPhone:        "+31 6 23456789",
		RegistrationDate:  date(2022, 8, 15),
	},
	{
		CertificateNumber: "VET-2024-003456",
		Name:              "Luna",
		Species:           animals.SpeciesCat,
		Breed:             "Maine Coon",
		DateOfBirth:       date(2019, 11, 10),
		Weight:            5.8,
		OwnerName:         "Peter Jansen",
		OwnerEmail:        "peter@example.com",
		OwnerPhone:        "+31 6 34567890",
		RegistrationDate:  date(2020, 1, 15),
	},
	{
		CertificateNumber: "VET-2024-004567",
		Name:              "Coco",
		Species:           animals.SpeciesBird,
		Breed:             "African Grey Parrot",
		DateOfBirth:       date(2018, 5, 25),
		Weight:            0.42,
		OwnerName:         "Sophie Laurent",
		OwnerEmail:        "sophie@example.com",
		OwnerPhone:        "+31 6 45678901",
		RegistrationDate:  date(2018, 7, 1),
	},
}

var (
	treatmentTypes = []treatments.Type{
		treatments.TypeConsultation,
		treatments.TypeSurgery,
		treatments.TypeDental,
		treatments.TypeEmergency,
		treatments.TypeCheckup,
	}
	vaccineNames = []string{"Rabies", "Distemper", "Parvovirus", "Bordetella", "Leptospirosis"}
	vets         = []string{"Dr. Anna Smit", "Dr. Thomas Klein", "Dr. Emma de Groot"}
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Seeder borra y recarga los datos de ejemplo. No toca usuarios ni contactos.
type Seeder struct {
	Animals    *animals.Service
	Treatments *treatments.Service
	Vaccines   *vaccines.Service
	MedReports *medreports.Service
	Log        logger.Logger

	rnd *rand.Rand
	now func() time.Time
}

type Result struct {
	Animals    int
	Treatments int
	Vaccines   int
	// Certificates permite probar /verify justo después del seed.
	Certificates []string
}

func (s *Seeder) Run(ctx context.Context) (Result, error) {
	rnd := s.rnd
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}

	// hijos primero: en postgres también lo haría el cascade
	if err := s.MedReports.DeleteAll(ctx); err != nil {
		return Result{}, fmt.Errorf("seed: wipe med reports: %w", err)
	}
	if err := s.Treatments.DeleteAll(ctx); err != nil {
		return Result{}, fmt.Errorf("seed: wipe treatments: %w", err)
	}
	if err := s.Vaccines.DeleteAll(ctx); err != nil {
		return Result{}, fmt.Errorf("seed: wipe vaccines: %w", err)
	}
	if err := s.Animals.DeleteAll(ctx); err != nil {
		return Result{}, fmt.Errorf("seed: wipe animals: %w", err)
	}

	var res Result
	const year = 365 * 24 * time.Hour

	for _, sample := range sampleAnimals {
		a, err := s.Animals.Import(ctx, sample)
		if err != nil {
			return res, fmt.Errorf("seed: animal %s: %w", sample.Name, err)
		}
		res.Animals++
		res.Certificates = append(res.Certificates, a.CertificateNumber)

		for i := range rnd.IntN(4) + 1 {
			when := now().Add(-time.Duration(rnd.Int64N(int64(year))))
			_, err := s.Treatments.Record(ctx, a.ID, treatments.RecordInput{
				Type:         treatmentTypes[rnd.IntN(len(treatmentTypes))],
				Description:  fmt.Sprintf("Regular %s visit", treatmentTypes[i%len(treatmentTypes)]),
				Date:         &when,
				Veterinarian: vets[rnd.IntN(len(vets))],
				Cost:         float64(rnd.IntN(150) + 30),
				Notes:        "Animal in good condition",
			})
			if err != nil {
				return res, fmt.Errorf("seed: treatment for %s: %w", a.Name, err)
			}
			res.Treatments++
		}

		for i := range rnd.IntN(3) + 1 {
			when := now().Add(-time.Duration(rnd.Int64N(int64(year))))
			_, err := s.Vaccines.Record(ctx, a.ID, vaccines.RecordInput{
				Name:             vaccineNames[i%len(vaccineNames)],
				DateAdministered: &when,
				Veterinarian:     vets[rnd.IntN(len(vets))],
				Cost:             float64(rnd.IntN(50) + 25),
			})
			if err != nil {
				return res, fmt.Errorf("seed: vaccine for %s: %w", a.Name, err)
			}
			res.Vaccines++
		}
	}

	if s.Log != nil {
		s.Log.Info("sample data seeded", map[string]any{
			"animals":    res.Animals,
			"treatments": res.Treatments,
			"vaccines":   res.Vaccines,
		})
	}
	return res, nil
}
