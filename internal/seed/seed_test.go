package seed

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godyclif/vet/internal/adapters/storage/memory"
	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/medreports"
	"github.com/godyclif/vet/internal/domain/treatments"
	"github.com/godyclif/vet/internal/domain/vaccines"
	"github.com/godyclif/vet/internal/platform/logger"
)

func newSeeder() *Seeder {
	animalsSvc := animals.NewService(memory.NewAnimalRepo())
	return &Seeder{
		Animals:    animalsSvc,
		Treatments: treatments.NewService(memory.NewTreatmentRepo(), animalsSvc),
		Vaccines:   vaccines.NewService(memory.NewVaccineRepo(), animalsSvc),
		MedReports: medreports.NewService(memory.NewMedReportRepo(), animalsSvc),
		Log:        logger.Nop(),
		rnd:        rand.New(rand.NewPCG(1, 2)),
		now:        func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	s := newSeeder()

	res, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Animals)
	assert.GreaterOrEqual(t, res.Treatments, 4)
	assert.LessOrEqual(t, res.Treatments, 16)
	assert.GreaterOrEqual(t, res.Vaccines, 4)
	assert.LessOrEqual(t, res.Vaccines, 12)
	assert.Contains(t, res.Certificates, "VET-2024-003456")

	a, err := s.Animals.GetByCertificate(ctx, "vet-2024-003456")
	require.NoError(t, err)
	assert.Equal(t, "Luna", a.Name)

	vs, err := s.Vaccines.ListByAnimal(ctx, a.ID)
	require.NoError(t, err)
	require.NotEmpty(t, vs)
	for _, v := range vs {
		assert.Equal(t, vaccines.DefaultValidity, v.NextDueDate.Sub(v.DateAdministered))
	}
}

func TestSeeder_RunTwiceReplacesData(t *testing.T) {
	ctx := context.Background()
	s := newSeeder()

	_, err := s.Run(ctx)
	require.NoError(t, err)
	_, err = s.Run(ctx)
	require.NoError(t, err, "second run must not hit duplicate certificates")

	all, err := s.Animals.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
