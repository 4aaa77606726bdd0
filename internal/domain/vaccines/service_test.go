package vaccines_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godyclif/vet/internal/adapters/storage/memory"
	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/vaccines"
)

func setup(t *testing.T) (*vaccines.Service, animals.Animal) {
	t.Helper()
	animalsSvc := animals.NewService(memory.NewAnimalRepo())
	a, err := animalsSvc.Import(context.Background(), animals.Animal{
		CertificateNumber: "VET-2025-VACC0001",
		Name:              "Rocky",
		Species:           animals.SpeciesDog,
	})
	require.NoError(t, err)
	return vaccines.NewService(memory.NewVaccineRepo(), animalsSvc), a
}

func TestRecord_NextDueDefaultsToOneYear(t *testing.T) {
	svc, a := setup(t)

	given := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	v, err := svc.Record(context.Background(), a.ID, vaccines.RecordInput{
		Name: "Rabies", DateAdministered: &given, Veterinarian: "Dr. A", Cost: 35,
	})
	require.NoError(t, err)
	assert.Equal(t, given.Add(vaccines.DefaultValidity), v.NextDueDate)
	assert.False(t, v.IsDue(given))
	assert.True(t, v.IsDue(v.NextDueDate))
}

func TestRecord_RejectsNextDueBeforeAdministered(t *testing.T) {
	svc, a := setup(t)

	given := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	earlier := given.AddDate(0, -1, 0)
	_, err := svc.Record(context.Background(), a.ID, vaccines.RecordInput{
		Name: "Rabies", DateAdministered: &given, NextDueDate: &earlier, Veterinarian: "Dr. A",
	})
	assert.ErrorIs(t, err, vaccines.ErrInvalidInput)
}

func TestRecord_RejectsNonFiniteCost(t *testing.T) {
	svc, a := setup(t)

	for _, cost := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := svc.Record(context.Background(), a.ID, vaccines.RecordInput{
			Name: "Rabies", Veterinarian: "Dr. A", Cost: cost,
		})
		assert.ErrorIs(t, err, vaccines.ErrInvalidInput, "cost %v", cost)
	}
}

func TestListByAnimal_NewestAdministeredFirst(t *testing.T) {
	svc, a := setup(t)
	ctx := context.Background()

	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Record(ctx, a.ID, vaccines.RecordInput{Name: "Old", DateAdministered: &d1, Veterinarian: "Dr. A"})
	require.NoError(t, err)
	_, err = svc.Record(ctx, a.ID, vaccines.RecordInput{Name: "New", DateAdministered: &d2, Veterinarian: "Dr. A"})
	require.NoError(t, err)

	list, err := svc.ListByAnimal(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "New", list[0].Name)

	_, err = svc.Record(ctx, "missing", vaccines.RecordInput{Name: "X", Veterinarian: "Y"})
	assert.ErrorIs(t, err, vaccines.ErrAnimalNotFound)
}
