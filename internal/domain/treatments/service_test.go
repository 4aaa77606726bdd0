package treatments_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godyclif/vet/internal/adapters/storage/memory"
	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/treatments"
)

func setup(t *testing.T) (*treatments.Service, animals.Animal) {
	t.Helper()
	animalsSvc := animals.NewService(memory.NewAnimalRepo())
	a, err := animalsSvc.Import(context.Background(), animals.Animal{
		CertificateNumber: "VET-2025-TREAT001",
		Name:              "Luna",
		Species:           animals.SpeciesCat,
	})
	require.NoError(t, err)
	return treatments.NewService(memory.NewTreatmentRepo(), animalsSvc), a
}

func TestRecord_DefaultsDateAndListsNewestFirst(t *testing.T) {
	svc, a := setup(t)
	ctx := context.Background()

	old := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Record(ctx, a.ID, treatments.RecordInput{
		Type: treatments.TypeCheckup, Description: "Annual", Date: &old, Veterinarian: "Dr. A", Cost: 50,
	})
	require.NoError(t, err)

	before := time.Now()
	recent, err := svc.Record(ctx, a.ID, treatments.RecordInput{
		Type: treatments.TypeGrooming, Description: "Bath", Veterinarian: "Dr. B",
	})
	require.NoError(t, err)
	assert.False(t, recent.Date.Before(before), "date defaults to now")

	list, err := svc.ListByAnimal(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, recent.ID, list[0].ID)
}

func TestRecord_Validation(t *testing.T) {
	svc, a := setup(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, a.ID, treatments.RecordInput{Type: "magic", Description: "x", Veterinarian: "y"})
	assert.ErrorIs(t, err, treatments.ErrInvalidInput)

	_, err = svc.Record(ctx, a.ID, treatments.RecordInput{Type: treatments.TypeOther, Description: "x", Veterinarian: "y", Cost: -1})
	assert.ErrorIs(t, err, treatments.ErrInvalidInput)

	_, err = svc.Record(ctx, a.ID, treatments.RecordInput{Type: treatments.TypeOther, Description: "x", Veterinarian: "y", Cost: math.NaN()})
	assert.ErrorIs(t, err, treatments.ErrInvalidInput)

	_, err = svc.Record(ctx, "missing", treatments.RecordInput{Type: treatments.TypeOther, Description: "x", Veterinarian: "y"})
	assert.ErrorIs(t, err, treatments.ErrAnimalNotFound)

	_, err = svc.ListByAnimal(ctx, "missing")
	assert.ErrorIs(t, err, treatments.ErrAnimalNotFound)
}
