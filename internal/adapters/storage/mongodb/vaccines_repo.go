package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/godyclif/vet/internal/domain/vaccines"
)

type vaccineDoc struct {
	ID               string    `bson:"_id"`
	AnimalID         string    `bson:"animalId"`
	VaccineName      string    `bson:"vaccineName"`
	DateAdministered time.Time `bson:"dateAdministered"`
	NextDueDate      time.Time `bson:"nextDueDate"`
	Veterinarian     string    `bson:"veterinarian"`
	BatchNumber      string    `bson:"batchNumber,omitempty"`
	Cost             float64   `bson:"cost"`
	Notes            string    `bson:"notes,omitempty"`
	CreatedAt        time.Time `bson:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt"`
}

type VaccinesRepo struct {
	c *mongo.Collection
}

func NewVaccinesRepo(db *mongo.Database) *VaccinesRepo {
	return &VaccinesRepo{c: db.Collection(colVaccines)}
}

func (r *VaccinesRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	_, err := r.c.InsertOne(ctx, vaccineDoc{
		ID:               v.ID,
		AnimalID:         v.AnimalID,
		VaccineName:      v.Name,
		DateAdministered: v.DateAdministered,
		NextDueDate:      v.NextDueDate,
		Veterinarian:     v.Veterinarian,
		BatchNumber:      v.BatchNumber,
		Cost:             v.Cost,
		Notes:            v.Notes,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert vaccine: %w", err)
	}
	return nil
}

func (r *VaccinesRepo) ListByAnimal(ctx context.Context, animalID string) ([]vaccines.Vaccine, error) {
	var docs []vaccineDoc
	if err := findSorted(ctx, r.c, bson.M{"animalId": animalID}, bson.D{{Key: "dateAdministered", Value: -1}}, &docs); err != nil {
		return nil, err
	}
	out := make([]vaccines.Vaccine, 0, len(docs))
	for _, d := range docs {
		out = append(out, vaccines.Vaccine{
			ID:               d.ID,
			AnimalID:         d.AnimalID,
			Name:             d.VaccineName,
			DateAdministered: d.DateAdministered.UTC(),
			NextDueDate:      d.NextDueDate.UTC(),
			Veterinarian:     d.Veterinarian,
			BatchNumber:      d.BatchNumber,
			Cost:             d.Cost,
			Notes:            d.Notes,
			CreatedAt:        d.CreatedAt.UTC(),
			UpdatedAt:        d.UpdatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *VaccinesRepo) DeleteAll(ctx context.Context) error {
	_, err := r.c.DeleteMany(ctx, bson.M{})
	return err
}
