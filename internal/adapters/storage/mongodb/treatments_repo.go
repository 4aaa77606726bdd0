package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/godyclif/vet/internal/domain/treatments"
)

type treatmentDoc struct {
	ID            string    `bson:"_id"`
	AnimalID      string    `bson:"animalId"`
	TreatmentType string    `bson:"treatmentType"`
	Description   string    `bson:"description"`
	Date          time.Time `bson:"date"`
	Veterinarian  string    `bson:"veterinarian"`
	Cost          float64   `bson:"cost"`
	Notes         string    `bson:"notes,omitempty"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

type TreatmentsRepo struct {
	c *mongo.Collection
}

func NewTreatmentsRepo(db *mongo.Database) *TreatmentsRepo {
	return &TreatmentsRepo{c: db.Collection(colTreatments)}
}

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	_, err := r.c.InsertOne(ctx, treatmentDoc{
		ID:            t.ID,
		AnimalID:      t.AnimalID,
		TreatmentType: string(t.Type),
		Description:   t.Description,
		Date:          t.Date,
		Veterinarian:  t.Veterinarian,
		Cost:          t.Cost,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert treatment: %w", err)
	}
	return nil
}

func (r *TreatmentsRepo) ListByAnimal(ctx context.Context, animalID string) ([]treatments.Treatment, error) {
	var docs []treatmentDoc
	if err := findSorted(ctx, r.c, bson.M{"animalId": animalID}, bson.D{{Key: "date", Value: -1}}, &docs); err != nil {
		return nil, err
	}
	out := make([]treatments.Treatment, 0, len(docs))
	for _, d := range docs {
		out = append(out, treatments.Treatment{
			ID:           d.ID,
			AnimalID:     d.AnimalID,
			Type:         treatments.Type(d.TreatmentType),
			Description:  d.Description,
			Date:         d.Date.UTC(),
			Veterinarian: d.Veterinarian,
			Cost:         d.Cost,
			Notes:        d.Notes,
			CreatedAt:    d.CreatedAt.UTC(),
			UpdatedAt:    d.UpdatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *TreatmentsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.c.DeleteMany(ctx, bson.M{})
	return err
}
