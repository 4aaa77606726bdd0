package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/godyclif/vet/internal/domain/animals"
)

type animalDoc struct {
	ID                string    `bson:"_id"`
	CertificateNumber string    `bson:"certificateNumber"`
	Name              string    `bson:"name"`
	Species           string    `bson:"species"`
	Breed             string    `bson:"breed"`
	DateOfBirth       time.Time `bson:"dateOfBirth"`
	Weight            float64   `bson:"weight"`
	OwnerName         string    `bson:"ownerName"`
	OwnerEmail        string    `bson:"ownerEmail"`
	OwnerPhone        string    `bson:"ownerPhone"`
	RegistrationDate  time.Time `bson:"registrationDate"`
	ImageURL          string    `bson:"imageUrl,omitempty"`
	Notes             string    `bson:"notes,omitempty"`
	CreatedAt         time.Time `bson:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt"`
}

func fromAnimal(a animals.Animal) animalDoc {
	return animalDoc{
		ID:                a.ID,
		CertificateNumber: a.CertificateNumber,
		Name:              a.Name,
		Species:           string(a.Species),
		Breed:             a.Breed,
		DateOfBirth:       a.DateOfBirth,
		Weight:            a.Weight,
		OwnerName:         a.OwnerName,
		OwnerEmail:        a.OwnerEmail,
		OwnerPhone:        a.OwnerPhone,
		RegistrationDate:  a.RegistrationDate,
		ImageURL:          a.ImageURL,
		Notes:             a.Notes,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func (d animalDoc) toDomain() animals.Animal {
	return animals.Animal{
		ID:                d.ID,
		CertificateNumber: d.CertificateNumber,
		Name:              d.Name,
		Species:           animals.Species(d.Species),
		Breed:             d.Breed,
		DateOfBirth:       d.DateOfBirth.UTC(),
		Weight:            d.Weight,
		OwnerName:         d.OwnerName,
		OwnerEmail:        d.OwnerEmail,
		OwnerPhone:        d.OwnerPhone,
		RegistrationDate:  d.RegistrationDate.UTC(),
		ImageURL:          d.ImageURL,
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
	}
}

type AnimalsRepo struct {
	db *mongo.Database
	c  *mongo.Collection
}

func NewAnimalsRepo(db *mongo.Database) *AnimalsRepo {
	return &AnimalsRepo{db: db, c: db.Collection(colAnimals)}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.c.InsertOne(ctx, fromAnimal(a))
	if mongo.IsDuplicateKeyError(err) {
		return animals.ErrDuplicateCertificate
	}
	if err != nil {
		return fmt.Errorf("insert animal: %w", err)
	}
	return nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": a.ID}, bson.M{"$set": bson.M{
		"weight":    a.Weight,
		"notes":     a.Notes,
		"imageUrl":  a.ImageURL,
		"updatedAt": a.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update animal: %w", err)
	}
	if res.MatchedCount == 0 {
		return animals.ErrNotFound
	}
	return nil
}

// Delete borra el animal y sus registros hijos (no hay FK en mongo).
func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	for _, col := range []string{colMedReports, colTreatments, colVaccines} {
		if _, err := r.db.Collection(col).DeleteMany(ctx, bson.M{"animalId": id}); err != nil {
			return fmt.Errorf("delete %s of animal: %w", col, err)
		}
	}
	_, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AnimalsRepo) GetByCertificate(ctx context.Context, cert string) (animals.Animal, error) {
	return r.findOne(ctx, bson.M{"certificateNumber": cert})
}

func (r *AnimalsRepo) findOne(ctx context.Context, filter bson.M) (animals.Animal, error) {
	var d animalDoc
	if err := r.c.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return d.toDomain(), nil
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	var docs []animalDoc
	if err := findSorted(ctx, r.c, bson.M{}, bson.D{{Key: "createdAt", Value: -1}}, &docs); err != nil {
		return nil, err
	}
	out := make([]animals.Animal, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *AnimalsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.c.DeleteMany(ctx, bson.M{})
	return err
}
