package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/godyclif/vet/internal/domain/contacts"
)

type contactDoc struct {
	ID         string    `bson:"_id"`
	Name       string    `bson:"name"`
	Email      string    `bson:"email"`
	Phone      string    `bson:"phone,omitempty"`
	Subject    string    `bson:"subject,omitempty"`
	AnimalType string    `bson:"animalType,omitempty"`
	Message    string    `bson:"message"`
	Status     string    `bson:"status"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func (d contactDoc) toDomain() contacts.Contact {
	return contacts.Contact{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Subject:    d.Subject,
		AnimalType: d.AnimalType,
		Message:    d.Message,
		Status:     contacts.Status(d.Status),
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

type ContactsRepo struct {
	c *mongo.Collection
}

func NewContactsRepo(db *mongo.Database) *ContactsRepo {
	return &ContactsRepo{c: db.Collection(colContacts)}
}

func (r *ContactsRepo) Create(ctx context.Context, c contacts.Contact) error {
	_, err := r.c.InsertOne(ctx, contactDoc{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Subject:    c.Subject,
		AnimalType: c.AnimalType,
		Message:    c.Message,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactsRepo) Update(ctx context.Context, c contacts.Contact) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{"$set": bson.M{
		"status":    string(c.Status),
		"updatedAt": c.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if res.MatchedCount == 0 {
		return contacts.ErrNotFound
	}
	return nil
}

func (r *ContactsRepo) GetByID(ctx context.Context, id string) (contacts.Contact, error) {
	var d contactDoc
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return contacts.Contact{}, contacts.ErrNotFound
		}
		return contacts.Contact{}, err
	}
	return d.toDomain(), nil
}

func (r *ContactsRepo) List(ctx context.Context, status contacts.Status) ([]contacts.Contact, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	var docs []contactDoc
	if err := findSorted(ctx, r.c, filter, bson.D{{Key: "createdAt", Value: -1}}, &docs); err != nil {
		return nil, err
	}
	out := make([]contacts.Contact, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
