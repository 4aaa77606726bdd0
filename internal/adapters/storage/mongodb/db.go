package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Nombres de colección compatibles con los datos ya existentes.
const (
	colUsers      = "users"
	colAnimals    = "animals"
	colMedReports = "medreports"
	colTreatments = "treatments"
	colVaccines   = "vaccines"
	colContacts   = "contacts"
)

// Connect abre el cliente y verifica con un ping al primario.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(20).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(database), nil
}

// EnsureIndexes crea los índices únicos y de orden. Es idempotente.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{colUsers, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{colAnimals, mongo.IndexModel{
			Keys:    bson.D{{Key: "certificateNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{colAnimals, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}},
		{colMedReports, mongo.IndexModel{Keys: bson.D{{Key: "animalId", Value: 1}, {Key: "createdAt", Value: -1}}}},
		{colTreatments, mongo.IndexModel{Keys: bson.D{{Key: "animalId", Value: 1}, {Key: "date", Value: -1}}}},
		{colVaccines, mongo.IndexModel{Keys: bson.D{{Key: "animalId", Value: 1}, {Key: "dateAdministered", Value: -1}}}},
		{colContacts, mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}}},
	}
	for _, s := range specs {
		if _, err := db.Collection(s.collection).Indexes().CreateOne(ctx, s.model); err != nil {
			return fmt.Errorf("mongo index on %s: %w", s.collection, err)
		}
	}
	return nil
}

// findSorted ejecuta Find con orden y decodifica todo en out (puntero a slice).
func findSorted(ctx context.Context, c *mongo.Collection, filter any, sort bson.D, out any) error {
	cur, err := c.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}
