package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/treatments"
	"github.com/godyclif/vet/internal/domain/users"
	"github.com/godyclif/vet/internal/ports/auth"
)

// TEST_MONGO_URI=mongodb://localhost:27017 go test ./internal/adapters/storage/mongodb/
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, db, err := Connect(ctx, uri, "vetclinic_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	require.NoError(t, EnsureIndexes(ctx, db))
	return db
}

func TestMongo_AnimalCertificateUnique(t *testing.T) {
	ctx := context.Background()
	db := testDatabase(t)
	repo := NewAnimalsRepo(db)
	tr := NewTreatmentsRepo(db)

	now := time.Now().UTC().Truncate(time.Millisecond)
	a := animals.Animal{
		ID: uuid.NewString(), CertificateNumber: "VET-2025-AAAA0001",
		Name: "Rex", Species: animals.SpeciesDog, Breed: "Beagle",
		DateOfBirth: now.AddDate(-2, 0, 0), Weight: 12,
		OwnerName: "Jo", OwnerEmail: "jo@example.com", OwnerPhone: "123",
		RegistrationDate: now, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, a))

	b := a
	b.ID = uuid.NewString()
	assert.ErrorIs(t, repo.Create(ctx, b), animals.ErrDuplicateCertificate)

	got, err := repo.GetByCertificate(ctx, "VET-2025-AAAA0001")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	require.NoError(t, tr.Create(ctx, treatments.Treatment{
		ID: uuid.NewString(), AnimalID: a.ID, Type: treatments.TypeCheckup,
		Description: "Annual", Date: now, Veterinarian: "Dr. Vos", Cost: 40,
		CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, animals.ErrNotFound)

	left, err := tr.ListByAnimal(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestMongo_UserEmailUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewUsersRepo(testDatabase(t))

	now := time.Now().UTC()
	u := users.User{ID: uuid.NewString(), Name: "Admin", Email: "admin@example.com", PasswordHash: "h", Role: auth.RoleAdmin, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, u))

	u.ID = uuid.NewString()
	assert.ErrorIs(t, repo.Create(ctx, u), users.ErrEmailTaken)

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, users.ErrNotFound)
}
