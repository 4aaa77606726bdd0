package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/contacts"
	"github.com/godyclif/vet/internal/domain/users"
	"github.com/godyclif/vet/internal/ports/auth"
)

func TestAnimalRepo_CertificateIsUniqueUnderConcurrency(t *testing.T) {
	repo := NewAnimalRepo()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Create(ctx, animals.Animal{
				ID:                string(rune('a' + i)),
				CertificateNumber: "VET-2025-SAME0000",
				Name:              "Twin",
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	ok, dup := 0, 0
	for err := range errs {
		switch err {
		case nil:
			ok++
		case animals.ErrDuplicateCertificate:
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

func TestAnimalRepo_DeleteFreesCertificate(t *testing.T) {
	repo := NewAnimalRepo()
	ctx := context.Background()

	a := animals.Animal{ID: "a1", CertificateNumber: "VET-2025-AAAA0000"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Delete(ctx, "a1"))

	_, err := repo.GetByCertificate(ctx, a.CertificateNumber)
	assert.ErrorIs(t, err, animals.ErrNotFound)
	assert.NoError(t, repo.Create(ctx, animals.Animal{ID: "a2", CertificateNumber: a.CertificateNumber}))
}

func TestAnimalRepo_ListNewestFirst(t *testing.T) {
	repo := NewAnimalRepo()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, animals.Animal{ID: "old", CertificateNumber: "C1", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, animals.Animal{ID: "new", CertificateNumber: "C2", CreatedAt: base.Add(time.Hour)}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
}

func TestUserRepo_EmailUnique(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, users.User{ID: "u1", Email: "a@example.com", Role: auth.RoleUser}))
	assert.ErrorIs(t, repo.Create(ctx, users.User{ID: "u2", Email: "a@example.com"}), users.ErrEmailTaken)

	u, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	u.Role = auth.RoleAdmin
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, got.Role)
}

func TestContactRepo_FilterByStatus(t *testing.T) {
	repo := NewContactRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, contacts.Contact{ID: "c1", Status: contacts.StatusPending}))
	require.NoError(t, repo.Create(ctx, contacts.Contact{ID: "c2", Status: contacts.StatusClosed}))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	closed, err := repo.List(ctx, contacts.StatusClosed)
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, "c2", closed[0].ID)

	assert.ErrorIs(t, repo.Update(ctx, contacts.Contact{ID: "missing"}), contacts.ErrNotFound)
}
