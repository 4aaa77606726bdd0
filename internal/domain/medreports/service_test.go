package medreports

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godyclif/vet/internal/domain/animals"
)

type testReportRepo struct {
	items   []MedReport
	failErr error
}

func (r *testReportRepo) Create(ctx context.Context, m MedReport) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.items = append(r.items, m)
	return nil
}

func (r *testReportRepo) List(ctx context.Context) ([]MedReport, error) {
	out := append([]MedReport(nil), r.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testReportRepo) ListByAnimal(ctx context.Context, animalID string) ([]MedReport, error) {
	all, _ := r.List(ctx)
	out := make([]MedReport, 0)
	for _, m := range all {
		if m.AnimalID == animalID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testReportRepo) DeleteAll(ctx context.Context) error {
	r.items = nil
	return nil
}

type testAnimalRepo struct {
	byID map[string]animals.Animal
}

func (r *testAnimalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.byID[a.ID] = a
	return nil
}
func (r *testAnimalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.byID[a.ID] = a
	return nil
}
func (r *testAnimalRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}
func (r *testAnimalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}
func (r *testAnimalRepo) GetByCertificate(ctx context.Context, cert string) (animals.Animal, error) {
	for _, a := range r.byID {
		if a.CertificateNumber == cert {
			return a, nil
		}
	}
	return animals.Animal{}, animals.ErrNotFound
}
func (r *testAnimalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	out := make([]animals.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}
func (r *testAnimalRepo) DeleteAll(ctx context.Context) error {
	r.byID = map[string]animals.Animal{}
	return nil
}

func newTestService() (*Service, *testReportRepo, *testAnimalRepo) {
	ar := &testAnimalRepo{byID: map[string]animals.Animal{}}
	rr := &testReportRepo{}
	svc := NewService(rr, animals.NewService(ar))
	return svc, rr, ar
}

func validIssue() IssueInput {
	price := 120.5
	return IssueInput{
		Animal: animals.RegisterInput{
			Name:        "Max",
			Species:     animals.SpeciesDog,
			Breed:       "Golden Retriever",
			DateOfBirth: time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
			Weight:      32.5,
			OwnerName:   "John Smith",
			OwnerEmail:  "john@example.com",
			OwnerPhone:  "+1 555 0101",
		},
		ReportType:   TypeGeneralCheckup,
		Diagnosis:    "Healthy",
		Symptoms:     "None",
		Treatment:    "Routine exam",
		Veterinarian: "Dr. Sarah Johnson",
		Price:        &price,
	}
}

func TestIssue_CreatesAnimalAndReport(t *testing.T) {
	svc, rr, ar := newTestService()
	issuedCount := 0
	svc.OnIssued(func() { issuedCount++ })

	out, err := svc.Issue(context.Background(), "admin-1", true, validIssue())
	require.NoError(t, err)

	assert.Regexp(t, `^VET-\d{4}-[0-9A-Z]{8}$`, out.Animal.CertificateNumber)
	assert.Equal(t, out.Animal.ID, out.Report.AnimalID)
	assert.Equal(t, "admin-1", out.Report.CreatedBy)
	assert.Len(t, ar.byID, 1)
	assert.Len(t, rr.items, 1)
	assert.Equal(t, 1, issuedCount)
	assert.Equal(t, 120.5, out.Report.Cost())
}

func TestIssue_RequiresAdmin(t *testing.T) {
	svc, rr, ar := newTestService()

	_, err := svc.Issue(context.Background(), "user-1", false, validIssue())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Issue(context.Background(), "", true, validIssue())
	assert.ErrorIs(t, err, ErrForbidden)

	assert.Empty(t, ar.byID)
	assert.Empty(t, rr.items)
}

func TestIssue_RemovesAnimalWhenReportInsertFails(t *testing.T) {
	svc, rr, ar := newTestService()
	boom := errors.New("insert failed")
	rr.failErr = boom

	_, err := svc.Issue(context.Background(), "admin-1", true, validIssue())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, ar.byID, "animal must be rolled back")
}

func TestIssue_InvalidInput(t *testing.T) {
	svc, _, ar := newTestService()

	in := validIssue()
	in.ReportType = "astrology"
	_, err := svc.Issue(context.Background(), "admin-1", true, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = validIssue()
	neg := -1.0
	in.Price = &neg
	_, err = svc.Issue(context.Background(), "admin-1", true, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		in = validIssue()
		price := bad
		in.Price = &price
		_, err = svc.Issue(context.Background(), "admin-1", true, in)
		assert.ErrorIs(t, err, ErrInvalidInput, "price %v", bad)
	}

	in = validIssue()
	in.Animal.Weight = 0
	_, err = svc.Issue(context.Background(), "admin-1", true, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, ar.byID)
}

func TestList_IncludesAnimalSummaryNewestFirst(t *testing.T) {
	svc, _, ar := newTestService()
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	first, err := svc.Issue(ctx, "admin-1", true, validIssue())
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(time.Hour) }
	second, err := svc.Issue(ctx, "admin-1", true, validIssue())
	require.NoError(t, err)

	// Animal borrado: el reporte sigue listado sin resumen.
	delete(ar.byID, first.Animal.ID)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, second.Report.ID, items[0].Report.ID)
	require.NotNil(t, items[0].Animal)
	assert.Equal(t, second.Animal.CertificateNumber, items[0].Animal.CertificateNumber)
	assert.Nil(t, items[1].Animal)
}
