package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/godyclif/vet/internal/domain/medreports"
)

type medReportDoc struct {
	ID            string     `bson:"_id"`
	AnimalID      string     `bson:"animalId"`
	ReportType    string     `bson:"reportType"`
	Diagnosis     string     `bson:"diagnosis"`
	Symptoms      string     `bson:"symptoms"`
	Treatment     string     `bson:"treatment"`
	Prescriptions string     `bson:"prescriptions,omitempty"`
	Veterinarian  string     `bson:"veterinarian"`
	Price         *float64   `bson:"price,omitempty"`
	FollowUpDate  *time.Time `bson:"followUpDate,omitempty"`
	Notes         string     `bson:"notes,omitempty"`
	CreatedBy     string     `bson:"createdBy"`
	CreatedAt     time.Time  `bson:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt"`
}

type MedReportsRepo struct {
	c *mongo.Collection
}

func NewMedReportsRepo(db *mongo.Database) *MedReportsRepo {
	return &MedReportsRepo{c: db.Collection(colMedReports)}
}

func (r *MedReportsRepo) Create(ctx context.Context, m medreports.MedReport) error {
	_, err := r.c.InsertOne(ctx, medReportDoc{
		ID:            m.ID,
		AnimalID:      m.AnimalID,
		ReportType:    string(m.ReportType),
		Diagnosis:     m.Diagnosis,
		Symptoms:      m.Symptoms,
		Treatment:     m.Treatment,
		Prescriptions: m.Prescriptions,
		Veterinarian:  m.Veterinarian,
		Price:         m.Price,
		FollowUpDate:  m.FollowUpDate,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert med report: %w", err)
	}
	return nil
}

func (r *MedReportsRepo) List(ctx context.Context) ([]medreports.MedReport, error) {
	return r.find(ctx, bson.M{})
}

func (r *MedReportsRepo) ListByAnimal(ctx context.Context, animalID string) ([]medreports.MedReport, error) {
	return r.find(ctx, bson.M{"animalId": animalID})
}

func (r *MedReportsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.c.DeleteMany(ctx, bson.M{})
	return err
}

func (r *MedReportsRepo) find(ctx context.Context, filter bson.M) ([]medreports.MedReport, error) {
	var docs []medReportDoc
	if err := findSorted(ctx, r.c, filter, bson.D{{Key: "createdAt", Value: -1}}, &docs); err != nil {
		return nil, err
	}
	out := make([]medreports.MedReport, 0, len(docs))
	for _, d := range docs {
		m := medreports.MedReport{
			ID:            d.ID,
			AnimalID:      d.AnimalID,
			ReportType:    medreports.ReportType(d.ReportType),
			Diagnosis:     d.Diagnosis,
			Symptoms:      d.Symptoms,
			Treatment:     d.Treatment,
			Prescriptions: d.Prescriptions,
			Veterinarian:  d.Veterinarian,
			Price:         d.Price,
			Notes:         d.Notes,
			CreatedBy:     d.CreatedBy,
			CreatedAt:     d.CreatedAt.UTC(),
			UpdatedAt:     d.UpdatedAt.UTC(),
		}
		if d.FollowUpDate != nil {
			t := d.FollowUpDate.UTC()
			m.FollowUpDate = &t
		}
		out = append(out, m)
	}
	return out, nil
}
