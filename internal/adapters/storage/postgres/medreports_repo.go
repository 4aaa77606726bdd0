package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/godyclif/vet/internal/domain/medreports"
)

type MedReportsRepo struct {
	db *sql.DB
}

func NewMedReportsRepo(db *sql.DB) *MedReportsRepo {
	return &MedReportsRepo{db: db}
}

const medReportColumns = `
	id, animal_id, report_type,
	diagnosis, symptoms, treatment, prescriptions, veterinarian,
	price, follow_up_date, notes,
	created_by, created_at, updated_at`

func (r *MedReportsRepo) Create(ctx context.Context, m medreports.MedReport) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO med_reports (`+medReportColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		m.ID,
		m.AnimalID,
		m.ReportType,
		m.Diagnosis,
		m.Symptoms,
		m.Treatment,
		nullString(m.Prescriptions),
		m.Veterinarian,
		nullFloat(m.Price),
		nullTime(m.FollowUpDate),
		nullString(m.Notes),
		m.CreatedBy,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert med report: %w", err)
	}
	return nil
}

func (r *MedReportsRepo) List(ctx context.Context) ([]medreports.MedReport, error) {
	return r.query(ctx, `SELECT `+medReportColumns+` FROM med_reports ORDER BY created_at DESC`)
}

func (r *MedReportsRepo) ListByAnimal(ctx context.Context, animalID string) ([]medreports.MedReport, error) {
	return r.query(ctx, `SELECT `+medReportColumns+` FROM med_reports WHERE animal_id = $1 ORDER BY created_at DESC`, animalID)
}

func (r *MedReportsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM med_reports`)
	return err
}

func (r *MedReportsRepo) query(ctx context.Context, q string, args ...any) ([]medreports.MedReport, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medreports.MedReport, 0)
	for rows.Next() {
		var m medreports.MedReport
		var prescriptions, notes sql.NullString
		var price sql.NullFloat64
		var followUp sql.NullTime
		if err := rows.Scan(
			&m.ID,
			&m.AnimalID,
			&m.ReportType,
			&m.Diagnosis,
			&m.Symptoms,
			&m.Treatment,
			&prescriptions,
			&m.Veterinarian,
			&price,
			&followUp,
			&notes,
			&m.CreatedBy,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.Prescriptions = prescriptions.String
		m.Notes = notes.String
		if price.Valid {
			p := price.Float64
			m.Price = &p
		}
		if followUp.Valid {
			t := followUp.Time
			m.FollowUpDate = &t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
