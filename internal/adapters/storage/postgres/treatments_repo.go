package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/godyclif/vet/internal/domain/treatments"
)

type TreatmentsRepo struct {
	db *sql.DB
}

func NewTreatmentsRepo(db *sql.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO treatments (
			id, animal_id, treatment_type, description, date,
			veterinarian, cost, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		t.ID, t.AnimalID, t.Type, t.Description, t.Date,
		t.Veterinarian, t.Cost, nullString(t.Notes), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert treatment: %w", err)
	}
	return nil
}

func (r *TreatmentsRepo) ListByAnimal(ctx context.Context, animalID string) ([]treatments.Treatment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, animal_id, treatment_type, description, date,
			veterinarian, cost, notes, created_at, updated_at
		FROM treatments
		WHERE animal_id = $1
		ORDER BY date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]treatments.Treatment, 0)
	for rows.Next() {
		var t treatments.Treatment
		var notes sql.NullString
		if err := rows.Scan(
			&t.ID, &t.AnimalID, &t.Type, &t.Description, &t.Date,
			&t.Veterinarian, &t.Cost, &notes, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.Notes = notes.String
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TreatmentsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM treatments`)
	return err
}
