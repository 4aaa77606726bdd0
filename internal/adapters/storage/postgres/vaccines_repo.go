package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/godyclif/vet/internal/domain/vaccines"
)

type VaccinesRepo struct {
	db *sql.DB
}

func NewVaccinesRepo(db *sql.DB) *VaccinesRepo {
	return &VaccinesRepo{db: db}
}

func (r *VaccinesRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccines (
			id, animal_id, vaccine_name, date_administered, next_due_date,
			veterinarian, batch_number, cost, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		v.ID, v.AnimalID, v.Name, v.DateAdministered, v.NextDueDate,
		v.Veterinarian, nullString(v.BatchNumber), v.Cost, nullString(v.Notes), v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vaccine: %w", err)
	}
	return nil
}

func (r *VaccinesRepo) ListByAnimal(ctx context.Context, animalID string) ([]vaccines.Vaccine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, animal_id, vaccine_name, date_administered, next_due_date,
			veterinarian, batch_number, cost, notes, created_at, updated_at
		FROM vaccines
		WHERE animal_id = $1
		ORDER BY date_administered DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccines.Vaccine, 0)
	for rows.Next() {
		var v vaccines.Vaccine
		var batch, notes sql.NullString
		if err := rows.Scan(
			&v.ID, &v.AnimalID, &v.Name, &v.DateAdministered, &v.NextDueDate,
			&v.Veterinarian, &batch, &v.Cost, &notes, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		v.BatchNumber = batch.String
		v.Notes = notes.String
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VaccinesRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vaccines`)
	return err
}
