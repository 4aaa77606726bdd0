package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/godyclif/vet/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, certificate_number,
	name, species, breed, date_of_birth, weight,
	owner_name, owner_email, owner_phone,
	registration_date, image_url, notes,
	created_at, updated_at`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		a.ID,
		a.CertificateNumber,
		a.Name,
		a.Species,
		a.Breed,
		a.DateOfBirth,
		a.Weight,
		a.OwnerName,
		a.OwnerEmail,
		a.OwnerPhone,
		a.RegistrationDate,
		nullString(a.ImageURL),
		nullString(a.Notes),
		a.CreatedAt,
		a.UpdatedAt,
	)
	if isUniqueViolation(err, "animals_certificate_number_key") {
		return animals.ErrDuplicateCertificate
	}
	if err != nil {
		return fmt.Errorf("insert animal: %w", err)
	}
	return nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			weight = $2,
			notes = $3,
			image_url = $4,
			updated_at = $5
		WHERE id = $1
	`,
		a.ID,
		a.Weight,
		nullString(a.Notes),
		nullString(a.ImageURL),
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update animal: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	return err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)
	return scanAnimal(row)
}

func (r *AnimalsRepo) GetByCertificate(ctx context.Context, cert string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE certificate_number = $1`, cert)
	return scanAnimal(row)
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+animalColumns+` FROM animals ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM animals`)
	return err
}

// rowScanner cubre *sql.Row y *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var imageURL, notes sql.NullString
	if err := s.Scan(
		&a.ID,
		&a.CertificateNumber,
		&a.Name,
		&a.Species,
		&a.Breed,
		&a.DateOfBirth,
		&a.Weight,
		&a.OwnerName,
		&a.OwnerEmail,
		&a.OwnerPhone,
		&a.RegistrationDate,
		&imageURL,
		&notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	a.ImageURL = imageURL.String
	a.Notes = notes.String
	return a, nil
}
