package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/godyclif/vet/internal/domain/contacts"
)

type ContactsRepo struct {
	db *sql.DB
}

func NewContactsRepo(db *sql.DB) *ContactsRepo {
	return &ContactsRepo{db: db}
}

const contactColumns = `
	id, name, email, phone, subject, animal_type, message, status, created_at, updated_at`

func (r *ContactsRepo) Create(ctx context.Context, c contacts.Contact) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (`+contactColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		c.ID, c.Name, c.Email, nullString(c.Phone), nullString(c.Subject),
		nullString(c.AnimalType), c.Message, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactsRepo) Update(ctx context.Context, c contacts.Contact) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET status = $2, updated_at = $3 WHERE id = $1
	`, c.ID, c.Status, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return contacts.ErrNotFound
	}
	return nil
}

func (r *ContactsRepo) GetByID(ctx context.Context, id string) (contacts.Contact, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return contacts.Contact{}, contacts.ErrNotFound
	}
	return c, err
}

func (r *ContactsRepo) List(ctx context.Context, status contacts.Status) ([]contacts.Contact, error) {
	q := `SELECT ` + contactColumns + ` FROM contacts`
	args := []any{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]contacts.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanContact(s rowScanner) (contacts.Contact, error) {
	var c contacts.Contact
	var phone, subject, animalType sql.NullString
	if err := s.Scan(
		&c.ID, &c.Name, &c.Email, &phone, &subject, &animalType,
		&c.Message, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return contacts.Contact{}, err
	}
	c.Phone = phone.String
	c.Subject = subject.String
	c.AnimalType = animalType.String
	return c, nil
}
