package storage

import (
	"context"
	"fmt"

	"github.com/godyclif/vet/internal/adapters/storage/memory"
	"github.com/godyclif/vet/internal/adapters/storage/mongodb"
	"github.com/godyclif/vet/internal/adapters/storage/postgres"
	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/contacts"
	"github.com/godyclif/vet/internal/domain/medreports"
	"github.com/godyclif/vet/internal/domain/treatments"
	"github.com/godyclif/vet/internal/domain/users"
	"github.com/godyclif/vet/internal/domain/vaccines"
	"github.com/godyclif/vet/internal/platform/config"
	"github.com/godyclif/vet/internal/platform/logger"
)

// Repositories agrupa los repos de un mismo backend.
type Repositories struct {
	Driver config.Driver

	Users      users.Repository
	Animals    animals.Repository
	MedReports medreports.Repository
	Treatments treatments.Repository
	Vaccines   vaccines.Repository
	Contacts   contacts.Repository

	close func(context.Context) error
}

// Close libera la conexión del backend (no-op en memoria).
func (r *Repositories) Close(ctx context.Context) error {
	if r == nil || r.close == nil {
		return nil
	}
	return r.close(ctx)
}

// NewMemory arma repos en memoria (dev y tests).
func NewMemory() *Repositories {
	return &Repositories{
		Driver:     config.DriverMemory,
		Users:      memory.NewUserRepo(),
		Animals:    memory.NewAnimalRepo(),
		MedReports: memory.NewMedReportRepo(),
		Treatments: memory.NewTreatmentRepo(),
		Vaccines:   memory.NewVaccineRepo(),
		Contacts:   memory.NewContactRepo(),
	}
}

// Open elige el backend según la config y deja el esquema/índices listos.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (*Repositories, error) {
	driver := cfg.ResolvedDriver()
	log.Info("opening storage", map[string]any{"driver": string(driver)})

	switch driver {
	case config.DriverMemory:
		return NewMemory(), nil

	case config.DriverPostgres:
		db, err := postgres.Open(cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("storage: %w", err)
		}
		return &Repositories{
			Driver:     driver,
			Users:      postgres.NewUsersRepo(db),
			Animals:    postgres.NewAnimalsRepo(db),
			MedReports: postgres.NewMedReportsRepo(db),
			Treatments: postgres.NewTreatmentsRepo(db),
			Vaccines:   postgres.NewVaccinesRepo(db),
			Contacts:   postgres.NewContactsRepo(db),
			close:      func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("storage: %w", err)
		}
		return &Repositories{
			Driver:     driver,
			Users:      mongodb.NewUsersRepo(db),
			Animals:    mongodb.NewAnimalsRepo(db),
			MedReports: mongodb.NewMedReportsRepo(db),
			Treatments: mongodb.NewTreatmentsRepo(db),
			Vaccines:   mongodb.NewVaccinesRepo(db),
			Contacts:   mongodb.NewContactsRepo(db),
			close:      client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("storage: unknown driver %q", driver)
}
