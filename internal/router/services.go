package router

import (
	"github.com/godyclif/vet/internal/adapters/storage"
	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/contacts"
	"github.com/godyclif/vet/internal/domain/medreports"
	"github.com/godyclif/vet/internal/domain/treatments"
	"github.com/godyclif/vet/internal/domain/users"
	"github.com/godyclif/vet/internal/domain/vaccines"
	"github.com/godyclif/vet/internal/domain/verification"
	"github.com/godyclif/vet/internal/platform/logger"
	"github.com/godyclif/vet/internal/platform/metrics"
	"github.com/godyclif/vet/internal/ports/auth"
)

// Services por módulo, compartidos por el router y los comandos del CLI.
type Services struct {
	Users        *users.Service
	Animals      *animals.Service
	MedReports   *medreports.Service
	Treatments   *treatments.Service
	Vaccines     *vaccines.Service
	Contacts     *contacts.Service
	Verification *verification.Service
}

// NewServices arma los services sobre un set de repos. m puede ser nil.
func NewServices(repos *storage.Repositories, issuer auth.TokenIssuer, revocations auth.RevocationList, log logger.Logger, m *metrics.Metrics) *Services {
	animalsSvc := animals.NewService(repos.Animals)
	animalsSvc.OnCertificateCollision(m.IncCertificateConflicts)

	reportsSvc := medreports.NewService(repos.MedReports, animalsSvc)
	reportsSvc.OnIssued(m.IncReportsIssued)

	treatmentsSvc := treatments.NewService(repos.Treatments, animalsSvc)
	vaccinesSvc := vaccines.NewService(repos.Vaccines, animalsSvc)

	return &Services{
		Users:      users.NewService(repos.Users, issuer, revocations),
		Animals:    animalsSvc,
		MedReports: reportsSvc,
		Treatments: treatmentsSvc,
		Vaccines:   vaccinesSvc,
		Contacts: contacts.NewService(repos.Contacts, contacts.LogNotifier{
			Log:      log,
			OnSubmit: m.IncContactSubmissions,
		}),
		Verification: verification.NewService(animalsSvc, treatmentsSvc, vaccinesSvc, reportsSvc),
	}
}
