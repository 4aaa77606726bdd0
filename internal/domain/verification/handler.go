package verification

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/medreports"
	"github.com/godyclif/vet/internal/domain/treatments"
	"github.com/godyclif/vet/internal/platform/logger"
	"github.com/godyclif/vet/internal/platform/respond"
)

// HandlerConfig: Guard envuelve las rutas públicas (rate limit). OnVerify recibe
// "found", "not_found", "invalid" o "error". Ambos opcionales.
type HandlerConfig struct {
	Log      logger.Logger
	Guard    func(http.Handler) http.Handler
	OnVerify func(outcome string)
}

func RegisterRoutes(r chi.Router, svc *Service, cfg HandlerConfig) {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	if cfg.Guard == nil {
		cfg.Guard = func(next http.Handler) http.Handler { return next }
	}
	tmpl := newPageTemplate(svc.now)

	r.Group(func(pr chi.Router) {
		pr.Use(cfg.Guard)
		pr.Get("/api/verify", verifyHandler(svc, cfg))
		pr.Get("/api/verify/pdf", verifyPDFHandler(svc, cfg))
		pr.Get("/verify", verifyPageHandler(svc, cfg, tmpl))
	})
}

type animalResponse struct {
	ID                string          `json:"id"`
	CertificateNumber string          `json:"certificateNumber"`
	Name              string          `json:"name"`
	Species           animals.Species `json:"species"`
	Breed             string          `json:"breed"`
	DateOfBirth       time.Time       `json:"dateOfBirth"`
	Age               int             `json:"age"`
	Weight            float64         `json:"weight"`
	OwnerName         string          `json:"ownerName"`
	OwnerEmail        string          `json:"ownerEmail"`
	OwnerPhone        string          `json:"ownerPhone"`
	RegistrationDate  time.Time       `json:"registrationDate"`
	ImageURL          string          `json:"imageUrl,omitempty"`
}

type treatmentResponse struct {
	ID           string          `json:"id"`
	Type         treatments.Type `json:"type"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	Veterinarian string          `json:"veterinarian"`
	Cost         float64         `json:"cost"`
	Notes        string          `json:"notes,omitempty"`
}

type vaccineResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	DateAdministered time.Time `json:"dateAdministered"`
	NextDueDate      time.Time `json:"nextDueDate"`
	Veterinarian     string    `json:"veterinarian"`
	Cost             float64   `json:"cost"`
	Due              bool      `json:"due"`
}

type reportResponse struct {
	ID            string                `json:"id"`
	ReportType    medreports.ReportType `json:"reportType"`
	Diagnosis     string                `json:"diagnosis"`
	Symptoms      string                `json:"symptoms"`
	Treatment     string                `json:"treatment"`
	Prescriptions string                `json:"prescriptions"`
	Veterinarian  string                `json:"veterinarian"`
	Price         *float64              `json:"price,omitempty"`
	FollowUpDate  *time.Time            `json:"followUpDate,omitempty"`
	Notes         string                `json:"notes"`
	CreatedAt     time.Time             `json:"createdAt"`
}

type costsResponse struct {
	Treatments float64 `json:"treatments"`
	Vaccines   float64 `json:"vaccines"`
	Reports    float64 `json:"reports"`
	Total      float64 `json:"total"`
}

type recordResponse struct {
	Animal     animalResponse      `json:"animal"`
	Treatments []treatmentResponse `json:"treatments"`
	Vaccines   []vaccineResponse   `json:"vaccines"`
	MedReports []reportResponse    `json:"medReports"`
	Costs      costsResponse       `json:"costs"`
}

// verifyHandler godoc
// @Summary Verificar certificado
// @Description Búsqueda pública por número de certificado (sin distinguir mayúsculas). Devuelve la ficha del animal con tratamientos, vacunas, reportes y costos.
// @Tags verify
// @Produce json
// @Param certificate query string true "Número de certificado (VET-YYYY-XXXXXXXX)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any "Certificate number is required"
// @Failure 404 {object} map[string]any "No records found for this certificate number"
// @Failure 429 {object} map[string]any
// @Router /api/verify [get]
func verifyHandler(svc *Service, cfg HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := lookup(w, r, svc, cfg)
		if !ok {
			return
		}
		respond.OK(w, http.StatusOK, map[string]any{"data": toRecordResponse(rec, svc.now())})
	}
}

// verifyPDFHandler godoc
// @Summary Descargar ficha en PDF
// @Tags verify
// @Produce application/pdf
// @Param certificate query string true "Número de certificado"
// @Success 200 {file} file
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/verify/pdf [get]
func verifyPDFHandler(svc *Service, cfg HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := lookup(w, r, svc, cfg)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := RenderPDF(&buf, rec, svc.now()); err != nil {
			cfg.Log.Error("pdf render failed", map[string]any{"err": err, "certificate": rec.Animal.CertificateNumber})
			respond.Error(w, http.StatusInternalServerError, "Failed to generate PDF")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+PDFFilename(rec.Animal.CertificateNumber)+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

func verifyPageHandler(svc *Service, cfg HandlerConfig, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("certificate")
		data := pageData{Query: q}
		status := http.StatusOK

		if animals.NormalizeCertificate(q) != "" {
			rec, err := svc.Verify(r.Context(), q)
			switch {
			case err == nil:
				observe(cfg, "found")
				data.Record = &rec
			case errors.Is(err, ErrNotFound):
				observe(cfg, "not_found")
				status = http.StatusNotFound
				data.Error = "No records found for this certificate number"
			default:
				observe(cfg, "error")
				cfg.Log.Error("verification failed", map[string]any{"err": err})
				status = http.StatusInternalServerError
				data.Error = "Failed to verify certificate"
			}
		}

		var buf bytes.Buffer
		if err := renderPage(tmpl, &buf, data); err != nil {
			cfg.Log.Error("verify page render failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = buf.WriteTo(w)
	}
}

// lookup resuelve el certificado del query y responde el error JSON si corresponde.
func lookup(w http.ResponseWriter, r *http.Request, svc *Service, cfg HandlerConfig) (Record, bool) {
	rec, err := svc.Verify(r.Context(), r.URL.Query().Get("certificate"))
	if err == nil {
		observe(cfg, "found")
		return rec, true
	}

	switch {
	case errors.Is(err, ErrCertificateRequired):
		observe(cfg, "invalid")
		respond.Error(w, http.StatusBadRequest, "Certificate number is required")
	case errors.Is(err, ErrNotFound):
		observe(cfg, "not_found")
		respond.Error(w, http.StatusNotFound, "No records found for this certificate number")
	default:
		observe(cfg, "error")
		cfg.Log.Error("verification failed", map[string]any{"err": err})
		respond.Error(w, http.StatusInternalServerError, "Failed to verify certificate")
	}
	return Record{}, false
}

func observe(cfg HandlerConfig, outcome string) {
	if cfg.OnVerify != nil {
		cfg.OnVerify(outcome)
	}
}

func toRecordResponse(rec Record, now time.Time) recordResponse {
	a := rec.Animal
	out := recordResponse{
		Animal: animalResponse{
			ID:                a.ID,
			CertificateNumber: a.CertificateNumber,
			Name:              a.Name,
			Species:           a.Species,
			Breed:             a.Breed,
			DateOfBirth:       a.DateOfBirth,
			Age:               rec.Age,
			Weight:            a.Weight,
			OwnerName:         a.OwnerName,
			OwnerEmail:        a.OwnerEmail,
			OwnerPhone:        a.OwnerPhone,
			RegistrationDate:  a.RegistrationDate,
			ImageURL:          a.ImageURL,
		},
		Treatments: make([]treatmentResponse, 0, len(rec.Treatments)),
		Vaccines:   make([]vaccineResponse, 0, len(rec.Vaccines)),
		MedReports: make([]reportResponse, 0, len(rec.Reports)),
		Costs: costsResponse{
			Treatments: rec.Costs.Treatments,
			Vaccines:   rec.Costs.Vaccines,
			Reports:    rec.Costs.Reports,
			Total:      rec.Costs.Total,
		},
	}
	for _, t := range rec.Treatments {
		out.Treatments = append(out.Treatments, treatmentResponse{
			ID:           t.ID,
			Type:         t.Type,
			Description:  t.Description,
			Date:         t.Date,
			Veterinarian: t.Veterinarian,
			Cost:         t.Cost,
			Notes:        t.Notes,
		})
	}
	for _, v := range rec.Vaccines {
		out.Vaccines = append(out.Vaccines, vaccineResponse{
			ID:               v.ID,
			Name:             v.Name,
			DateAdministered: v.DateAdministered,
			NextDueDate:      v.NextDueDate,
			Veterinarian:     v.Veterinarian,
			Cost:             v.Cost,
			Due:              v.IsDue(now),
		})
	}
	for _, m := range rec.Reports {
		out.MedReports = append(out.MedReports, reportResponse{
			ID:            m.ID,
			ReportType:    m.ReportType,
			Diagnosis:     m.Diagnosis,
			Symptoms:      m.Symptoms,
			Treatment:     m.Treatment,
			Prescriptions: m.Prescriptions,
			Veterinarian:  m.Veterinarian,
			Price:         m.Price,
			FollowUpDate:  m.FollowUpDate,
			Notes:         m.Notes,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out
}
