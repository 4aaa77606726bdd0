package medreports

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/middleware"
	"github.com/godyclif/vet/internal/platform/logger"
	"github.com/godyclif/vet/internal/platform/respond"
	"github.com/godyclif/vet/internal/platform/validate"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/med-reports", func(mr chi.Router) {
		mr.Use(middleware.RequireAdmin)
		mr.Post("/", issueReportHandler(svc, log))
		mr.Get("/", listReportsHandler(svc, log))
	})
}

type issueReportRequest struct {
	AnimalName  string   `json:"animalName" valid:"notblank~Animal name is required,required~Animal name is required"`
	Species     string   `json:"species" valid:"required~Invalid species,in(dog|cat|bird|reptile|exotic|other)~Invalid species"`
	Breed       string   `json:"breed" valid:"notblank~Breed is required,required~Breed is required"`
	DateOfBirth string   `json:"dateOfBirth" valid:"required~Date of birth is required"`
	Weight      *float64 `json:"weight"`
	OwnerName   string   `json:"ownerName" valid:"notblank~Owner name is required,required~Owner name is required"`
	OwnerEmail  string   `json:"ownerEmail" valid:"required~Invalid owner email,email~Invalid owner email"`
	OwnerPhone  string   `json:"ownerPhone" valid:"notblank~Owner phone is required,required~Owner phone is required"`

	ReportType    string   `json:"reportType" valid:"required~Invalid report type,in(general_checkup|emergency|surgery|vaccination|dental|laboratory|imaging|followup|other)~Invalid report type"`
	Diagnosis     string   `json:"diagnosis" valid:"notblank~Diagnosis is required,required~Diagnosis is required"`
	Symptoms      string   `json:"symptoms" valid:"notblank~Symptoms are required,required~Symptoms are required"`
	Treatment     string   `json:"treatment" valid:"notblank~Treatment is required,required~Treatment is required"`
	Prescriptions string   `json:"prescriptions"`
	Veterinarian  string   `json:"veterinarian" valid:"notblank~Veterinarian name is required,required~Veterinarian name is required"`
	Price         *float64 `json:"price"`
	FollowUpDate  string   `json:"followUpDate"`
	Notes         string   `json:"notes"`
}

// parse valida el request y lo convierte al input del servicio.
func (req issueReportRequest) parse(now time.Time) (IssueInput, validate.Errors) {
	req.OwnerEmail = validate.NormalizeEmail(req.OwnerEmail)
	errs := validate.Struct(req)

	var dob time.Time
	if strings.TrimSpace(req.DateOfBirth) != "" {
		t, err := validate.ParseDate(req.DateOfBirth)
		switch {
		case err != nil:
			errs.Add("dateOfBirth", "Invalid date of birth")
		case t.After(now):
			errs.Add("dateOfBirth", "Date of birth cannot be in the future")
		default:
			dob = t
		}
	}
	if req.Weight == nil || *req.Weight < 0.1 {
		errs.Add("weight", "Weight must be greater than 0")
	}
	if req.Price != nil && *req.Price < 0 {
		errs.Add("price", "Price must be a positive number")
	}
	followUp := validate.OptionalDate(&errs, "followUpDate", req.FollowUpDate)

	if len(errs) > 0 {
		return IssueInput{}, errs.Sorted()
	}

	return IssueInput{
		Animal: animals.RegisterInput{
			Name:        req.AnimalName,
			Species:     animals.Species(req.Species),
			Breed:       req.Breed,
			DateOfBirth: dob,
			Weight:      *req.Weight,
			OwnerName:   req.OwnerName,
			OwnerEmail:  req.OwnerEmail,
			OwnerPhone:  req.OwnerPhone,
		},
		ReportType:    ReportType(req.ReportType),
		Diagnosis:     req.Diagnosis,
		Symptoms:      req.Symptoms,
		Treatment:     req.Treatment,
		Prescriptions: req.Prescriptions,
		Veterinarian:  req.Veterinarian,
		Price:         req.Price,
		FollowUpDate:  followUp,
		Notes:         req.Notes,
	}, nil
}

type reportResponse struct {
	ID            string     `json:"id"`
	AnimalID      string     `json:"animalId"`
	ReportType    ReportType `json:"reportType"`
	Diagnosis     string     `json:"diagnosis"`
	Symptoms      string     `json:"symptoms"`
	Treatment     string     `json:"treatment"`
	Prescriptions string     `json:"prescriptions"`
	Veterinarian  string     `json:"veterinarian"`
	Price         *float64   `json:"price,omitempty"`
	FollowUpDate  *time.Time `json:"followUpDate,omitempty"`
	Notes         string     `json:"notes"`
	CreatedBy     string     `json:"createdBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Animal *animalSummaryResponse `json:"animal"`
}

type animalSummaryResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Species           animals.Species `json:"species"`
	CertificateNumber string          `json:"certificateNumber"`
}

// issueReportHandler godoc
// @Summary Emitir reporte médico
// @Description Registra un animal nuevo (con número de certificado) y su primer reporte médico. Solo admins.
// @Tags med-reports
// @Accept json
// @Produce json
// @Param payload body issueReportRequest true "Animal + consulta"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 401 {object} map[string]any "Admin access required"
// @Failure 500 {object} map[string]any
// @Router /api/med-reports [post]
func issueReportHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, _ := middleware.GetClaims(r.Context())

		var req issueReportRequest
		if !respond.DecodeJSON(w, r, &req) {
			return
		}
		in, errs := req.parse(svc.now())
		if len(errs) > 0 {
			respond.Invalid(w, errs)
			return
		}

		issued, err := svc.Issue(r.Context(), c.UserID, c.IsAdmin(), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				respond.Error(w, http.StatusUnauthorized, "Admin access required")
			case errors.Is(err, ErrInvalidInput):
				respond.Error(w, http.StatusBadRequest, "Validation failed")
			default:
				log.Error("med report creation failed", map[string]any{"err": err, "admin_id": c.UserID})
				respond.Error(w, http.StatusInternalServerError, "Failed to create medical report")
			}
			return
		}

		log.Info("med report issued", map[string]any{
			"report_id":   issued.Report.ID,
			"animal_id":   issued.Animal.ID,
			"certificate": issued.Animal.CertificateNumber,
			"admin_id":    c.UserID,
		})
		respond.OK(w, http.StatusCreated, map[string]any{
			"message":           "Medical report created successfully",
			"certificateNumber": issued.Animal.CertificateNumber,
			"report": map[string]any{
				"id":                issued.Report.ID,
				"certificateNumber": issued.Animal.CertificateNumber,
				"animalName":        issued.Animal.Name,
				"reportType":        issued.Report.ReportType,
				"diagnosis":         issued.Report.Diagnosis,
			},
		})
	}
}

func listReportsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			log.Error("list med reports failed", map[string]any{"err": err})
			respond.Error(w, http.StatusInternalServerError, "Failed to fetch reports")
			return
		}

		out := make([]reportResponse, 0, len(items))
		for _, it := range items {
			resp := toReportResponse(it.Report)
			if it.Animal != nil {
				resp.Animal = &animalSummaryResponse{
					ID:                it.Animal.ID,
					Name:              it.Animal.Name,
					Species:           it.Animal.Species,
					CertificateNumber: it.Animal.CertificateNumber,
				}
			}
			out = append(out, resp)
		}
		respond.OK(w, http.StatusOK, map[string]any{"reports": out})
	}
}

func toReportResponse(r MedReport) reportResponse {
	return reportResponse{
		ID:            r.ID,
		AnimalID:      r.AnimalID,
		ReportType:    r.ReportType,
		Diagnosis:     r.Diagnosis,
		Symptoms:      r.Symptoms,
		Treatment:     r.Treatment,
		Prescriptions: r.Prescriptions,
		Veterinarian:  r.Veterinarian,
		Price:         r.Price,
		FollowUpDate:  r.FollowUpDate,
		Notes:         r.Notes,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
