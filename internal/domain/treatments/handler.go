package treatments

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/godyclif/vet/internal/middleware"
	"github.com/godyclif/vet/internal/platform/logger"
	"github.com/godyclif/vet/internal/platform/respond"
	"github.com/godyclif/vet/internal/platform/validate"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/animals/{animalID}/treatments", func(tr chi.Router) {
		tr.Use(middleware.RequireAdmin)
		tr.Post("/", recordTreatmentHandler(svc, log))
		tr.Get("/", listTreatmentsHandler(svc, log))
	})
}

type recordTreatmentRequest struct {
	Type         string   `json:"type" valid:"required~Invalid treatment type,in(consultation|surgery|dental|emergency|checkup|grooming|other)~Invalid treatment type"`
	Description  string   `json:"description" valid:"notblank~Description is required,required~Description is required"`
	Date         string   `json:"date"`
	Veterinarian string   `json:"veterinarian" valid:"notblank~Veterinarian name is required,required~Veterinarian name is required"`
	Cost         *float64 `json:"cost"`
	Notes        string   `json:"notes"`
}

type treatmentResponse struct {
	ID           string    `json:"id"`
	AnimalID     string    `json:"animalId"`
	Type         Type      `json:"type"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Veterinarian string    `json:"veterinarian"`
	Cost         float64   `json:"cost"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// recordTreatmentHandler godoc
// @Summary Registrar tratamiento
// @Tags treatments
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body recordTreatmentRequest true "Tratamiento"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/animals/{animalID}/treatments [post]
func recordTreatmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordTreatmentRequest
		if !respond.DecodeJSON(w, r, &req) {
			return
		}

		errs := validate.Struct(req)
		date := validate.OptionalDate(&errs, "date", req.Date)
		cost := 0.0
		if req.Cost != nil {
			if *req.Cost < 0 {
				errs.Add("cost", "Cost must be a positive number")
			}
			cost = *req.Cost
		}
		if len(errs) > 0 {
			respond.Invalid(w, errs.Sorted())
			return
		}

		t, err := svc.Record(r.Context(), chi.URLParam(r, "animalID"), RecordInput{
			Type:         Type(req.Type),
			Description:  req.Description,
			Date:         date,
			Veterinarian: req.Veterinarian,
			Cost:         cost,
			Notes:        req.Notes,
		})
		if err != nil {
			writeServiceError(w, log, err, "Failed to record treatment")
			return
		}
		respond.OK(w, http.StatusCreated, map[string]any{"treatment": toTreatmentResponse(t)})
	}
}

func listTreatmentsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeServiceError(w, log, err, "Failed to fetch treatments")
			return
		}
		out := make([]treatmentResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTreatmentResponse(t))
		}
		respond.OK(w, http.StatusOK, map[string]any{"treatments": out})
	}
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, ErrAnimalNotFound):
		respond.Error(w, http.StatusNotFound, "Animal not found")
	case errors.Is(err, ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, "Validation failed")
	default:
		log.Error("treatments request failed", map[string]any{"err": err})
		respond.Error(w, http.StatusInternalServerError, fallback)
	}
}

func toTreatmentResponse(t Treatment) treatmentResponse {
	return treatmentResponse{
		ID:           t.ID,
		AnimalID:     t.AnimalID,
		Type:         t.Type,
		Description:  t.Description,
		Date:         t.Date,
		Veterinarian: t.Veterinarian,
		Cost:         t.Cost,
		Notes:        t.Notes,
		CreatedAt:    t.CreatedAt,
	}
}
