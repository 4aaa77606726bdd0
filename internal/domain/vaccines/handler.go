package vaccines

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
	r.Route("/api/animals/{animalID}/vaccines", func(vr chi.Router) {
		vr.Use(middleware.RequireAdmin)
		vr.Post("/", recordVaccineHandler(svc, log))
		vr.Get("/", listVaccinesHandler(svc, log))
	})
}

type recordVaccineRequest struct {
	Name             string   `json:"name" valid:"notblank~Vaccine name is required,required~Vaccine name is required"`
	DateAdministered string   `json:"dateAdministered"`
	NextDueDate      string   `json:"nextDueDate"`
	Veterinarian     string   `json:"veterinarian" valid:"notblank~Veterinarian name is required,required~Veterinarian name is required"`
	BatchNumber      string   `json:"batchNumber"`
	Cost             *float64 `json:"cost"`
	Notes            string   `json:"notes"`
}

type vaccineResponse struct {
	ID               string    `json:"id"`
	AnimalID         string    `json:"animalId"`
	Name             string    `json:"name"`
	DateAdministered time.Time `json:"dateAdministered"`
	NextDueDate      time.Time `json:"nextDueDate"`
	Veterinarian     string    `json:"veterinarian"`
	BatchNumber      string    `json:"batchNumber,omitempty"`
	Cost             float64   `json:"cost"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// recordVaccineHandler godoc
// @Summary Registrar vacuna
// @Description Si no se envía nextDueDate se asume refuerzo anual.
// @Tags vaccines
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body recordVaccineRequest true "Vacuna"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/animals/{animalID}/vaccines [post]
func recordVaccineHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordVaccineRequest
		if !respond.DecodeJSON(w, r, &req) {
			return
		}

		errs := validate.Struct(req)
		administered := validate.OptionalDate(&errs, "dateAdministered", req.DateAdministered)
		nextDue := validate.OptionalDate(&errs, "nextDueDate", req.NextDueDate)
		if administered != nil && nextDue != nil && nextDue.Before(*administered) {
			errs.Add("nextDueDate", "Next due date must be after the administration date")
		}
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

		v, err := svc.Record(r.Context(), chi.URLParam(r, "animalID"), RecordInput{
			Name:             req.Name,
			DateAdministered: administered,
			NextDueDate:      nextDue,
			Veterinarian:     req.Veterinarian,
			BatchNumber:      req.BatchNumber,
			Cost:             cost,
			Notes:            req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrAnimalNotFound):
				respond.Error(w, http.StatusNotFound, "Animal not found")
			case errors.Is(err, ErrInvalidInput):
				respond.Error(w, http.StatusBadRequest, "Validation failed")
			default:
				log.Error("record vaccine failed", map[string]any{"err": err})
				respond.Error(w, http.StatusInternalServerError, "Failed to record vaccine")
			}
			return
		}
		respond.OK(w, http.StatusCreated, map[string]any{"vaccine": toVaccineResponse(v)})
	}
}

func listVaccinesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			if errors.Is(err, ErrAnimalNotFound) {
				respond.Error(w, http.StatusNotFound, "Animal not found")
				return
			}
			log.Error("list vaccines failed", map[string]any{"err": err})
			respond.Error(w, http.StatusInternalServerError, "Failed to fetch vaccines")
			return
		}
		out := make([]vaccineResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccineResponse(v))
		}
		respond.OK(w, http.StatusOK, map[string]any{"vaccines": out})
	}
}

func toVaccineResponse(v Vaccine) vaccineResponse {
	return vaccineResponse{
		ID:               v.ID,
		AnimalID:         v.AnimalID,
		Name:             v.Name,
		DateAdministered: v.DateAdministered,
		NextDueDate:      v.NextDueDate,
		Veterinarian:     v.Veterinarian,
		BatchNumber:      v.BatchNumber,
		Cost:             v.Cost,
		Notes:            v.Notes,
		CreatedAt:        v.CreatedAt,
	}
}
