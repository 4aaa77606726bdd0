package animals

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

// RegisterRoutes monta /api/animals. Todo el grupo es solo para admins.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/animals", func(ar chi.Router) {
		ar.Use(middleware.RequireAdmin)
		ar.Get("/", listAnimalsHandler(svc, log))
		ar.Get("/{animalID}", getAnimalHandler(svc, log))
		ar.Patch("/{animalID}", updateAnimalHandler(svc, log))
	})
}

type animalResponse struct {
	ID                string    `json:"id"`
	CertificateNumber string    `json:"certificateNumber"`
	Name              string    `json:"name"`
	Species           Species   `json:"species"`
	Breed             string    `json:"breed"`
	DateOfBirth       time.Time `json:"dateOfBirth"`
	Weight            float64   `json:"weight"`
	OwnerName         string    `json:"ownerName"`
	OwnerEmail        string    `json:"ownerEmail"`
	OwnerPhone        string    `json:"ownerPhone"`
	RegistrationDate  time.Time `json:"registrationDate"`
	ImageURL          string    `json:"imageUrl,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type updateAnimalRequest struct {
	Weight   *float64 `json:"weight"`
	Notes    *string  `json:"notes"`
	ImageURL *string  `json:"imageUrl"`
}

// listAnimalsHandler godoc
// @Summary Listar animales registrados
// @Description Lista todos los animales, más recientes primero. Requiere sesión de admin (cookie `auth_token` o `Authorization: Bearer <token>`).
// @Tags animals
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any "Admin access required"
// @Router /api/animals [get]
func listAnimalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			log.Error("list animals failed", map[string]any{"err": err})
			respond.Error(w, http.StatusInternalServerError, "Failed to fetch animals")
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		respond.OK(w, http.StatusOK, map[string]any{"animals": out})
	}
}

func getAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				respond.Error(w, http.StatusNotFound, "Animal not found")
				return
			}
			log.Error("get animal failed", map[string]any{"err": err})
			respond.Error(w, http.StatusInternalServerError, "Failed to fetch animal")
			return
		}
		respond.OK(w, http.StatusOK, map[string]any{"animal": toAnimalResponse(a)})
	}
}

// updateAnimalHandler godoc
// @Summary Actualizar datos de un animal
// @Description PATCH parcial de peso, notas e imagen. Campos ausentes no se tocan.
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a actualizar"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/animals/{animalID} [patch]
func updateAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAnimalRequest
		if !respond.DecodeJSON(w, r, &req) {
			return
		}

		var errs validate.Errors
		if req.Weight != nil && *req.Weight < 0.1 {
			errs.Add("weight", "Weight must be greater than 0")
		}
		if req.ImageURL != nil && *req.ImageURL != "" && !validate.IsHTTPURL(*req.ImageURL) {
			errs.Add("imageUrl", "Image URL must be an http(s) URL")
		}
		if len(errs) > 0 {
			respond.Invalid(w, errs)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), UpdateInput{
			Weight:   req.Weight,
			Notes:    req.Notes,
			ImageURL: req.ImageURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				respond.Error(w, http.StatusNotFound, "Animal not found")
			case errors.Is(err, ErrInvalidInput):
				respond.Error(w, http.StatusBadRequest, err.Error())
			default:
				log.Error("update animal failed", map[string]any{"err": err})
				respond.Error(w, http.StatusInternalServerError, "Failed to update animal")
			}
			return
		}
		respond.OK(w, http.StatusOK, map[string]any{"animal": toAnimalResponse(a)})
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:                a.ID,
		CertificateNumber: a.CertificateNumber,
		Name:              a.Name,
		Species:           a.Species,
		Breed:             a.Breed,
		DateOfBirth:       a.DateOfBirth,
		Weight:            a.Weight,
		OwnerName:         a.OwnerName,
		OwnerEmail:        a.OwnerEmail,
		OwnerPhone:        a.OwnerPhone,
		RegistrationDate:  a.RegistrationDate,
		ImageURL:          a.ImageURL,
		Notes:             a.Notes,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
