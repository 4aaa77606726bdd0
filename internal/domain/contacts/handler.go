package contacts

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

// RegisterRoutes: POST /api/contact es público; el resto solo admin.
// submitGuard se aplica al POST público (rate limit); puede ser nil.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, submitGuard func(http.Handler) http.Handler) {
	if submitGuard == nil {
		submitGuard = func(next http.Handler) http.Handler { return next }
	}
	r.With(submitGuard).Post("/api/contact", submitContactHandler(svc, log))

	r.Route("/api/contacts", func(cr chi.Router) {
		cr.Use(middleware.RequireAdmin)
		cr.Get("/", listContactsHandler(svc, log))
		cr.Patch("/{contactID}", updateContactStatusHandler(svc, log))
	})
}

type submitContactRequest struct {
	Name       string `json:"name" valid:"required~Name must be at least 2 characters,stringlength(2|200)~Name must be at least 2 characters"`
	Email      string `json:"email" valid:"required~Invalid email address,email~Invalid email address"`
	Phone      string `json:"phone"`
	Subject    string `json:"subject"`
	AnimalType string `json:"animalType" valid:"in(dog|cat|bird|reptile|exotic|other)~Invalid animal type"`
	Message    string `json:"message" valid:"required~Message must be at least 10 characters,stringlength(10|5000)~Message must be at least 10 characters"`
}

type updateStatusRequest struct {
	Status string `json:"status" valid:"required~Invalid status,in(pending|replied|closed)~Invalid status"`
}

type contactResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	AnimalType string    `json:"animalType,omitempty"`
	Message    string    `json:"message"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// submitContactHandler godoc
// @Summary Enviar formulario de contacto
// @Tags contact
// @Accept json
// @Produce json
// @Param payload body submitContactRequest true "Mensaje"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 429 {object} map[string]any
// @Router /api/contact [post]
func submitContactHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitContactRequest
		if !respond.DecodeJSON(w, r, &req) {
			return
		}
		req.Email = validate.NormalizeEmail(req.Email)
		if errs := validate.Struct(req); len(errs) > 0 {
			respond.Invalid(w, errs)
			return
		}

		c, err := svc.Submit(r.Context(), SubmitInput{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			Subject:    req.Subject,
			AnimalType: req.AnimalType,
			Message:    req.Message,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				respond.Error(w, http.StatusBadRequest, "Validation failed")
				return
			}
			log.Error("contact form failed", map[string]any{"err": err})
			respond.Error(w, http.StatusInternalServerError, "Failed to submit contact form")
			return
		}
		respond.OK(w, http.StatusCreated, map[string]any{
			"message": "Contact form submitted successfully",
			"id":      c.ID,
		})
	}
}

func listContactsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), Status(r.URL.Query().Get("status")))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				respond.Error(w, http.StatusBadRequest, "Invalid status")
				return
			}
			log.Error("list contacts failed", map[string]any{"err": err})
			respond.Error(w, http.StatusInternalServerError, "Failed to fetch contacts")
			return
		}
		out := make([]contactResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toContactResponse(c))
		}
		respond.OK(w, http.StatusOK, map[string]any{"contacts": out})
	}
}

func updateContactStatusHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if !respond.DecodeJSON(w, r, &req) {
			return
		}
		if errs := validate.Struct(req); len(errs) > 0 {
			respond.Invalid(w, errs)
			return
		}

		c, err := svc.SetStatus(r.Context(), chi.URLParam(r, "contactID"), Status(req.Status))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				respond.Error(w, http.StatusNotFound, "Contact not found")
			case errors.Is(err, ErrInvalidInput):
				respond.Error(w, http.StatusBadRequest, "Invalid status")
			default:
				log.Error("update contact failed", map[string]any{"err": err})
				respond.Error(w, http.StatusInternalServerError, "Failed to update contact")
			}
			return
		}
		respond.OK(w, http.StatusOK, map[string]any{"contact": toContactResponse(c)})
	}
}

func toContactResponse(c Contact) contactResponse {
	return contactResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Subject:    c.Subject,
		AnimalType: c.AnimalType,
		Message:    c.Message,
		Status:     c.Status,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
