// Package respond centraliza el sobre JSON de la API:
// {"success": true, ...} / {"success": false, "message": "...", "errors": [...]}.
//
// Antes cada módulo tenía su propio writeJSON; con seis módulos ya conviene el helper común.
package respond

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/godyclif/vet/internal/platform/validate"
)

// JSON escribe v tal cual.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK escribe {"success": true} mezclado con payload.
func OK(w http.ResponseWriter, status int, payload map[string]any) {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	JSON(w, status, body)
}

type errorBody struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Errors  []validate.FieldError `json:"errors,omitempty"`
}

// Error escribe {"success": false, "message": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Success: false, Message: msg})
}

// Invalid escribe un 400 con el detalle por campo.
func Invalid(w http.ResponseWriter, errs validate.Errors) {
	JSON(w, http.StatusBadRequest, errorBody{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// TooManyRequests escribe un 429 con Retry-After en segundos.
func TooManyRequests(w http.ResponseWriter, retryAfter time.Duration) {
	secs := int(retryAfter.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	Error(w, http.StatusTooManyRequests, "Too many requests, please try again later")
}

// DecodeJSON decodifica el body; devuelve false (y responde 400) si es inválido.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		Error(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
