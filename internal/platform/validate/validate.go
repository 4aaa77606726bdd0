// Package validate envuelve govalidator para validar requests por struct tags
// (`valid:"..."`) y devolver errores por campo, listos para la respuesta HTTP.
package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// FieldError describe un campo inválido.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors agrupa errores de validación. Implementa error.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add agrega un error de campo (para reglas que no se expresan con tags).
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Err devuelve nil si no hay errores.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// AsErrors extrae Errors de un error (si lo es).
func AsErrors(err error) (Errors, bool) {
	var ve Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func init() {
	// Los tags usan el nombre json del campo para reportar errores.
	govalidator.TagMap["notblank"] = govalidator.Validator(func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
}

// Struct valida v según sus tags `valid`. Los mensajes custom van con "~" en el tag.
func Struct(v any) Errors {
	ok, err := govalidator.ValidateStruct(v)
	if ok || err == nil {
		return nil
	}

	byField := govalidator.ErrorsByField(err)
	out := make(Errors, 0, len(byField))
	for field, msg := range byField {
		out = append(out, FieldError{Field: field, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// Sorted ordena por campo; Add agrega al final, así que tags y reglas manuales
// quedan mezclados hasta ordenar.
func (e Errors) Sorted() Errors {
	sort.SliceStable(e, func(i, j int) bool { return e[i].Field < e[j].Field })
	return e
}

// ParseDate acepta YYYY-MM-DD o RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD or RFC3339: %w", err)
	}
	return t.UTC(), nil
}

// OptionalDate valida un campo de fecha opcional y registra el error si es inválido.
func OptionalDate(errs *Errors, field, value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	t, err := ParseDate(value)
	if err != nil {
		errs.Add(field, "must be a date (YYYY-MM-DD or RFC3339)")
		return nil
	}
	return &t
}

// NormalizeEmail recorta y pasa a minúsculas; se aplica antes de validar.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsEmail expone el check de govalidator para servicios que validan fuera de structs.
func IsEmail(s string) bool {
	return govalidator.IsEmail(strings.TrimSpace(s))
}

// IsHTTPURL acepta solo URLs absolutas http(s).
func IsHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if !govalidator.IsRequestURL(s) {
		return false
	}
	return strings.HasPrefix(strings.ToLower(s), "http://") || strings.HasPrefix(strings.ToLower(s), "https://")
}
