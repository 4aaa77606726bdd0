package contacts

import (
	"context"

	"github.com/godyclif/vet/internal/platform/logger"
)

// LogNotifier deja el aviso en el log en lugar de mandar un email al admin.
type LogNotifier struct {
	Log logger.Logger
	// OnSubmit es opcional (métricas).
	OnSubmit func()
}

func (n LogNotifier) ContactSubmitted(_ context.Context, c Contact) {
	if n.OnSubmit != nil {
		n.OnSubmit()
	}
	if n.Log == nil {
		return
	}
	n.Log.Info("contact form submitted", map[string]any{
		"contact_id":  c.ID,
		"email":       c.Email,
		"subject":     c.Subject,
		"animal_type": c.AnimalType,
	})
}
