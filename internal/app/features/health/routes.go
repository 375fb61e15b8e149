// internal/app/features/health/routes.go
package health

import "github.com/go-chi/chi/v5"

// MountRoutes registers the health endpoint on the root router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/health", h.Serve)
}
