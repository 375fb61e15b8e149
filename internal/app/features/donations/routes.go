// internal/app/features/donations/routes.go
package donations

import "github.com/go-chi/chi/v5"

// MountRoutes registers the public pending-donation routes on the root
// router. These routes require no authentication: anyone can submit or
// review intake requests.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}
