// internal/app/features/transitions/routes.go
package transitions

import (
	"github.com/go-chi/chi/v5"

	"github.com/vslopes/doahub/internal/app/system/auth"
)

// MountRoutes registers the workflow routes on the root router. Every
// mutating route is token-gated; listing accepted donations is public
// (the relief map on the site reads it).
func MountRoutes(r chi.Router, h *Handler, tokens *auth.Manager) {
	r.Get("/doacaoAceita", h.ListAccepted)

	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireToken)
		r.Post("/doacaoRejeitada", h.CreateRejected)
		r.Post("/doacaoAceita", h.CreateAccepted)
		r.Put("/moveDoacaoRejeitada/{id}", h.Reject)
		r.Put("/moveDoacaoAceita/{id}", h.Accept)
		r.Put("/DoacaoAceita/{id}", h.FinalizeDirect)
		r.Put("/moveDoacaoFinalizada/{id}", h.Finalize)
	})
}
