// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/go-chi/chi/v5"

	"github.com/vslopes/doahub/internal/app/system/auth"
)

// MountRoutes registers the auth routes. Register and login are public;
// user lookup requires a token.
func MountRoutes(r chi.Router, h *Handler, tokens *auth.Manager) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.With(tokens.RequireToken).Get("/user/{id}", h.GetUser)
}
