// internal/app/features/authapi/handler.go

// Package authapi serves registration, login, and user lookup.
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/vslopes/doahub/internal/app/store/users"
	"github.com/vslopes/doahub/internal/app/system/auth"
	"github.com/vslopes/doahub/internal/app/system/timeouts"
	"github.com/vslopes/doahub/internal/app/system/webutil"
)

const msgServerError = "Aconteceu um erro no servidor, tente novamente mais tarde"

type Handler struct {
	Users  *userstore.Store
	Tokens *auth.Manager
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Tokens: tokens,
		Log:    logger,
	}
}

// credentials is the request body for register and login.
type credentials struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		webutil.Error(w, http.StatusUnprocessableEntity, "JSON inválido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	_, err := h.Users.Register(ctx, creds.Usuario, creds.Senha)
	switch {
	case err == nil:
		webutil.JSON(w, http.StatusCreated, map[string]string{"msg": "Usuário criado com sucesso"})
	case errors.Is(err, userstore.ErrMissingFields):
		webutil.Error(w, http.StatusUnprocessableEntity, "Usuário e senha são obrigatórios")
	case errors.Is(err, userstore.ErrUsernameTaken):
		webutil.Error(w, http.StatusUnprocessableEntity,
			"Este usuário já existe, por favor insira outro usuário")
	default:
		h.Log.Error("register failed", zap.Error(err))
		webutil.Error(w, http.StatusInternalServerError, msgServerError)
	}
}

// Login handles POST /auth/login. A successful login answers with a
// bearer token carrying the user's id.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		webutil.Error(w, http.StatusUnprocessableEntity, "JSON inválido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Authenticate(ctx, creds.Usuario, creds.Senha)
	switch {
	case err == nil:
		// fall through to token issuing below
	case errors.Is(err, userstore.ErrMissingFields):
		webutil.Error(w, http.StatusUnprocessableEntity, "Usuário e senha são obrigatórios")
		return
	case errors.Is(err, userstore.ErrNotFound):
		webutil.Error(w, http.StatusNotFound, "Usuário não encontrado")
		return
	case errors.Is(err, userstore.ErrBadPassword):
		webutil.Error(w, http.StatusForbidden, "Senha inválida")
		return
	default:
		h.Log.Error("login failed", zap.Error(err))
		webutil.Error(w, http.StatusInternalServerError, msgServerError)
		return
	}

	token, err := h.Tokens.Issue(u.ID.Hex())
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		webutil.Error(w, http.StatusInternalServerError, msgServerError)
		return
	}
	webutil.JSON(w, http.StatusOK, map[string]string{
		"msg":   "Autenticação realizada com sucesso",
		"token": token,
	})
}

// GetUser handles GET /user/{id}. The password hash is excluded by the
// store's projection.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Error(w, http.StatusNotFound, "Usuário Não encontrado")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			webutil.Error(w, http.StatusNotFound, "Usuário Não encontrado")
			return
		}
		h.Log.Error("get user failed", zap.String("id", id.Hex()), zap.Error(err))
		webutil.Error(w, http.StatusInternalServerError, msgServerError)
		return
	}
	webutil.JSON(w, http.StatusOK, map[string]any{"user": u})
}
