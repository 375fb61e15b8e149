// internal/app/features/transitions/handler.go

// Package transitions serves the staff-only workflow routes: moving a
// donation between stages and writing directly into the rejected and
// accepted collections.
package transitions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vslopes/doahub/internal/app/system/timeouts"
	"github.com/vslopes/doahub/internal/app/system/webutil"
	"github.com/vslopes/doahub/internal/app/workflow"
	"github.com/vslopes/doahub/internal/domain/models"
)

const (
	msgNotFound    = "Doação não encontrada"
	msgBadID       = "ID inválido"
	msgServerError = "Aconteceu um erro no servidor, tente novamente mais tarde"
)

// Handler serves stage transitions and the direct rejected/accepted
// creation routes.
type Handler struct {
	Engine *workflow.Engine
	Log    *zap.Logger
}

func NewHandler(engine *workflow.Engine, logger *zap.Logger) *Handler {
	return &Handler{Engine: engine, Log: logger}
}

// move runs one stage transition and writes the moved document.
func (h *Handler) move(w http.ResponseWriter, r *http.Request, from, to models.Stage) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Error(w, http.StatusUnprocessableEntity, msgBadID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	moved, err := h.Engine.Move(ctx, id, from, to)
	if err != nil {
		if errors.Is(err, workflow.ErrNotFound) {
			webutil.Error(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.Log.Error("move donation failed",
			zap.String("id", id.Hex()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.Error(err))
		webutil.Error(w, http.StatusInternalServerError, msgServerError)
		return
	}
	webutil.JSON(w, http.StatusOK, moved)
}

// Reject handles PUT /moveDoacaoRejeitada/{id} (pending → rejected).
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, models.StagePending, models.StageRejected)
}

// Accept handles PUT /moveDoacaoAceita/{id} (pending → accepted).
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, models.StagePending, models.StageAccepted)
}

// FinalizeDirect handles PUT /DoacaoAceita/{id} (pending → finalized).
// Deprecated: the canonical path is Accept then Finalize; this shortcut
// is kept for clients of the original service.
func (h *Handler) FinalizeDirect(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, models.StagePending, models.StageFinalized)
}

// Finalize handles PUT /moveDoacaoFinalizada/{id} (accepted → finalized).
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, models.StageAccepted, models.StageFinalized)
}

// createIn decodes a donation from the body and writes it straight into
// the given stage, bypassing the pending queue.
func (h *Handler) createIn(w http.ResponseWriter, r *http.Request, stage models.Stage) {
	var d models.Donation
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		webutil.Error(w, http.StatusUnprocessableEntity, "JSON inválido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Engine.Store(stage).Create(ctx, d)
	if err != nil {
		h.Log.Error("create donation in stage failed",
			zap.String("stage", string(stage)), zap.Error(err))
		webutil.Error(w, http.StatusInternalServerError, msgServerError)
		return
	}
	webutil.JSON(w, http.StatusOK, created)
}

// CreateRejected handles POST /doacaoRejeitada.
func (h *Handler) CreateRejected(w http.ResponseWriter, r *http.Request) {
	h.createIn(w, r, models.StageRejected)
}

// CreateAccepted handles POST /doacaoAceita.
func (h *Handler) CreateAccepted(w http.ResponseWriter, r *http.Request) {
	h.createIn(w, r, models.StageAccepted)
}

// ListAccepted handles GET /doacaoAceita.
func (h *Handler) ListAccepted(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	donations, err := h.Engine.Store(models.StageAccepted).List(ctx)
	if err != nil {
		h.Log.Error("list accepted donations failed", zap.Error(err))
		webutil.Error(w, http.StatusInternalServerError, msgServerError)
		return
	}
	webutil.JSON(w, http.StatusOK, donations)
}
