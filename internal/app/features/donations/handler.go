// internal/app/features/donations/handler.go
package donations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	donationstore "github.com/vslopes/doahub/internal/app/store/donations"
	"github.com/vslopes/doahub/internal/app/system/timeouts"
	"github.com/vslopes/doahub/internal/app/system/uploads"
	"github.com/vslopes/doahub/internal/app/system/webutil"
	"github.com/vslopes/doahub/internal/domain/models"
)

const (
	msgNotFound    = "Doação não encontrada"
	msgBadID       = "ID inválido"
	msgServerError = "Aconteceu um erro no servidor, tente novamente mais tarde"
)

// Handler serves the public pending-donation routes: list, submit,
// update, delete.
type Handler struct {
	Pending *donationstore.Store
	Uploads *uploads.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, up *uploads.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Pending: donationstore.New(db, models.StagePending),
		Uploads: up,
		Log:     logger,
	}
}

// List handles GET / — every pending donation, store-native order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	donations, err := h.Pending.List(ctx)
	if err != nil {
		h.Log.Error("list pending donations failed", zap.Error(err))
		webutil.Error(w, http.StatusInternalServerError, msgServerError)
		return
	}
	webutil.JSON(w, http.StatusOK, donations)
}

// Update handles PUT /{id} — merges the provided fields into a pending
// donation and returns the updated document.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Error(w, http.StatusUnprocessableEntity, msgBadID)
		return
	}

	var upd models.DonationUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		webutil.Error(w, http.StatusUnprocessableEntity, "JSON inválido")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Pending.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, donationstore.ErrNotFound) {
			webutil.Error(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.Log.Error("update donation failed", zap.String("id", id.Hex()), zap.Error(err))
		webutil.Error(w, http.StatusInternalServerError, msgServerError)
		return
	}
	webutil.JSON(w, http.StatusOK, d)
}

// Delete handles DELETE /{id} — removes a pending donation and returns
// the deleted document.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Error(w, http.StatusUnprocessableEntity, msgBadID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Pending.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, donationstore.ErrNotFound) {
			webutil.Error(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.Log.Error("delete donation failed", zap.String("id", id.Hex()), zap.Error(err))
		webutil.Error(w, http.StatusInternalServerError, msgServerError)
		return
	}
	webutil.JSON(w, http.StatusOK, d)
}
