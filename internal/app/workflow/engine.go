// internal/app/workflow/engine.go

// Package workflow moves donations between stage collections. A move is
// read source → insert copy into destination (new id) → delete source.
// The create-before-delete ordering is deliberate: a crash mid-move
// leaves the donation duplicated rather than lost, and a duplicate is
// the cheaper failure to reconcile by hand.
package workflow

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	donationstore "github.com/vslopes/doahub/internal/app/store/donations"
	"github.com/vslopes/doahub/internal/domain/models"
)

// ErrNotFound is returned when the donation is absent from the source
// stage. It aliases the store sentinel so callers can test either.
var ErrNotFound = donationstore.ErrNotFound

// Engine performs stage transitions over the four donation collections.
type Engine struct {
	stores map[models.Stage]*donationstore.Store
	log    *zap.Logger
}

// New builds an Engine with one store per workflow stage.
func New(db *mongo.Database, logger *zap.Logger) *Engine {
	stores := make(map[models.Stage]*donationstore.Store, len(models.Stages))
	for _, stage := range models.Stages {
		stores[stage] = donationstore.New(db, stage)
	}
	return &Engine{stores: stores, log: logger}
}

// Store returns the Engine's store for the given stage.
func (e *Engine) Store(stage models.Stage) *donationstore.Store {
	return e.stores[stage]
}

// Move transfers a donation from one stage to another. All fields are
// copied verbatim; the identity is not — the destination document gets a
// fresh id and the source document is deleted under its old one. The
// source is only deleted after the destination insert succeeded; no
// rollback of the destination is attempted if the delete fails.
func (e *Engine) Move(ctx context.Context, id primitive.ObjectID, from, to models.Stage) (models.Donation, error) {
	src := e.stores[from]
	dst := e.stores[to]

	d, err := src.GetByID(ctx, id)
	if err != nil {
		return models.Donation{}, err
	}

	moved, err := dst.Create(ctx, d)
	if err != nil {
		return models.Donation{}, err
	}

	if _, err := src.Delete(ctx, id); err != nil {
		e.log.Error("move: source delete failed after destination insert",
			zap.String("id", id.Hex()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.Error(err))
		return models.Donation{}, err
	}

	e.log.Info("donation moved",
		zap.String("from_id", id.Hex()),
		zap.String("to_id", moved.ID.Hex()),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return moved, nil
}
