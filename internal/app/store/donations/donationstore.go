// internal/app/store/donations/donationstore.go
package donationstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vslopes/doahub/internal/domain/models"
)

// ErrNotFound is returned when an id lookup misses.
var ErrNotFound = errors.New("donation not found")

// Store is CRUD over one stage's donation collection. The four workflow
// stages share a schema, so the same Store type serves all of them; a
// Store is bound to its stage at construction.
type Store struct {
	c     *mongo.Collection
	stage models.Stage
}

// New returns a Store bound to the given stage's collection.
func New(db *mongo.Database, stage models.Stage) *Store {
	return &Store{c: db.Collection(stage.Collection()), stage: stage}
}

// Stage returns the workflow stage this store is bound to.
func (s *Store) Stage() models.Stage { return s.stage }

// List returns every donation in the stage, in store-native order.
func (s *Store) List(ctx context.Context) ([]models.Donation, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	donations := []models.Donation{}
	if err := cur.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

// Create inserts a new donation, always under a fresh id.
func (s *Store) Create(ctx context.Context, d models.Donation) (models.Donation, error) {
	d.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Donation{}, err
	}
	return d, nil
}

// GetByID returns a donation by its id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	var d models.Donation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Donation{}, ErrNotFound
		}
		return models.Donation{}, err
	}
	return d, nil
}

// Update merges the provided fields into an existing donation and returns
// the updated document. Nil fields in upd are left untouched.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd models.DonationUpdate) (models.Donation, error) {
	set := bson.M{}
	if upd.NumeroPessoas != nil {
		set["numeroPessoas"] = *upd.NumeroPessoas
	}
	if upd.KitHigiene != nil {
		set["kitHigiene"] = *upd.KitHigiene
	}
	if upd.Agua != nil {
		set["agua"] = *upd.Agua
	}
	if upd.Alimentos != nil {
		set["alimentos"] = *upd.Alimentos
	}
	if upd.Roupas != nil {
		set["roupas"] = *upd.Roupas
	}
	if upd.ProdLimp != nil {
		set["prodLimp"] = *upd.ProdLimp
	}
	if upd.Nome != nil {
		set["nome"] = *upd.Nome
	}
	if upd.Whatsapp != nil {
		set["whatsapp"] = *upd.Whatsapp
	}
	if upd.EndAfe != nil {
		set["endAfe"] = *upd.EndAfe
	}
	if upd.EndAtu != nil {
		set["endAtu"] = *upd.EndAtu
	}
	if upd.ImageURL != nil {
		set["image_url"] = *upd.ImageURL
	}

	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d models.Donation
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Donation{}, ErrNotFound
		}
		return models.Donation{}, err
	}
	return d, nil
}

// Delete removes a donation by id and returns the deleted document.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Donation, error) {
	var d models.Donation
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Donation{}, ErrNotFound
		}
		return models.Donation{}, err
	}
	return d, nil
}

// Count returns the number of donations in the stage.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
