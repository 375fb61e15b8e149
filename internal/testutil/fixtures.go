// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vslopes/doahub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateDonation inserts a donation into the given stage's collection
// and returns it with its generated id.
func (f *Fixtures) CreateDonation(ctx context.Context, stage models.Stage, nome string) models.Donation {
	f.t.Helper()

	d := models.Donation{
		ID:            primitive.NewObjectID(),
		NumeroPessoas: 3,
		KitHigiene:    "sim",
		Agua:          "sim",
		Alimentos:     "sim",
		Roupas:        "não",
		ProdLimp:      "sim",
		Nome:          nome,
		Whatsapp:      5511999999999,
		EndAfe:        "Rua das Cheias, 10",
		EndAtu:        "Abrigo Municipal",
	}

	_, err := f.db.Collection(stage.Collection()).InsertOne(ctx, d)
	if err != nil {
		f.t.Fatalf("failed to create test donation: %v", err)
	}
	return d
}

// CountDonations returns the document count of the given stage's
// collection.
func (f *Fixtures) CountDonations(ctx context.Context, stage models.Stage) int64 {
	f.t.Helper()

	n, err := f.db.Collection(stage.Collection()).CountDocuments(ctx, bson.M{})
	if err != nil {
		f.t.Fatalf("failed to count donations: %v", err)
	}
	return n
}
