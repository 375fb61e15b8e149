// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/vslopes/doahub/internal/domain/models"
)

var (
	ErrMissingFields = errors.New("usuario and senha are required")
	ErrUsernameTaken = errors.New("usuario already exists")
	ErrNotFound      = errors.New("user not found")
	ErrBadPassword   = errors.New("wrong password")
)

// bcryptCost matches the work factor the original service registered
// accounts with, so existing hashes keep verifying.
const bcryptCost = 12

// Store holds staff credentials in the users collection. Usernames are
// matched exactly (case-sensitive); uniqueness is enforced by an index
// created at startup.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// EnsureIndexes creates the unique index on usuario. Duplicate
// registrations then surface as a driver duplicate-key error regardless
// of request interleaving.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "usuario", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Register creates a new user, storing a bcrypt hash of the password.
// The plaintext never reaches the database.
func (s *Store) Register(ctx context.Context, usuario, senha string) (models.User, error) {
	if usuario == "" || senha == "" {
		return models.User{}, ErrMissingFields
	}

	// Pre-check for a friendlier conflict path; the unique index still
	// backstops concurrent registrations.
	err := s.c.FindOne(ctx, bson.M{"usuario": usuario}).Err()
	if err == nil {
		return models.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcryptCost)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		ID:      primitive.NewObjectID(),
		Usuario: usuario,
		Senha:   string(hash),
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, err
	}
	return u, nil
}

// Authenticate looks up a user by exact username and verifies the
// password against the stored hash.
func (s *Store) Authenticate(ctx context.Context, usuario, senha string) (models.User, error) {
	if usuario == "" || senha == "" {
		return models.User{}, ErrMissingFields
	}

	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"usuario": usuario}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Senha), []byte(senha)); err != nil {
		return models.User{}, ErrBadPassword
	}
	return u, nil
}

// GetByID returns a user without the password hash.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	proj := options.FindOne().SetProjection(bson.M{"senha": 0})

	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}, proj).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}
