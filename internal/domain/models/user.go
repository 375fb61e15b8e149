// internal/domain/models/user.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a staff credential. Usuario is unique (case-sensitive exact
// match, enforced by a unique index on the users collection). Senha holds
// the bcrypt hash and is never serialized to clients.
type User struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Usuario string             `bson:"usuario" json:"usuario"`
	Senha   string             `bson:"senha,omitempty" json:"-"`
}
