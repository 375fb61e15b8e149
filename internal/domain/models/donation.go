// internal/domain/models/donation.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation is one intake submission: who is asking, what they need, and an
// optional proof-of-residence image reference.
//
// Field names on the wire (bson and json) are kept identical to the
// original intake form, so existing front ends keep working. The item
// flags (KitHigiene, Agua, …) are free-text strings, not booleans; the
// form sends values like "sim"/"não" and we store them verbatim.
type Donation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	NumeroPessoas int                `bson:"numeroPessoas" json:"numeroPessoas"` // household size
	KitHigiene    string             `bson:"kitHigiene" json:"kitHigiene"`
	Agua          string             `bson:"agua" json:"agua"`
	Alimentos     string             `bson:"alimentos" json:"alimentos"`
	Roupas        string             `bson:"roupas" json:"roupas"`
	ProdLimp      string             `bson:"prodLimp" json:"prodLimp"`
	Nome          string             `bson:"nome" json:"nome"`
	Whatsapp      int64              `bson:"whatsapp" json:"whatsapp"`
	EndAfe        string             `bson:"endAfe" json:"endAfe"` // affected (previous) address
	EndAtu        string             `bson:"endAtu" json:"endAtu"` // current address
	ImageURL      string             `bson:"image_url" json:"image_url"`
}

// DonationUpdate carries a partial update for a pending donation. Only
// non-nil fields are applied, so "field absent" and "field set to empty"
// stay distinguishable.
type DonationUpdate struct {
	NumeroPessoas *int    `json:"numeroPessoas,omitempty"`
	KitHigiene    *string `json:"kitHigiene,omitempty"`
	Agua          *string `json:"agua,omitempty"`
	Alimentos     *string `json:"alimentos,omitempty"`
	Roupas        *string `json:"roupas,omitempty"`
	ProdLimp      *string `json:"prodLimp,omitempty"`
	Nome          *string `json:"nome,omitempty"`
	Whatsapp      *int64  `json:"whatsapp,omitempty"`
	EndAfe        *string `json:"endAfe,omitempty"`
	EndAtu        *string `json:"endAtu,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
}
