// Package model contains the bson-tagged persistence models stored in
// the document database. Mapping between these models and the pure
// domain entities happens inside the repositories.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserModel mirrors a document in the 'users' collection. Email is kept
// unique among live documents by a partial index created at startup.
type UserModel struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	Name                  string             `bson:"name,omitempty"`
	Email                 string             `bson:"email"`
	Password              string             `bson:"password"`
	Age                   int                `bson:"age,omitempty"`
	City                  string             `bson:"city,omitempty"`
	Interests             string             `bson:"interests,omitempty"`
	AllowsReceivingOffers bool               `bson:"allowsReceivingOffers"`
	Role                  string             `bson:"role,omitempty"`
	Deleted               bool               `bson:"deleted"`
	DeletedAt             *time.Time         `bson:"deletedAt,omitempty"`
	CreatedAt             time.Time          `bson:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt"`
}

// UserCollection is the collection name for user documents.
const UserCollection = "users"
