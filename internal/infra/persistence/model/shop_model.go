package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShopModel mirrors a document in the 'shops' collection. CIF and email
// are kept unique among live documents by partial indexes created at
// startup. The storefront lives embedded; it is never addressable on
// its own and disappears together with its shop.
type ShopModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Password  string             `bson:"password"`
	CIF       string             `bson:"cif"`
	City      string             `bson:"city"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Activity  string             `bson:"activity"`
	WebShop   *WebShopModel      `bson:"webShop,omitempty"`
	Deleted   bool               `bson:"deleted"`
	DeletedAt *time.Time         `bson:"deletedAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// WebShopModel is the embedded storefront subdocument. Texts, Photos and
// Reviews are always materialized as arrays (never null) so store-side
// array updates can rely on them existing.
type WebShopModel struct {
	Title      string        `bson:"title"`
	Summary    string        `bson:"summary"`
	Texts      []string      `bson:"texts"`
	Photos     []string      `bson:"photos"`
	Scoring    float64       `bson:"scoring"`
	NumRatings int           `bson:"numRatings"`
	Reviews    []ReviewModel `bson:"reviews"`
	CreatedAt  time.Time     `bson:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt"`
}

// ReviewModel is a single embedded review entry.
type ReviewModel struct {
	ID        primitive.ObjectID `bson:"_id"`
	Score     int                `bson:"score"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ShopCollection is the collection name for shop documents.
const ShopCollection = "shops"
