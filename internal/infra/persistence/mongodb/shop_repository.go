package mongodb

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/errors"
	"bazaar/internal/infra/persistence/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type shopRepository struct {
	collection *mongo.Collection
}

// NewShopRepository creates the document-store backed shop repository.
func NewShopRepository(db *mongo.Database) repository.ShopRepository {
	return &shopRepository{collection: db.Collection(model.ShopCollection)}
}

func (r *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	now := time.Now().UTC()
	doc := shopToModel(shop)
	doc.ID = primitive.NewObjectID()
	doc.WebShop = nil // storefronts are only attached through CreateWebShop
	doc.Deleted = false
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if isDuplicateKeyViolation(err) {
			return r.duplicateError(err)
		}

		// Unexpected driver failures surface as a generic database error.
		return domainerrors.NewDatabaseExecuteError(err, "failed to insert shop")
	}

	shop.ID = doc.ID.Hex()
	shop.WebShop = nil
	shop.CreatedAt = now
	shop.UpdatedAt = now

	return nil
}

func (r *shopRepository) FindByID(ctx context.Context, id string) (*entity.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrShopNotFound
	}

	return r.findOne(ctx, liveFilter(bson.M{"_id": oid}))
}

func (r *shopRepository) FindByEmail(ctx context.Context, email string) (*entity.Shop, error) {
	return r.findOne(ctx, liveFilter(bson.M{"email": email}))
}

func (r *shopRepository) FindByName(ctx context.Context, name string) (*entity.Shop, error) {
	return r.findOne(ctx, liveFilter(bson.M{"name": name}))
}

func (r *shopRepository) FindAll(ctx context.Context) ([]*entity.Shop, error) {
	return r.findMany(ctx, liveFilter(nil), nil)
}

func (r *shopRepository) Search(ctx context.Context, search repository.ShopSearch) ([]*entity.Shop, error) {
	filter := liveFilter(nil)
	if search.City != "" {
		filter["city"] = search.City
	}
	if search.Activity != "" {
		filter["activity"] = search.Activity
	}

	var opts *options.FindOptions
	if search.SortByScore {
		opts = options.Find().SetSort(bson.D{{Key: "webShop.scoring", Value: -1}})
	}

	return r.findMany(ctx, filter, opts)
}

func (r *shopRepository) Replace(ctx context.Context, shop *entity.Shop) (*entity.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(shop.ID)
	if err != nil {
		return nil, repository.ErrShopNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":      shop.Name,
		"password":  shop.PasswordHash,
		"cif":       shop.CIF,
		"city":      shop.City,
		"email":     shop.Email,
		"phone":     shop.Phone,
		"activity":  shop.Activity,
		"updatedAt": time.Now().UTC(),
	}}

	return r.findOneAndUpdate(ctx, liveFilter(bson.M{"_id": oid}), update)
}

func (r *shopRepository) Patch(ctx context.Context, id string, patch repository.ShopPatch) (*entity.Shop, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrShopNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if patch.CIF != nil {
		set["cif"] = *patch.CIF
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Activity != nil {
		set["activity"] = *patch.Activity
	}

	return r.findOneAndUpdate(ctx, liveFilter(bson.M{"_id": oid}), bson.M{"$set": set})
}

func (r *shopRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrShopNotFound
	}

	now := time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, liveFilter(bson.M{"_id": oid}), bson.M{"$set": bson.M{
		"deleted":   true,
		"deletedAt": now,
		"updatedAt": now,
	}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to soft delete shop")
	}
	if result.MatchedCount == 0 {
		return repository.ErrShopNotFound
	}

	return nil
}

func (r *shopRepository) HardDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrShopNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete shop")
	}
	if result.DeletedCount == 0 {
		return repository.ErrShopNotFound
	}

	return nil
}

func (r *shopRepository) CreateWebShop(ctx context.Context, shopID string, webShop *entity.WebShop) (*entity.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return nil, repository.ErrShopNotFound
	}

	now := time.Now().UTC()
	doc := webShopToModel(webShop)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	// The nil match also covers documents without the field, so the
	// update succeeds exactly when no storefront is attached yet.
	filter := liveFilter(bson.M{"_id": oid, "webShop": nil})
	update := bson.M{"$set": bson.M{"webShop": doc, "updatedAt": now}}

	shop, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, repository.ErrShopNotFound) {
		return nil, r.resolveStorefrontMiss(ctx, oid, repository.ErrWebShopExists)
	}

	return shop, err
}

func (r *shopRepository) ReplaceWebShop(ctx context.Context, shopID string, webShop *entity.WebShop) (*entity.Shop, error) {
	now := time.Now().UTC()
	doc := webShopToModel(webShop)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	return r.updateStorefront(ctx, shopID, bson.M{"$set": bson.M{"webShop": doc, "updatedAt": now}})
}

func (r *shopRepository) PatchWebShop(ctx context.Context, shopID string, patch repository.WebShopPatch) (*entity.Shop, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, shopID)
	}

	now := time.Now().UTC()
	set := bson.M{"updatedAt": now, "webShop.updatedAt": now}
	if patch.Title != nil {
		set["webShop.title"] = *patch.Title
	}
	if patch.Summary != nil {
		set["webShop.summary"] = *patch.Summary
	}
	if patch.Texts != nil {
		set["webShop.texts"] = *patch.Texts
	}
	if patch.Photos != nil {
		set["webShop.photos"] = *patch.Photos
	}

	return r.updateStorefront(ctx, shopID, bson.M{"$set": set})
}

func (r *shopRepository) ClearWebShop(ctx context.Context, shopID string) (*entity.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return nil, repository.ErrShopNotFound
	}

	update := bson.M{
		"$unset": bson.M{"webShop": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}

	return r.findOneAndUpdate(ctx, liveFilter(bson.M{"_id": oid}), update)
}

func (r *shopRepository) PushPhoto(ctx context.Context, shopID string, photo string) (*entity.Shop, error) {
	now := time.Now().UTC()

	return r.updateStorefront(ctx, shopID, bson.M{
		"$push": bson.M{"webShop.photos": photo},
		"$set":  bson.M{"updatedAt": now, "webShop.updatedAt": now},
	})
}

func (r *shopRepository) PushText(ctx context.Context, shopID string, text string) (*entity.Shop, error) {
	now := time.Now().UTC()

	return r.updateStorefront(ctx, shopID, bson.M{
		"$push": bson.M{"webShop.texts": text},
		"$set":  bson.M{"updatedAt": now, "webShop.updatedAt": now},
	})
}

func (r *shopRepository) AddReview(ctx context.Context, shopID string, review *entity.Review) (*entity.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return nil, repository.ErrShopNotFound
	}

	now := time.Now().UTC()
	doc := model.ReviewModel{
		ID:        primitive.NewObjectID(),
		Score:     review.Score,
		Text:      review.Text,
		CreatedAt: now,
	}

	// Appending and recomputing the derived fields happens in a single
	// store-side pipeline update: the second $set stage sees the result
	// of the first, so scoring and numRatings always reflect the full
	// review sequence even under concurrent appends.
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"webShop.reviews": bson.M{"$concatArrays": bson.A{
				bson.M{"$ifNull": bson.A{"$webShop.reviews", bson.A{}}},
				bson.A{doc},
			}},
		}}},
		{{Key: "$set", Value: bson.M{
			"webShop.numRatings": bson.M{"$size": "$webShop.reviews"},
			"webShop.scoring":    bson.M{"$avg": "$webShop.reviews.score"},
			"webShop.updatedAt":  now,
			"updatedAt":          now,
		}}},
	}

	filter := liveFilter(bson.M{"_id": oid, "webShop": bson.M{"$ne": nil}})
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.ShopModel
	if err := r.collection.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.resolveStorefrontMiss(ctx, oid, repository.ErrWebShopNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to add review")
	}

	review.ID = doc.ID.Hex()
	review.CreatedAt = now

	return shopToEntity(&updated), nil
}

// updateStorefront applies an update that requires an attached storefront.
func (r *shopRepository) updateStorefront(ctx context.Context, shopID string, update bson.M) (*entity.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return nil, repository.ErrShopNotFound
	}

	filter := liveFilter(bson.M{"_id": oid, "webShop": bson.M{"$ne": nil}})

	shop, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, repository.ErrShopNotFound) {
		return nil, r.resolveStorefrontMiss(ctx, oid, repository.ErrWebShopNotFound)
	}

	return shop, err
}

// resolveStorefrontMiss decides why a storefront-conditional update matched
// nothing: either the shop itself is gone, or its storefront state blocked
// the update, in which case storefrontErr applies.
func (r *shopRepository) resolveStorefrontMiss(ctx context.Context, oid primitive.ObjectID, storefrontErr error) error {
	opts := options.FindOne().SetProjection(bson.M{"webShop": 1})

	var doc model.ShopModel
	if err := r.collection.FindOne(ctx, liveFilter(bson.M{"_id": oid}), opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrShopNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to query shop")
	}

	return storefrontErr
}

// duplicateError picks the conflict sentinel matching the violated index.
func (r *shopRepository) duplicateError(err error) error {
	if duplicateKeyOn(err, "cif") {
		return repository.ErrDuplicateCIF
	}

	return repository.ErrDuplicateEmail
}

func (r *shopRepository) findOne(ctx context.Context, filter bson.M) (*entity.Shop, error) {
	var doc model.ShopModel
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrShopNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to query shop")
	}

	return shopToEntity(&doc), nil
}

func (r *shopRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Shop, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to query shops")
	}
	defer cursor.Close(ctx)

	shops := make([]*entity.Shop, 0)
	for cursor.Next(ctx) {
		var doc model.ShopModel
		if err := cursor.Decode(&doc); err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode shop")
		}
		shops = append(shops, shopToEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to iterate shops")
	}

	return shops, nil
}

func (r *shopRepository) findOneAndUpdate(ctx context.Context, filter bson.M, update any) (*entity.Shop, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc model.ShopModel
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, repository.ErrShopNotFound
		case isDuplicateKeyViolation(err):
			return nil, r.duplicateError(err)
		default:
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update shop")
		}
	}

	return shopToEntity(&doc), nil
}
