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

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates the document-store backed user repository.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{collection: db.Collection(model.UserCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()
	doc := userToModel(user)
	doc.ID = primitive.NewObjectID()
	doc.Deleted = false
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if isDuplicateKeyViolation(err) {
			return repository.ErrDuplicateEmail
		}

		// Unexpected driver failures surface as a generic database error.
		return domainerrors.NewDatabaseExecuteError(err, "failed to insert user")
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrUserNotFound
	}

	return r.findOne(ctx, liveFilter(bson.M{"_id": oid}))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, liveFilter(bson.M{"email": email}))
}

func (r *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	return r.findMany(ctx, liveFilter(nil))
}

func (r *userRepository) FindTargets(ctx context.Context, filter repository.TargetFilter) ([]*entity.User, error) {
	query := liveFilter(bson.M{
		"allowsReceivingOffers": true,
		"role":                  bson.M{"$ne": string(entity.RoleAdmin)},
	})
	if filter.City != "" {
		query["city"] = filter.City
	}
	if len(filter.Interests) > 0 {
		query["interests"] = bson.M{"$in": filter.Interests}
	}

	return r.findMany(ctx, query)
}

func (r *userRepository) Replace(ctx context.Context, user *entity.User) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, repository.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":                  user.Name,
		"email":                 user.Email,
		"password":              user.PasswordHash,
		"age":                   user.Age,
		"city":                  user.City,
		"interests":             user.Interests,
		"allowsReceivingOffers": user.AllowsReceivingOffers,
		"role":                  string(user.Role),
		"updatedAt":             time.Now().UTC(),
	}}

	return r.findOneAndUpdate(ctx, liveFilter(bson.M{"_id": oid}), update)
}

func (r *userRepository) Patch(ctx context.Context, id string, patch repository.UserPatch) (*entity.User, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrUserNotFound
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
	if patch.Age != nil {
		set["age"] = *patch.Age
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}
	if patch.Interests != nil {
		set["interests"] = *patch.Interests
	}
	if patch.AllowsReceivingOffers != nil {
		set["allowsReceivingOffers"] = *patch.AllowsReceivingOffers
	}
	if patch.Role != nil {
		set["role"] = string(*patch.Role)
	}

	return r.findOneAndUpdate(ctx, liveFilter(bson.M{"_id": oid}), bson.M{"$set": set})
}

func (r *userRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrUserNotFound
	}

	now := time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, liveFilter(bson.M{"_id": oid}), bson.M{"$set": bson.M{
		"deleted":   true,
		"deletedAt": now,
		"updatedAt": now,
	}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to soft delete user")
	}
	if result.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) HardDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrUserNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}
	if result.DeletedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc model.UserModel
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to query user")
	}

	return userToEntity(&doc), nil
}

func (r *userRepository) findMany(ctx context.Context, filter bson.M) ([]*entity.User, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to query users")
	}
	defer cursor.Close(ctx)

	users := make([]*entity.User, 0)
	for cursor.Next(ctx) {
		var doc model.UserModel
		if err := cursor.Decode(&doc); err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode user")
		}
		users = append(users, userToEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to iterate users")
	}

	return users, nil
}

func (r *userRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*entity.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc model.UserModel
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, repository.ErrUserNotFound
		case isDuplicateKeyViolation(err):
			return nil, repository.ErrDuplicateEmail
		default:
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update user")
		}
	}

	return userToEntity(&doc), nil
}
