// Package mongodb contains the concrete implementation of the persistence
// layer on top of the official MongoDB driver.
package mongodb

import (
	"context"
	"log/slog"
	"time"

	"bazaar/config"
	"bazaar/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const defaultConnectTimeout = 10 * time.Second

// Params defines the dependencies for the database handle, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New connects to the document store and returns the database handle.
// Unique indexes are ensured on startup; the client disconnects on stop.
func New(params Params) (*mongo.Database, error) {
	cfg := params.Config.Mongo
	if cfg == nil || cfg.URI == "" || cfg.Database == "" {
		return nil, errors.New("mongo uri and database must be provided")
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo")
	}

	db := client.Database(cfg.Database)

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx, nil); err != nil {
				return errors.Wrap(err, "failed to ping mongo")
			}
			if err := EnsureIndexes(ctx, db); err != nil {
				return errors.Wrap(err, "failed to ensure mongo indexes")
			}
			params.Logger.Info("Connected to document store", slog.String("database", cfg.Database))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return errors.Wrap(client.Disconnect(ctx), "failed to disconnect from mongo")
		},
	})

	return db, nil
}

// EnsureIndexes creates the unique constraints of the data model. Email
// and cif are unique among live documents only, so re-registering after
// a soft delete stays possible.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	liveOnly := bson.D{{Key: "deleted", Value: bson.D{{Key: "$eq", Value: false}}}}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(liveOnly),
		},
		{Keys: bson.D{{Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "interests", Value: 1}}},
	}
	if _, err := db.Collection(model.UserCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return errors.Wrap(err, "failed to create user indexes")
	}

	shopIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cif", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(liveOnly),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(liveOnly),
		},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "activity", Value: 1}}},
	}
	if _, err := db.Collection(model.ShopCollection).Indexes().CreateMany(ctx, shopIndexes); err != nil {
		return errors.Wrap(err, "failed to create shop indexes")
	}

	return nil
}

// liveFilter returns a filter matching only documents that are not soft-deleted.
func liveFilter(extra bson.M) bson.M {
	filter := bson.M{"deleted": bson.M{"$ne": true}}
	for key, value := range extra {
		filter[key] = value
	}

	return filter
}
