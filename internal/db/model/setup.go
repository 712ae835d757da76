package model

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type index struct {
	Indexes map[string]int
	Unique  bool
	// ExpireAfter turns the index into a ttl index when set
	ExpireAfter *int32
}

var collections = map[string][]index{
	PoolCollection: {
		{Indexes: map[string]int{"owner": 1}},
	},
	GrantCollection: {
		{Indexes: map[string]int{"pool_id": 1}},
		{Indexes: map[string]int{"beneficiary": 1}},
	},
	GrantClaimLockCollection: {
		{Indexes: map[string]int{"expires_at": 1}, ExpireAfter: ptr[int32](0)},
	},
}

func ptr[T any](v T) *T {
	return &v
}

// Setup creates missing collections and indexes
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to disconnect from mongo")
		}
	}()

	database := client.Database(cfg.DbName)

	setupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	existing, err := database.ListCollectionNames(setupCtx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for name, indexes := range collections {
		if !slices.Contains(existing, name) {
			if err := database.CreateCollection(setupCtx, name); err != nil {
				return fmt.Errorf("failed to create collection %s: %w", name, err)
			}
			log.Ctx(ctx).Debug().Str("collection", name).Msg("collection created")
		}

		for _, idx := range indexes {
			if err := createIndex(setupCtx, database, name, idx); err != nil {
				return err
			}
		}
	}

	log.Ctx(ctx).Info().Msg("collections and indexes created successfully")
	return nil
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	keys := bson.D{}
	for field, order := range idx.Indexes {
		keys = append(keys, bson.E{Key: field, Value: order})
	}

	opts := options.Index().SetUnique(idx.Unique)
	if idx.ExpireAfter != nil {
		opts.SetExpireAfterSeconds(*idx.ExpireAfter)
	}

	_, err := database.Collection(collectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: opts,
	})
	if err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
	}

	return nil
}
