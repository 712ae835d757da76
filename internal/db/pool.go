package db

import (
	"context"
	"errors"

	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) SaveNewPool(ctx context.Context, pool *model.PoolDocument) error {
	if pool == nil {
		return errors.New("nil pool document")
	}

	_, err := db.collection(model.PoolCollection).InsertOne(ctx, pool)
	if err != nil {
		return duplicateKeyErr(err, pool.ID, "pool already exists")
	}
	return nil
}

func (db *Database) GetPoolByID(ctx context.Context, poolID string) (*model.PoolDocument, error) {
	var pool model.PoolDocument
	err := db.collection(model.PoolCollection).
		FindOne(ctx, bson.M{"_id": poolID}).
		Decode(&pool)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     poolID,
				Message: "pool not found",
			}
		}
		return nil, err
	}

	return &pool, nil
}

func (db *Database) GetAllPools(ctx context.Context) ([]*model.PoolDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := db.collection(model.PoolCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pools []*model.PoolDocument
	if err := cursor.All(ctx, &pools); err != nil {
		return nil, err
	}

	return pools, nil
}
