package db

import (
	"context"
	"errors"
	"math"

	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) SaveNewGrant(ctx context.Context, grant *model.GrantDocument) error {
	if grant == nil {
		return errors.New("nil grant document")
	}
	// bson has no unsigned 64 bit type, amounts are stored as int64
	if grant.TotalAmount > math.MaxInt64 {
		return errors.New("total amount exceeds the storable range")
	}

	_, err := db.collection(model.GrantCollection).InsertOne(ctx, grant)
	if err != nil {
		return duplicateKeyErr(err, grant.ID, "grant already exists")
	}
	return nil
}

func (db *Database) GetGrantByID(ctx context.Context, grantID string) (*model.GrantDocument, error) {
	var grant model.GrantDocument
	err := db.collection(model.GrantCollection).
		FindOne(ctx, bson.M{"_id": grantID}).
		Decode(&grant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     grantID,
				Message: "grant not found",
			}
		}
		return nil, err
	}

	return &grant, nil
}

func (db *Database) GetGrantsByPoolID(ctx context.Context, poolID string) ([]*model.GrantDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := db.collection(model.GrantCollection).Find(ctx, bson.M{"pool_id": poolID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grants []*model.GrantDocument
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}

	return grants, nil
}

func (db *Database) UpdateGrantWithdrawn(
	ctx context.Context, grantID string, previousWithdrawn, newWithdrawn uint64, updatedAt int64,
) error {
	if newWithdrawn < previousWithdrawn {
		return errors.New("total withdrawn can not decrease")
	}

	filter := bson.M{
		"_id":             grantID,
		"total_withdrawn": previousWithdrawn,
		"total_amount":    bson.M{"$gte": newWithdrawn},
	}
	update := bson.M{
		"$set": bson.M{
			"total_withdrawn": newWithdrawn,
			"updated_at":      updatedAt,
		},
	}

	res, err := db.collection(model.GrantCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &StaleWriteError{
			Key:     grantID,
			Message: "grant not found or total withdrawn changed concurrently",
		}
	}

	return nil
}
