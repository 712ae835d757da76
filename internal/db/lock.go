package db

import (
	"context"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (db *Database) AcquireGrantClaimLock(
	ctx context.Context, grantID, holder string, now, expiresAt time.Time,
) error {
	collection := db.collection(model.GrantClaimLockCollection)

	lockDoc := &model.GrantClaimLockDocument{
		GrantID:   grantID,
		Holder:    holder,
		ExpiresAt: expiresAt,
	}
	_, err := collection.InsertOne(ctx, lockDoc)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}

	// the ttl monitor removes expired leases only once a minute, so take over
	// an expired one explicitly. The filter makes it a single winner update.
	filter := bson.M{
		"_id":        grantID,
		"expires_at": bson.M{"$lte": now},
	}
	update := bson.M{
		"$set": bson.M{
			"holder":     holder,
			"expires_at": expiresAt,
		},
	}
	res, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &LockHeldError{
			Key:     grantID,
			Message: "grant claim lock is held by another claim",
		}
	}

	return nil
}

func (db *Database) ReleaseGrantClaimLock(ctx context.Context, grantID, holder string) error {
	res, err := db.collection(model.GrantClaimLockCollection).
		DeleteOne(ctx, bson.M{"_id": grantID, "holder": holder})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return &NotFoundError{
			Key:     grantID,
			Message: "grant claim lock not found for holder",
		}
	}

	return nil
}
