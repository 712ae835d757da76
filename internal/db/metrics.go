package db

import (
	"context"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"github.com/babylonlabs-io/vesting-engine/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveNewPool(ctx context.Context, pool *model.PoolDocument) error {
	return d.run("SaveNewPool", func() error {
		return d.db.SaveNewPool(ctx, pool)
	})
}

func (d *DbWithMetrics) GetPoolByID(ctx context.Context, poolID string) (result *model.PoolDocument, err error) {
	//nolint:errcheck
	d.run("GetPoolByID", func() error {
		result, err = d.db.GetPoolByID(ctx, poolID)
		return err
	})
	return
}

func (d *DbWithMetrics) GetAllPools(ctx context.Context) (result []*model.PoolDocument, err error) {
	//nolint:errcheck
	d.run("GetAllPools", func() error {
		result, err = d.db.GetAllPools(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveNewGrant(ctx context.Context, grant *model.GrantDocument) error {
	return d.run("SaveNewGrant", func() error {
		return d.db.SaveNewGrant(ctx, grant)
	})
}

func (d *DbWithMetrics) GetGrantByID(ctx context.Context, grantID string) (result *model.GrantDocument, err error) {
	//nolint:errcheck
	d.run("GetGrantByID", func() error {
		result, err = d.db.GetGrantByID(ctx, grantID)
		return err
	})
	return
}

func (d *DbWithMetrics) GetGrantsByPoolID(ctx context.Context, poolID string) (result []*model.GrantDocument, err error) {
	//nolint:errcheck
	d.run("GetGrantsByPoolID", func() error {
		result, err = d.db.GetGrantsByPoolID(ctx, poolID)
		return err
	})
	return
}

func (d *DbWithMetrics) UpdateGrantWithdrawn(ctx context.Context, grantID string, previousWithdrawn, newWithdrawn uint64, updatedAt int64) error {
	return d.run("UpdateGrantWithdrawn", func() error {
		return d.db.UpdateGrantWithdrawn(ctx, grantID, previousWithdrawn, newWithdrawn, updatedAt)
	})
}

func (d *DbWithMetrics) AcquireGrantClaimLock(ctx context.Context, grantID, holder string, now, expiresAt time.Time) error {
	return d.run("AcquireGrantClaimLock", func() error {
		return d.db.AcquireGrantClaimLock(ctx, grantID, holder, now, expiresAt)
	})
}

func (d *DbWithMetrics) ReleaseGrantClaimLock(ctx context.Context, grantID, holder string) error {
	return d.run("ReleaseGrantClaimLock", func() error {
		return d.db.ReleaseGrantClaimLock(ctx, grantID, holder)
	})
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
