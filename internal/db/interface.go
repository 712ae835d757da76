package db

import (
	"context"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error

	// SaveNewPool inserts the pool, DuplicateKeyError if the id is taken
	SaveNewPool(ctx context.Context, pool *model.PoolDocument) error
	GetPoolByID(ctx context.Context, poolID string) (*model.PoolDocument, error)
	GetAllPools(ctx context.Context) ([]*model.PoolDocument, error)

	// SaveNewGrant inserts the grant, DuplicateKeyError if the id is taken
	SaveNewGrant(ctx context.Context, grant *model.GrantDocument) error
	GetGrantByID(ctx context.Context, grantID string) (*model.GrantDocument, error)
	GetGrantsByPoolID(ctx context.Context, poolID string) ([]*model.GrantDocument, error)
	// UpdateGrantWithdrawn sets total_withdrawn to newWithdrawn only if it is
	// still previousWithdrawn and newWithdrawn does not exceed total_amount.
	// Returns StaleWriteError otherwise.
	UpdateGrantWithdrawn(
		ctx context.Context, grantID string, previousWithdrawn, newWithdrawn uint64, updatedAt int64,
	) error

	// AcquireGrantClaimLock takes the claim lease of the grant for holder
	// until expiresAt. A lease that expired before now can be taken over.
	// Returns LockHeldError if another holder owns a live lease.
	AcquireGrantClaimLock(ctx context.Context, grantID, holder string, now, expiresAt time.Time) error
	// ReleaseGrantClaimLock drops the lease if it still belongs to holder
	ReleaseGrantClaimLock(ctx context.Context, grantID, holder string) error
}
