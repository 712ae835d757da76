// Package memdb keeps every document in process memory. It backs local runs
// and the service tests, it is not durable.
package memdb

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/db"
	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
)

type lease struct {
	holder    string
	expiresAt time.Time
}

type Database struct {
	mu     sync.RWMutex
	pools  map[string]model.PoolDocument
	grants map[string]model.GrantDocument
	locks  map[string]lease
}

func New() *Database {
	return &Database{
		pools:  make(map[string]model.PoolDocument),
		grants: make(map[string]model.GrantDocument),
		locks:  make(map[string]lease),
	}
}

var _ db.DbInterface = (*Database)(nil)

func (d *Database) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (d *Database) SaveNewPool(_ context.Context, pool *model.PoolDocument) error {
	if pool == nil {
		return errors.New("nil pool document")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.pools[pool.ID]; ok {
		return &db.DuplicateKeyError{
			Key:     pool.ID,
			Message: "pool already exists",
		}
	}
	d.pools[pool.ID] = *pool
	return nil
}

func (d *Database) GetPoolByID(_ context.Context, poolID string) (*model.PoolDocument, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	pool, ok := d.pools[poolID]
	if !ok {
		return nil, &db.NotFoundError{
			Key:     poolID,
			Message: "pool not found",
		}
	}
	return &pool, nil
}

func (d *Database) GetAllPools(_ context.Context) ([]*model.PoolDocument, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	pools := make([]*model.PoolDocument, 0, len(d.pools))
	for _, pool := range d.pools {
		pools = append(pools, &pool)
	}
	sort.Slice(pools, func(i, j int) bool {
		return pools[i].ID < pools[j].ID
	})
	return pools, nil
}

func (d *Database) SaveNewGrant(_ context.Context, grant *model.GrantDocument) error {
	if grant == nil {
		return errors.New("nil grant document")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.grants[grant.ID]; ok {
		return &db.DuplicateKeyError{
			Key:     grant.ID,
			Message: "grant already exists",
		}
	}
	d.grants[grant.ID] = *grant
	return nil
}

func (d *Database) GetGrantByID(_ context.Context, grantID string) (*model.GrantDocument, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	grant, ok := d.grants[grantID]
	if !ok {
		return nil, &db.NotFoundError{
			Key:     grantID,
			Message: "grant not found",
		}
	}
	return &grant, nil
}

func (d *Database) GetGrantsByPoolID(_ context.Context, poolID string) ([]*model.GrantDocument, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var grants []*model.GrantDocument
	for _, grant := range d.grants {
		if grant.PoolID == poolID {
			grants = append(grants, &grant)
		}
	}
	sort.Slice(grants, func(i, j int) bool {
		if grants[i].CreatedAt != grants[j].CreatedAt {
			return grants[i].CreatedAt < grants[j].CreatedAt
		}
		return grants[i].ID < grants[j].ID
	})
	return grants, nil
}

func (d *Database) UpdateGrantWithdrawn(
	_ context.Context, grantID string, previousWithdrawn, newWithdrawn uint64, updatedAt int64,
) error {
	if newWithdrawn < previousWithdrawn {
		return errors.New("total withdrawn can not decrease")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	grant, ok := d.grants[grantID]
	if !ok || grant.TotalWithdrawn != previousWithdrawn || newWithdrawn > grant.TotalAmount {
		return &db.StaleWriteError{
			Key:     grantID,
			Message: "grant not found or total withdrawn changed concurrently",
		}
	}

	grant.TotalWithdrawn = newWithdrawn
	grant.UpdatedAt = updatedAt
	d.grants[grantID] = grant
	return nil
}

func (d *Database) AcquireGrantClaimLock(
	_ context.Context, grantID, holder string, now, expiresAt time.Time,
) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if current, ok := d.locks[grantID]; ok && current.expiresAt.After(now) {
		return &db.LockHeldError{
			Key:     grantID,
			Message: "grant claim lock is held by another claim",
		}
	}

	d.locks[grantID] = lease{holder: holder, expiresAt: expiresAt}
	return nil
}

func (d *Database) ReleaseGrantClaimLock(_ context.Context, grantID, holder string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, ok := d.locks[grantID]
	if !ok || current.holder != holder {
		return &db.NotFoundError{
			Key:     grantID,
			Message: "grant claim lock not found for holder",
		}
	}

	delete(d.locks, grantID)
	return nil
}
