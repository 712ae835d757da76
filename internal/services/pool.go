package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/babylonlabs-io/vesting-engine/internal/db"
	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"github.com/babylonlabs-io/vesting-engine/internal/derive"
	"github.com/babylonlabs-io/vesting-engine/internal/types"
	"github.com/rs/zerolog/log"
)

// CreatePool registers a pool owned by owner. The pool and treasury ids are
// derived from name, so a name can only be used once.
func (s *Service) CreatePool(
	ctx context.Context, owner, asset, name string, decimals uint8,
) (*model.PoolDocument, *types.Error) {
	if owner == "" {
		return nil, types.NewCodeError(types.InvalidArgument, "owner must be set")
	}
	if asset == "" {
		return nil, types.NewCodeError(types.InvalidArgument, "asset must be set")
	}
	if err := derive.ValidatePoolName(name); err != nil {
		return nil, types.NewError(http.StatusBadRequest, types.InvalidArgument, err)
	}

	poolAddr := derive.PoolAddress(name)
	treasury := derive.TreasuryAddress(name)
	pool := &model.PoolDocument{
		ID:           poolAddr.ID,
		Owner:        owner,
		Asset:        asset,
		Decimals:     decimals,
		Treasury:     treasury.ID,
		Name:         name,
		TreasuryBump: treasury.Bump,
		Bump:         poolAddr.Bump,
		CreatedAt:    s.clock.Now().Unix(),
	}

	if err := s.db.SaveNewPool(ctx, pool); err != nil {
		if db.IsDuplicateKeyError(err) {
			return nil, types.NewCodeError(types.AlreadyExists, "pool %q already exists", name)
		}
		return nil, types.NewError(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Errorf("failed to save new pool: %w", err),
		)
	}

	log.Ctx(ctx).Info().
		Str("pool_id", pool.ID).
		Str("owner", owner).
		Str("asset", asset).
		Msg("Pool created")

	s.emitEvent(ctx, types.Event{
		Type:      types.EventPoolCreated,
		PoolID:    pool.ID,
		Owner:     owner,
		Asset:     asset,
		Timestamp: pool.CreatedAt,
	})

	return pool, nil
}

func (s *Service) GetPool(ctx context.Context, poolID string) (*model.PoolDocument, *types.Error) {
	pool, err := s.db.GetPoolByID(ctx, poolID)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewCodeError(types.NotFound, "pool %s not found", poolID)
		}
		return nil, types.NewError(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Errorf("failed to get pool %s: %w", poolID, err),
		)
	}
	return pool, nil
}
