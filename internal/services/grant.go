package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/babylonlabs-io/vesting-engine/internal/db"
	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"github.com/babylonlabs-io/vesting-engine/internal/derive"
	"github.com/babylonlabs-io/vesting-engine/internal/types"
	"github.com/babylonlabs-io/vesting-engine/internal/vesting"
	"github.com/rs/zerolog/log"
)

type CreateGrantRequest struct {
	PoolID      string
	Beneficiary string
	StartTime   int64
	EndTime     int64
	CliffTime   int64
	TotalAmount uint64
}

// GrantStatus is a read only view of a grant at a given time
type GrantStatus struct {
	Grant     *model.GrantDocument
	State     types.GrantState
	Vested    uint64
	Claimable uint64
	// Now is the unix time the status was computed at
	Now int64
}

// CreateGrant lets the owner of a pool allocate a vesting schedule to a
// beneficiary. There is at most one grant per beneficiary and pool.
func (s *Service) CreateGrant(
	ctx context.Context, caller string, req CreateGrantRequest,
) (*model.GrantDocument, *types.Error) {
	pool, err := s.db.GetPoolByID(ctx, req.PoolID)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewCodeError(types.InvalidPool, "pool %s does not exist", req.PoolID)
		}
		return nil, types.NewError(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Errorf("failed to get pool %s: %w", req.PoolID, err),
		)
	}

	if caller != pool.Owner {
		return nil, types.NewCodeError(types.PermissionDenied, "only the pool owner can create grants")
	}

	if req.Beneficiary == "" {
		return nil, types.NewCodeError(types.InvalidArgument, "beneficiary must be set")
	}

	schedule := vesting.Schedule{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CliffTime:   req.CliffTime,
		TotalAmount: req.TotalAmount,
	}
	if err := schedule.Validate(); err != nil {
		if errors.Is(err, vesting.ErrInvalidVestingPeriod) {
			return nil, types.NewError(http.StatusUnprocessableEntity, types.InvalidVestingPeriod, err)
		}
		return nil, types.NewError(http.StatusBadRequest, types.InvalidArgument, err)
	}
	// amounts are persisted as signed 64 bit integers
	if req.TotalAmount > math.MaxInt64 {
		return nil, types.NewCodeError(types.InvalidArgument, "total amount %d is out of range", req.TotalAmount)
	}

	now := s.clock.Now().Unix()
	addr := derive.GrantAddress(req.Beneficiary, pool.ID)
	grant := &model.GrantDocument{
		ID:             addr.ID,
		Beneficiary:    req.Beneficiary,
		PoolID:         pool.ID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		CliffTime:      req.CliffTime,
		TotalAmount:    req.TotalAmount,
		TotalWithdrawn: 0,
		Bump:           addr.Bump,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.db.SaveNewGrant(ctx, grant); err != nil {
		if db.IsDuplicateKeyError(err) {
			return nil, types.NewCodeError(
				types.AlreadyExists, "grant for %s in pool %s already exists", req.Beneficiary, pool.ID,
			)
		}
		return nil, types.NewError(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Errorf("failed to save new grant: %w", err),
		)
	}

	log.Ctx(ctx).Info().
		Str("grant_id", grant.ID).
		Str("pool_id", pool.ID).
		Str("beneficiary", grant.Beneficiary).
		Uint64("total_amount", grant.TotalAmount).
		Msg("Grant created")

	s.emitEvent(ctx, types.Event{
		Type:        types.EventGrantCreated,
		PoolID:      pool.ID,
		GrantID:     grant.ID,
		Owner:       pool.Owner,
		Beneficiary: grant.Beneficiary,
		Asset:       pool.Asset,
		Amount:      grant.TotalAmount,
		Timestamp:   now,
	})

	return grant, nil
}

func (s *Service) GetGrant(ctx context.Context, grantID string) (*model.GrantDocument, *types.Error) {
	grant, err := s.db.GetGrantByID(ctx, grantID)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewCodeError(types.NotFound, "grant %s not found", grantID)
		}
		return nil, types.NewError(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Errorf("failed to get grant %s: %w", grantID, err),
		)
	}
	return grant, nil
}

func (s *Service) ListGrantsByPool(ctx context.Context, poolID string) ([]*model.GrantDocument, *types.Error) {
	if _, err := s.GetPool(ctx, poolID); err != nil {
		return nil, err
	}

	grants, err := s.db.GetGrantsByPoolID(ctx, poolID)
	if err != nil {
		return nil, types.NewError(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Errorf("failed to list grants of pool %s: %w", poolID, err),
		)
	}
	return grants, nil
}

// GrantStatus reports what the grant would yield if claimed now, nothing is
// mutated.
func (s *Service) GrantStatus(ctx context.Context, grantID string) (*GrantStatus, *types.Error) {
	grant, err := s.GetGrant(ctx, grantID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().Unix()
	schedule := grant.Schedule()

	vested, vestErr := schedule.Vested(now)
	if vestErr != nil {
		return nil, vestingError(vestErr)
	}

	var claimable uint64
	if vested > grant.TotalWithdrawn {
		claimable = vested - grant.TotalWithdrawn
	}

	return &GrantStatus{
		Grant:     grant,
		State:     schedule.State(grant.TotalWithdrawn, now),
		Vested:    vested,
		Claimable: claimable,
		Now:       now,
	}, nil
}
