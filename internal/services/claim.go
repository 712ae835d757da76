package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/babylonlabs-io/vesting-engine/internal/clients/transferclient"
	"github.com/babylonlabs-io/vesting-engine/internal/db"
	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"github.com/babylonlabs-io/vesting-engine/internal/derive"
	"github.com/babylonlabs-io/vesting-engine/internal/observability/metrics"
	"github.com/babylonlabs-io/vesting-engine/internal/types"
	"github.com/babylonlabs-io/vesting-engine/internal/utils"
	"github.com/babylonlabs-io/vesting-engine/internal/vesting"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const claimSuccess = "success"

// Claim transfers everything vested and not yet withdrawn from the pool
// treasury to the beneficiary and returns the transferred amount. Only the
// beneficiary of the grant can claim. On error nothing is persisted.
func (s *Service) Claim(ctx context.Context, poolID, grantID, caller string) (uint64, *types.Error) {
	amount, err := s.claim(ctx, poolID, grantID, caller)

	result := claimSuccess
	if err != nil {
		result = err.ErrorCode.String()
		log.Ctx(ctx).Debug().
			Err(err).
			Str("grant_id", grantID).
			Str("error_code", result).
			Msg("Claim rejected")
	}
	metrics.RecordClaim(result)

	return amount, err
}

func (s *Service) claim(ctx context.Context, poolID, grantID, caller string) (uint64, *types.Error) {
	grant, err := s.GetGrant(ctx, grantID)
	if err != nil {
		return 0, err
	}
	if grant.Beneficiary != caller || grant.PoolID != poolID {
		return 0, types.NewCodeError(types.PermissionDenied, "grant %s does not belong to caller", grantID)
	}
	if grantID != derive.GrantID(caller, poolID) {
		return 0, types.NewCodeError(types.PermissionDenied, "grant %s is not derived from caller and pool", grantID)
	}

	pool, err := s.resolveGrantPool(ctx, grant)
	if err != nil {
		return 0, err
	}

	holder := uuid.NewString()
	if err := s.acquireClaimLock(ctx, grantID, holder); err != nil {
		return 0, err
	}
	defer s.releaseClaimLock(ctx, grantID, holder)

	// withdrawn may have moved between the first read and the lock
	grant, err = s.GetGrant(ctx, grantID)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now().Unix()
	claimable, vestErr := grant.Schedule().Claimable(grant.TotalWithdrawn, now)
	if vestErr != nil {
		return 0, vestingError(vestErr)
	}

	authority, authErr := derive.NewTreasuryAuthority(pool.Name, pool.TreasuryBump, pool.Treasury)
	if authErr != nil {
		return 0, types.NewError(http.StatusBadRequest, types.InvalidPool, authErr)
	}

	// the transfer must be over before the lease can be taken over
	transferCtx, cancel := context.WithTimeout(ctx, s.cfg.ClaimTransferTimeout())
	defer cancel()

	receipt, transferErr := s.transfer.Transfer(transferCtx, transferclient.TransferRequest{
		From:      pool.Treasury,
		To:        derive.BeneficiaryAccount(grant.Beneficiary, pool.Asset),
		Asset:     pool.Asset,
		Amount:    claimable,
		Decimals:  pool.Decimals,
		Authority: authority,
		// one key per ledger position, a replay of the same claim is dropped
		IdempotencyKey: fmt.Sprintf("%s:%d", grant.ID, grant.TotalWithdrawn),
	})
	if transferErr != nil {
		return 0, types.NewError(
			http.StatusBadGateway,
			types.TransferFailed,
			fmt.Errorf("transfer of %d from pool %s failed: %w", claimable, pool.ID, transferErr),
		)
	}

	newWithdrawn, addErr := utils.AddUint64(grant.TotalWithdrawn, claimable)
	if addErr != nil {
		return 0, types.NewError(http.StatusUnprocessableEntity, types.CalculationOverflow, addErr)
	}

	// the transfer is done, the ledger must follow even if the caller went away
	updateCtx := context.WithoutCancel(ctx)
	if err := s.db.UpdateGrantWithdrawn(updateCtx, grant.ID, grant.TotalWithdrawn, newWithdrawn, now); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("grant_id", grant.ID).
			Str("transfer_id", receipt.TransferID).
			Uint64("amount", claimable).
			Uint64("previous_withdrawn", grant.TotalWithdrawn).
			Msg("Transfer confirmed but withdrawn amount could not be recorded")
		return 0, types.NewError(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Errorf("failed to record withdrawal of grant %s: %w", grant.ID, err),
		)
	}

	log.Ctx(ctx).Info().
		Str("grant_id", grant.ID).
		Str("pool_id", pool.ID).
		Str("transfer_id", receipt.TransferID).
		Uint64("amount", claimable).
		Uint64("total_withdrawn", newWithdrawn).
		Msg("Grant claimed")
	metrics.RecordClaimedAmount(pool.Asset, claimable)

	s.emitEvent(ctx, types.Event{
		Type:           types.EventGrantClaimed,
		PoolID:         pool.ID,
		GrantID:        grant.ID,
		Beneficiary:    grant.Beneficiary,
		Asset:          pool.Asset,
		Amount:         claimable,
		TotalWithdrawn: newWithdrawn,
		TransferID:     receipt.TransferID,
		Timestamp:      now,
	})

	return claimable, nil
}

// resolveGrantPool loads the pool of grant and checks it is the pool its
// name derives to
func (s *Service) resolveGrantPool(ctx context.Context, grant *model.GrantDocument) (*model.PoolDocument, *types.Error) {
	pool, err := s.db.GetPoolByID(ctx, grant.PoolID)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewCodeError(types.InvalidPool, "pool %s of grant %s does not exist", grant.PoolID, grant.ID)
		}
		return nil, types.NewError(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Errorf("failed to get pool %s: %w", grant.PoolID, err),
		)
	}

	if pool.ID != grant.PoolID || pool.ID != derive.PoolID(pool.Name) {
		return nil, types.NewCodeError(types.InvalidPool, "pool %s does not match grant %s", pool.ID, grant.ID)
	}

	return pool, nil
}

func (s *Service) acquireClaimLock(ctx context.Context, grantID, holder string) *types.Error {
	engineCfg := s.cfg.Engine

	err := retry.Do(
		func() error {
			now := s.clock.Now()
			return s.db.AcquireGrantClaimLock(ctx, grantID, holder, now, now.Add(engineCfg.LockTTL))
		},
		retry.Context(ctx),
		retry.Attempts(engineCfg.LockMaxAttempts),
		retry.Delay(engineCfg.LockRetryInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(db.IsLockHeldError),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", engineCfg.LockMaxAttempts).
				Str("grant_id", grantID).
				Msg("Grant claim lock is held, retrying")
		}),
	)
	if err == nil {
		return nil
	}

	if db.IsLockHeldError(err) {
		return types.NewCodeError(types.ClaimInProgress, "another claim of grant %s is in progress", grantID)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return types.NewError(http.StatusRequestTimeout, types.ClaimInProgress, err)
	}
	return types.NewError(
		http.StatusInternalServerError,
		types.InternalServiceError,
		fmt.Errorf("failed to acquire claim lock of grant %s: %w", grantID, err),
	)
}

func (s *Service) releaseClaimLock(ctx context.Context, grantID, holder string) {
	// released even when ctx is done, an orphaned lease blocks the grant until it expires
	err := s.db.ReleaseGrantClaimLock(context.WithoutCancel(ctx), grantID, holder)
	if err != nil {
		log.Ctx(ctx).Warn().
			Err(err).
			Str("grant_id", grantID).
			Msg("Failed to release grant claim lock")
	}
}

func vestingError(err error) *types.Error {
	switch {
	case errors.Is(err, vesting.ErrClaimNotAvailableYet):
		return types.NewError(http.StatusUnprocessableEntity, types.ClaimNotAvailableYet, err)
	case errors.Is(err, vesting.ErrInvalidVestingPeriod):
		return types.NewError(http.StatusUnprocessableEntity, types.InvalidVestingPeriod, err)
	case errors.Is(err, vesting.ErrCalculationOverflow):
		return types.NewError(http.StatusUnprocessableEntity, types.CalculationOverflow, err)
	case errors.Is(err, vesting.ErrNothingToClaim):
		return types.NewError(http.StatusUnprocessableEntity, types.NothingToClaim, err)
	case errors.Is(err, vesting.ErrInvalidAmount):
		return types.NewError(http.StatusBadRequest, types.InvalidArgument, err)
	default:
		return types.NewError(http.StatusInternalServerError, types.InternalServiceError, err)
	}
}
