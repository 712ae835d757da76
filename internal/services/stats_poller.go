package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"github.com/babylonlabs-io/vesting-engine/internal/observability/metrics"
	"github.com/babylonlabs-io/vesting-engine/internal/types"
	"github.com/babylonlabs-io/vesting-engine/internal/utils"
	"github.com/babylonlabs-io/vesting-engine/internal/utils/poller"
	"github.com/rs/zerolog/log"
)

// PoolStats aggregates the grants of a pool at a point in time
type PoolStats struct {
	PoolID         string `json:"pool_id"`
	Grants         int    `json:"grants"`
	TotalGranted   uint64 `json:"total_granted"`
	TotalWithdrawn uint64 `json:"total_withdrawn"`
	// TotalClaimable is what beneficiaries could claim right now
	TotalClaimable uint64 `json:"total_claimable"`
	Now            int64  `json:"now"`
}

const statsPollerName = "stats"

// StartStatsPoller starts the stats polling service
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.NewPoller(
		statsPollerName,
		s.cfg.Poller.StatsPollingInterval,
		metrics.RecordPollerDuration(statsPollerName, s.calculateAndUpdateStats),
	)
	go statsPoller.Start(ctx)
}

// calculateAndUpdateStats refreshes the per pool amount gauges
func (s *Service) calculateAndUpdateStats(ctx context.Context) error {
	log := log.Ctx(ctx)

	pools, err := s.db.GetAllPools(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pools: %w", err)
	}

	if len(pools) == 0 {
		log.Debug().Msg("No pools found - skipping stats update")
		return nil
	}

	for _, pool := range pools {
		stats, err := s.poolStats(ctx, pool)
		if err != nil {
			return fmt.Errorf("failed to calculate stats of pool %s: %w", pool.ID, err)
		}

		metrics.RecordPoolAmounts(pool.ID, stats.TotalGranted, stats.TotalWithdrawn, stats.TotalClaimable)
	}

	log.Debug().
		Int("pool_count", len(pools)).
		Msg("Updated pool stats")

	return nil
}

func (s *Service) PoolStats(ctx context.Context, poolID string) (*PoolStats, *types.Error) {
	pool, err := s.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}

	stats, statsErr := s.poolStats(ctx, pool)
	if statsErr != nil {
		return nil, types.NewError(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Errorf("failed to calculate stats of pool %s: %w", poolID, statsErr),
		)
	}
	return stats, nil
}

func (s *Service) poolStats(ctx context.Context, pool *model.PoolDocument) (*PoolStats, error) {
	grants, err := s.db.GetGrantsByPoolID(ctx, pool.ID)
	if err != nil {
		return nil, err
	}

	stats := &PoolStats{
		PoolID: pool.ID,
		Grants: len(grants),
		Now:    s.clock.Now().Unix(),
	}
	for _, grant := range grants {
		if stats.TotalGranted, err = utils.AddUint64(stats.TotalGranted, grant.TotalAmount); err != nil {
			return nil, err
		}
		if stats.TotalWithdrawn, err = utils.AddUint64(stats.TotalWithdrawn, grant.TotalWithdrawn); err != nil {
			return nil, err
		}

		vested, err := grant.Schedule().Vested(stats.Now)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("grant_id", grant.ID).Msg("Skipping grant in stats")
			continue
		}
		if vested > grant.TotalWithdrawn {
			if stats.TotalClaimable, err = utils.AddUint64(stats.TotalClaimable, vested-grant.TotalWithdrawn); err != nil {
				return nil, err
			}
		}
	}

	return stats, nil
}
