package services

import (
	"context"
	"net/http"

	"github.com/babylonlabs-io/vesting-engine/internal/clients/transferclient"
	"github.com/babylonlabs-io/vesting-engine/internal/config"
	"github.com/babylonlabs-io/vesting-engine/internal/db"
	"github.com/babylonlabs-io/vesting-engine/internal/queue"
	"github.com/babylonlabs-io/vesting-engine/internal/types"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/rs/zerolog/log"
)

type Service struct {
	cfg      *config.Config
	db       db.DbInterface
	transfer transferclient.TransferInterface
	events   queue.EventPublisher
	// clock is the only time source of the service
	clock clock.Clock
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	transfer transferclient.TransferInterface,
	events queue.EventPublisher,
	clk clock.Clock,
) *Service {
	if events == nil {
		events = queue.NoopPublisher{}
	}
	if clk == nil {
		clk = clock.NewDefaultClock()
	}

	return &Service{
		cfg:      cfg,
		db:       db,
		transfer: transfer,
		events:   events,
		clock:    clk,
	}
}

// Ping checks the backing store is reachable
func (s *Service) Ping(ctx context.Context) *types.Error {
	if err := s.db.Ping(ctx); err != nil {
		return types.NewError(http.StatusServiceUnavailable, types.InternalServiceError, err)
	}
	return nil
}

// emitEvent never fails the caller, the mutation it reports is already persisted
func (s *Service) emitEvent(ctx context.Context, event types.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("event_type", event.Type.String()).
			Str("pool_id", event.PoolID).
			Str("grant_id", event.GrantID).
			Msg("Failed to publish event")
	}
}
