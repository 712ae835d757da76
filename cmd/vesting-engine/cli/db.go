package cli

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/vesting-engine/internal/config"
	"github.com/babylonlabs-io/vesting-engine/internal/db"
	"github.com/babylonlabs-io/vesting-engine/internal/db/memdb"
	dbmodel "github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"github.com/rs/zerolog/log"
)

// newDbClient opens the configured store. The returned close func must be
// called once the client is no longer used.
func newDbClient(ctx context.Context, cfg *config.DbConfig) (db.DbInterface, func(), error) {
	switch cfg.Type {
	case config.DbTypeMemory:
		log.Ctx(ctx).Warn().Msg("Using in-memory db, all data is lost on exit")
		return db.NewDbWithMetrics(memdb.New()), func() {}, nil
	case config.DbTypeMongo:
		if err := dbmodel.Setup(ctx, cfg); err != nil {
			return nil, nil, fmt.Errorf("error while setting up db model: %w", err)
		}

		client, err := db.New(ctx, *cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("error while creating db client: %w", err)
		}

		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect db client")
			}
		}
		return db.NewDbWithMetrics(client), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unsupported db type %q", cfg.Type)
	}
}
