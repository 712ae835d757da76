package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/api"
	"github.com/babylonlabs-io/vesting-engine/internal/clients/transferclient"
	"github.com/babylonlabs-io/vesting-engine/internal/config"
	"github.com/babylonlabs-io/vesting-engine/internal/observability/metrics"
	"github.com/babylonlabs-io/vesting-engine/internal/observability/tracing"
	"github.com/babylonlabs-io/vesting-engine/internal/queue"
	"github.com/babylonlabs-io/vesting-engine/internal/services"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the vesting engine api server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	dbClient, closeDb, err := newDbClient(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	defer closeDb()

	var transferClient transferclient.TransferInterface = transferclient.NewClient(&cfg.Transfer)
	transferClient = transferclient.NewTransferClientWithMetrics(transferClient)

	var events queue.EventPublisher = queue.NoopPublisher{}
	if cfg.Queue != nil {
		qm, err := queue.NewQueueManager(cfg.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize queue manager")
		}
		events = qm
	}
	defer events.Shutdown()

	service := services.NewService(cfg, dbClient, transferClient, events, clock.NewDefaultClock())

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service.StartStatsPoller(ctx)

	server := api.New(&cfg.Server, service)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("api server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
