package poller

import (
	"context"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/observability/tracing"
	"github.com/rs/zerolog/log"
)

// Poller runs pollMethod every interval. Each run gets its own traceId and
// the poller name in the context logger.
type Poller struct {
	name       string
	interval   time.Duration
	quit       chan struct{}
	pollMethod func(ctx context.Context) error
}

func NewPoller(name string, interval time.Duration, pollMethod func(ctx context.Context) error) *Poller {
	return &Poller{
		name:       name,
		interval:   interval,
		quit:       make(chan struct{}),
		pollMethod: pollMethod,
	}
}

// Start blocks until ctx is done or Stop is called
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().
		Str("poller", p.name).
		Dur("interval", p.interval).
		Msg("Starting poller")

	for {
		select {
		case <-ticker.C:
			p.run(ctx)
		case <-ctx.Done():
			log.Info().Str("poller", p.name).Msg("Poller stopped due to context cancellation")
			return
		case <-p.quit:
			log.Info().Str("poller", p.name).Msg("Poller stopped")
			return
		}
	}
}

func (p *Poller) run(ctx context.Context) {
	runCtx := tracing.InjectTraceID(ctx)
	logger := log.Ctx(runCtx).With().Str("poller", p.name).Logger()
	runCtx = logger.WithContext(runCtx)

	start := time.Now()
	if err := p.pollMethod(runCtx); err != nil {
		logger.Error().Err(err).Msg("Error polling")
		return
	}
	logger.Debug().Dur("took", time.Since(start)).Msg("Poll method executed successfully")
}

func (p *Poller) Stop() {
	close(p.quit)
}
