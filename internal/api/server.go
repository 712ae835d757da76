package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/babylonlabs-io/vesting-engine/internal/config"
	"github.com/babylonlabs-io/vesting-engine/internal/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.ServerConfig, service *services.Service) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      NewRouter(service),
			ReadTimeout:  config.ServerReadTimeout,
			WriteTimeout: config.ServerWriteTimeout,
			IdleTimeout:  config.ServerIdleTimeout,
		},
	}
}

// Start blocks until the server is shut down
func (s *Server) Start() error {
	log.Info().Msgf("Starting api server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down api server")
	return s.httpServer.Shutdown(ctx)
}
