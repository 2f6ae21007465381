package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/todoflow-labs/fragment-service/internal/config"
	"github.com/todoflow-labs/fragment-service/internal/events"
	"github.com/todoflow-labs/fragment-service/internal/handler"
	"github.com/todoflow-labs/fragment-service/internal/logging"
	"github.com/todoflow-labs/fragment-service/internal/metrics"
	"github.com/todoflow-labs/fragment-service/internal/task"
)

func Run() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize logger and metrics
	logger := logging.New(cfg.LogLevel).With().Str("service", "fragment-service").Logger()
	metricsSrv := metrics.Serve(cfg.MetricsAddr, &logger)

	// Task repository
	repo := task.NewRepository()
	if cfg.SeedTasks {
		repo.Seed(task.SeedTasks()...)
		logger.Info().Int("count", repo.Len()).Msg("seeded example tasks")
	}

	// Event publishing
	var pub events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer nc.Drain()

		js, err := nc.JetStream()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init JetStream")
		}
		pub, err = events.NewJetStreamPublisher(js, cfg.NATSStream, cfg.NATSSubject, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create JetStream stream")
		}
		logger.Info().Str("subject", cfg.NATSSubject).Msg("publishing task events")
	}

	// Set up HTTP server and routes
	h := handler.New(repo, pub, &logger)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.NewRouter(h, handler.Static(cfg.StaticDir)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, srv, metricsSrv, cfg.ShutdownTimeout, &logger); err != nil {
		logger.Fatal().Err(err).Msg("HTTP server failed")
	}
}

// serve runs srv until ctx is done or the listener fails, then shuts down
// both servers. A listener failure is returned so the caller can exit non-zero.
func serve(ctx context.Context, srv, metricsSrv *http.Server, timeout time.Duration, logger *logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("fragment-service listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown")
		}
	}
	return serveErr
}
