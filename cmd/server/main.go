package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/parleyhq/relay/internal/adapters/httpapi"
	"github.com/parleyhq/relay/internal/adapters/platform"
	"github.com/parleyhq/relay/internal/adapters/ws"
	"github.com/parleyhq/relay/internal/app"
	"github.com/parleyhq/relay/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	client := platform.NewClient(cfg.PlatformBaseURL, cfg.PlatformTimeout)

	relay := app.New(app.Config{
		HeartbeatTimeout: cfg.HeartbeatTimeout,
		SweepInterval:    cfg.SweepInterval,
		RateLimit:        cfg.RateLimit,
		RateInterval:     cfg.RateInterval,
	}, app.Collaborators{
		Store:     client,
		Policy:    client,
		Safety:    client,
		Notify:    client,
		Anon:      client,
		CallStore: client,
	})
	go relay.Run(ctx)

	ctl := ws.NewController(relay, client, ws.Options{
		HandshakeTimeout: cfg.HandshakeTimeout,
		WriteDeadline:    cfg.WriteDeadline,
		SendBuffer:       cfg.SendBuffer,
	})

	r := httpapi.SetupRouter(ctx, cfg, ctl)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("relay server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
