// main is the entry point of the MCWho application.
// It initializes the configuration, logger, database, GeoIP provider, and starts
// the HTTP API and the Discord bot.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/mcwho/internal/allowlist"
	"github.com/woozymasta/mcwho/internal/checker"
	"github.com/woozymasta/mcwho/internal/config"
	"github.com/woozymasta/mcwho/internal/discord"
	"github.com/woozymasta/mcwho/internal/fake"
	"github.com/woozymasta/mcwho/internal/game"
	"github.com/woozymasta/mcwho/internal/geoip"
	"github.com/woozymasta/mcwho/internal/logger"
	"github.com/woozymasta/mcwho/internal/maintenance"
	"github.com/woozymasta/mcwho/internal/server"
	"github.com/woozymasta/mcwho/internal/storage"
)

// store is what the collaborators need from either storage backend.
type store interface {
	checker.Store
	maintenance.Lister
	Close() error
}

func main() {
	cfg := config.Parse()

	logCloser := logger.Setup(cfg.Logger)
	defer func() { _ = logCloser.Close() }()
	log.Info().Msg("Starting mcwho service...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// GeoIP
	var country game.CountryResolver
	if cfg.GeoIP.Path != "" {
		log.Info().Msg("Checking GeoIP database...")
		if err := geoip.EnsureDB(ctx, cfg.GeoIP.Path, cfg.GeoIP.URL, cfg.GeoIP.Interval); err != nil {
			log.Error().Err(err).Msg("Failed to download GeoIP database")
		}

		geoProvider, err := geoip.Open(cfg.GeoIP.Path)
		if err != nil {
			log.Error().Err(err).Msg("Failed to open GeoIP database, country detection disabled")
		} else {
			country = geoProvider
			if cfg.GeoIP.Interval > 0 {
				go geoProvider.Refresh(ctx, cfg.GeoIP.URL, cfg.GeoIP.Interval)
			}
			defer func() {
				if err := geoProvider.Close(); err != nil {
					log.Error().Err(err).Msg("Error closing GeoIP provider")
				}
			}()
		}
	}

	// Database
	db, err := openStore(cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	c := checker.New(db, game.NewClient(country), checker.Options{
		Timeout:     cfg.Query.Timeout,
		DefaultPort: cfg.Query.DefaultPort,
	})

	// database maintenance
	if maintenance.Run(ctx, cfg, db, c) {
		return
	}

	// development status server
	if cfg.FakeServer != "" {
		fakeServer, err := fake.Listen(cfg.FakeServer, fake.RandomStatus(20))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start fake server")
		}
		go fakeServer.Serve()
		defer func() { _ = fakeServer.Close() }()
		log.Info().Str("address", fakeServer.Addr()).Msg("Fake server listening")
	}

	allowed := allowlist.New(cfg.AllowedUnits)
	if allowed.Len() > 0 {
		log.Info().Int("units", allowed.Len()).Msg("Allowlist enabled")
	}

	// HTTP API
	var httpServer *http.Server
	if cfg.Server.Address != "" {
		srvHandler := server.New(c, allowed, cfg)
		defer srvHandler.Close()

		httpServer = &http.Server{
			Addr:         cfg.Server.Address,
			Handler:      srvHandler.Run(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: cfg.Query.Timeout + 5*time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			log.Info().Str("address", cfg.Server.Address).Msg("Server listening")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server failed")
			}
		}()
	}

	// Discord
	if cfg.Discord.Token != "" {
		bot, err := discord.New(cfg.Discord, c, allowed)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Discord bot")
		}
		if err := bot.Open(); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Discord")
		}
		defer func() {
			if err := bot.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing Discord session")
			}
		}()
	}

	// Graceful Shutdown
	<-ctx.Done()
	log.Info().Msg("Shutting down...")

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
	}

	log.Info().Msg("Server exited")
}

func openStore(path string) (store, error) {
	if path == config.MemoryStorage {
		log.Warn().Msg("Using in-memory storage, default servers are lost on exit")
		return storage.NewMemory(), nil
	}

	return storage.New(path)
}
