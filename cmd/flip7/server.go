package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/flip7/cmd/flip7/shared"
	"github.com/lox/flip7/internal/server"
)

// ServerCmd runs the multi-game hosting server.
type ServerCmd struct {
	Config string `kong:"default='flip7.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Listen address (overrides config)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLoggerWithLevel(cfg.Server.LogLevel)
	if c.Debug {
		logger = shared.SetupLogger(true)
	}

	addr := cfg.ListenAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	clock := quartz.NewReal()
	registry := server.NewRegistry(logger, clock, cfg.IdleTTL())
	service := server.NewGameService(registry, logger, cfg)
	srv := server.NewServer(service, logger)

	logger.Info("starting flip7 server",
		"addr", addr,
		"default_seed", cfg.Game.DefaultSeed,
		"max_players", cfg.Game.MaxPlayers,
		"idle_ttl", cfg.IdleTTL())

	ctx := shared.SetupSignalHandler(logger)
	registry.StartReaper(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
