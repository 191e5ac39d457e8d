package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99minutos/decision-service/internal/api"
	"github.com/99minutos/decision-service/internal/api/middleware"
	"github.com/99minutos/decision-service/internal/core/service"
	"github.com/99minutos/decision-service/internal/infrastructure/credentials"
	"github.com/99minutos/decision-service/internal/pkg/config"
	"github.com/99minutos/decision-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "decision-service",
	})

	accounts, err := credentials.Load(cfg.AccountsFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to load accounts")
		return err
	}

	b, err := openBackends(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("store", cfg.StoreDriver).Str("sessions", cfg.Session.Store).Msg("failed to open backends")
		return err
	}
	defer b.Close()

	authService := service.NewAuthService(accounts, b.sessions, cfg.Session.TTL, log)
	decisionService := service.NewDecisionService(b.decisions, log)

	e, err := api.NewRouter(api.Dependencies{
		Config:    cfg,
		Log:       log,
		Auth:      authService,
		Decisions: decisionService,
		Accounts:  accounts,
		Cookies: middleware.NewSessionCookie(middleware.CookieConfig{
			Name:   cfg.Session.Cookie,
			Secret: cfg.Session.Secret,
			Secure: cfg.Production(),
		}),
		Pingers: b.pingers,
	})
	if err != nil {
		return err
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreDriver).
			Str("sessions", cfg.Session.Store).
			Bool("pruebas", cfg.Fixtures).
			Msg("server listening")
		srvErr <- e.Start(net.JoinHostPort("", cfg.Port))
	}()

	select {
	case err := <-srvErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error().Err(err).Msg("server stopped")
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
