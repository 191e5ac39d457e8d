package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/99minutos/decision-service/internal/api/handler"
	"github.com/99minutos/decision-service/internal/core/ports"
	"github.com/99minutos/decision-service/internal/infrastructure/db/memory"
	mongodb "github.com/99minutos/decision-service/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/decision-service/internal/infrastructure/db/redis"
	"github.com/99minutos/decision-service/internal/infrastructure/db/sqlstore"
	"github.com/99minutos/decision-service/internal/pkg/config"
	"github.com/99minutos/decision-service/pkg/logger"
)

// backends holds the stores selected by configuration and whatever must be
// released on shutdown.
type backends struct {
	decisions ports.DecisionRepository
	sessions  ports.SessionStore
	pingers   map[string]handler.Pinger
	closers   []func() error
}

// Close releases every opened connection, newest first.
func (b *backends) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	b := &backends{pingers: make(map[string]handler.Pinger)}

	if err := b.openDecisions(ctx, cfg); err != nil {
		_ = b.Close()
		return nil, err
	}
	if err := b.openSessions(ctx, cfg); err != nil {
		_ = b.Close()
		return nil, err
	}

	log := logger.Get()
	log.Info().
		Str("store", cfg.StoreDriver).
		Str("sessions", cfg.Session.Store).
		Int("checks", len(b.pingers)).
		Msg("backends ready")
	return b, nil
}

func (b *backends) openDecisions(ctx context.Context, cfg *config.Config) error {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		b.decisions = memory.NewDecisionRepository()

	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func() error { return client.Disconnect(context.Background()) })

		repo := mongodb.NewDecisionRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("mongo: ensure indexes: %w", err)
		}
		b.decisions = repo
		b.pingers["decisions"] = repo

	case config.StorePostgres, config.StoreSQLite:
		driver := sqlstore.DriverPostgres
		if cfg.StoreDriver == config.StoreSQLite {
			driver = sqlstore.DriverSQLite
		}
		db, err := sqlstore.Open(ctx, sqlstore.Config{Driver: driver, DSN: cfg.SQL.DSN})
		if err != nil {
			return err
		}
		b.closers = append(b.closers, db.Close)

		repo := sqlstore.NewDecisionRepository(db)
		b.decisions = repo
		b.pingers["decisions"] = repo

	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	return nil
}

func (b *backends) openSessions(ctx context.Context, cfg *config.Config) error {
	switch cfg.Session.Store {
	case config.SessionsMemory:
		b.sessions = memory.NewSessionStore()

	case config.SessionsRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		b.closers = append(b.closers, client.Close)

		store := redisdb.NewSessionStore(client, "")
		b.sessions = store
		b.pingers["sessions"] = store

	default:
		return fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
	return nil
}
