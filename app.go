package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"retirement-calc/config"
	"retirement-calc/metrics"
	"retirement-calc/repository"
	"retirement-calc/service"
)

const storePingTimeout = 3 * time.Second

type app struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	service  *service.RetirementService
	close    func() error
}

func newApp(cfg config.Config, logOutput io.Writer) (*app, error) {
	logger := config.NewLogger(cfg, logOutput)

	formatter, err := service.NewCurrencyFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		return nil, err
	}

	kv, closeStore := openStore(cfg, logger)

	registry := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(registry)

	svc := service.NewRetirementService(repository.NewParameterStore(kv), formatter, logger, m)

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		service:  svc,
		close:    closeStore,
	}, nil
}

// openStore opens the configured backend. If it is unavailable the app keeps
// running on an in-memory store with the default parameters.
func openStore(cfg config.Config, logger *slog.Logger) (repository.KeyValueStore, func() error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreSQLite:
		store, err := repository.OpenSQLiteStore(cfg.SQLitePath)
		if err != nil {
			logger.Warn("sqlite store unavailable, using memory store", "path", cfg.SQLitePath, "error", err)
			return repository.NewMemoryStore(), noop
		}
		logger.Debug("using sqlite store", "path", cfg.SQLitePath)
		return store, store.Close

	case config.StoreRedis:
		store := repository.NewRedisStore(cfg.RedisAddr, cfg.RedisKeyPrefix)

		ctx, cancel := context.WithTimeout(context.Background(), storePingTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			logger.Warn("redis store unavailable, using memory store", "addr", cfg.RedisAddr, "error", err)
			_ = store.Close()
			return repository.NewMemoryStore(), noop
		}
		logger.Debug("using redis store", "addr", cfg.RedisAddr)
		return store, store.Close
	}

	return repository.NewMemoryStore(), noop
}

func (a *app) printProjection(w io.Writer) {
	view := a.service.View()

	fmt.Fprintf(w, "You can retire at age: %d\n", view.Display.RetirementAge)
	fmt.Fprintf(w, "Target retirement amount: %s\n", view.Display.TargetRetirementAmount)
	if !view.Display.ReachesTarget {
		fmt.Fprintf(w, "Savings do not reach the target before age %d\n", service.MaxRetirementAge)
	}
}
