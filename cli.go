package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"retirement-calc/config"
	"retirement-calc/domain"
	httpLayer "retirement-calc/http"
)

type rootOptions struct {
	store      string
	sqlitePath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "retirement",
		Short:        "Project the age at which savings cover retirement expenses",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.store, "store", "", "parameter store: memory, sqlite or redis (overrides RETIREMENT_STORE)")
	cmd.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite-path", "", "sqlite database path (overrides RETIREMENT_SQLITE_PATH)")

	cmd.AddCommand(
		newServeCommand(opts),
		newShowCommand(opts),
		newSetCommand(opts),
	)

	return cmd
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if opts.store != "" {
		cfg.Store = opts.store
	}
	if opts.sqlitePath != "" {
		cfg.SQLitePath = opts.sqlitePath
	}
	return cfg, cfg.Validate()
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			return a.serve()
		},
	}
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			a.printProjection(cmd.OutOrStdout())
			return nil
		},
	}
}

func newSetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set field=value...",
		Short: "Edit parameters and print the new projection",
		Long: "Edit parameters and print the new projection.\n\nFields: " +
			strings.Join(domain.ParameterKeys, ", "),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edits, err := parseEdits(args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.service.Apply(edits); err != nil {
				return err
			}
			a.printProjection(cmd.OutOrStdout())
			return nil
		},
	}
}

func parseEdits(args []string) (map[string]string, error) {
	edits := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid edit %q, want field=value", arg)
		}
		edits[key] = value
	}
	return edits, nil
}

func (a *app) serve() error {
	handler := httpLayer.NewRetirementHandler(a.service, a.logger)

	rateLimiter := httpLayer.NewRateLimiter(a.cfg.RateLimitCapacity, a.cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         a.cfg.Addr,
		Handler:      httpLayer.NewRouter(handler, rateLimiter, a.registry),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("api listening", "addr", a.cfg.Addr, "store", a.cfg.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("starting server: %w", err)
	case <-quit:
		a.logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.logger.Info("server exited")
	return nil
}
