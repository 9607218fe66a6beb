package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contact form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			logger := a.logger
			if !cmd.Flags().Changed("log-level") && cfg.Logging.Level != "" {
				configured, err := logging.New(cfg.Logging.Level, cfg.Logging.Development || a.development)
				if err != nil {
					return err
				}
				logger = configured
				defer func() { _ = configured.Sync() }()
			}

			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ListenAndServe(ctx); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			logger.Info("contactform: stopped", zap.String("addr", cfg.Server.Addr))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&addr, "addr", ":8383", "Listen address (overrides the config file)")
	return cmd
}

// contextOrBackground keeps RunE callable from tests that skip Execute.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
