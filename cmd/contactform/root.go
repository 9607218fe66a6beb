package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

// app holds state shared by the subcommands.
type app struct {
	logger      *zap.Logger
	logLevel    string
	development bool

	// promptDriver replaces the survey driver in tests.
	promptDriver tui.PromptDriver
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "contactform",
		Short:         "Contact form server and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.logger != nil {
				return nil
			}
			logger, err := logging.New(a.logLevel, a.development)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.development, "dev", false, "Use the development log encoder")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newPromptCmd(a))
	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newOpenAPICmd(a))
	return root
}
