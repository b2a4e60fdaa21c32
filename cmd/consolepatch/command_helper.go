package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/reglet-dev/consolepatch/internal/infrastructure/container"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
// extra may adjust the container options before construction.
func withContainer(handler CommandHandler, extra ...func(*container.Options)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		baseDir := viper.GetString("base-dir")
		if baseDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine working directory: %w", err)
			}
			baseDir = wd
		}

		opts := container.Options{
			SystemConfigPath: viper.GetString("system-config"),
			BaseDir:          baseDir,
			Logger:           logger,
		}
		for _, fn := range extra {
			fn(&opts)
		}

		c, err := container.New(opts)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ctx := &CommandContext{
			Container: c,
			Logger:    logger,
			Context:   cmd.Context(),
		}

		return handler(ctx, cmd, args)
	}
}
