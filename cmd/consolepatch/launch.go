package main

import (
	"context"
	"fmt"
	"time"

	"github.com/reglet-dev/consolepatch/internal/infrastructure/container"
	"github.com/spf13/cobra"
)

// LaunchOptions contains the launch command's flags.
type LaunchOptions struct {
	Artifact string
	Timeout  time.Duration
	Strict   bool
}

// DefaultLaunchOptions returns sensible defaults.
func DefaultLaunchOptions() LaunchOptions {
	return LaunchOptions{
		Timeout: 30 * time.Second,
	}
}

// RegisterFlags adds the launch flags to a cobra command.
func (opts *LaunchOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opts.Artifact, "artifact", opts.Artifact,
		"Plugin artifact path (default is the running executable)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Bootstrap timeout (0 to disable)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", opts.Strict,
		"Fail the launch when any service fails to load")
}

// ApplyToContext applies timeout to context.
func (opts *LaunchOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return ctx, func() {}
}

func (opts *LaunchOptions) apply(o *container.Options) {
	o.Artifact = opts.Artifact
	o.Strict = opts.Strict
}

var launchOpts = DefaultLaunchOptions()

// launchCmd boots the host and writes a few lines through the console sink.
var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Bootstrap the launcher host with the console patch service",
	Long: `Run the host bootstrap: every registered service is initialized and then
loaded. Afterwards a few sample lines are written through the console sink
so the effect of the capability decision is visible.`,
	Args: cobra.NoArgs,
	RunE: withContainer(runLaunch, launchOpts.apply),
}

func init() {
	rootCmd.AddCommand(launchCmd)
	launchOpts.RegisterFlags(launchCmd)
}

func runLaunch(cc *CommandContext, _ *cobra.Command, _ []string) error {
	ctx, cancel := launchOpts.ApplyToContext(cc.Context)
	defer cancel()

	participants, err := cc.Container.Launcher().Launch(ctx)
	if err != nil {
		return fmt.Errorf("launch failed: %w", err)
	}

	logger := cc.Container.Registry().Logger("consolepatch.launch")
	logger.Info("host started", "services", participants)
	logger.Info("terminal capability", "version", cc.Container.Store().Current().String(), "ansi", cc.Container.Sink().ANSI())
	logger.Warn("sample warning")
	logger.Error("sample error")
	return nil
}
