package main

import (
	"fmt"

	"github.com/reglet-dev/consolepatch/internal/infrastructure/output"
	"github.com/spf13/cobra"
)

var probeFormat string

// probeCmd reports the decision the service would make, without applying it.
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Show the environment classification and the action the service would take",
	Args:  cobra.NoArgs,
	RunE:  withContainer(runProbe),
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().StringVar(&probeFormat, "format", "text", "Output format: text, json, yaml")
}

func runProbe(cc *CommandContext, cmd *cobra.Command, _ []string) error {
	formatter, err := output.NewFormatterFactory().Create(probeFormat, cmd.OutOrStdout(), cc.Container.Sink().ANSI())
	if err != nil {
		return err
	}

	plan := cc.Container.Service().Plan()
	cc.Logger.Debug("probe complete", "action", plan.Action)

	if err := formatter.Format(plan); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
