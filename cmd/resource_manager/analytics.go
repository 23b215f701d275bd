package main

import (
	"context"

	"github.com/jonathan/resource-manager/internal/allocation"
	"github.com/jonathan/resource-manager/internal/observability"
	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show team utilization and skill distribution",
	Long:  "Aggregates project counts, the skill distribution and per-engineer utilization over the whole snapshot.",
	Args:  cobra.NoArgs,
	RunE:  runAnalytics,
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	snap, err := loadNormalized(context.Background(), resolved)
	if err != nil {
		return err
	}

	report := allocation.Aggregate(snap.Engineers, snap.Projects, snap.Assignments)
	return emit(cmd, report, func(p *observability.Printer) {
		p.PrintAnalytics(&report)
	})
}
