package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resource-manager/internal/allocation"
	"github.com/jonathan/resource-manager/internal/observability"
	"github.com/spf13/cobra"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity <engineer-id>",
	Short: "Show an engineer's available capacity",
	Long: "Reports the engineer's available capacity on --as-of (today by default), their clamped " +
		"utilization and the assignments still active on that day. With --api-url the server computes the report.",
	Args: cobra.ExactArgs(1),
	RunE: runCapacity,
}

func init() {
	rootCmd.AddCommand(capacityCmd)
}

func runCapacity(cmd *cobra.Command, args []string) error {
	engineerID, err := parseID("engineer", args[0])
	if err != nil {
		return err
	}
	asOf, err := resolved.ReferenceDate()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var report *allocation.CapacityReport

	if resolved.APIURL != "" {
		c, err := apiClient(ctx, resolved)
		if err != nil {
			return err
		}
		defer c.Logout()
		if report, err = c.Capacity(ctx, engineerID, asOf); err != nil {
			return fmt.Errorf("failed to fetch capacity: %w", err)
		}
	} else {
		snap, err := loadNormalized(ctx, resolved)
		if err != nil {
			return err
		}
		engineer := allocation.FindEngineer(snap.Engineers, engineerID)
		if engineer == nil {
			return fmt.Errorf("engineer %d not found", engineerID)
		}
		r := allocation.Report(*engineer, snap.Assignments, asOf)
		report = &r
	}

	if report.AvailableCapacity < 0 {
		log.WithField("engineer_id", engineerID).Warn("engineer is over-allocated")
	}
	return emit(cmd, report, func(p *observability.Printer) {
		p.PrintCapacityReport(report)
	})
}
