package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resource-manager/internal/allocation"
	"github.com/jonathan/resource-manager/internal/observability"
	"github.com/jonathan/resource-manager/internal/types"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Search engineers and projects",
	Long: "Narrows engineers by name, email or skill and projects by name, description or status. " +
		"Search and skill match case-insensitive substrings; every given criterion must match.",
	Args: cobra.NoArgs,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&opts.search, "search", "", "Text matched against names, emails and descriptions")
	filterCmd.Flags().StringVar(&opts.skill, "skill", "", "Skill an engineer must list")
	filterCmd.Flags().StringVar(&opts.status, "status", "", "Project status (planning, active, completed)")
	rootCmd.AddCommand(filterCmd)
}

// filterResult is the --json shape of the filter command.
type filterResult struct {
	Engineers []allocation.Engineer `json:"engineers"`
	Projects  []allocation.Project  `json:"projects"`
}

func runFilter(cmd *cobra.Command, _ []string) error {
	status := types.ProjectStatus(opts.status)
	switch status {
	case "", types.StatusPlanning, types.StatusActive, types.StatusCompleted:
	default:
		return fmt.Errorf("invalid status %q: must be planning, active or completed", opts.status)
	}

	snap, err := loadNormalized(context.Background(), resolved)
	if err != nil {
		return err
	}

	engineers, projects := allocation.FilterEntities(snap.Engineers, snap.Projects, allocation.Filter{
		Search: opts.search,
		Skill:  opts.skill,
		Status: status,
	})
	return emit(cmd, filterResult{Engineers: engineers, Projects: projects}, func(p *observability.Printer) {
		p.PrintEngineers(engineers)
		p.PrintProjects(projects)
	})
}
