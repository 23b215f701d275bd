package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resource-manager/internal/allocation"
	"github.com/jonathan/resource-manager/internal/observability"
	"github.com/spf13/cobra"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates <project-id>",
	Short: "List engineers to assign to a project",
	Long:  "Lists every engineer with their available capacity on --as-of and whether they have a skill the project requires.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCandidates,
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
}

type candidatesResult struct {
	Project    allocation.Project     `json:"project"`
	Candidates []allocation.Candidate `json:"candidates"`
}

func runCandidates(cmd *cobra.Command, args []string) error {
	projectID, err := parseID("project", args[0])
	if err != nil {
		return err
	}
	asOf, err := resolved.ReferenceDate()
	if err != nil {
		return err
	}

	snap, err := loadNormalized(context.Background(), resolved)
	if err != nil {
		return err
	}
	project := allocation.FindProject(snap.Projects, projectID)
	if project == nil {
		return fmt.Errorf("project %d not found", projectID)
	}

	candidates := allocation.Candidates(project, snap.Engineers, snap.Assignments, asOf)
	return emit(cmd, candidatesResult{Project: *project, Candidates: candidates}, func(p *observability.Printer) {
		p.PrintCandidates(project, candidates)
	})
}
