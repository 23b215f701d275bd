// Package observability provides formatted output utilities for the CLI reports.
package observability

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resource-manager/internal/allocation"
	"github.com/jonathan/resource-manager/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted report output
type Printer struct {
	out   io.Writer
	limit int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, limit: maxItemsToShow}
}

// WithLimit sets how many rows list sections show. A limit of 0 or less shows every row.
func (p *Printer) WithLimit(n int) *Printer {
	p.limit = n
	return p
}

func (p *Printer) shown(total int) int {
	if p.limit <= 0 {
		return total
	}
	return min(total, p.limit)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to n runes. Bars and bullets are multi-byte, so byte slicing would split them.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// utilizationBar renders a 0-100 value as a 20-cell bar.
func utilizationBar(v int) string {
	cells := min(max(v, 0), 100) / 5
	return "[" + strings.Repeat("█", cells) + strings.Repeat("·", 20-cells) + "]"
}

// PrintAnalytics outputs the team dashboard figures.
func (p *Printer) PrintAnalytics(a *allocation.AnalyticsSnapshot) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Engineers:        %d\n", a.TotalEngineers))
	sb.WriteString(fmt.Sprintf("Projects:         %d (%d active, %d completed)\n",
		a.TotalProjects, a.ActiveProjects, a.CompletedProjects))
	sb.WriteString(fmt.Sprintf("Avg utilization:  %.1f%%\n", a.AverageUtilization))

	if len(a.ProjectStatusDistribution) > 0 {
		sb.WriteString("\nStatus:\n")
		statuses := make([]types.ProjectStatus, 0, len(a.ProjectStatusDistribution))
		for s := range a.ProjectStatusDistribution {
			statuses = append(statuses, s)
		}
		slices.Sort(statuses)
		for _, s := range statuses {
			sb.WriteString(fmt.Sprintf("  • %-12s %d\n", s, a.ProjectStatusDistribution[s]))
		}
	}

	if len(a.SkillDistribution) > 0 {
		sb.WriteString("\nTop skills:\n")
		skills := make([]string, 0, len(a.SkillDistribution))
		for s := range a.SkillDistribution {
			skills = append(skills, s)
		}
		slices.SortFunc(skills, func(x, y string) int {
			if c := cmp.Compare(a.SkillDistribution[y], a.SkillDistribution[x]); c != 0 {
				return c
			}
			return cmp.Compare(x, y)
		})
		count := p.shown(len(skills))
		for _, s := range skills[:count] {
			sb.WriteString(fmt.Sprintf("  • %-20s %d\n", truncate(s, 20), a.SkillDistribution[s]))
		}
		if len(skills) > count {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-count))
		}
	}

	if len(a.EngineerUtilization) > 0 {
		sb.WriteString("\nUtilization:\n")
		count := p.shown(len(a.EngineerUtilization))
		for _, row := range a.EngineerUtilization[:count] {
			sb.WriteString(fmt.Sprintf("  %-16s %s %3d%%\n", truncate(row.Name, 16), utilizationBar(row.Utilization), row.Utilization))
		}
		if len(a.EngineerUtilization) > count {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(a.EngineerUtilization)-count))
		}
	}

	p.printBox("TEAM ANALYTICS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCapacityReport outputs one engineer's capacity on the report day.
func (p *Printer) PrintCapacityReport(r *allocation.CapacityReport) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Engineer:    %s (#%d)\n", r.Name, r.EngineerID))
	sb.WriteString(fmt.Sprintf("As of:       %s\n", r.AsOf))
	sb.WriteString(fmt.Sprintf("Type:        %s (%d%%)\n", r.EmploymentType, r.MaxCapacity))
	sb.WriteString(fmt.Sprintf("Available:   %d%%", r.AvailableCapacity))
	if r.AvailableCapacity < 0 {
		sb.WriteString("  ⚠ over-allocated")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Utilization: %s %d%%\n", utilizationBar(r.Utilization), r.Utilization))

	if len(r.ActiveAssignments) > 0 {
		sb.WriteString("\nActive assignments:\n")
		for _, a := range r.ActiveAssignments {
			sb.WriteString(fmt.Sprintf("  • project #%d  %d%%", a.ProjectID, a.AllocationPercentage))
			if a.Role != "" {
				sb.WriteString(fmt.Sprintf("  %s", a.Role))
			}
			if a.EndDate != nil {
				sb.WriteString(fmt.Sprintf("  until %s", a.EndDate.Format(types.DateLayout)))
			}
			sb.WriteString("\n")
		}
	}

	p.printBox("CAPACITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidates outputs the engineers offered for a project, skill matches first.
func (p *Printer) PrintCandidates(project *allocation.Project, candidates []allocation.Candidate) {
	if project == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Project:  %s (%s)\n", project.Name, project.Status))
	if len(project.RequiredSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Requires: %s\n", strings.Join(project.RequiredSkills, ", ")))
	}
	sb.WriteString("\n")

	if len(candidates) == 0 {
		sb.WriteString("No engineers available\n")
	}

	ordered := slices.Clone(candidates)
	slices.SortStableFunc(ordered, func(x, y allocation.Candidate) int {
		if x.SkillMatch != y.SkillMatch {
			if x.SkillMatch {
				return -1
			}
			return 1
		}
		return cmp.Compare(y.AvailableCapacity, x.AvailableCapacity)
	})
	for _, c := range ordered {
		mark := " "
		if c.SkillMatch {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %-24s %4d%% free\n", mark, truncate(c.Engineer.Name, 24), c.AvailableCapacity))
	}

	p.printBox("CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEngineers outputs a filtered engineer list.
func (p *Printer) PrintEngineers(engineers []allocation.Engineer) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matched %d engineers:\n", len(engineers)))

	count := p.shown(len(engineers))
	for _, e := range engineers[:count] {
		sb.WriteString(fmt.Sprintf("\n• %s", e.Name))
		if e.Seniority != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", e.Seniority))
		}
		sb.WriteString("\n")
		if len(e.Skills) > 0 {
			sb.WriteString(fmt.Sprintf("  [%s]\n", truncate(strings.Join(e.Skills, ", "), 40)))
		}
	}
	if len(engineers) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more engineers", len(engineers)-count))
	}

	p.printBox("ENGINEERS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProjects outputs a filtered project list.
func (p *Printer) PrintProjects(projects []allocation.Project) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matched %d projects:\n", len(projects)))

	count := p.shown(len(projects))
	for _, pr := range projects[:count] {
		sb.WriteString(fmt.Sprintf("\n• %s [%s]\n", pr.Name, pr.Status))
		if pr.Description != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", truncate(pr.Description, 50)))
		}
	}
	if len(projects) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more projects", len(projects)-count))
	}

	p.printBox("PROJECTS", strings.TrimSuffix(sb.String(), "\n"))
}
