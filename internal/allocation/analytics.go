package allocation

import "github.com/jonathan/resource-manager/internal/types"

// Aggregate computes the team analytics. Engineer utilization rows follow input order and
// the average is 0 when there are no engineers.
func Aggregate(engineers []Engineer, projects []Project, assignments []Assignment) AnalyticsSnapshot {
	snap := AnalyticsSnapshot{
		TotalEngineers:            len(engineers),
		TotalProjects:             len(projects),
		SkillDistribution:         make(map[string]int),
		ProjectStatusDistribution: make(map[types.ProjectStatus]int),
		EngineerUtilization:       make([]EngineerUtilization, 0, len(engineers)),
	}

	for i := range projects {
		switch projects[i].Status {
		case types.StatusActive:
			snap.ActiveProjects++
		case types.StatusCompleted:
			snap.CompletedProjects++
		}
		snap.ProjectStatusDistribution[projects[i].Status]++
	}

	for i := range engineers {
		for _, skill := range engineers[i].Skills {
			snap.SkillDistribution[skill]++
		}
	}

	// One pass over assignments instead of one per engineer.
	totals := make(map[int64]int, len(engineers))
	for i := range assignments {
		totals[assignments[i].EngineerID] += assignments[i].AllocationPercentage
	}

	sum := 0
	for i := range engineers {
		u := clampUtilization(totals[engineers[i].ID])
		snap.EngineerUtilization = append(snap.EngineerUtilization, EngineerUtilization{
			Name:        engineers[i].Name,
			Utilization: u,
		})
		sum += u
	}
	if len(engineers) > 0 {
		snap.AverageUtilization = float64(sum) / float64(len(engineers))
	}

	return snap
}
