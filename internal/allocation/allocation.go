// Package allocation derives capacity, skill-match and utilization figures from snapshots of
// engineers, projects and assignments.
//
// Every function is pure: inputs are read-only snapshots, nothing is cached between calls and
// no function returns an error. Absent numeric fields count as 0 and absent collections as empty;
// that resolution happens once, in the Normalize functions, before data reaches the engine.
package allocation

import "github.com/jonathan/resource-manager/internal/types"

// Engineer is a user with the engineer role, with optional fields resolved.
type Engineer struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Skills      []string `json:"skills"`
	Seniority   string   `json:"seniority,omitempty"`
	MaxCapacity int      `json:"maxCapacity"`
	Department  string   `json:"department,omitempty"`
}

// Project is a project with optional fields resolved.
type Project struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description,omitempty"`
	RequiredSkills []string            `json:"requiredSkills"`
	Status         types.ProjectStatus `json:"status"`
	TeamSize       int                 `json:"teamSize,omitempty"`
	StartDate      *types.Date         `json:"startDate,omitempty"`
	EndDate        *types.Date         `json:"endDate,omitempty"`
}

// Assignment is an assignment with optional fields resolved. EndDate stays nil when absent
// because an open-ended assignment is always active.
type Assignment struct {
	ID                   int64      `json:"id"`
	EngineerID           int64      `json:"engineerId"`
	ProjectID            int64      `json:"projectId"`
	AllocationPercentage int        `json:"allocationPercentage"`
	StartDate            *types.Date `json:"startDate,omitempty"`
	EndDate              *types.Date `json:"endDate,omitempty"`
	Role                 string     `json:"role,omitempty"`
}

// EngineerUtilization is one row of the team utilization chart.
type EngineerUtilization struct {
	Name        string `json:"name"`
	Utilization int    `json:"utilization"`
}

// AnalyticsSnapshot aggregates team-wide figures.
type AnalyticsSnapshot struct {
	TotalEngineers            int                         `json:"totalEngineers"`
	TotalProjects             int                         `json:"totalProjects"`
	ActiveProjects            int                         `json:"activeProjects"`
	CompletedProjects         int                         `json:"completedProjects"`
	AverageUtilization        float64                     `json:"averageUtilization"`
	SkillDistribution         map[string]int              `json:"skillDistribution"`
	ProjectStatusDistribution map[types.ProjectStatus]int `json:"projectStatusDistribution"`
	EngineerUtilization       []EngineerUtilization       `json:"engineerUtilization"`
}

// Filter holds the search inputs of the analytics and listing views. Empty values disable
// the corresponding axis.
type Filter struct {
	Search string
	Skill  string
	Status types.ProjectStatus
}

// Candidate is an engineer as offered when assigning to a project.
type Candidate struct {
	Engineer          Engineer `json:"engineer"`
	AvailableCapacity int      `json:"availableCapacity"`
	SkillMatch        bool     `json:"skillMatch"`
}

// Snapshot is a normalized set of collections.
type Snapshot struct {
	Engineers   []Engineer
	Projects    []Project
	Assignments []Assignment
}
