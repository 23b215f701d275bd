package allocation

import (
	"strings"

	"github.com/jonathan/resource-manager/internal/types"
)

// NormalizeEngineer resolves the optional fields of u. A missing maxCapacity becomes 0.
func NormalizeEngineer(u types.User) Engineer {
	e := Engineer{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Skills: nonNil(u.Skills),
	}
	if u.Seniority != nil {
		e.Seniority = string(*u.Seniority)
	}
	if u.MaxCapacity != nil {
		e.MaxCapacity = *u.MaxCapacity
	}
	if u.Department != nil {
		e.Department = *u.Department
	}
	return e
}

// NormalizeProject resolves the optional fields of p.
func NormalizeProject(p types.Project) Project {
	n := Project{
		ID:             p.ID,
		Name:           p.Name,
		RequiredSkills: nonNil(p.RequiredSkills),
		Status:         p.Status,
		StartDate:      p.StartDate.Clone(),
		EndDate:        p.EndDate.Clone(),
	}
	if p.Description != nil {
		n.Description = *p.Description
	}
	if p.TeamSize != nil {
		n.TeamSize = *p.TeamSize
	}
	return n
}

// NormalizeAssignment resolves the optional fields of a. A missing allocation becomes 0.
func NormalizeAssignment(a types.Assignment) Assignment {
	n := Assignment{
		ID:         a.ID,
		EngineerID: a.EngineerID,
		ProjectID:  a.ProjectID,
		StartDate:  a.StartDate.Clone(),
		EndDate:    a.EndDate.Clone(),
	}
	if a.AllocationPercentage != nil {
		n.AllocationPercentage = *a.AllocationPercentage
	}
	if a.Role != nil {
		n.Role = *a.Role
	}
	return n
}

// NormalizeEngineers keeps the users with the engineer role, in input order.
func NormalizeEngineers(users []types.User) []Engineer {
	engineers := make([]Engineer, 0, len(users))
	for i := range users {
		if users[i].IsEngineer() {
			engineers = append(engineers, NormalizeEngineer(users[i]))
		}
	}
	return engineers
}

// NormalizeProjects normalizes every project.
func NormalizeProjects(projects []types.Project) []Project {
	out := make([]Project, len(projects))
	for i := range projects {
		out[i] = NormalizeProject(projects[i])
	}
	return out
}

// NormalizeAssignments normalizes every assignment.
func NormalizeAssignments(assignments []types.Assignment) []Assignment {
	out := make([]Assignment, len(assignments))
	for i := range assignments {
		out[i] = NormalizeAssignment(assignments[i])
	}
	return out
}

// NewSnapshot normalizes a raw snapshot. A nil snapshot yields empty collections.
func NewSnapshot(raw *types.Snapshot) Snapshot {
	if raw == nil {
		return Snapshot{Engineers: []Engineer{}, Projects: []Project{}, Assignments: []Assignment{}}
	}
	return Snapshot{
		Engineers:   NormalizeEngineers(raw.Users),
		Projects:    NormalizeProjects(raw.Projects),
		Assignments: NormalizeAssignments(raw.Assignments),
	}
}

// CleanSkills trims skill names and drops blanks and exact duplicates, keeping first-seen order.
// Used on write so stored skill lists compare cleanly.
func CleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
