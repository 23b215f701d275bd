package allocation

import "time"

// HasMatchingSkill reports whether the engineer has at least one of the project's required
// skills. Skill names are compared exactly. A nil project or an empty skill list never matches.
func HasMatchingSkill(engineer Engineer, project *Project) bool {
	if project == nil || len(project.RequiredSkills) == 0 || len(engineer.Skills) == 0 {
		return false
	}
	have := make(map[string]struct{}, len(engineer.Skills))
	for _, s := range engineer.Skills {
		have[s] = struct{}{}
	}
	for _, s := range project.RequiredSkills {
		if _, ok := have[s]; ok {
			return true
		}
	}
	return false
}

// MatchedSkills returns the project's required skills the engineer has, in project order.
func MatchedSkills(engineer Engineer, project *Project) []string {
	matched := make([]string, 0)
	if project == nil {
		return matched
	}
	have := make(map[string]struct{}, len(engineer.Skills))
	for _, s := range engineer.Skills {
		have[s] = struct{}{}
	}
	for _, s := range project.RequiredSkills {
		if _, ok := have[s]; ok {
			matched = append(matched, s)
		}
	}
	return matched
}

// Candidates lists every engineer with their available capacity on asOf and whether they
// match the project's skills, in input order. project may be nil when none is selected yet.
func Candidates(project *Project, engineers []Engineer, assignments []Assignment, asOf time.Time) []Candidate {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	out := make([]Candidate, len(engineers))
	for i := range engineers {
		out[i] = Candidate{
			Engineer:          engineers[i],
			AvailableCapacity: AvailableCapacity(engineers[i], assignments, asOf),
			SkillMatch:        HasMatchingSkill(engineers[i], project),
		}
	}
	return out
}

// FindProject returns the project with the given id, or nil.
func FindProject(projects []Project, id int64) *Project {
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i]
		}
	}
	return nil
}

// FindEngineer returns the engineer with the given id, or nil.
func FindEngineer(engineers []Engineer, id int64) *Engineer {
	for i := range engineers {
		if engineers[i].ID == id {
			return &engineers[i]
		}
	}
	return nil
}
