package allocation

import "strings"

// FilterEntities applies the search filters to engineers and projects independently.
//
// Search matches engineer name or email, and project name or description. Skill matches any
// engineer skill containing it. Text comparisons are case-insensitive substring matches; Status
// is an exact match against project status. Within each entity type the set filters are ANDed.
func FilterEntities(engineers []Engineer, projects []Project, f Filter) ([]Engineer, []Project) {
	search := strings.ToLower(f.Search)
	skill := strings.ToLower(f.Skill)

	outEngineers := make([]Engineer, 0, len(engineers))
	for i := range engineers {
		e := &engineers[i]
		if search != "" && !containsFold(e.Name, search) && !containsFold(e.Email, search) {
			continue
		}
		if skill != "" && !anySkillContains(e.Skills, skill) {
			continue
		}
		outEngineers = append(outEngineers, *e)
	}

	outProjects := make([]Project, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		if search != "" && !containsFold(p.Name, search) && !containsFold(p.Description, search) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		outProjects = append(outProjects, *p)
	}

	return outEngineers, outProjects
}

// containsFold reports whether lowerNeedle occurs in s, ignoring case.
func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

func anySkillContains(skills []string, lowerNeedle string) bool {
	for _, s := range skills {
		if containsFold(s, lowerNeedle) {
			return true
		}
	}
	return false
}
