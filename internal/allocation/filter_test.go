package allocation

import (
	"testing"

	"github.com/jonathan/resource-manager/internal/types"
	"github.com/stretchr/testify/assert"
)

func filterFixtures() ([]Engineer, []Project) {
	engineers := []Engineer{
		{ID: 1, Name: "Alice Smith", Email: "alice@corp.io", Skills: []string{"React", "Go"}},
		{ID: 2, Name: "Bob Jones", Email: "bob@corp.io", Skills: []string{"Python"}},
		{ID: 3, Name: "Carol", Email: "carol.react@corp.io", Skills: []string{"Java"}},
	}
	projects := []Project{
		{ID: 1, Name: "Billing Revamp", Description: "Move billing to React", Status: types.StatusActive},
		{ID: 2, Name: "Data Lake", Status: types.StatusPlanning},
		{ID: 3, Name: "Mobile App", Description: "react native client", Status: types.StatusCompleted},
	}
	return engineers, projects
}

func engineerIDs(es []Engineer) []int64 {
	ids := make([]int64, len(es))
	for i := range es {
		ids[i] = es[i].ID
	}
	return ids
}

func projectIDs(ps []Project) []int64 {
	ids := make([]int64, len(ps))
	for i := range ps {
		ids[i] = ps[i].ID
	}
	return ids
}

func TestFilterEntities(t *testing.T) {
	engineers, projects := filterFixtures()

	tests := []struct {
		name      string
		filter    Filter
		engineers []int64
		projects  []int64
	}{
		{
			name:      "no filters keeps everything",
			filter:    Filter{},
			engineers: []int64{1, 2, 3},
			projects:  []int64{1, 2, 3},
		},
		{
			name:      "search matches name case-insensitively",
			filter:    Filter{Search: "BOB"},
			engineers: []int64{2},
			projects:  []int64{},
		},
		{
			name:      "search matches email and project description",
			filter:    Filter{Search: "react"},
			engineers: []int64{3},
			projects:  []int64{1, 3},
		},
		{
			name:      "skill filter alone matches skill substrings",
			filter:    Filter{Skill: "react"},
			engineers: []int64{1},
			projects:  []int64{1, 2, 3},
		},
		{
			name:      "search and skill are ANDed",
			filter:    Filter{Search: "corp.io", Skill: "py"},
			engineers: []int64{2},
			projects:  []int64{},
		},
		{
			name:      "status is exact",
			filter:    Filter{Status: types.StatusPlanning},
			engineers: []int64{1, 2, 3},
			projects:  []int64{2},
		},
		{
			name:      "search and status are ANDed",
			filter:    Filter{Search: "react", Status: types.StatusCompleted},
			engineers: []int64{3},
			projects:  []int64{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotEngineers, gotProjects := FilterEntities(engineers, projects, tt.filter)
			assert.Equal(t, tt.engineers, engineerIDs(gotEngineers))
			assert.Equal(t, tt.projects, projectIDs(gotProjects))
		})
	}
}

func TestFilterEntities_EmptyInputs(t *testing.T) {
	es, ps := FilterEntities(nil, nil, Filter{Search: "x"})
	assert.NotNil(t, es)
	assert.NotNil(t, ps)
	assert.Empty(t, es)
	assert.Empty(t, ps)
}
