package allocation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasMatchingSkill(t *testing.T) {
	tests := []struct {
		name     string
		skills   []string
		project  *Project
		expected bool
	}{
		{
			name:     "shared skill",
			skills:   []string{"Go", "React"},
			project:  &Project{RequiredSkills: []string{"React", "Python"}},
			expected: true,
		},
		{
			name:     "no overlap",
			skills:   []string{"Go"},
			project:  &Project{RequiredSkills: []string{"Python"}},
			expected: false,
		},
		{
			name:     "comparison is exact",
			skills:   []string{"react"},
			project:  &Project{RequiredSkills: []string{"React"}},
			expected: false,
		},
		{
			name:     "nil project",
			skills:   []string{"Go"},
			project:  nil,
			expected: false,
		},
		{
			name:     "project without required skills",
			skills:   []string{"Go"},
			project:  &Project{},
			expected: false,
		},
		{
			name:     "engineer without skills",
			skills:   nil,
			project:  &Project{RequiredSkills: []string{"Go"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasMatchingSkill(Engineer{Skills: tt.skills}, tt.project))
		})
	}
}

func TestHasMatchingSkill_OrderIndependent(t *testing.T) {
	a := Engineer{Skills: []string{"Go", "Rust", "SQL"}}
	b := Engineer{Skills: []string{"SQL", "Go", "Rust"}}
	p1 := &Project{RequiredSkills: []string{"Java", "SQL"}}
	p2 := &Project{RequiredSkills: []string{"SQL", "Java"}}

	expected := HasMatchingSkill(a, p1)
	assert.True(t, expected)
	assert.Equal(t, expected, HasMatchingSkill(b, p1))
	assert.Equal(t, expected, HasMatchingSkill(a, p2))
	assert.Equal(t, expected, HasMatchingSkill(b, p2))
}

func TestMatchedSkills(t *testing.T) {
	e := Engineer{Skills: []string{"Go", "React", "SQL"}}
	p := &Project{RequiredSkills: []string{"SQL", "Kotlin", "Go"}}

	assert.Equal(t, []string{"SQL", "Go"}, MatchedSkills(e, p))
	assert.Empty(t, MatchedSkills(e, nil))
}

func TestCandidates(t *testing.T) {
	asOf := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	engineers := []Engineer{
		{ID: 1, Name: "Ada", Skills: []string{"Go"}, MaxCapacity: 100},
		{ID: 2, Name: "Linus", Skills: []string{"C"}, MaxCapacity: 50},
	}
	assignments := []Assignment{
		{EngineerID: 1, AllocationPercentage: 60},
		{EngineerID: 2, AllocationPercentage: 80},
	}
	project := &Project{ID: 9, RequiredSkills: []string{"Go"}}

	got := Candidates(project, engineers, assignments, asOf)
	require.Len(t, got, 2)

	assert.Equal(t, "Ada", got[0].Engineer.Name)
	assert.Equal(t, 40, got[0].AvailableCapacity)
	assert.True(t, got[0].SkillMatch)

	assert.Equal(t, "Linus", got[1].Engineer.Name)
	assert.Equal(t, -30, got[1].AvailableCapacity)
	assert.False(t, got[1].SkillMatch)
}

func TestCandidates_NoProjectSelected(t *testing.T) {
	engineers := []Engineer{{ID: 1, Skills: []string{"Go"}, MaxCapacity: 100}}

	got := Candidates(nil, engineers, nil, time.Time{})
	require.Len(t, got, 1)
	assert.False(t, got[0].SkillMatch)
	assert.Equal(t, 100, got[0].AvailableCapacity)
}

func TestFindProjectAndEngineer(t *testing.T) {
	projects := []Project{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	engineers := []Engineer{{ID: 5, Name: "x"}}

	require.NotNil(t, FindProject(projects, 2))
	assert.Equal(t, "b", FindProject(projects, 2).Name)
	assert.Nil(t, FindProject(projects, 3))
	require.NotNil(t, FindEngineer(engineers, 5))
	assert.Nil(t, FindEngineer(engineers, 6))
}
