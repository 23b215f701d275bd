package allocation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonathan/resource-manager/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestNormalizeEngineer_Defaults(t *testing.T) {
	e := NormalizeEngineer(types.User{ID: 4, Name: "N", Email: "n@x.io", Role: types.RoleEngineer})

	assert.Equal(t, 0, e.MaxCapacity)
	assert.NotNil(t, e.Skills)
	assert.Empty(t, e.Skills)
	assert.Equal(t, "", e.Seniority)
}

func TestNormalizeEngineer_Populated(t *testing.T) {
	senior := types.SenioritySenior
	e := NormalizeEngineer(types.User{
		ID:          4,
		Role:        types.RoleEngineer,
		Skills:      []string{"Go"},
		Seniority:   &senior,
		MaxCapacity: intPtr(50),
		Department:  strPtr("Platform"),
	})

	assert.Equal(t, 50, e.MaxCapacity)
	assert.Equal(t, "senior", e.Seniority)
	assert.Equal(t, "Platform", e.Department)
	assert.Equal(t, []string{"Go"}, e.Skills)
}

func TestNormalizeAssignment(t *testing.T) {
	a := NormalizeAssignment(types.Assignment{
		ID:         1,
		EngineerID: 2,
		ProjectID:  3,
		EndDate:    types.NewDate(2026, time.May, 1),
	})

	assert.Equal(t, 0, a.AllocationPercentage)
	assert.Nil(t, a.StartDate)
	require.NotNil(t, a.EndDate)
	assert.Equal(t, time.May, a.EndDate.Month())

	a = NormalizeAssignment(types.Assignment{AllocationPercentage: intPtr(40), Role: strPtr("Tech Lead")})
	assert.Equal(t, 40, a.AllocationPercentage)
	assert.Equal(t, "Tech Lead", a.Role)
}

func TestNormalized_DatesUseCalendarFormat(t *testing.T) {
	p := NormalizeProject(types.Project{ID: 1, EndDate: types.NewDate(2024, time.June, 30)})
	a := NormalizeAssignment(types.Assignment{ID: 2, StartDate: types.NewDate(2024, time.January, 1)})

	body, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"endDate":"2024-06-30"`)
	assert.NotContains(t, string(body), "startDate")

	body, err = json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"startDate":"2024-01-01"`)
}

func TestNormalizeProject(t *testing.T) {
	p := NormalizeProject(types.Project{ID: 1, Name: "P", Status: types.StatusActive})
	assert.Equal(t, "", p.Description)
	assert.NotNil(t, p.RequiredSkills)
	assert.Nil(t, p.EndDate)

	p = NormalizeProject(types.Project{Description: strPtr("d"), TeamSize: intPtr(4)})
	assert.Equal(t, "d", p.Description)
	assert.Equal(t, 4, p.TeamSize)
}

func TestNewSnapshot_KeepsOnlyEngineers(t *testing.T) {
	raw := &types.Snapshot{
		Users: []types.User{
			{ID: 1, Role: types.RoleManager, Name: "M"},
			{ID: 2, Role: types.RoleEngineer, Name: "E1"},
			{ID: 3, Role: types.RoleEngineer, Name: "E2"},
		},
		Projects:    []types.Project{{ID: 1}},
		Assignments: []types.Assignment{{ID: 1, EngineerID: 2, ProjectID: 1}},
	}

	snap := NewSnapshot(raw)

	require.Len(t, snap.Engineers, 2)
	assert.Equal(t, "E1", snap.Engineers[0].Name)
	assert.Equal(t, "E2", snap.Engineers[1].Name)
	assert.Len(t, snap.Projects, 1)
	assert.Len(t, snap.Assignments, 1)
}

func TestNewSnapshot_Nil(t *testing.T) {
	snap := NewSnapshot(nil)
	assert.Empty(t, snap.Engineers)
	assert.Empty(t, snap.Projects)
	assert.Empty(t, snap.Assignments)

	a := Aggregate(snap.Engineers, snap.Projects, snap.Assignments)
	assert.Equal(t, 0.0, a.AverageUtilization)
}

func TestCleanSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "React", "go"}, CleanSkills([]string{" Go", "React", "", "Go ", "go"}))
	assert.Empty(t, CleanSkills(nil))
}
