package db

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jonathan/resource-manager/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])

	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i], "migrations must be applied in filename order")
	}
}

func TestMigrationFiles_CreateTables(t *testing.T) {
	body, err := migrationFiles.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)

	sql := string(body)
	for _, table := range []string{"users", "projects", "assignments"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, sql, "allocation_percentage")
}

func TestDateParam(t *testing.T) {
	assert.Nil(t, dateParam(nil))
	assert.Nil(t, dateParam(&types.Date{}))

	d := types.NewDate(2024, time.March, 1)
	assert.Equal(t, d.Time, dateParam(d))
}

func TestDateFromPG(t *testing.T) {
	assert.Nil(t, dateFromPG(pgtype.Date{}))

	ts := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	d := dateFromPG(pgtype.Date{Time: ts, Valid: true})
	require.NotNil(t, d)
	assert.True(t, ts.Equal(d.Time))
}

func TestSkillsParam(t *testing.T) {
	assert.Equal(t, []string{}, skillsParam(nil))
	assert.Equal(t, []string{"Go"}, skillsParam([]string{"Go"}))
}
