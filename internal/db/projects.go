package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jonathan/resource-manager/internal/types"
)

const projectColumns = `p.id, p.name, p.description, p.start_date, p.end_date, p.required_skills, p.team_size, p.status, p.manager_id`

func scanProject(row pgx.Row) (*types.Project, error) {
	var (
		p          types.Project
		start, end pgtype.Date
		status     string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &start, &end, &p.RequiredSkills, &p.TeamSize, &status, &p.ManagerID)
	if err != nil {
		return nil, err
	}
	p.StartDate = dateFromPG(start)
	p.EndDate = dateFromPG(end)
	p.Status = types.ProjectStatus(status)
	return &p, nil
}

func collectProjects(rows pgx.Rows) ([]types.Project, error) {
	defer rows.Close()
	projects := make([]types.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// CreateProject inserts a project and returns its ID.
func (db *DB) CreateProject(ctx context.Context, p *types.Project) (int64, error) {
	status := p.Status
	if status == "" {
		status = types.StatusPlanning
	}
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO projects (name, description, start_date, end_date, required_skills, team_size, status, manager_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		p.Name, p.Description, dateParam(p.StartDate), dateParam(p.EndDate),
		skillsParam(p.RequiredSkills), p.TeamSize, string(status), p.ManagerID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create project: %w", err)
	}
	return id, nil
}

// GetProject retrieves a project by ID. Returns nil, nil when absent.
func (db *DB) GetProject(ctx context.Context, id int64) (*types.Project, error) {
	p, err := scanProject(db.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects p WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// ListProjects returns every project ordered by ID.
func (db *DB) ListProjects(ctx context.Context) ([]types.Project, error) {
	return listProjects(ctx, db.pool)
}

func listProjects(ctx context.Context, q querier) ([]types.Project, error) {
	rows, err := q.Query(ctx, `SELECT `+projectColumns+` FROM projects p ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return collectProjects(rows)
}

// ListProjectsForEngineer returns the projects the engineer holds at least one assignment on.
func (db *DB) ListProjectsForEngineer(ctx context.Context, engineerID int64) ([]types.Project, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects p
		 WHERE EXISTS (SELECT 1 FROM assignments a WHERE a.project_id = p.id AND a.engineer_id = $1)
		 ORDER BY p.id`, engineerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for engineer: %w", err)
	}
	return collectProjects(rows)
}

// UpdateProject overwrites every mutable column of an existing project.
// Returns false when the project does not exist.
func (db *DB) UpdateProject(ctx context.Context, p *types.Project) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE projects SET name = $2, description = $3, start_date = $4, end_date = $5,
		   required_skills = $6, team_size = $7, status = $8, manager_id = $9
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, dateParam(p.StartDate), dateParam(p.EndDate),
		skillsParam(p.RequiredSkills), p.TeamSize, string(p.Status), p.ManagerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteProject removes a project and its assignments.
func (db *DB) DeleteProject(ctx context.Context, id int64) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
