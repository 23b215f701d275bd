package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jonathan/resource-manager/internal/types"
)

// Engineer and project names are joined in so list views need no second lookup.
const assignmentSelect = `SELECT a.id, a.engineer_id, a.project_id, a.allocation_percentage,
	a.start_date, a.end_date, a.role, u.name, p.name
	FROM assignments a
	JOIN users u ON u.id = a.engineer_id
	JOIN projects p ON p.id = a.project_id`

func scanAssignment(row pgx.Row) (*types.Assignment, error) {
	var (
		a          types.Assignment
		start, end pgtype.Date
	)
	err := row.Scan(&a.ID, &a.EngineerID, &a.ProjectID, &a.AllocationPercentage,
		&start, &end, &a.Role, &a.EngineerName, &a.ProjectName)
	if err != nil {
		return nil, err
	}
	a.StartDate = dateFromPG(start)
	a.EndDate = dateFromPG(end)
	return &a, nil
}

func collectAssignments(rows pgx.Rows) ([]types.Assignment, error) {
	defer rows.Close()
	assignments := make([]types.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

// CreateAssignment inserts an assignment and returns its ID.
func (db *DB) CreateAssignment(ctx context.Context, a *types.Assignment) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO assignments (engineer_id, project_id, allocation_percentage, start_date, end_date, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		a.EngineerID, a.ProjectID, a.AllocationPercentage, dateParam(a.StartDate), dateParam(a.EndDate), a.Role,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create assignment: %w", err)
	}
	return id, nil
}

// GetAssignment retrieves an assignment by ID. Returns nil, nil when absent.
func (db *DB) GetAssignment(ctx context.Context, id int64) (*types.Assignment, error) {
	a, err := scanAssignment(db.pool.QueryRow(ctx, assignmentSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return a, nil
}

// ListAssignments returns every assignment ordered by ID.
func (db *DB) ListAssignments(ctx context.Context) ([]types.Assignment, error) {
	return listAssignments(ctx, db.pool)
}

func listAssignments(ctx context.Context, q querier) ([]types.Assignment, error) {
	rows, err := q.Query(ctx, assignmentSelect+` ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return collectAssignments(rows)
}

// ListAssignmentsByEngineer returns the assignments held by one engineer.
func (db *DB) ListAssignmentsByEngineer(ctx context.Context, engineerID int64) ([]types.Assignment, error) {
	rows, err := db.pool.Query(ctx, assignmentSelect+` WHERE a.engineer_id = $1 ORDER BY a.id`, engineerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for engineer: %w", err)
	}
	return collectAssignments(rows)
}

// UpdateAssignment overwrites the mutable columns of an assignment.
func (db *DB) UpdateAssignment(ctx context.Context, a *types.Assignment) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE assignments SET engineer_id = $2, project_id = $3, allocation_percentage = $4,
		   start_date = $5, end_date = $6, role = $7
		 WHERE id = $1`,
		a.ID, a.EngineerID, a.ProjectID, a.AllocationPercentage, dateParam(a.StartDate), dateParam(a.EndDate), a.Role,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update assignment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAssignment removes an assignment.
func (db *DB) DeleteAssignment(ctx context.Context, id int64) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete assignment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// HasAssignment reports whether the engineer is assigned to the project.
func (db *DB) HasAssignment(ctx context.Context, engineerID, projectID int64) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM assignments WHERE engineer_id = $1 AND project_id = $2)`,
		engineerID, projectID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return exists, nil
}
