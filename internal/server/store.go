package server

import (
	"context"

	"github.com/jonathan/resource-manager/internal/db"
	"github.com/jonathan/resource-manager/internal/types"
)

// Store is the persistence the HTTP layer depends on. *db.DB implements it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, u *types.User, passwordHash string) (int64, error)
	GetUser(ctx context.Context, id int64) (*db.UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*db.UserRecord, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]types.User, error)

	CreateProject(ctx context.Context, p *types.Project) (int64, error)
	GetProject(ctx context.Context, id int64) (*types.Project, error)
	ListProjects(ctx context.Context) ([]types.Project, error)
	ListProjectsForEngineer(ctx context.Context, engineerID int64) ([]types.Project, error)
	UpdateProject(ctx context.Context, p *types.Project) (bool, error)
	DeleteProject(ctx context.Context, id int64) (bool, error)

	CreateAssignment(ctx context.Context, a *types.Assignment) (int64, error)
	GetAssignment(ctx context.Context, id int64) (*types.Assignment, error)
	ListAssignments(ctx context.Context) ([]types.Assignment, error)
	ListAssignmentsByEngineer(ctx context.Context, engineerID int64) ([]types.Assignment, error)
	UpdateAssignment(ctx context.Context, a *types.Assignment) (bool, error)
	DeleteAssignment(ctx context.Context, id int64) (bool, error)
	HasAssignment(ctx context.Context, engineerID, projectID int64) (bool, error)

	LoadSnapshot(ctx context.Context) (*types.Snapshot, error)
}

var _ Store = (*db.DB)(nil)
