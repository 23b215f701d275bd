package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonathan/resource-manager/internal/types"
)

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// UserRecord is a stored user, including the password hash that never leaves the server.
type UserRecord struct {
	types.User
	PasswordHash string `json:"-"`
}

const userColumns = `id, email, name, role, skills, seniority, max_capacity, department, password_hash, created_at`

func scanUser(row pgx.Row) (*UserRecord, error) {
	var (
		u          UserRecord
		role       string
		seniority  *string
		maxCap     *int
		department *string
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.Skills, &seniority, &maxCap, &department,
		&u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = types.Role(role)
	if seniority != nil {
		s := types.Seniority(*seniority)
		u.Seniority = &s
	}
	u.MaxCapacity = maxCap
	u.Department = department
	return &u, nil
}

// CreateUser inserts a user and returns its ID. ErrDuplicate is returned for a taken email.
func (db *DB) CreateUser(ctx context.Context, u *types.User, passwordHash string) (int64, error) {
	var seniority *string
	if u.Seniority != nil {
		s := string(*u.Seniority)
		seniority = &s
	}

	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, role, skills, seniority, max_capacity, department, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		u.Email, u.Name, string(u.Role), skillsParam(u.Skills), seniority, u.MaxCapacity, u.Department, passwordHash,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns nil, nil when absent.
func (db *DB) GetUser(ctx context.Context, id int64) (*UserRecord, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email. Returns nil, nil when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// CheckEmailExists reports whether the email is already registered.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// ListUsers returns all users ordered by ID.
func (db *DB) ListUsers(ctx context.Context) ([]types.User, error) {
	return listUsers(ctx, db.pool)
}

func listUsers(ctx context.Context, q querier) ([]types.User, error) {
	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u.User)
	}
	return users, rows.Err()
}

// DeleteUser removes a user and, through the foreign keys, their assignments.
func (db *DB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
