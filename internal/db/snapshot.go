package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resource-manager/internal/types"
)

// snapshotTxOptions gives the three reads of LoadSnapshot one point-in-time view, so an
// assignment never refers to a project or engineer missing from the same snapshot.
var snapshotTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// LoadSnapshot reads users, projects and assignments inside one read-only transaction.
func (db *DB) LoadSnapshot(ctx context.Context) (*types.Snapshot, error) {
	tx, err := db.pool.BeginTx(ctx, snapshotTxOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return readSnapshot(ctx, tx)
}

// readSnapshot runs the reads one after another; a transaction's connection serves a
// single query at a time.
func readSnapshot(ctx context.Context, q querier) (*types.Snapshot, error) {
	users, err := listUsers(ctx, q)
	if err != nil {
		return nil, err
	}
	projects, err := listProjects(ctx, q)
	if err != nil {
		return nil, err
	}
	assignments, err := listAssignments(ctx, q)
	if err != nil {
		return nil, err
	}
	return &types.Snapshot{Users: users, Projects: projects, Assignments: assignments}, nil
}
