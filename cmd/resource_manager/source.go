package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resource-manager/internal/allocation"
	"github.com/jonathan/resource-manager/internal/client"
	"github.com/jonathan/resource-manager/internal/config"
	"github.com/jonathan/resource-manager/internal/db"
	"github.com/jonathan/resource-manager/internal/schemas"
	"github.com/jonathan/resource-manager/internal/types"
	"github.com/sirupsen/logrus"
)

// databaseURL falls back to DATABASE_URL when no flag or config value is given.
func databaseURL(cfg config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return config.EnvString("DATABASE_URL", "")
}

// loadSnapshot reads the raw collections from whichever source is configured:
// a snapshot file, a running API or the database, in that order of preference.
func loadSnapshot(ctx context.Context, cfg config.Config) (*types.Snapshot, error) {
	switch {
	case cfg.Snapshot != "":
		log.WithField("file", cfg.Snapshot).Debug("loading snapshot file")
		return schemas.LoadSnapshotFile(cfg.Snapshot)

	case cfg.APIURL != "":
		c, err := apiClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer c.Logout()
		log.WithField("api_url", cfg.APIURL).Debug("fetching snapshot from API")
		snap, err := c.FetchSnapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
		}
		return snap, nil
	}

	url := databaseURL(cfg)
	if url == "" {
		return nil, fmt.Errorf("no data source: use --snapshot, --api-url or --database-url (or set DATABASE_URL)")
	}
	database, err := db.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	log.Debug("loading snapshot from database")
	snap, err := database.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return snap, nil
}

// loadNormalized loads the configured source and resolves optional fields.
func loadNormalized(ctx context.Context, cfg config.Config) (allocation.Snapshot, error) {
	raw, err := loadSnapshot(ctx, cfg)
	if err != nil {
		return allocation.Snapshot{}, err
	}
	snap := allocation.NewSnapshot(raw)
	log.WithFields(logrus.Fields{
		"engineers":   len(snap.Engineers),
		"projects":    len(snap.Projects),
		"assignments": len(snap.Assignments),
	}).Debug("snapshot loaded")
	return snap, nil
}

// apiClient logs in to the configured API.
func apiClient(ctx context.Context, cfg config.Config) (*client.Client, error) {
	c := client.New(cfg.APIURL, client.WithLogger(log))
	if _, err := c.Login(ctx, cfg.Email, cfg.Password); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return c, nil
}
