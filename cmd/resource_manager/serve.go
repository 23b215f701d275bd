package main

import (
	"fmt"

	"github.com/jonathan/resource-manager/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the users, projects, assignments, capacity and analytics endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&opts.port, "port", 0, "Port to listen on (default 8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	url := databaseURL(resolved)
	if url == "" {
		return fmt.Errorf("DATABASE_URL not set (set DATABASE_URL environment variable or use --database-url flag)")
	}

	srv, err := server.New(server.Config{
		Port:        resolved.Port,
		DatabaseURL: url,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
