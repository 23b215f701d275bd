// Package main provides the resource_manager CLI: the HTTP API server plus capacity,
// utilization and skill-match reports over a snapshot of engineers, projects and assignments.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resource-manager/internal/config"
	"github.com/jonathan/resource-manager/internal/logging"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resource_manager",
	Short: "Engineering Resource Manager",
	Long: "Engineering Resource Manager tracks engineers, projects and assignments. It serves the REST API " +
		"and reports capacity, utilization and skill matches from a snapshot file, the database or a running API.",
	PersistentPreRunE: resolveOptions,
	SilenceUsage:      true,
}

// cliOptions holds every flag value. Kept in one struct so tests can reset it between runs.
type cliOptions struct {
	configPath  string
	snapshot    string
	databaseURL string
	apiURL      string
	email       string
	password    string
	asOf        string
	jsonOut     bool
	verbose     bool
	limit       int

	port   int
	search string
	skill  string
	status string
}

var (
	opts cliOptions

	// resolved is the flag values merged over the optional config file.
	resolved config.Config
	log      = logging.Discard()
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a JSON config file")
	pf.StringVar(&opts.snapshot, "snapshot", "", "Snapshot JSON file to report on")
	pf.StringVar(&opts.databaseURL, "database-url", "", "Database URL (defaults to DATABASE_URL)")
	pf.StringVar(&opts.apiURL, "api-url", "", "Base URL of a running API server")
	pf.StringVar(&opts.email, "email", "", "Login email for --api-url")
	pf.StringVar(&opts.password, "password", "", "Login password for --api-url (defaults to RESOURCE_MANAGER_PASSWORD)")
	pf.StringVar(&opts.asOf, "as-of", "", "Reference date for capacity (YYYY-MM-DD, defaults to today)")
	pf.BoolVar(&opts.jsonOut, "json", false, "Print raw JSON instead of the formatted report")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	pf.IntVar(&opts.limit, "limit", 5, "Rows shown per list in formatted output (0 for all)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveOptions merges flags over the config file, validates the result and sets up logging.
func resolveOptions(_ *cobra.Command, _ []string) error {
	fromFlags := config.Config{
		Snapshot:    opts.snapshot,
		DatabaseURL: opts.databaseURL,
		APIURL:      opts.apiURL,
		Email:       opts.email,
		Password:    opts.password,
		AsOf:        opts.asOf,
		Port:        opts.port,
		Verbose:     opts.verbose,
	}

	var defaults config.Config
	if opts.configPath != "" {
		fileCfg, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		defaults = *fileCfg
	}
	resolved = fromFlags.MergeWithDefaults(defaults)
	resolved.Verbose = opts.verbose || defaults.Verbose
	if resolved.Password == "" {
		resolved.Password = config.EnvString("RESOURCE_MANAGER_PASSWORD", "")
	}

	if err := resolved.Validate(); err != nil {
		return err
	}

	logOpts := logging.OptionsFromEnv("resource_manager")
	if resolved.Verbose {
		logOpts.Level = logrus.DebugLevel.String()
	}
	log = logging.New(logOpts)
	return nil
}
