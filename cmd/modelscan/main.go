package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"modelscan/internal/app"
	"modelscan/internal/config"
	"modelscan/internal/database"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to built-in defaults
// when none exists.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if errors.Is(err, os.ErrNotExist) {
		return config.NewConfig(defaults["base_dir"]), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// readPassword prompts for a database password on stdin without echo.
func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Database password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}

var rootCmd = &cobra.Command{
	Use:   "modelscan",
	Short: "Import a 3D model library into its catalog database",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Create config with defaults
		cfg := config.NewConfig(defaults["base_dir"])

		// Initialize config file
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Log Dir: %s\n", cfg.LogDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Read config
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		// Display config
		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Log Dir:            %s\n", cfg.LogDir)
		fmt.Printf("Workers:            %d\n", cfg.Scan.Workers)
		fmt.Printf("Nested Collections: %t\n", cfg.Scan.NestedCollections)
		fmt.Printf("Ignore Patterns:    %v\n", cfg.Scan.Ignore)
		fmt.Printf("Max Open Conns:     %d\n", cfg.Database.MaxOpenConns)
		fmt.Printf("Max Idle Conns:     %d\n", cfg.Database.MaxIdleConns)
		return nil
	},
}

// scan command
var scanCmd = &cobra.Command{
	Use:   "scan ROOT LIBRARY_ID DB_URI",
	Short: "Walk a library tree and insert catalog rows",
	Long: `Walk a creator/collection/model library tree rooted at ROOT and insert
catalog rows for every model directory and file into the database at
DB_URI. Every model row is stamped with LIBRARY_ID. The catalog schema
must already exist; this tool never creates or migrates it.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		askPassword, _ := cmd.Flags().GetBool("ask-password")

		root := args[0]
		libraryID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("library id %q is not an integer: %w", args[1], err)
		}
		dbURI := args[2]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Flags override config values.
		if cmd.Flags().Changed("workers") {
			cfg.Scan.Workers, _ = cmd.Flags().GetInt("workers")
		}
		if cmd.Flags().Changed("nested-collections") {
			cfg.Scan.NestedCollections, _ = cmd.Flags().GetBool("nested-collections")
		}

		if askPassword && !dryRun {
			password, err := readPassword()
			if err != nil {
				return err
			}
			dbURI, err = database.URIWithPassword(dbURI, password)
			if err != nil {
				return err
			}
		}

		a, err := app.NewApp(cfg, dbURI, dryRun)
		if err != nil {
			return err
		}
		defer a.Close()

		summary, err := a.Scan(root, libraryID)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		if dryRun {
			fmt.Printf("Dry run: would insert %d model(s) and %d file(s)\n",
				summary.Models, summary.Files)
			return nil
		}
		fmt.Printf("Imported %d creator(s), %d collection(s), %d model(s), %d file(s)\n",
			summary.Creators, summary.Collections, summary.Models, summary.Files)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().Bool("dry-run", false, "Log intended writes instead of touching the database")
	scanCmd.Flags().IntP("workers", "w", 1, "Number of model directories imported concurrently")
	scanCmd.Flags().Bool("nested-collections", false, "Treat separator-less model-level directories as nested collections")
	scanCmd.Flags().Bool("ask-password", false, "Prompt for the database password without echo")
}
