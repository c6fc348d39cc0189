package main

import (
	"fmt"
	"strconv"

	"github.com/chris/twogether-backend/pkg/storage/sqlstore"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(dialect sqlstore.Dialect, dsn string) error {
			if err := sqlstore.Migrate(dialect, dsn); err != nil {
				return err
			}
			return printVersion(cmd, dialect, dsn)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [STEPS]",
	Short: "Roll back migrations, one step by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}
		return withDatabase(func(dialect sqlstore.Dialect, dsn string) error {
			if err := sqlstore.Rollback(dialect, dsn, steps); err != nil {
				return err
			}
			return printVersion(cmd, dialect, dsn)
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(dialect sqlstore.Dialect, dsn string) error {
			return printVersion(cmd, dialect, dsn)
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func withDatabase(fn func(dialect sqlstore.Dialect, dsn string) error) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	dialect, dsn, err := sqlstore.ParseURL(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	return fn(dialect, dsn)
}

func printVersion(cmd *cobra.Command, dialect sqlstore.Dialect, dsn string) error {
	version, dirty, err := sqlstore.Version(dialect, dsn)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", version, dirty)
	return nil
}
