package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipdeck/internal/repository/postgres"
)

var dropTables bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the database tables",
	Long: `Create the profiles, projects, presentations and slides tables for the
configured table prefix. With --drop the tables are dropped first; this is
refused when ENVIRONMENT=prod.`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().BoolVar(&dropTables, "drop", false, "Drop all tables before creating them")
}

func runSchema(cmd *cobra.Command, args []string) error {
	if dropTables && cfg.Environment == "prod" {
		return fmt.Errorf("refusing to drop tables in prod")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if dropTables {
		if err := postgres.DropSchema(ctx, s.pool, s.tables); err != nil {
			return err
		}
		cmdLogger().Info("tables dropped", "prefix", cfg.TablePrefix)
	}

	if err := postgres.EnsureSchema(ctx, s.pool, s.tables, cfg.TablePrefix); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema ready: %v\n", s.tables.All())
	return nil
}
