package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pinglocal/pinglocal/pinglocal"
	"github.com/pinglocal/pinglocal/pinglocal/database"
	"github.com/pinglocal/pinglocal/pinglocal/migration"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "create the schema and install the change notification triggers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := pinglocal.LoadConfig(configPath)
		if err != nil {
			return err
		}

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			slog.Error("Failed to connect to database", slog.Any("error", err))
			return err
		}
		defer db.Close()

		if err := migration.NewMigrator(db).MigrateAll(ctx); err != nil {
			slog.Error("Migration failed", slog.Any("error", err))
			return err
		}

		slog.Info("Migration completed successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}
