package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/container"
)

// NewMigrateCommand creates the migrate command
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema to the current version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, app *container.Container) error {
				if err := app.Database.Migrate(ctx); err != nil {
					return WrapExitError(ExitCommandError, "migration failed", err)
				}

				version, err := migration.NewMigrationManager(app.Database.DB(), app.Logger, app.TimeProvider).GetCurrentVersion(ctx)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to read schema version", err)
				}

				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema at version %s\n", version)
				return nil
			})
		},
	}
}
