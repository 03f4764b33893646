// Package cli implements ledgerctl, the operator command line.
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/config"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/container"
)

// OpenFunc builds the service. Migrations are left alone when skipMigrations is set.
type OpenFunc func(ctx context.Context, opts *RootOptions, skipMigrations bool) (*container.Container, error)

// RootOptions holds global flags for all commands
type RootOptions struct {
	Env       string
	ConfigDir string
	Format    string // "json" | "text"

	open OpenFunc
}

// ValidFormats defines the allowed output formats
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the ledgerctl root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(openFromConfig)
}

func newRootCommand(open OpenFunc) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operate the credit ledger database",
		Long:  "Run migrations, verify counters and inspect records, transactions, credits and the event feed.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Env, "env", "", "configuration environment (defaults to TM_ENV)")
	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "directory holding <env>.yaml")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewReindexCommand(opts))
	cmd.AddCommand(NewEventsCommand(opts))
	cmd.AddCommand(NewCreditsCommand(opts))
	cmd.AddCommand(NewRecordCommand(opts))
	cmd.AddCommand(NewTransactionCommand(opts))

	return cmd
}

func openFromConfig(ctx context.Context, opts *RootOptions, skipMigrations bool) (*container.Container, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case opts.Env == "" && opts.ConfigDir == "":
		cfg, err = config.LoadConfig()
	case opts.ConfigDir == "":
		cfg, err = config.LoadConfigFrom(opts.Env, config.ConfigPaths...)
	default:
		env := opts.Env
		if env == "" {
			env = config.Development
		}
		cfg, err = config.LoadConfigFrom(env, opts.ConfigDir)
	}
	if err != nil {
		return nil, err
	}

	// Operator output goes to stdout; keep the service log quiet
	cfg.Logger.Level = "warn"
	cfg.Metrics.Enabled = false
	cfg.Messaging.Enabled = false

	return container.New(ctx, cfg, container.Options{SkipMigrations: skipMigrations})
}

// withApp opens the service for the duration of run
func withApp(cmd *cobra.Command, opts *RootOptions, skipMigrations bool, run func(ctx context.Context, app *container.Container) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := opts.open(ctx, opts, skipMigrations)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer app.Close()

	return run(ctx, app)
}
