package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/credit-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/config"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/container"
)

const (
	alice     entity.Address = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	carol     entity.Address = "0xcccccccccccccccccccccccccccccccccccccccc"
	authority entity.Address = "0x9999999999999999999999999999999999999999"
)

func sqliteOpener(t *testing.T) OpenFunc {
	t.Helper()
	cfg := &config.Config{
		Environment: config.Test,
		Database: config.DatabaseConfig{
			Driver:        "sqlite",
			SQLitePath:    filepath.Join(t.TempDir(), "ledger.db"),
			MaxOpenConns:  1,
			MaxIdleConns:  1,
			RetryAttempts: 1,
			RetryDelay:    10 * time.Millisecond,
			LogLevel:      "silent",
		},
		Ledger: config.LedgerConfig{Authority: authority.String(), QueueSize: 4},
	}

	return func(ctx context.Context, _ *RootOptions, skipMigrations bool) (*container.Container, error) {
		return container.New(ctx, cfg, container.Options{SkipMigrations: skipMigrations, Logger: logger.NewNoopLogger()})
	}
}

func run(open OpenFunc, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd := newRootCommand(open)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// seed writes one record and one verified transaction through the services
func seed(t *testing.T, open OpenFunc) {
	t.Helper()
	ctx := context.Background()

	app, err := open(ctx, nil, false)
	require.NoError(t, err)
	defer app.Close()

	_, err = app.Records.StoreRecord(ctx, alice, entity.RecordFields{Name: "Alice", Email: "alice@example.com", Age: 30})
	require.NoError(t, err)
	id, err := app.Ledger.ProposeTransaction(ctx, alice,
		entity.Proposal{CreditedPerson: carol, Description: "Solar panel install", Amount: 25})
	require.NoError(t, err)
	require.NoError(t, app.Ledger.VerifyTransaction(ctx, authority, id))
}

func TestMigrateCommand(t *testing.T) {
	open := sqliteOpener(t)

	out, err := run(open, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "Schema at version "+migration.CurrentSchemaVersion+"\n", out)

	t.Run("Running again is a no-op", func(t *testing.T) {
		out, err := run(open, "migrate", "--format", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"version":"`+migration.CurrentSchemaVersion+`"}`, out)
	})
}

func TestInspectCommands(t *testing.T) {
	open := sqliteOpener(t)
	seed(t, open)

	t.Run("Record as JSON", func(t *testing.T) {
		out, err := run(open, "record", "1", "--format", "json")
		require.NoError(t, err)

		var resp dto.RecordResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, alice.String(), resp.Owner)
		assert.Equal(t, "Alice", resp.Name)
	})

	t.Run("Unknown transaction exits with failure", func(t *testing.T) {
		_, err := run(open, "transaction", "9")
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.ErrorIs(t, err, domainerr.ErrTransactionNotFound)
	})

	t.Run("Transaction as text", func(t *testing.T) {
		out, err := run(open, "transaction", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "Verified")
		assert.Contains(t, out, "by "+authority.String())
	})

	t.Run("Credits as text", func(t *testing.T) {
		out, err := run(open, "credits", carol.String())
		require.NoError(t, err)
		assert.Equal(t, carol.String()+" 25\n", out)
	})

	t.Run("Events page from the cursor", func(t *testing.T) {
		out, err := run(open, "events", "--after", "1", "--format", "json")
		require.NoError(t, err)

		var page dto.EventListResponse
		require.NoError(t, json.Unmarshal([]byte(out), &page))
		require.Len(t, page.Events, 2)
		assert.Equal(t, "TransactionProposed", page.Events[0].Kind)
		assert.Equal(t, uint64(3), page.Next)
	})

	t.Run("Reindex reports a consistent ledger", func(t *testing.T) {
		out, err := run(open, "reindex", "--format", "json")
		require.NoError(t, err)

		var result IntegrityResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.True(t, result.Consistent)
		assert.Len(t, result.Sequences, 3)
		assert.Equal(t, uint64(25), result.CreditTotal)
	})
}

func TestCommandErrors(t *testing.T) {
	open := sqliteOpener(t)

	t.Run("Invalid format", func(t *testing.T) {
		_, err := run(open, "record", "1", "--format", "xml")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("Invalid id", func(t *testing.T) {
		_, err := run(open, "record", "abc")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("Missing argument", func(t *testing.T) {
		_, err := run(open, "credits")
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
	})
}
