package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/container"
)

// IntegrityResult is the JSON form of an integrity report
type IntegrityResult struct {
	Consistent    bool            `json:"consistent"`
	Sequences     []SequenceState `json:"sequences"`
	CreditTotal   uint64          `json:"creditTotal"`
	VerifiedTotal uint64          `json:"verifiedTotal"`
}

// SequenceState compares one counter with its rows
type SequenceState struct {
	Name    string `json:"name"`
	Counter uint64 `json:"counter"`
	Rows    uint64 `json:"rows"`
}

func newIntegrityResult(report *usecase.IntegrityReport) IntegrityResult {
	result := IntegrityResult{
		Consistent:    report.Consistent(),
		Sequences:     make([]SequenceState, 0, len(report.Sequences)),
		CreditTotal:   report.CreditTotal,
		VerifiedTotal: report.VerifiedTotal,
	}
	for _, s := range report.Sequences {
		result.Sequences = append(result.Sequences, SequenceState{Name: s.Name, Counter: s.Counter, Rows: s.Rows})
	}
	return result
}

// NewReindexCommand creates the reindex command
func NewReindexCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Verify id counters and the owner index against stored rows",
		Long: `Compare every id counter with the rows it numbered and the sum of credit
balances with the sum of verified amounts.

Exits with status 1 when any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, app *container.Container) error {
				report, err := app.Audit.CheckIntegrity(ctx)
				if err != nil {
					return lookupError("integrity check failed", err)
				}
				result := newIntegrityResult(report)

				if opts.Format == "json" {
					if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
						return err
					}
				} else {
					tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "SEQUENCE\tCOUNTER\tROWS\tOK")
					for _, s := range report.Sequences {
						fmt.Fprintf(tw, "%s\t%d\t%d\t%t\n", s.Name, s.Counter, s.Rows, s.Consistent())
					}
					fmt.Fprintf(tw, "credits\t%d\t%d\t%t\n", result.CreditTotal, result.VerifiedTotal,
						result.CreditTotal == result.VerifiedTotal)
					if err := tw.Flush(); err != nil {
						return err
					}
				}

				if !result.Consistent {
					return NewExitError(ExitFailure, "ledger is inconsistent")
				}
				return nil
			})
		},
	}
}
