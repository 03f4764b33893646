package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/credit-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/credit-ledger/internal/infrastructure/container"
)

// EventsOptions holds flags for the events command
type EventsOptions struct {
	*RootOptions
	After uint64
	Limit int
}

// NewEventsCommand creates the events command
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EventsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Page through the audit feed",
		Long: `List audit events with a sequence number greater than --after, oldest first.

Examples:
  ledgerctl events
  ledgerctl events --after 120 --limit 20 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, true, func(ctx context.Context, app *container.Container) error {
				events, err := app.Audit.ListEvents(ctx, opts.After, opts.Limit)
				if err != nil {
					return lookupError("failed to list events", err)
				}
				page := dto.NewEventListResponse(events, opts.After)

				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), page)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "SEQ\tKIND\tSUBJECT\tACTOR\tTIMESTAMP")
				for _, e := range page.Events {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", e.Seq, e.Kind, e.SubjectID, e.Actor, e.Timestamp)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "next: %d\n", page.Next)
				return nil
			})
		},
	}

	cmd.Flags().Uint64Var(&opts.After, "after", 0, "only events with a greater sequence number")
	cmd.Flags().IntVar(&opts.Limit, "limit", entity.DefaultEventLimit, "maximum number of events")

	return cmd
}

// NewCreditsCommand creates the credits command
func NewCreditsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "credits <address>",
		Short: "Show the credit balance of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := entity.NewAddress(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid address", err)
			}

			return withApp(cmd, opts, true, func(ctx context.Context, app *container.Container) error {
				credits, err := app.Ledger.GetCredits(ctx, addr)
				if err != nil {
					return lookupError("failed to read credits", err)
				}

				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), dto.CreditsResponse{Address: addr.String(), Credits: credits})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", addr, credits)
				return nil
			})
		},
	}
}

// NewRecordCommand creates the record command
func NewRecordCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "record <id>",
		Short: "Show one user record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd, opts, true, func(ctx context.Context, app *container.Container) error {
				record, err := app.Records.GetRecordByID(ctx, id)
				if err != nil {
					return lookupError(fmt.Sprintf("record %d", id), err)
				}
				resp := dto.NewRecordResponse(record)

				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), resp)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "id\t%d\nowner\t%s\nname\t%s\nemail\t%s\nage\t%d\ncreated\t%s\nupdated\t%s\n",
					resp.ID, resp.Owner, resp.Name, resp.Email, resp.Age, resp.CreatedAt, resp.UpdatedAt)
				return tw.Flush()
			})
		},
	}
}

// NewTransactionCommand creates the transaction command
func NewTransactionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "transaction <id>",
		Short: "Show one ledger transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd, opts, true, func(ctx context.Context, app *container.Container) error {
				txn, err := app.Ledger.GetTransaction(ctx, id)
				if err != nil {
					return lookupError(fmt.Sprintf("transaction %d", id), err)
				}
				resp := dto.NewTransactionResponse(txn)

				if opts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), resp)
				}
				decided := "-"
				if resp.DecidedAt != nil {
					decided = *resp.DecidedAt + " by " + resp.DecidedBy
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "id\t%d\nseller\t%s\ncredited\t%s\ndescription\t%s\namount\t%d\nstatus\t%s\ncreated\t%s\ndecided\t%s\n",
					resp.ID, resp.Seller, resp.CreditedPerson, resp.Description, resp.Amount, resp.Status, resp.CreatedAt, decided)
				return tw.Flush()
			})
		},
	}
}

func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid id %q", raw), err)
	}
	return id, nil
}
