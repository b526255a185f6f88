package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/budgetcsv/internal/importlog"
)

func newUndoCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <batch-id>",
		Short: "Remove every transaction of an import batch from the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			batchID := args[0]

			txns, err := ws.ledger.Batch(batchID)
			if err != nil {
				return err
			}
			n, err := ws.ledger.DeleteBatch(batchID)
			if err != nil {
				return err
			}

			entry := importlog.Entry{
				Timestamp:     time.Now().UTC(),
				Action:        importlog.ActionUndo,
				BatchID:       batchID,
				AccountID:     txns[0].AccountID,
				ProcessedRows: n,
			}
			if err := importlog.Append(ws.root, []importlog.Entry{entry}); err != nil {
				return fmt.Errorf("writing import log: %w", err)
			}
			if err := ws.commit(fmt.Sprintf("undo: batch %s (%d transactions)", batchID, n)); err != nil {
				return err
			}

			ws.log.Info().Str("batch_id", batchID).Int("removed", n).Msg("batch undone")
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d transactions from batch %s\n", n, batchID)
			return nil
		},
	}
}

func newBatchesCommand(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "batches",
		Short: "List recorded import batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			entries, err := importlog.Read(ws.root)
			if err != nil {
				return err
			}
			if !all {
				entries = importlog.Imports(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No import batches recorded")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tACTION\tBATCH\tACCOUNT\tSOURCE\tROWS\tIMPORTED\tSKIPPED\tISSUES")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
					e.Timestamp.Format(time.RFC3339), e.Action, e.BatchID, e.AccountID, e.Source,
					e.TotalRows, e.ProcessedRows, e.SkippedRows, e.IssueCount)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include undone batches and undo entries")
	return cmd
}
