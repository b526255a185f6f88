package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/budgetcsv/internal/model"
	"github.com/cleared-dev/budgetcsv/internal/report"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank export into the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			req := flags.request(cmd, ws, args[0])
			res, err := ws.process(req)
			if err != nil {
				return fail(out, flags.json, err)
			}
			recorded, err := ws.record(res, req)
			if err != nil {
				return err
			}

			resp := report.Upload(res, recorded)
			if flags.json {
				return writeJSON(out, resp)
			}
			printUpload(out, res, resp)
			return nil
		},
	}

	flags.register(cmd, true)
	return cmd
}

func newPreviewCommand(opts *rootOptions) *cobra.Command {
	var flags importFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Validate a bank export and show the first transactions without recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			req := flags.request(cmd, ws, args[0])
			req.strict = false
			res, err := ws.process(req)
			if err != nil {
				return fail(out, flags.json, err)
			}

			n := limit
			if !cmd.Flags().Changed("limit") {
				n = ws.cfg.Import.PreviewLimit
			}
			resp := report.Preview(res, n)
			if flags.json {
				return writeJSON(out, resp)
			}
			printPreview(out, res, resp)
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().IntVar(&limit, "limit", 0, "number of transactions to show, 0 for all (default from config)")
	return cmd
}

func printUpload(w io.Writer, res *model.ProcessingResult, resp report.UploadResponse) {
	fmt.Fprintln(w, resp.Message)
	fmt.Fprintf(w, "Batch:    %s\n", resp.BatchID)
	fmt.Fprintf(w, "Rows:     %d total, %d processed, %d skipped\n", resp.TotalRows, resp.ProcessedRows, resp.SkippedRows)
	printSummary(w, res.Summary)
	printIssues(w, res.Issues)
}

func printPreview(w io.Writer, res *model.ProcessingResult, resp report.PreviewResponse) {
	fmt.Fprintf(w, "Preview: %d rows, %d valid, %d skipped\n", resp.TotalRows, resp.ValidRows, resp.SkippedRows)
	if len(resp.PreviewTransactions) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tAMOUNT\tDESCRIPTION")
		for _, t := range resp.PreviewTransactions {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Date, t.Amount, t.Description)
		}
		tw.Flush()
	}
	printSummary(w, res.Summary)
	printIssues(w, res.Issues)
}
