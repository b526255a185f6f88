package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/budgetcsv/internal/decode"
	"github.com/cleared-dev/budgetcsv/internal/report"
)

func newScanCommand(opts *rootOptions) *cobra.Command {
	var flags importFlags
	var doImport bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List exports waiting in import/, optionally importing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			files, err := ws.registry.Scan(ws.root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(out, "No files waiting in import/")
				return nil
			}

			if !doImport {
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "FILE\tSIZE")
				for _, f := range files {
					fmt.Fprintf(tw, "%s\t%d\n", f.Name, f.Size)
				}
				return tw.Flush()
			}

			if flags.account == "" {
				return fmt.Errorf("--account is required with --import")
			}

			failed := 0
			for _, f := range files {
				req := flags.request(cmd, ws, f.Path)
				res, err := ws.process(req)
				if err != nil {
					failed++
					ws.log.Error().Err(err).Str("source", f.Name).Msg("import failed")
					fmt.Fprintf(out, "%s: %s\n", f.Name, report.ErrorDetail(err).Detail)
					continue
				}
				recorded, err := ws.record(res, req)
				if err != nil {
					return err
				}
				if recorded {
					if err := decode.MarkProcessed(ws.root, f.Name); err != nil {
						return ws.rollback(res, req.account, true, err)
					}
				}
				fmt.Fprintf(out, "%s: %s (batch %s)\n", f.Name, report.Upload(res, recorded).Message, res.BatchID)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to import", failed, len(files))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&doImport, "import", false, "import every waiting file and move it to import/processed/")
	cmd.Flags().StringVar(&flags.account, "account", "", "account ID for imported files")
	cmd.Flags().StringVar(&flags.encoding, "encoding", "", "text encoding of the exports (default from config)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "abort a file on its first invalid row")
	return cmd
}
