package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/budgetcsv/internal/accounts"
	"github.com/cleared-dev/budgetcsv/internal/config"
	"github.com/cleared-dev/budgetcsv/internal/decode"
	"github.com/cleared-dev/budgetcsv/internal/gitops"
	"github.com/cleared-dev/budgetcsv/internal/importer"
	"github.com/cleared-dev/budgetcsv/internal/importlog"
	"github.com/cleared-dev/budgetcsv/internal/ledger"
	"github.com/cleared-dev/budgetcsv/internal/logger"
	"github.com/cleared-dev/budgetcsv/internal/model"
	"github.com/cleared-dev/budgetcsv/internal/report"
)

// workspace is an initialized budgetcsv directory plus its resolved config.
type workspace struct {
	root     string
	cfg      *config.Config
	log      zerolog.Logger
	registry *decode.Registry
	ledger   *ledger.Store
}

func openWorkspace(cmd *cobra.Command, opts *rootOptions) (*workspace, error) {
	root, err := filepath.Abs(opts.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Resolve(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, err
	}
	return &workspace{
		root:     root,
		cfg:      cfg,
		log:      logger.FromContext(cmd.Context()),
		registry: decode.DefaultRegistry(),
		ledger:   ledger.NewStore(root),
	}, nil
}

// importRequest describes one file to run through the pipeline.
type importRequest struct {
	path     string
	account  string
	encoding string
	format   string
	strict   bool
}

// importFlags are shared by import, preview and scan.
type importFlags struct {
	account  string
	encoding string
	format   string
	strict   bool
	json     bool
}

func (f *importFlags) register(cmd *cobra.Command, withStrict bool) {
	cmd.Flags().StringVar(&f.account, "account", "", "account ID the transactions belong to (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "text encoding of the export (default from config)")
	cmd.Flags().StringVar(&f.format, "format", "", "export format: csv or xlsx (default from file extension)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the response as JSON")
	if withStrict {
		cmd.Flags().BoolVar(&f.strict, "strict", false, "abort the whole import on the first invalid row")
	}
}

// request fills unset flags from the workspace config.
func (f *importFlags) request(cmd *cobra.Command, ws *workspace, path string) importRequest {
	req := importRequest{
		path:     path,
		account:  f.account,
		encoding: f.encoding,
		format:   f.format,
		strict:   ws.cfg.Import.Strict,
	}
	if req.encoding == "" {
		req.encoding = ws.cfg.Import.Encoding
	}
	if cmd.Flags().Changed("strict") {
		req.strict = f.strict
	}
	return req
}

func (ws *workspace) decoder(req importRequest) (decode.Decoder, error) {
	if req.format != "" {
		dec := ws.registry.Get(req.format)
		if dec == nil {
			return nil, fmt.Errorf("unknown format %q", req.format)
		}
		return dec, nil
	}
	if dec := ws.registry.ForFile(req.path); dec != nil {
		return dec, nil
	}
	dec := ws.registry.Get(ws.cfg.Import.Format)
	if dec == nil {
		return nil, fmt.Errorf("unknown format %q", ws.cfg.Import.Format)
	}
	return dec, nil
}

// process checks the account, then decodes and transforms the file.
func (ws *workspace) process(req importRequest) (*model.ProcessingResult, error) {
	accts, err := accounts.Load(ws.root)
	if err != nil {
		return nil, err
	}
	if _, err := accts.Require(req.account); err != nil {
		return nil, err
	}

	dec, err := ws.decoder(req)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(req.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", req.path, err)
	}

	log := ws.log.With().Str("source", filepath.Base(req.path)).Str("format", dec.Format()).Logger()
	p := importer.NewProcessor(importer.Options{
		AccountID: req.account,
		Strict:    req.strict,
		Logger:    &log,
	})
	return p.Run(dec, data, req.encoding)
}

// record stores the accepted drafts and appends the import to the audit log.
// It reports false when ledger.auto_record is off. If the log append or the
// commit fails, the ledger rows are removed again before the error returns.
func (ws *workspace) record(res *model.ProcessingResult, req importRequest) (bool, error) {
	if !ws.cfg.Ledger.AutoRecord {
		ws.log.Info().Str("batch_id", res.BatchID).Msg("ledger.auto_record disabled, batch not recorded")
		return false, nil
	}
	if err := ws.ledger.Record(res.Transactions); err != nil {
		return false, fmt.Errorf("recording batch: %w", err)
	}
	entry := importlog.Entry{
		Timestamp:     time.Now().UTC(),
		Action:        importlog.ActionImport,
		BatchID:       res.BatchID,
		AccountID:     req.account,
		Source:        filepath.Base(req.path),
		TotalRows:     res.TotalRows,
		ProcessedRows: res.ProcessedRows(),
		SkippedRows:   res.SkippedRows,
		IssueCount:    len(res.Issues),
	}
	if err := importlog.Append(ws.root, []importlog.Entry{entry}); err != nil {
		return false, ws.rollback(res, req.account, false, fmt.Errorf("writing import log: %w", err))
	}
	msg := fmt.Sprintf("import: %d transactions from %s (batch %s)", res.ProcessedRows(), entry.Source, res.BatchID)
	if err := ws.commit(msg); err != nil {
		return false, ws.rollback(res, req.account, true, err)
	}
	return true, nil
}

// rollback removes a recorded batch from the ledger after a later step failed.
// When the import is already in the log, an undo entry hides it from batches.
func (ws *workspace) rollback(res *model.ProcessingResult, account string, logged bool, cause error) error {
	errs := []error{cause}
	if len(res.Transactions) > 0 {
		if _, err := ws.ledger.DeleteBatch(res.BatchID); err != nil {
			errs = append(errs, fmt.Errorf("rolling back batch %s: %w", res.BatchID, err))
		}
	}
	if logged {
		undo := importlog.Entry{
			Timestamp: time.Now().UTC(),
			Action:    importlog.ActionUndo,
			BatchID:   res.BatchID,
			AccountID: account,
		}
		if err := importlog.Append(ws.root, []importlog.Entry{undo}); err != nil {
			errs = append(errs, fmt.Errorf("logging rollback of batch %s: %w", res.BatchID, err))
		}
	}
	ws.log.Warn().Err(cause).Str("batch_id", res.BatchID).Msg("batch rolled back")
	return errors.Join(errs...)
}

// commit records ledger and log changes in git when enabled.
func (ws *workspace) commit(message string) error {
	if !ws.cfg.Git.AutoCommit || !gitops.IsRepo(ws.root) {
		return nil
	}
	var paths []string
	for _, p := range []string{"ledger", "logs"} {
		if _, err := os.Stat(filepath.Join(ws.root, p)); err == nil {
			paths = append(paths, p)
		}
	}
	author := gitops.Author{Name: ws.cfg.Git.AuthorName, Email: ws.cfg.Git.AuthorEmail}
	hash, err := gitops.CommitPaths(ws.root, message, author, paths...)
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	ws.log.Debug().Str("commit", hash).Msg(message)
	return nil
}

// fail reports err in the transport shape and returns the error cobra prints.
func fail(w io.Writer, asJSON bool, err error) error {
	resp := report.ErrorDetail(err)
	if asJSON {
		if encErr := writeJSON(w, resp); encErr != nil {
			return encErr
		}
	}
	if importer.KindOf(err) == 0 {
		return err
	}
	return errors.New(resp.Detail)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return nil
}

func printIssues(w io.Writer, issues []model.ValidationIssue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(w, "Issues:")
	for _, i := range issues {
		fmt.Fprintf(w, "  %-8s %s\n", i.Severity, i)
	}
}

func printSummary(w io.Writer, s model.Summary) {
	fmt.Fprintf(w, "Income:   %s\n", s.TotalIncome.StringFixed(2))
	fmt.Fprintf(w, "Expenses: %s\n", s.TotalExpenses.StringFixed(2))
	fmt.Fprintf(w, "Net:      %s\n", s.NetAmount.StringFixed(2))
	if s.DateRange != nil {
		fmt.Fprintf(w, "Dates:    %s to %s\n", s.DateRange.Start.Format("2006-01-02"), s.DateRange.End.Format("2006-01-02"))
	}
}
