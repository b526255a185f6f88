package importer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/budgetcsv/internal/model"
)

// State is a Processor's position in one invocation.
type State int

const (
	StateInitialized State = iota
	StateStructureValidated
	StateRowsProcessed
	StateSummarized
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateStructureValidated:
		return "structure-validated"
	case StateRowsProcessed:
		return "rows-processed"
	case StateSummarized:
		return "summarized"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Decoder turns raw bytes in a named text encoding into a RawTable.
type Decoder interface {
	Decode(data []byte, encoding string) (RawTable, error)
}

// Options configures a Processor.
type Options struct {
	AccountID string
	// Strict aborts the whole batch on the first row with an error issue.
	Strict bool
	// Logger receives one event per issue. Nil disables logging.
	Logger *zerolog.Logger
	// NewBatchID overrides batch identifier generation. Defaults to UUIDv4.
	NewBatchID func() string
}

// Processor drives one import: structural validation, per-row transform,
// mode policy and summary. It owns the issue list and batch identifier of
// the invocation and is not safe for concurrent use; build one per import.
type Processor struct {
	opts    Options
	log     zerolog.Logger
	state   State
	batchID string
	issues  []model.ValidationIssue
}

// NewProcessor creates a Processor.
func NewProcessor(opts Options) *Processor {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	if opts.NewBatchID == nil {
		opts.NewBatchID = uuid.NewString
	}
	return &Processor{opts: opts, log: log}
}

// State returns where the last invocation stopped.
func (p *Processor) State() State { return p.state }

// BatchID returns the identifier of the last invocation.
func (p *Processor) BatchID() string { return p.batchID }

// Run decodes data with dec and processes the resulting table.
func (p *Processor) Run(dec Decoder, data []byte, encoding string) (*model.ProcessingResult, error) {
	table, err := dec.Decode(data, encoding)
	if err != nil {
		p.state = StateAborted
		if KindOf(err) != 0 {
			return nil, err
		}
		return nil, ParsingError(fmt.Sprintf("Failed to parse CSV: %v", err), err)
	}
	return p.Process(table)
}

// Process transforms a decoded table. On failure it returns a *Error and no
// result; in strict mode rows accepted before the failing row are discarded.
func (p *Processor) Process(table RawTable) (*model.ProcessingResult, error) {
	p.state = StateInitialized
	p.issues = nil
	p.batchID = p.opts.NewBatchID()
	log := p.log.With().Str("batch_id", p.batchID).Logger()

	structural, err := validateStructure(table)
	if err != nil {
		return nil, p.abort(log, err)
	}
	p.record(log, structural...)
	p.state = StateStructureValidated
	log.Debug().Int("rows", len(table)).Int("columns", table.Width()).Msg("table structure validated")

	txns := make([]model.TransactionDraft, 0, len(table))
	skipped := 0
	for i, cells := range table {
		n := i + 1
		out := transformRow(cells, n, p.opts.AccountID, p.batchID)
		p.record(log, out.issues...)
		if out.draft != nil {
			txns = append(txns, *out.draft)
			continue
		}

		skipped++
		if p.opts.Strict {
			msg := "row could not be processed"
			if first, ok := out.firstError(); ok {
				msg = first.Message
			}
			return nil, p.abort(log, ValidationError(n, msg))
		}
	}
	p.state = StateRowsProcessed

	summary := Summarize(txns)
	p.state = StateSummarized

	result := &model.ProcessingResult{
		Success:      true,
		BatchID:      p.batchID,
		TotalRows:    len(table),
		Transactions: txns,
		SkippedRows:  skipped,
		Issues:       p.issues,
		Summary:      summary,
	}
	p.state = StateDone

	log.Info().
		Int("total_rows", result.TotalRows).
		Int("processed_rows", result.ProcessedRows()).
		Int("skipped_rows", skipped).
		Int("issues", len(p.issues)).
		Msg("import processed")
	return result, nil
}

func (p *Processor) abort(log zerolog.Logger, err error) error {
	p.state = StateAborted
	var e *Error
	if errors.As(err, &e) {
		log.Error().Str("kind", e.Kind.String()).Int("row", e.Row).Msg(e.Error())
	}
	return err
}

func (p *Processor) record(log zerolog.Logger, issues ...model.ValidationIssue) {
	for _, i := range issues {
		p.issues = append(p.issues, i)

		var ev *zerolog.Event
		switch i.Severity {
		case model.SeverityError:
			ev = log.Error()
		case model.SeverityWarning:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev = ev.Int("row", i.RowNumber)
		if i.Column != "" {
			ev = ev.Str("column", i.Column)
		}
		ev.Msg(i.Message)
	}
}
