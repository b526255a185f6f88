// Package report shapes pipeline results into the JSON bodies returned to clients.
package report

import (
	"fmt"

	"github.com/cleared-dev/budgetcsv/internal/importer"
	"github.com/cleared-dev/budgetcsv/internal/model"
)

const dateFormat = "2006-01-02"

// IssueResponse is one validation issue on the wire.
type IssueResponse struct {
	RowNumber     int     `json:"row_number"`
	Column        *string `json:"column"`
	Severity      string  `json:"severity"`
	Message       string  `json:"message"`
	OriginalValue *string `json:"original_value"`
}

// DateRangeResponse is an inclusive date span as ISO dates.
type DateRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SummaryResponse carries batch aggregates. Amounts are fixed two-place strings.
type SummaryResponse struct {
	TotalIncome      string             `json:"total_income"`
	TotalExpenses    string             `json:"total_expenses"`
	NetAmount        string             `json:"net_amount"`
	DateRange        *DateRangeResponse `json:"date_range"`
	TransactionCount int                `json:"transaction_count"`
}

// TransactionResponse is one accepted draft.
type TransactionResponse struct {
	AccountID   string `json:"account_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Verified    bool   `json:"verified"`
	BatchID     string `json:"batch_id"`
}

// UploadResponse is returned after an import.
type UploadResponse struct {
	Success       bool            `json:"success"`
	BatchID       string          `json:"batch_id"`
	TotalRows     int             `json:"total_rows"`
	ProcessedRows int             `json:"processed_rows"`
	SkippedRows   int             `json:"skipped_rows"`
	Issues        []IssueResponse `json:"issues"`
	Summary       SummaryResponse `json:"summary"`
	Message       string          `json:"message"`
}

// PreviewResponse is returned by preview; nothing is recorded.
type PreviewResponse struct {
	Success             bool                  `json:"success"`
	TotalRows           int                   `json:"total_rows"`
	ValidRows           int                   `json:"valid_rows"`
	SkippedRows         int                   `json:"skipped_rows"`
	Issues              []IssueResponse       `json:"issues"`
	Summary             SummaryResponse       `json:"summary"`
	PreviewTransactions []TransactionResponse `json:"preview_transactions"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Issue converts a ValidationIssue. Empty column and original value become null.
func Issue(i model.ValidationIssue) IssueResponse {
	return IssueResponse{
		RowNumber:     i.RowNumber,
		Column:        optional(i.Column),
		Severity:      i.Severity.String(),
		Message:       i.Message,
		OriginalValue: optional(i.OriginalValue),
	}
}

// Issues converts a slice of issues, never returning nil.
func Issues(issues []model.ValidationIssue) []IssueResponse {
	out := make([]IssueResponse, 0, len(issues))
	for _, i := range issues {
		out = append(out, Issue(i))
	}
	return out
}

// Summary converts a batch summary.
func Summary(s model.Summary) SummaryResponse {
	resp := SummaryResponse{
		TotalIncome:      s.TotalIncome.StringFixed(2),
		TotalExpenses:    s.TotalExpenses.StringFixed(2),
		NetAmount:        s.NetAmount.StringFixed(2),
		TransactionCount: s.TransactionCount,
	}
	if s.DateRange != nil {
		resp.DateRange = &DateRangeResponse{
			Start: s.DateRange.Start.Format(dateFormat),
			End:   s.DateRange.End.Format(dateFormat),
		}
	}
	return resp
}

// Transaction converts an accepted draft.
func Transaction(t model.TransactionDraft) TransactionResponse {
	return TransactionResponse{
		AccountID:   t.AccountID,
		Date:        t.Date.Format(dateFormat),
		Description: t.Description,
		Amount:      t.Amount.StringFixed(2),
		Category:    t.Category,
		Verified:    t.Verified,
		BatchID:     t.BatchID,
	}
}

// Upload builds the response for an import. recorded reports whether the
// drafts were stored in the ledger.
func Upload(r *model.ProcessingResult, recorded bool) UploadResponse {
	msg := fmt.Sprintf("Successfully imported %d transactions", r.ProcessedRows())
	if !recorded {
		msg = fmt.Sprintf("Processed %d transactions (not recorded)", r.ProcessedRows())
	}
	return UploadResponse{
		Success:       r.Success,
		BatchID:       r.BatchID,
		TotalRows:     r.TotalRows,
		ProcessedRows: r.ProcessedRows(),
		SkippedRows:   r.SkippedRows,
		Issues:        Issues(r.Issues),
		Summary:       Summary(r.Summary),
		Message:       msg,
	}
}

// Preview builds the response for a dry run, listing at most limit drafts.
// A limit of zero or less lists every draft.
func Preview(r *model.ProcessingResult, limit int) PreviewResponse {
	txns := r.Transactions
	if limit > 0 && len(txns) > limit {
		txns = txns[:limit]
	}
	preview := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		preview = append(preview, Transaction(t))
	}
	return PreviewResponse{
		Success:             r.Success,
		TotalRows:           r.TotalRows,
		ValidRows:           r.ProcessedRows(),
		SkippedRows:         r.SkippedRows,
		Issues:              Issues(r.Issues),
		Summary:             Summary(r.Summary),
		PreviewTransactions: preview,
	}
}

// ErrorDetail prefixes pipeline errors with their kind.
func ErrorDetail(err error) ErrorResponse {
	switch importer.KindOf(err) {
	case importer.KindColumn:
		return ErrorResponse{Detail: "CSV format error: " + err.Error()}
	case importer.KindParsing:
		return ErrorResponse{Detail: "CSV parsing error: " + err.Error()}
	case importer.KindValidation:
		return ErrorResponse{Detail: "CSV validation error: " + err.Error()}
	default:
		return ErrorResponse{Detail: err.Error()}
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
