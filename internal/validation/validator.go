// =============================================================================
// Record Translator - Validation Report
// =============================================================================
//
// This module turns parse outcomes into a report for the 'validate' command.
// It does not re-parse anything; the parsers already decided which rows are
// accepted. The report adds context on top of that decision:
//
//   Severity  Source
//   error     A rejected row (missing required field, invalid birthday)
//   warning   An accepted row with an empty optional field or a zero credit
//             limit (unparsable amounts normalize to zero)
//
// A report is valid when it carries no errors. Warnings never invalidate it.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/record-translator/internal/types"
)

// =============================================================================
// ISSUES
// =============================================================================

// Severity classifies an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding about one input row.
type Issue struct {
	Severity Severity

	// Row is the 1-indexed line number in the input.
	Row int

	// Field is the canonical field name, empty when the issue concerns the
	// whole row.
	Field string

	Message string
}

// Error implements the error interface.
func (i *Issue) Error() string {
	if i.Field == "" {
		return fmt.Sprintf("[%s] row %d: %s", strings.ToUpper(string(i.Severity)), i.Row, i.Message)
	}
	return fmt.Sprintf("[%s] row %d, field '%s': %s", strings.ToUpper(string(i.Severity)), i.Row, i.Field, i.Message)
}

// =============================================================================
// REPORT
// =============================================================================

// Report summarizes the outcomes of one parse.
type Report struct {
	// IsValid is true if no row was rejected.
	IsValid bool

	RowsRead int
	Accepted int
	Rejected int

	// Issues holds errors and warnings in input order.
	Issues []*Issue

	ErrorCount   int
	WarningCount int
}

// Build creates a report from parse outcomes.
func Build(outcomes []types.Outcome) *Report {
	report := &Report{RowsRead: len(outcomes)}

	for _, outcome := range outcomes {
		if !outcome.IsAccepted() {
			report.Rejected++
			report.add(&Issue{
				Severity: SeverityError,
				Row:      outcome.Row,
				Message:  rejectionMessage(outcome.Rejection),
			})
			continue
		}

		report.Accepted++
		for _, issue := range checkRecord(outcome.Row, outcome.Record) {
			report.add(issue)
		}
	}

	report.IsValid = report.ErrorCount == 0
	return report
}

func (r *Report) add(issue *Issue) {
	r.Issues = append(r.Issues, issue)
	if issue.Severity == SeverityError {
		r.ErrorCount++
	} else {
		r.WarningCount++
	}
}

// rejectionMessage drops the "row N:" prefix the rejection carries, since the
// issue already records the row.
func rejectionMessage(rejection *types.Rejection) string {
	if rejection.Err != nil {
		return fmt.Sprintf("%s: %v", rejection.Reason, rejection.Err)
	}
	return rejection.Reason
}

// checkRecord reports soft problems of an accepted record.
func checkRecord(row int, record types.CanonicalRecord) []*Issue {
	var issues []*Issue

	optional := []struct {
		field string
		value string
	}{
		{types.FieldAddress, record.Address},
		{types.FieldPostcode, record.Postcode},
		{types.FieldPhone, record.Phone},
	}
	for _, o := range optional {
		if o.value == "" {
			issues = append(issues, &Issue{
				Severity: SeverityWarning,
				Row:      row,
				Field:    o.field,
				Message:  "field is empty",
			})
		}
	}

	if record.CreditLimit.IsZero() {
		issues = append(issues, &Issue{
			Severity: SeverityWarning,
			Row:      row,
			Field:    types.FieldCreditLimit,
			Message:  "credit limit is zero; check the source value",
		})
	}

	return issues
}

// =============================================================================
// FORMATTING
// =============================================================================

// FormatIssues formats issues for display, one per line.
func FormatIssues(issues []*Issue) string {
	if len(issues) == 0 {
		return "No validation issues.\n"
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Validation completed with %d issue(s):\n\n", len(issues))
	for i, issue := range issues {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, issue.Error())
	}
	return builder.String()
}

// Summary renders the row counts of the report.
func (r *Report) Summary() string {
	return fmt.Sprintf("Rows read:  %d\nAccepted:   %d\nRejected:   %d\nWarnings:   %d\n",
		r.RowsRead, r.Accepted, r.Rejected, r.WarningCount)
}
