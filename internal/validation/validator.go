// =============================================================================
// Lead Converter - Validation Module
// =============================================================================
//
// Leads are only checked for presence: a row becomes a lead when its name,
// company and email are all non-empty after trimming. A failed check is never
// an error for the run; the converter counts the row as skipped and moves on.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/leadconv/internal/types"
)

// Required field names, as they appear in skip reports.
const (
	FieldName    = "name"
	FieldCompany = "company"
	FieldEmail   = "email"
)

// =============================================================================
// SKIP REASON
// =============================================================================

// SkipReason explains why one input row produced no lead.
type SkipReason struct {
	// RowNumber is the 1-indexed source line of the row.
	RowNumber int

	// Missing lists the required fields that were empty, in the order
	// name, company, email.
	Missing []string
}

// Error implements the error interface so a reason can be logged or wrapped.
func (r *SkipReason) Error() string {
	return fmt.Sprintf("row %d: missing %s", r.RowNumber, strings.Join(r.Missing, ", "))
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// CheckRequired checks the required fields of a trimmed lead.
//
// RETURNS:
//   - nil if name, company and email are all non-empty.
//   - A SkipReason naming the empty fields otherwise.
func CheckRequired(lead *types.Lead) *SkipReason {
	var missing []string

	if lead.Name == "" {
		missing = append(missing, FieldName)
	}
	if lead.Company == "" {
		missing = append(missing, FieldCompany)
	}
	if lead.Email == "" {
		missing = append(missing, FieldEmail)
	}

	if len(missing) == 0 {
		return nil
	}

	return &SkipReason{RowNumber: lead.RowNumber, Missing: missing}
}

// Summarize counts how often each required field was missing across reasons.
func Summarize(reasons []SkipReason) map[string]int {
	counts := make(map[string]int)
	for _, r := range reasons {
		for _, field := range r.Missing {
			counts[field]++
		}
	}
	return counts
}
