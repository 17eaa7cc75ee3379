// =============================================================================
// Lead Converter - Field Transformations
// =============================================================================
//
// This module turns one input row into a Lead:
//   - every field is trimmed
//   - Headline and Summary have their whitespace runs collapsed to one space
//   - a bare company domain becomes an https:// URL
//
// "Whitespace" is the Unicode definition (unicode.IsSpace) throughout.
//
// =============================================================================

package converter

import (
	"strings"

	"github.com/ginjaninja78/leadconv/internal/config"
	"github.com/ginjaninja78/leadconv/internal/types"
)

// websiteScheme is prepended to domains that do not already start with "http".
const websiteScheme = "https://"

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer builds leads from rows using a column mapping.
type Transformer struct {
	columns config.ColumnMapping
}

// NewTransformer creates a Transformer for the given column names.
func NewTransformer(columns config.ColumnMapping) *Transformer {
	return &Transformer{columns: columns}
}

// Transform builds a Lead from a row. Absent columns read as "".
// The returned lead may lack required fields; see validation.CheckRequired.
func (t *Transformer) Transform(row map[string]string, rowNumber int) types.Lead {
	field := func(column string) string {
		return strings.TrimSpace(row[column])
	}

	return types.Lead{
		Name:      field(t.columns.Name),
		Company:   field(t.columns.Company),
		Email:     field(t.columns.Email),
		Role:      field(t.columns.Role),
		Website:   NormalizeWebsite(row[t.columns.Website]),
		Location:  field(t.columns.Location),
		LinkedIn:  field(t.columns.LinkedIn),
		Headline:  CleanText(row[t.columns.Headline]),
		Summary:   CleanText(row[t.columns.Summary]),
		RowNumber: rowNumber,
	}
}

// =============================================================================
// TRANSFORMATION FUNCTIONS
// =============================================================================

// CleanText collapses every run of whitespace, newlines included, into a
// single space and trims the result. Applying it twice changes nothing.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeWebsite trims a company domain and prefixes https:// unless the
// value already starts with "http".
//
// EXAMPLE:
//   "example.com"        -> "https://example.com"
//   "http://example.com" -> "http://example.com"
//   ""                   -> ""
func NormalizeWebsite(domain string) string {
	domain = strings.TrimSpace(domain)
	if domain == "" || strings.HasPrefix(domain, "http") {
		return domain
	}
	return websiteScheme + domain
}
