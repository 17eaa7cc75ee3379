// =============================================================================
// Lead Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (Table)
//   - converter, validation, textwriter (Lead)
//
// =============================================================================

package types

// =============================================================================
// INPUT TYPES
// =============================================================================

// Table is a parsed input sheet with header-based field access.
type Table struct {
	// SourceFile is the path the table was read from.
	SourceFile string

	// Headers contains the column headers from the first row, in file order.
	Headers []string

	// Rows contains one map per data row, keyed by header.
	// A column missing from a short row is present with an empty value.
	Rows []map[string]string

	// Lines holds the 1-indexed source line (or sheet row) of each entry in
	// Rows. A quoted field spanning lines reports the line it starts on.
	Lines []int
}

// RowCount returns the number of data rows (the header is not counted).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// HasColumn reports whether the header row contains the given column name.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// =============================================================================
// LEAD
// =============================================================================

// Lead is one prospective contact extracted from an input row.
// Name, Company and Email are never empty; every other field may be.
type Lead struct {
	Name     string
	Company  string
	Role     string
	Email    string
	Website  string
	Location string
	LinkedIn string
	Headline string
	Summary  string

	// RowNumber is the 1-indexed line of the source row (header is row 1).
	RowNumber int
}
