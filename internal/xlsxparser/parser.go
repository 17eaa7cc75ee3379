// =============================================================================
// Lead Converter - XLSX Parser
// =============================================================================
//
// Some CRM tools hand out lead exports as spreadsheets rather than CSV. This
// module reads such a workbook into the same Table the CSV parser produces,
// so the rest of the pipeline does not care where the rows came from.
//
// SHEET LAYOUT:
//   Row 1 holds the column headers, every later non-empty row is a lead.
//
//   | Full Name | Company Name | Work Email      | Job Title | ... |
//   |-----------|--------------|-----------------|-----------|-----|
//   | Ada       | Analytical   | ada@example.com | Founder   | ... |
//
// =============================================================================

package xlsxparser

import (
	"archive/zip"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/leadconv/internal/types"
	"github.com/xuri/excelize/v2"
)

// IsWorkbook reports whether path names a spreadsheet this package can read.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// Parse reads the given sheet of an XLSX workbook.
//
// PARAMETERS:
//   - filePath: The path to the workbook.
//   - sheet: The worksheet name. Empty selects the first sheet.
//
// RETURNS:
//   - A pointer to the Table holding the header and data rows.
//   - *types.FileAccessError if the file cannot be opened.
//   - *types.ParseError if the workbook or sheet cannot be read.
func Parse(filePath, sheet string) (*types.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		if isNotWorkbook(err) {
			return nil, &types.ParseError{Path: filePath, Err: err}
		}
		return nil, &types.FileAccessError{Op: "read", Path: filePath, Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, &types.ParseError{Path: filePath, Err: fmt.Errorf("workbook has no sheets")}
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &types.ParseError{Path: filePath, Err: fmt.Errorf("failed to read sheet %q: %w", sheet, err)}
	}

	table := buildTable(rows)
	table.SourceFile = filePath
	return table, nil
}

// buildTable turns raw sheet rows into a Table. The first non-empty row is
// the header; empty rows carry no lead and are dropped.
func buildTable(rows [][]string) *types.Table {
	table := &types.Table{}

	start := -1
	for i, row := range rows {
		if !isRowEmpty(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return table
	}

	table.Headers = cleanHeaders(rows[start])

	for i := start + 1; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		values := make(map[string]string, len(table.Headers))
		for col, header := range table.Headers {
			if col < len(row) {
				values[header] = row[col]
			} else {
				values[header] = ""
			}
		}

		table.Rows = append(table.Rows, values)
		table.Lines = append(table.Lines, i+1)
	}

	return table
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// cleanHeaders trims header names and names blank headers by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// isNotWorkbook distinguishes "this is not a spreadsheet" from I/O failures.
func isNotWorkbook(err error) bool {
	return errors.Is(err, zip.ErrFormat) || errors.Is(err, excelize.ErrWorkbookFileFormat)
}
