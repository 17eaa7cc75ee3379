// =============================================================================
// Lead Converter - CSV Parser Module
// =============================================================================
//
// This module parses lead exports in CSV form. The first record is the
// header row; every later record becomes a map of header -> value.
//
// FEATURES:
//   - Header-based field access (column order is irrelevant)
//   - Short rows are padded with empty values, extra columns are ignored
//   - Input decoding for non UTF-8 exports (golang.org/x/text)
//   - A leading byte-order mark is stripped before the header is read
//   - UTF-8 input is validated; an invalid byte sequence is a parse error
//
// The whole file is read into memory; lead lists are small.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/leadconv/internal/types"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// =============================================================================
// SETTINGS
// =============================================================================

// Settings controls how a CSV file is read.
type Settings struct {
	// Encoding is a WHATWG encoding label. Empty means UTF-8.
	Encoding string

	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: Decoding and delimiter settings.
//
// RETURNS:
//   - A pointer to the Table holding the header and data rows.
//   - *types.FileAccessError if the file cannot be opened or read.
//   - *types.ParseError if the CSV is malformed.
func Parse(filePath string, settings Settings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, &types.FileAccessError{Op: "read", Path: filePath, Err: err}
	}
	defer file.Close()

	table, err := ParseReader(file, settings)
	if err != nil {
		var pe *types.ParseError
		if errors.As(err, &pe) {
			pe.Path = filePath
			return nil, pe
		}
		return nil, &types.FileAccessError{Op: "read", Path: filePath, Err: err}
	}

	table.SourceFile = filePath
	return table, nil
}

// ParseReader parses CSV data from r. Malformed input is reported as a
// *types.ParseError; any other error comes from r itself.
func ParseReader(r io.Reader, settings Settings) (*types.Table, error) {
	decoded, strict, err := decode(r, settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(bufio.NewReader(decoded))
	configureReader(csvReader, settings)

	table := &types.Table{}

	header, err := csvReader.Read()
	if err == io.EOF {
		// An empty file has no header and no rows.
		return table, nil
	}
	if err != nil {
		return nil, wrapReadError(err)
	}
	if strict {
		if err := checkUTF8(csvReader, header); err != nil {
			return nil, err
		}
	}
	table.Headers = cleanHeaders(header)

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapReadError(err)
		}
		if strict {
			if err := checkUTF8(csvReader, record); err != nil {
				return nil, err
			}
		}
		line, _ := csvReader.FieldPos(0)
		table.Rows = append(table.Rows, rowToMap(table.Headers, record))
		table.Lines = append(table.Lines, line)
	}

	return table, nil
}

// decode wraps r so that it yields UTF-8, honouring a byte-order mark when
// one is present. For UTF-8 input the bytes pass through undecoded and
// strict is true: the caller must validate every record, since the x/text
// UTF-8 decoder would silently replace invalid bytes with U+FFFD.
func decode(r io.Reader, label string) (decoded io.Reader, strict bool, err error) {
	if label == "" {
		label = "utf-8"
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, false, &types.ParseError{Err: fmt.Errorf("unsupported encoding %q: %w", label, err)}
	}

	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return transform.NewReader(r, unicode.BOMOverride(transform.Nop)), true, nil
	}

	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), false, nil
}

// checkUTF8 reports the first field of record that is not valid UTF-8.
func checkUTF8(reader *csv.Reader, record []string) error {
	for i, field := range record {
		if !utf8.ValidString(field) {
			line, col := reader.FieldPos(i)
			return &types.ParseError{
				Line: line,
				Err:  fmt.Errorf("invalid UTF-8 in field %d (column %d)", i+1, col),
			}
		}
	}
	return nil
}

// configureReader applies the reader options lead exports need.
func configureReader(reader *csv.Reader, settings Settings) {
	if settings.Comma != 0 {
		reader.Comma = settings.Comma
	}

	// Rows may be shorter or longer than the header.
	reader.FieldsPerRecord = -1

	// Strict quoting: an unterminated quote, or a bare quote inside an
	// unquoted field, is a parse error.
	reader.LazyQuotes = false
}

// wrapReadError converts csv.ParseError into *types.ParseError. Anything else
// is an I/O failure and is returned untouched.
func wrapReadError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &types.ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return err
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

// rowToMap converts a record into a header -> value map. Values are kept
// verbatim; trimming is the converter's job. When a header repeats, the
// rightmost column wins.
func rowToMap(headers []string, record []string) map[string]string {
	row := make(map[string]string, len(headers))

	for i, header := range headers {
		if i < len(record) {
			row[header] = record[i]
		} else {
			row[header] = ""
		}
	}

	return row
}
