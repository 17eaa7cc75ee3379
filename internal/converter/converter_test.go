package converter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/leadconv/internal/config"
	"github.com/ginjaninja78/leadconv/internal/types"
	"github.com/ginjaninja78/leadconv/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const header = "Full Name,Company Name,Work Email,Job Title,Company Domain,Location,LinkedIn Profile,Headline,Summary\n"

type paths struct {
	input, index, details string
}

func newPaths(t *testing.T, input string) paths {
	t.Helper()
	dir := t.TempDir()
	p := paths{
		input:   filepath.Join(dir, "leads.csv"),
		index:   filepath.Join(dir, "out", "lead-index.txt"),
		details: filepath.Join(dir, "out", "lead-details.txt"),
	}
	require.NoError(t, os.WriteFile(p.input, []byte(input), 0o644))
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestConvert_ThreeRowsOneMissingEmail(t *testing.T) {
	p := newPaths(t, header+
		"Ada Lovelace,Analytical Engines,ada@example.com,Founder,analytical.io,London,,,\n"+
		"Charles Babbage,Difference Ltd,,Inventor,,,,,\n"+
		"Grace Hopper,Navy,grace@example.com,,http://navy.mil,,,\"Loves\n\nsales   and\tgrowth\",\n")

	processed, skipped, err := Convert(p.input, p.index, p.details)
	require.NoError(t, err)

	assert.Equal(t, 2, processed)
	assert.Equal(t, 1, skipped)

	index := readFile(t, p.index)
	assert.Equal(t,
		"Ada Lovelace | Analytical Engines | Founder | ada@example.com\n"+
			"Grace Hopper | Navy |  | grace@example.com\n",
		index)

	details := readFile(t, p.details)
	assert.Equal(t,
		"=== LEAD ===\n"+
			"Name: Ada Lovelace\n"+
			"Company: Analytical Engines\n"+
			"Role: Founder\n"+
			"Email: ada@example.com\n"+
			"Website: https://analytical.io\n"+
			"Location: London\n"+
			"\n"+
			"=== LEAD ===\n"+
			"Name: Grace Hopper\n"+
			"Company: Navy\n"+
			"Role: \n"+
			"Email: grace@example.com\n"+
			"Website: http://navy.mil\n"+
			"Headline: Loves sales and growth\n"+
			"\n",
		details)
}

func TestConvert_CountsAddUp(t *testing.T) {
	rows := []string{
		"A,B,a@b.c,,,,,,",
		" , B , a@b.c ,,,,,,",
		"A,,a@b.c,,,,,,",
		",,,,,,,,",
		"A,B,a@b.c,,,,,,",
		"Short row",
		"  A  ,  B  ,  a@b.c  ,,,,,,",
	}
	p := newPaths(t, header+strings.Join(rows, "\n")+"\n")

	processed, skipped, err := Convert(p.input, p.index, p.details)
	require.NoError(t, err)

	assert.Equal(t, len(rows), processed+skipped)
	assert.Equal(t, 3, processed, "duplicates pass through")

	indexLines := strings.Count(readFile(t, p.index), "\n")
	blocks := strings.Count(readFile(t, p.details), "=== LEAD ===\n")
	assert.Equal(t, processed, indexLines)
	assert.Equal(t, processed, blocks)
}

func TestConvert_Idempotent(t *testing.T) {
	p := newPaths(t, header+
		"Ada,Analytical,ada@example.com,Founder,analytical.io,London,li/ada,Hi  there,\"Long\nsummary\"\n")

	_, _, err := Convert(p.input, p.index, p.details)
	require.NoError(t, err)
	firstIndex, firstDetails := readFile(t, p.index), readFile(t, p.details)

	_, _, err = Convert(p.input, p.index, p.details)
	require.NoError(t, err)

	assert.Equal(t, firstIndex, readFile(t, p.index))
	assert.Equal(t, firstDetails, readFile(t, p.details))
}

func TestConvert_HeaderOnlyWritesEmptyFiles(t *testing.T) {
	p := newPaths(t, header)

	processed, skipped, err := Convert(p.input, p.index, p.details)
	require.NoError(t, err)

	assert.Zero(t, processed)
	assert.Zero(t, skipped)
	assert.Empty(t, readFile(t, p.index))
	assert.Empty(t, readFile(t, p.details))
}

func TestConvert_MissingRequiredColumnSkipsEverything(t *testing.T) {
	p := newPaths(t, "Full Name,Company Name\nAda,Analytical\nGrace,Navy\n")

	processed, skipped, err := Convert(p.input, p.index, p.details)
	require.NoError(t, err)

	assert.Zero(t, processed)
	assert.Equal(t, 2, skipped)
}

func TestConvert_MissingInput(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, "lead-index.txt")
	require.NoError(t, os.WriteFile(index, []byte("previous\n"), 0o644))

	processed, skipped, err := Convert(filepath.Join(dir, "nope.csv"), index, filepath.Join(dir, "d.txt"))
	require.Error(t, err)

	var fae *types.FileAccessError
	require.True(t, errors.As(err, &fae))
	assert.Equal(t, "read", fae.Op)
	assert.Zero(t, processed)
	assert.Zero(t, skipped)

	assert.Equal(t, "previous\n", readFile(t, index), "outputs are untouched when the input fails")
}

func TestConvert_MalformedCSV(t *testing.T) {
	p := newPaths(t, header+"\"Ada,Analytical,ada@example.com\n")

	_, _, err := Convert(p.input, p.index, p.details)
	require.Error(t, err)

	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.NoFileExists(t, p.index)
	assert.NoFileExists(t, p.details)
}

func TestConvert_InvalidUTF8IsParseError(t *testing.T) {
	p := newPaths(t, header+
		"Ada,Analytical,ada@example.com,,,,,,\n"+
		"Jos\xe9 Garc\xeda,Acme,jose@example.com,,,,,,\n")

	processed, skipped, err := Convert(p.input, p.index, p.details)
	require.Error(t, err)
	assert.Zero(t, processed)
	assert.Zero(t, skipped)

	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, p.input, pe.Path)
	assert.Equal(t, 3, pe.Line)
	assert.NoFileExists(t, p.index)
	assert.NoFileExists(t, p.details)
}

func TestRun_LegacyEncodingDecodesSameBytes(t *testing.T) {
	p := newPaths(t, "Full Name,Company Name,Work Email\nJos\xe9 Garc\xeda,Acme,jose@example.com\n")

	cfg := config.Default()
	cfg.InputPath, cfg.IndexPath, cfg.DetailsPath = p.input, p.index, p.details
	cfg.Encoding = "windows-1252"

	result, err := New(cfg, nil).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, "Jos\u00e9 Garc\u00eda | Acme |  | jose@example.com\n", readFile(t, p.index))
}

func TestRun_SemicolonDelimiter(t *testing.T) {
	p := newPaths(t, "Full Name;Company Name;Work Email;Job Title\n"+
		"Ada;Analytical, Ltd;ada@example.com;Founder\n"+
		"Charles;Difference;;Inventor\n")

	cfg := config.Default()
	cfg.InputPath, cfg.IndexPath, cfg.DetailsPath = p.input, p.index, p.details
	cfg.Delimiter = ";"

	result, err := New(cfg, nil).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "Ada | Analytical, Ltd | Founder | ada@example.com\n", readFile(t, p.index))
}

func TestConvert_UnwritableOutput(t *testing.T) {
	p := newPaths(t, header+"Ada,Analytical,ada@example.com,,,,,,\n")

	// A directory where the index file should go.
	require.NoError(t, os.MkdirAll(p.index, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p.index, "keep"), nil, 0o644))

	_, _, err := Convert(p.input, p.index, p.details)
	require.Error(t, err)

	var fae *types.FileAccessError
	require.True(t, errors.As(err, &fae))
	assert.Equal(t, "write", fae.Op)
	assert.Equal(t, p.index, fae.Path)
}

func TestRun_ReportsSkipReasonsAndLogs(t *testing.T) {
	p := newPaths(t, header+
		"Ada,Analytical,ada@example.com,,,,,,\n"+
		"Charles,,,,,,,,\n")

	core, logs := observer.New(zapcore.DebugLevel)

	cfg := config.Default()
	cfg.InputPath, cfg.IndexPath, cfg.DetailsPath = p.input, p.index, p.details

	result, err := New(cfg, zap.New(core)).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, p.index, result.IndexPath)
	assert.Equal(t, p.details, result.DetailsPath)
	require.Equal(t, []validation.SkipReason{
		{RowNumber: 3, Missing: []string{validation.FieldCompany, validation.FieldEmail}},
	}, result.Skips)

	skipLogs := logs.FilterMessage("skipping row").All()
	require.Len(t, skipLogs, 1)
	assert.EqualValues(t, 3, skipLogs[0].ContextMap()["row"])

	assert.Equal(t, 1, logs.FilterMessage("conversion complete").Len())
}

func TestRun_CustomColumns(t *testing.T) {
	p := newPaths(t, "Name,Org,Mail\nAda,Analytical,ada@example.com\n")

	cfg := config.Default()
	cfg.InputPath, cfg.IndexPath, cfg.DetailsPath = p.input, p.index, p.details
	cfg.Columns.Name, cfg.Columns.Company, cfg.Columns.Email = "Name", "Org", "Mail"

	result, err := New(cfg, nil).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, "Ada | Analytical |  | ada@example.com\n", readFile(t, p.index))
}

func TestRun_XLSXInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "leads.xlsx")

	f := excelize.NewFile()
	rows := [][]any{
		{"Full Name", "Company Name", "Work Email", "Job Title", "Company Domain"},
		{"Ada", "Analytical", "ada@example.com", "Founder", "analytical.io"},
		{"Charles", "Difference"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(input))
	require.NoError(t, f.Close())

	cfg := config.Default()
	cfg.InputPath = input
	cfg.IndexPath = filepath.Join(dir, "index.txt")
	cfg.DetailsPath = filepath.Join(dir, "details.txt")

	result, err := New(cfg, nil).Run()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "Ada | Analytical | Founder | ada@example.com\n", readFile(t, cfg.IndexPath))
	assert.Contains(t, readFile(t, cfg.DetailsPath), "Website: https://analytical.io\n")
}
