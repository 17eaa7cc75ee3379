// =============================================================================
// Lead Converter - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline. One run reads the lead
// export, keeps the rows that carry a name, company and email, and writes
// the index and details documents.
//
// CONVERSION PIPELINE:
//   1. Parse the input (CSV, or XLSX by extension) into a Table
//   2. Build a Lead from every row, trimming and normalizing fields
//   3. Skip rows missing a required field, counting them
//   4. Render and write the index file
//   5. Render and write the details file
//
// Both output files are only touched once the input has been read in full,
// so an unreadable or malformed input leaves previous outputs intact.
//
// =============================================================================

package converter

import (
	"time"

	"github.com/ginjaninja78/leadconv/internal/config"
	"github.com/ginjaninja78/leadconv/internal/csvparser"
	"github.com/ginjaninja78/leadconv/internal/textwriter"
	"github.com/ginjaninja78/leadconv/internal/types"
	"github.com/ginjaninja78/leadconv/internal/validation"
	"github.com/ginjaninja78/leadconv/internal/xlsxparser"
	"github.com/ginjaninja78/leadconv/pkg/utils"
	"go.uber.org/zap"
)

// outputPerm is applied to newly created output files.
const outputPerm = 0o644

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a successful run.
type Result struct {
	// Processed is the number of leads written to both outputs.
	Processed int

	// Skipped is the number of rows dropped for a missing required field.
	Skipped int

	// IndexPath and DetailsPath are the files that were written.
	IndexPath   string
	DetailsPath string

	// Skips explains every skipped row, in input order.
	Skips []validation.SkipReason

	// Duration is the wall time of the run.
	Duration time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter turns one lead export into the index and details documents.
type Converter struct {
	cfg         *config.Config
	transformer *Transformer
	logger      *zap.Logger
}

// New creates a Converter. A nil logger discards all log output.
func New(cfg *config.Config, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		cfg:         cfg,
		transformer: NewTransformer(cfg.Columns),
		logger:      logger,
	}
}

// Convert runs the pipeline on three paths with the default column names.
//
// RETURNS:
//   - The number of leads written and of rows skipped.
//   - *types.FileAccessError or *types.ParseError on failure, in which case
//     both counts are zero.
func Convert(inputPath, indexPath, detailsPath string) (processed, skipped int, err error) {
	cfg := config.Default()
	cfg.InputPath = inputPath
	cfg.IndexPath = indexPath
	cfg.DetailsPath = detailsPath

	result, err := New(cfg, nil).Run()
	if err != nil {
		return 0, 0, err
	}
	return result.Processed, result.Skipped, nil
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - A Result with the counts and written paths.
//   - *types.FileAccessError if the input cannot be read or an output
//     cannot be written, *types.ParseError if the input is malformed.
func (c *Converter) Run() (Result, error) {
	startTime := time.Now()
	log := c.logger.With(zap.String("input", c.cfg.InputPath))

	// =========================================================================
	// STEP 1: PARSE INPUT
	// =========================================================================

	table, err := c.readInput()
	if err != nil {
		log.Error("failed to read input", zap.Error(err))
		return Result{}, err
	}

	log.Debug("parsed input",
		zap.Int("rows", table.RowCount()),
		zap.Strings("headers", table.Headers))

	for _, column := range []string{c.cfg.Columns.Name, c.cfg.Columns.Company, c.cfg.Columns.Email} {
		if table.RowCount() > 0 && !table.HasColumn(column) {
			log.Warn("required column not in header, every row will be skipped",
				zap.String("column", column))
		}
	}

	// =========================================================================
	// STEP 2-3: BUILD AND FILTER LEADS
	// =========================================================================

	leads, skips := c.buildLeads(table)

	result := Result{
		Processed:   len(leads),
		Skipped:     len(skips),
		IndexPath:   c.cfg.IndexPath,
		DetailsPath: c.cfg.DetailsPath,
		Skips:       skips,
	}

	if len(skips) > 0 {
		log.Info("skipped incomplete rows",
			zap.Int("skipped", len(skips)),
			zap.Any("missing", validation.Summarize(skips)))
	}

	// =========================================================================
	// STEP 4-5: WRITE OUTPUTS
	// =========================================================================

	if err := c.writeOutput(c.cfg.IndexPath, textwriter.RenderIndex(leads)); err != nil {
		log.Error("failed to write index", zap.Error(err))
		return Result{}, err
	}

	if err := c.writeOutput(c.cfg.DetailsPath, textwriter.RenderDetails(leads)); err != nil {
		log.Error("failed to write details", zap.Error(err))
		return Result{}, err
	}

	result.Duration = time.Since(startTime)

	log.Info("conversion complete",
		zap.Int("processed", result.Processed),
		zap.Int("skipped", result.Skipped),
		zap.Duration("elapsed", result.Duration))

	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// readInput parses the configured input, choosing the parser by extension.
func (c *Converter) readInput() (*types.Table, error) {
	if xlsxparser.IsWorkbook(c.cfg.InputPath) {
		return xlsxparser.Parse(c.cfg.InputPath, c.cfg.Sheet)
	}
	return csvparser.Parse(c.cfg.InputPath, csvparser.Settings{
		Encoding: c.cfg.Encoding,
		Comma:    c.cfg.Comma(),
	})
}

// buildLeads transforms every row and splits the result into leads and skip
// reasons. Input order is preserved and duplicates are kept.
func (c *Converter) buildLeads(table *types.Table) ([]types.Lead, []validation.SkipReason) {
	leads := make([]types.Lead, 0, table.RowCount())
	var skips []validation.SkipReason

	for i, row := range table.Rows {
		rowNumber := i + 2
		if i < len(table.Lines) {
			rowNumber = table.Lines[i]
		}

		lead := c.transformer.Transform(row, rowNumber)

		if reason := validation.CheckRequired(&lead); reason != nil {
			c.logger.Debug("skipping row",
				zap.Int("row", reason.RowNumber),
				zap.Strings("missing", reason.Missing))
			skips = append(skips, *reason)
			continue
		}

		leads = append(leads, lead)
	}

	return leads, skips
}

// writeOutput atomically replaces path with data.
func (c *Converter) writeOutput(path string, data []byte) error {
	if utils.FileExists(path) {
		c.logger.Debug("replacing existing output", zap.String("path", path))
	}

	if err := utils.WriteFileAtomic(path, data, outputPerm); err != nil {
		return &types.FileAccessError{Op: "write", Path: path, Err: err}
	}

	c.logger.Debug("wrote output", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
