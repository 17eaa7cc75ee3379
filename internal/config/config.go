// =============================================================================
// Lead Converter - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has a
// default, so the converter runs with no configuration file at all.
//
// CONFIGURATION FILE (all keys optional):
//   input_path:   workspace/memory/aus-con-leads.csv
//   index_path:   workspace/memory/lead-index.txt
//   details_path: workspace/memory/lead-details.txt
//   encoding:     utf-8
//   delimiter:    ","           (csv inputs only)
//   sheet:        ""            (xlsx inputs only; empty selects the first sheet)
//   log_level:    warn
//   columns:      source column names, see ColumnMapping
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultInputPath   = "workspace/memory/aus-con-leads.csv"
	DefaultIndexPath   = "workspace/memory/lead-index.txt"
	DefaultDetailsPath = "workspace/memory/lead-details.txt"
	DefaultEncoding    = "utf-8"
	DefaultDelimiter   = ","
	DefaultLogLevel    = "warn"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the converter settings.
type Config struct {
	// InputPath is the lead export to read (.csv, or .xlsx).
	InputPath string `yaml:"input_path"`

	// IndexPath receives one "name | company | role | email" line per lead.
	IndexPath string `yaml:"index_path"`

	// DetailsPath receives one "=== LEAD ===" block per lead.
	DetailsPath string `yaml:"details_path"`

	// Encoding is the character encoding of CSV inputs.
	// Any WHATWG label is accepted: "utf-8", "windows-1252", "iso-8859-1", ...
	Encoding string `yaml:"encoding"`

	// Delimiter is the field separator of CSV inputs, a single character.
	Delimiter string `yaml:"delimiter"`

	// Sheet selects the worksheet of an XLSX input. Empty means the first sheet.
	Sheet string `yaml:"sheet"`

	// LogLevel controls diagnostic output on stderr.
	// Valid values: "debug", "info", "warn", "error"
	LogLevel string `yaml:"log_level"`

	// Columns maps lead fields to source column headers.
	Columns ColumnMapping `yaml:"columns"`
}

// ColumnMapping names the source column for every lead field.
type ColumnMapping struct {
	Name     string `yaml:"name"`
	Company  string `yaml:"company"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
	Website  string `yaml:"website"`
	Location string `yaml:"location"`
	LinkedIn string `yaml:"linkedin"`
	Headline string `yaml:"headline"`
	Summary  string `yaml:"summary"`
}

// DefaultColumns returns the column names of the standard lead export.
func DefaultColumns() ColumnMapping {
	return ColumnMapping{
		Name:     "Full Name",
		Company:  "Company Name",
		Email:    "Work Email",
		Role:     "Job Title",
		Website:  "Company Domain",
		Location: "Location",
		LinkedIn: "LinkedIn Profile",
		Headline: "Headline",
		Summary:  "Summary",
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration file at configPath and applies defaults to
// every unset option. An empty configPath yields the defaults.
//
// PARAMETERS:
//   - configPath: The path to the YAML configuration file, or "".
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed, or fails validation.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputPath == "" {
		cfg.InputPath = DefaultInputPath
	}
	if cfg.IndexPath == "" {
		cfg.IndexPath = DefaultIndexPath
	}
	if cfg.DetailsPath == "" {
		cfg.DetailsPath = DefaultDetailsPath
	}
	if cfg.Encoding == "" {
		cfg.Encoding = DefaultEncoding
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = DefaultDelimiter
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	def := DefaultColumns()
	cols := &cfg.Columns
	for _, c := range []struct {
		dst *string
		val string
	}{
		{&cols.Name, def.Name},
		{&cols.Company, def.Company},
		{&cols.Email, def.Email},
		{&cols.Role, def.Role},
		{&cols.Website, def.Website},
		{&cols.Location, def.Location},
		{&cols.LinkedIn, def.LinkedIn},
		{&cols.Headline, def.Headline},
		{&cols.Summary, def.Summary},
	} {
		if strings.TrimSpace(*c.dst) == "" {
			*c.dst = c.val
		}
	}
}

// Validate checks a configuration after defaults have been applied.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.InputPath == "" || cfg.IndexPath == "" || cfg.DetailsPath == "" {
		errs = append(errs, "input_path, index_path and details_path are required")
	}

	paths := map[string]string{}
	for key, p := range map[string]string{
		"input_path":   cfg.InputPath,
		"index_path":   cfg.IndexPath,
		"details_path": cfg.DetailsPath,
	} {
		if p == "" {
			continue
		}
		clean := filepath.Clean(p)
		if other, dup := paths[clean]; dup {
			first, second := other, key
			if second < first {
				first, second = second, first
			}
			errs = append(errs, fmt.Sprintf("%s and %s must differ", first, second))
		}
		paths[clean] = key
	}

	if cfg.Columns.Name == "" || cfg.Columns.Company == "" || cfg.Columns.Email == "" {
		errs = append(errs, "columns.name, columns.company and columns.email are required")
	}

	if _, err := htmlindex.Get(cfg.Encoding); err != nil {
		errs = append(errs, fmt.Sprintf("encoding %q is not supported", cfg.Encoding))
	}

	if err := validateDelimiter(cfg.Delimiter); err != nil {
		errs = append(errs, err.Error())
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log_level %q must be debug, info, warn or error", cfg.LogLevel))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Comma returns the delimiter as a rune. An unset delimiter means ','.
func (c *Config) Comma() rune {
	if c.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// validateDelimiter accepts exactly one character that the CSV reader can
// use as a separator.
func validateDelimiter(delimiter string) error {
	if utf8.RuneCountInString(delimiter) != 1 {
		return fmt.Errorf("delimiter %q must be a single character", delimiter)
	}

	r, _ := utf8.DecodeRuneInString(delimiter)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return fmt.Errorf("delimiter %q cannot be a quote, a line break or invalid UTF-8", delimiter)
	}
	return nil
}
