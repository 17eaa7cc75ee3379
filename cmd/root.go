// =============================================================================
// Lead Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Run without
// arguments, the root command converts the default lead export:
//
//   leadconv
//     reads   workspace/memory/aus-con-leads.csv
//     writes  workspace/memory/lead-index.txt
//             workspace/memory/lead-details.txt
//
// COBRA CLI STRUCTURE:
//   rootCmd (leadconv)           - convert using config/flag paths
//   ├── convertCmd (convert)     - convert with positional paths
//   └── versionCmd (version)
//
// The root command loads the configuration and builds the zap logger for
// every subcommand.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/leadconv/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the optional configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// Path overrides. Empty means "use the configuration".
var (
	inputPath   string
	indexPath   string
	detailsPath string
)

// cfg and logger are set up by rootCmd.PersistentPreRunE.
var (
	cfg    *config.Config
	logger *zap.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "leadconv",
	Short: "Lead Converter - Turn a CSV lead export into index and detail text files",
	Long: `Lead Converter reads a CSV (or XLSX) export of sales leads, drops rows that
lack a name, company or work email, and writes two plain-text files:

  index    one "Name | Company | Role | Email" line per lead
  details  one "=== LEAD ===" block per lead with every known field

Example Usage:
  leadconv                                   # default workspace/memory paths
  leadconv --input leads.csv --index i.txt --details d.txt
  leadconv convert leads.xlsx                # positional paths
  leadconv --config leadconv.yaml -v         # config file, debug logging`,

	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		logger, err = newLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, nil)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Path to a YAML configuration file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging on stderr")

	rootCmd.PersistentFlags().StringVar(&inputPath, "input", "",
		"Lead export to read (default "+config.DefaultInputPath+")")
	rootCmd.PersistentFlags().StringVar(&indexPath, "index", "",
		"Index file to write (default "+config.DefaultIndexPath+")")
	rootCmd.PersistentFlags().StringVar(&detailsPath, "details", "",
		"Details file to write (default "+config.DefaultDetailsPath+")")
}

// newLogger builds a production zap logger writing to stderr.
func newLogger(level string, debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	if debug {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	return zc.Build()
}
