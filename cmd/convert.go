// =============================================================================
// Lead Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command and the conversion run shared with
// the root command.
//
// COMMAND USAGE:
//   leadconv convert [input [index [details]]]
//
// PATH PRECEDENCE (highest first):
//   positional arguments > --input/--index/--details > config file > defaults
//
// OUTPUT (stdout):
//   Processed 2 leads (1 skipped - missing name/company/email)
//     workspace/memory/lead-index.txt
//     workspace/memory/lead-details.txt
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/leadconv/internal/config"
	"github.com/ginjaninja78/leadconv/internal/converter"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input [index [details]]]",
	Short: "Convert a lead export into index and details files",
	Long: `Reads the lead export, skips rows without a name, company or work email,
and rewrites the index and details files. Missing positional arguments fall
back to the flags, then to the configuration file, then to the defaults.`,
	Args: cobra.MaximumNArgs(3),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

// runConvert applies path overrides, runs the converter and prints the
// summary.
func runConvert(cmd *cobra.Command, args []string) error {
	run := *cfg
	applyOverrides(&run, args)

	if err := config.Validate(&run); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	result, err := converter.New(&run, logger).Run()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed %d leads (%d skipped - missing name/company/email)\n",
		result.Processed, result.Skipped)
	fmt.Fprintf(out, "  %s\n", result.IndexPath)
	fmt.Fprintf(out, "  %s\n", result.DetailsPath)

	return nil
}

// applyOverrides layers flag values, then positional arguments, onto c.
func applyOverrides(c *config.Config, args []string) {
	for _, o := range []struct {
		dst  *string
		flag string
		arg  int
	}{
		{&c.InputPath, inputPath, 0},
		{&c.IndexPath, indexPath, 1},
		{&c.DetailsPath, detailsPath, 2},
	} {
		if o.flag != "" {
			*o.dst = o.flag
		}
		if o.arg < len(args) && args[o.arg] != "" {
			*o.dst = args[o.arg]
		}
	}
}
