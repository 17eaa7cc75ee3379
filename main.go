// =============================================================================
// Lead Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   leadconv                  - Convert the default lead export
//   leadconv convert [paths]  - Convert with explicit paths
//   leadconv version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : parsing, transformation and rendering of leads
//   - pkg/       : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/leadconv/cmd"
)

func main() {
	cmd.Execute()
}
