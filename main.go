// =============================================================================
// Record Translator - Main Entry Point
// =============================================================================
//
// USAGE:
//   translator <input-format> <output-format>  - Translate stdin to stdout
//   translator validate <input-format>         - Report accepted/rejected rows
//   translator schema                          - Print the XSD of xml output
//   translator version                         - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Parsers, normalizers, formatters, configuration
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/record-translator/cmd"
)

func main() {
	cmd.Execute()
}
