// =============================================================================
// Record Translator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It parses the input exactly as
// a translation would but writes a report instead of records.
//
// COMMAND USAGE:
//   translator validate <input-format> [--input FILE]
//
// EXIT STATUS:
//   Non-zero if any row is rejected or the input cannot be parsed.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/record-translator/internal/converter"
	"github.com/ginjaninja78/record-translator/internal/types"
	"github.com/ginjaninja78/record-translator/internal/validation"
	"github.com/ginjaninja78/record-translator/pkg/utils"
	"github.com/spf13/cobra"
)

// ErrValidationFailed is returned when at least one row is rejected.
var ErrValidationFailed = errors.New("validation failed")

func newValidateCommand(root *rootOptions) *cobra.Command {
	var inputPath string

	validateCmd := &cobra.Command{
		Use:   "validate <input-format>",
		Short: "Check an input file without translating it",
		Long: `The validate command parses the input and prints a report: the number
of rows read, accepted and rejected, every rejected row with its reason,
and warnings for accepted rows with empty optional fields or a zero credit
limit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := types.ParseInputFormat(args[0])
			if err != nil {
				return err
			}

			input, err := utils.ReadInput(inputPath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			outcomes, err := converter.New(root.cfg, root.log).Parse(in, input)
			if err != nil {
				return fmt.Errorf("failed to parse %s input: %w", in, err)
			}

			report := validation.Build(outcomes)
			fmt.Fprint(cmd.OutOrStdout(), report.Summary())
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), validation.FormatIssues(report.Issues))

			if !report.IsValid {
				return fmt.Errorf("%w: %d of %d row(s) rejected", ErrValidationFailed, report.Rejected, report.RowsRead)
			}
			return nil
		},
	}

	validateCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file (default stdin)")

	return validateCmd
}
