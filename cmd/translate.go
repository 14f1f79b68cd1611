// =============================================================================
// Record Translator - Translate Command
// =============================================================================
//
// This file implements the root command's action: translating one input
// into one output.
//
// COMMAND USAGE:
//   translator <input-format> <output-format> [flags]
//
// FLAGS:
//   --input, -i   : Read from a file instead of stdin
//   --output, -o  : Write to a file instead of stdout
//   --output-dir  : Write to a generated file name in this directory
//
// PROCESSING PIPELINE:
//   1. Resolve the input and output formats
//   2. Read the whole input
//   3. Parse, normalize and serialize (converter.Run)
//   4. Write the output
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/ginjaninja78/record-translator/internal/converter"
	"github.com/ginjaninja78/record-translator/internal/formatter"
	"github.com/ginjaninja78/record-translator/internal/types"
	"github.com/ginjaninja78/record-translator/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

type translateOptions struct {
	root *rootOptions

	// inputPath is read instead of stdin when set.
	inputPath string

	// outputPath is written instead of stdout when set.
	outputPath string

	// outputDir receives a generated file name when set.
	outputDir string
}

func (o *translateOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.inputPath, "input", "i", "", "Input file (default stdin)")
	cmd.Flags().StringVarP(&o.outputPath, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&o.outputDir, "output-dir", "", "Directory for a generated output file name")
	cmd.MarkFlagsMutuallyExclusive("output", "output-dir")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// run translates the input and writes the output.
func (o *translateOptions) run(cmd *cobra.Command, inputTag, outputTag string) error {
	in, err := types.ParseInputFormat(inputTag)
	if err != nil {
		return err
	}
	out, err := formatter.ParseOutputFormat(outputTag)
	if err != nil {
		return err
	}

	input, err := utils.ReadInput(o.inputPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	result := converter.New(o.root.cfg, o.root.log).Run(input, in, out)
	if result.Error != nil {
		return result.Error
	}

	if len(result.Rejections) > 0 {
		o.root.log.Warn("Some rows were skipped",
			"rejected", result.Stats.Rejected,
			"accepted", result.Stats.Accepted,
		)
	}

	return o.writeOutput(cmd, result.Output, in, out)
}

// writeOutput writes to --output, to a generated name under --output-dir, or
// to stdout.
func (o *translateOptions) writeOutput(cmd *cobra.Command, data []byte, in types.InputFormat, out formatter.OutputFormat) error {
	path := o.outputPath
	if path == "" && o.outputDir != "" {
		name := utils.GenerateOutputFileName(o.root.cfg.OutputNameFormat, map[string]string{
			"input":  string(in),
			"format": string(out),
		}, out.Extension())
		path = filepath.Join(o.outputDir, name)
	}

	if path == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := utils.WriteOutputFile(path, data); err != nil {
		return err
	}
	o.root.log.Info("Wrote output", "path", path, "bytes", len(data))
	if o.outputDir != "" {
		// The generated name is the only way to find the file.
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
