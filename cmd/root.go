// =============================================================================
// Record Translator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// performs the translation itself; the other commands are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (translator <input-format> <output-format>)
//   ├── validateCmd (translator validate <input-format>)
//   ├── schemaCmd   (translator schema)
//   └── versionCmd  (translator version)
//
// CONFIGURATION:
//   Before any command runs, the root command:
//   1. Loads the optional YAML configuration (--config)
//   2. Sets up logging to stderr, tagged with a run_id
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/record-translator/internal/config"
	"github.com/ginjaninja78/record-translator/internal/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// rootOptions holds the persistent flags and the state prepared from them.
type rootOptions struct {
	// cfgFile is the path to the configuration file. Empty means defaults.
	cfgFile string

	// verbose forces debug logging.
	verbose bool

	cfg *config.Config
	log logger.Logger
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCommand builds the complete command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	translate := &translateOptions{root: opts}

	rootCmd := &cobra.Command{
		Use:   "translator <input-format> <output-format>",
		Short: "Record Translator - Normalize CSV and PRN exports into JSON, HTML, XML or XLSX",
		Long: `Record Translator reads personal/financial records exported as
comma-delimited text (csv) or fixed-column-width text (prn), normalizes
every credit limit and birthday, and writes the records as json, html, xml
or xlsx.

Rows with a missing required field or an impossible birthday are skipped
and reported on stderr; the rest of the input is still translated.

Example Usage:
  cat data.csv | translator csv json > output.json
  translator prn html --input data.prn --output output.html
  translator csv xlsx -i data.csv --output-dir ./out
  translator validate csv -i data.csv`,
		Args: cobra.ExactArgs(2),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return translate.run(cmd, args[0], args[1])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&opts.cfgFile,
		"config",
		"",
		"Path to a YAML configuration file (defaults apply when omitted)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&opts.verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging on stderr",
	)

	translate.bindFlags(rootCmd)

	rootCmd.AddCommand(
		newValidateCommand(opts),
		newSchemaCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}

// setup loads the configuration and prepares the logger.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	o.cfg = cfg

	level := cfg.LogLevel
	if o.verbose {
		level = "debug"
	}

	o.log = logger.Setup(logger.Config{
		Level:  level,
		JSON:   cfg.LogJSON,
		Output: cmd.ErrOrStderr(),
	}).With("run_id", uuid.New().String())

	o.log.Debug("Configuration loaded", "config", o.cfgFile, "command", cmd.Name())
	return nil
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
