package cmd

import (
	"github.com/ginjaninja78/record-translator/internal/formatter"
	"github.com/spf13/cobra"
)

// newSchemaCommand prints the XSD of the xml output for the current
// configuration.
func newSchemaCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the XML Schema (XSD) of the xml output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			xsd, err := formatter.GenerateXSD(root.cfg.OutputSettings)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(xsd)
			return err
		},
	}
}
