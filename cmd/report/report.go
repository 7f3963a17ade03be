// Package report implements the report command.
package report

import (
	"fmt"

	"github.com/spf13/cobra"

	"parcelas/cmd/root"
	"parcelas/internal/fileutils"
	"parcelas/internal/logging"
	"parcelas/internal/models"
	"parcelas/internal/validation"
)

// Cmd represents the report command
var Cmd = NewCmd()

// NewCmd builds the report command.
func NewCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize all purchases as json, yaml or csv",
		Long: `Summarize every purchase with its estimated installment, amount
amortized, current balance and progress. The json and yaml formats also
include collection totals.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := format
			if format == "" {
				format = root.Config().Report.Format
			}
			if err := validation.IsValidReportFormat(format); err != nil {
				return err
			}

			purchases := root.Ledger().Purchases()
			data, err := root.AppContainer.GetReportGenerator().Generate(purchases, format)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "" || output == "-" {
				_, err := out.Write(data)
				return err
			}
			if err := fileutils.WriteFile(output, data, models.PermissionReportFile); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			root.Log.WithFields(
				logging.F(logging.FieldOperation, logging.OpReport),
				logging.F(logging.FieldFile, output),
				logging.F(logging.FieldCount, len(purchases)),
			).Info("Report written")
			fmt.Fprintf(out, "Report written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: json, yaml or csv (default from report.format)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
