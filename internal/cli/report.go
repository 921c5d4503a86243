package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BuildEst/internal/engine"
	"github.com/piwi3910/BuildEst/internal/export"
)

func newReportCmd() *cobra.Command {
	var inputs projectionInputs
	var funding fundingInputs
	var xlsxPath, pdfPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a full projection report to Excel and/or PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if xlsxPath == "" && pdfPath == "" {
				return fmt.Errorf("at least one of --xlsx or --pdf is required")
			}

			state := loadState()
			counts, templates, quality, location, err := inputs.resolve(state)
			if err != nil {
				return err
			}

			result := engine.BuildBOQ(counts, templates, state.Materials, quality, location)
			if len(result.Rows) == 0 {
				return fmt.Errorf("no BOQ items generated: ensure room counts > 0 and the materials catalog has items")
			}
			margin, fee, contingency := inputs.markups(state.Config)
			summary := engine.Rollup(result.Rows, margin, fee, contingency)
			phases := engine.ReorderPhases(engine.PhaseTotals(result.Rows), funding.buildOrder())
			upfront, monthlySavings, inflation := funding.resolve(state)
			entries := engine.Schedule(phases, upfront, monthlySavings, inflation)
			curve := engine.CumulativeCurve(entries, upfront, monthlySavings)

			projectName := inputs.projectName
			if projectName == "" {
				projectName = "My Project"
			}
			data := export.ReportData{
				ProjectName: projectName,
				GeneratedAt: time.Now().UTC().Format(time.RFC3339),
				BOQ:         result,
				Summary:     summary,
				Phases:      phases,
				Funding:     entries,
				Curve:       curve,
			}

			if xlsxPath != "" {
				if err := export.ExportExcelReport(xlsxPath, data); err != nil {
					return fmt.Errorf("failed to write Excel report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote Excel report to %s\n", xlsxPath)
			}
			if pdfPath != "" {
				if err := export.ExportPDFReport(pdfPath, data); err != nil {
					return fmt.Errorf("failed to write PDF report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote PDF report to %s\n", pdfPath)
			}
			return nil
		},
	}
	inputs.register(cmd)
	funding.register(cmd)
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the report workbook to this path")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the report PDF to this path")
	return cmd
}

func init() {
	RootCmd.AddCommand(newReportCmd())
}
