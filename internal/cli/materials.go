package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BuildEst/internal/importer"
	"github.com/piwi3910/BuildEst/internal/model"
	"github.com/piwi3910/BuildEst/internal/project"
)

func newMaterialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Manage the materials catalog",
	}
	cmd.AddCommand(newMaterialsListCmd())
	cmd.AddCommand(newMaterialsImportCmd())
	cmd.AddCommand(newMaterialsExportCmd())
	cmd.AddCommand(newMaterialsResetCmd())
	return cmd
}

func newMaterialsListCmd() *cobra.Command {
	var phase string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items with prices and consumption rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			materials := project.LoadMaterials(project.DefaultMaterialsPath())
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ITEM\tUNIT\tPRICE\tPHASE\tCONSUMPTION/M2")
			for _, m := range materials {
				if phase != "" && !strings.EqualFold(m.Phase, phase) {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%.3f\n", m.Item, m.Unit, m.Price, m.Phase, m.ConsumptionPerM2)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&phase, "phase", "", "only show items in this phase")
	return cmd
}

func newMaterialsImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a materials catalog from CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var result importer.ImportResult
			switch strings.ToLower(filepath.Ext(path)) {
			case ".xlsx", ".xls":
				result = importer.ImportExcel(path)
			default:
				result = importer.ImportCSV(path)
			}

			for _, warning := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
			}
			for _, errMsg := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", errMsg)
			}
			if len(result.Materials) == 0 {
				return fmt.Errorf("no materials imported from %s", path)
			}

			if err := project.SaveMaterials(project.DefaultMaterialsPath(), result.Materials); err != nil {
				return fmt.Errorf("failed to save catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d materials into %s\n", len(result.Materials), project.DefaultMaterialsPath())
			return nil
		},
	}
	return cmd
}

func newMaterialsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the materials catalog to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			materials := project.LoadMaterials(project.DefaultMaterialsPath())
			if err := project.SaveMaterials(args[0], materials); err != nil {
				return fmt.Errorf("failed to export catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d materials to %s\n", len(materials), args[0])
			return nil
		},
	}
	return cmd
}

func newMaterialsResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the materials catalog to the built-in defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := model.DefaultMaterials()
			if err := project.SaveMaterials(project.DefaultMaterialsPath(), defaults); err != nil {
				return fmt.Errorf("failed to reset catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset catalog to %d default materials\n", len(defaults))
			return nil
		},
	}
	return cmd
}

func init() {
	RootCmd.AddCommand(newMaterialsCmd())
}
