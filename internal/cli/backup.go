package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BuildEst/internal/project"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import all application data as one JSON bundle",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Export config, catalogs, and projects to a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := loadState()
			if err := project.ExportAllData(args[0], state.Config, state.Materials, state.Templates, state.Projects); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported all data to %s\n", args[0])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Restore config, catalogs, and projects from a backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
				return fmt.Errorf("failed to restore config: %w", err)
			}
			if err := project.SaveMaterials(project.DefaultMaterialsPath(), backup.Materials); err != nil {
				return fmt.Errorf("failed to restore materials: %w", err)
			}
			if err := project.SaveDefaultTemplates(backup.Templates); err != nil {
				return fmt.Errorf("failed to restore templates: %w", err)
			}
			if err := project.SaveDefaultProjects(backup.Projects); err != nil {
				return fmt.Errorf("failed to restore projects: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported all data from %s (created %s)\n", args[0], backup.CreatedAt)
			return nil
		},
		Args: cobra.ExactArgs(1),
	})
	return cmd
}

func init() {
	RootCmd.AddCommand(newBackupCmd())
}
