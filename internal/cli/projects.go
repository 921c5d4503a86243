package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BuildEst/internal/model"
	"github.com/piwi3910/BuildEst/internal/project"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage saved projects",
	}
	cmd.AddCommand(newProjectsListCmd())
	cmd.AddCommand(newProjectsSaveCmd())
	cmd.AddCommand(newProjectsDeleteCmd())
	return cmd
}

func newProjectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := project.LoadDefaultProjects()
			if len(store) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved projects yet.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCREATED\tROOMS\tQUALITY\tLOCATION")
			for _, name := range store.Names() {
				snap := store[name]
				var rooms int
				for _, cnt := range snap.RoomCounts {
					rooms += cnt
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\n", snap.Name, snap.CreatedAt, rooms, snap.QualityMultiplier, snap.LocationMultiplier)
			}
			return w.Flush()
		},
	}
}

func newProjectsSaveCmd() *cobra.Command {
	var rooms []string
	var quality, location float64
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save room counts and multipliers as a named project",
		Long: `Save captures the given room counts, the multipliers, and a full copy of
the current room template catalog, so later template edits do not change
the saved project. Saving under an existing name overwrites it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			state := loadState()
			counts, err := parseRoomFlags(rooms, state.Templates)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				return fmt.Errorf("at least one --room flag is required")
			}

			snap := model.NewProjectSnapshot(name, counts, state.Templates, quality, location)
			state.Projects.Save(snap)
			if err := project.SaveDefaultProjects(state.Projects); err != nil {
				return fmt.Errorf("failed to save projects: %w", err)
			}

			state.Config.AddRecentProject(name)
			if err := project.SaveAppConfig(project.DefaultConfigPath(), state.Config); err != nil {
				return fmt.Errorf("failed to update config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %q saved.\n", name)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&rooms, "room", nil, `room count, repeatable: --room "Standard Bedroom=2"`)
	cmd.Flags().Float64Var(&quality, "quality", 1.0, "quality multiplier scaling consumption rates")
	cmd.Flags().Float64Var(&location, "location", 1.0, "location multiplier scaling unit prices")
	return cmd
}

func newProjectsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			store := project.LoadDefaultProjects()
			if !store.Delete(name) {
				return fmt.Errorf("no saved project named %q", name)
			}
			if err := project.SaveDefaultProjects(store); err != nil {
				return fmt.Errorf("failed to save projects: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %q.\n", name)
			return nil
		},
	}
}

func init() {
	RootCmd.AddCommand(newProjectsCmd())
}
