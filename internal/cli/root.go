// Package cli wires the estimation engine, stores, and exporters into the
// buildest command-line interface.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BuildEst/internal/model"
	"github.com/piwi3910/BuildEst/internal/project"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "buildest",
	Version: Version,
	Short:   "Room-based residential build cost estimator",
	Long: `BuildEst estimates construction costs for a residential building from
room-level inputs: it generates a bill of quantities from room counts and
per-room fixture templates, rolls costs up by construction phase, and
projects a multi-year funding schedule under inflation and partial
upfront funding.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

// appState bundles the long-lived stores loaded once per invocation.
type appState struct {
	Config    model.AppConfig
	Materials []model.MaterialRecord
	Templates model.RoomTemplates
	Projects  model.ProjectStore
}

// loadState loads all stores from their default paths, falling back to
// built-in defaults where files are missing or corrupt.
func loadState() appState {
	return appState{
		Config:    project.LoadAppConfig(project.DefaultConfigPath()),
		Materials: project.LoadMaterials(project.DefaultMaterialsPath()),
		Templates: project.LoadDefaultTemplates(),
		Projects:  project.LoadDefaultProjects(),
	}
}

// parseRoomFlags turns repeated --room "Name=count" flags into a counts map.
func parseRoomFlags(rooms []string, templates model.RoomTemplates) (map[string]int, error) {
	counts := make(map[string]int, len(rooms))
	for _, spec := range rooms {
		name, value, found := strings.Cut(spec, "=")
		if !found {
			return nil, fmt.Errorf("invalid --room %q: expected \"Name=count\"", spec)
		}
		name = strings.TrimSpace(name)
		cnt, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid --room %q: count must be an integer", spec)
		}
		if cnt < 0 {
			return nil, fmt.Errorf("invalid --room %q: count must not be negative", spec)
		}
		if _, ok := templates[name]; !ok {
			return nil, fmt.Errorf("unknown room type %q (known: %s)", name, strings.Join(templates.Names(), ", "))
		}
		counts[name] = cnt
	}
	return counts, nil
}
