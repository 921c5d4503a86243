package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BuildEst/internal/engine"
	"github.com/piwi3910/BuildEst/internal/model"
)

// projectionInputs are the flags shared by estimate, schedule, and report.
type projectionInputs struct {
	rooms       []string
	projectName string
	quality     float64
	location    float64
	margin      float64
	fee         float64
	contingency float64
}

func (in *projectionInputs) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&in.rooms, "room", nil, `room count, repeatable: --room "Standard Bedroom=2"`)
	cmd.Flags().StringVar(&in.projectName, "project", "", "use a saved project's counts and multipliers")
	cmd.Flags().Float64Var(&in.quality, "quality", 0, "quality multiplier scaling consumption rates (default from config)")
	cmd.Flags().Float64Var(&in.location, "location", 0, "location multiplier scaling unit prices (default from config)")
	cmd.Flags().Float64Var(&in.margin, "margin", -1, "extra margin for unknowns, fraction (default from config)")
	cmd.Flags().Float64Var(&in.fee, "fee", -1, "professional fees, fraction (default from config)")
	cmd.Flags().Float64Var(&in.contingency, "contingency", -1, "contingency, fraction (default from config)")
}

// resolve merges flags, a saved project, and config defaults into the
// concrete engine inputs.
func (in *projectionInputs) resolve(state appState) (counts map[string]int, templates model.RoomTemplates, quality, location float64, err error) {
	templates = state.Templates
	quality = state.Config.DefaultQualityMultiplier
	location = state.Config.DefaultLocationMultiplier

	if in.projectName != "" {
		snap, ok := state.Projects.Get(in.projectName)
		if !ok {
			return nil, nil, 0, 0, fmt.Errorf("no saved project named %q", in.projectName)
		}
		counts = snap.RoomCounts
		templates = snap.RoomTemplates
		quality = snap.QualityMultiplier
		location = snap.LocationMultiplier
	} else if len(in.rooms) > 0 {
		counts, err = parseRoomFlags(in.rooms, templates)
		if err != nil {
			return nil, nil, 0, 0, err
		}
	} else {
		// No rooms given: fall back to the configured default counts.
		counts = make(map[string]int, len(state.Config.DefaultRoomCounts))
		for room, cnt := range state.Config.DefaultRoomCounts {
			counts[room] = cnt
		}
	}

	if in.quality > 0 {
		quality = in.quality
	}
	if in.location > 0 {
		location = in.location
	}
	return counts, templates, quality, location, nil
}

// markups returns the three markup fractions, falling back to config defaults
// for any flag left unset.
func (in *projectionInputs) markups(config model.AppConfig) (margin, fee, contingency float64) {
	margin, fee, contingency = config.DefaultMarginPct, config.DefaultFeePct, config.DefaultContingencyPct
	if in.margin >= 0 {
		margin = in.margin
	}
	if in.fee >= 0 {
		fee = in.fee
	}
	if in.contingency >= 0 {
		contingency = in.contingency
	}
	return margin, fee, contingency
}

func newEstimateCmd() *cobra.Command {
	var inputs projectionInputs
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Generate a bill of quantities and cost summary",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			phases := engine.PhaseTotals(result.Rows)

			printBOQ(cmd, result)
			printPhases(cmd, phases)
			printSummary(cmd, result.TotalArea, summary)
			return nil
		},
	}
	inputs.register(cmd)
	return cmd
}

func printBOQ(cmd *cobra.Command, result engine.BOQResult) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tUNIT\tQTY\tUNIT PRICE\tTOTAL COST\tPHASE")
	for _, r := range result.Rows {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%s\n", r.Item, r.Unit, r.TotalQty, r.UnitPrice, r.TotalCost, r.Phase)
	}
	w.Flush()
	for _, note := range result.Notes {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s\n", note)
	}
}

func printPhases(cmd *cobra.Command, phases []engine.PhaseTotal) {
	fmt.Fprintln(cmd.OutOrStdout())
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PHASE\tCOST (GHS)")
	for _, pt := range phases {
		fmt.Fprintf(w, "%s\t%.2f\n", pt.Phase, pt.PhaseCost)
	}
	w.Flush()
}

func printSummary(cmd *cobra.Command, totalArea float64, s engine.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total floor area:   %.1f m2\n", totalArea)
	fmt.Fprintf(out, "Base total:         GHS %.2f\n", s.BaseTotal)
	fmt.Fprintf(out, "Extra margin:       GHS %.2f (%.0f%%)\n", s.MarginCost, s.MarginPct*100)
	fmt.Fprintf(out, "Professional fees:  GHS %.2f (%.0f%%)\n", s.FeeCost, s.FeePct*100)
	fmt.Fprintf(out, "Contingency:        GHS %.2f (%.0f%%)\n", s.ContingencyCost, s.ContingencyPct*100)
	fmt.Fprintf(out, "Grand total:        GHS %.2f\n", s.GrandTotal)
}

func init() {
	RootCmd.AddCommand(newEstimateCmd())
}
