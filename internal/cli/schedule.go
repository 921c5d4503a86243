package cli

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BuildEst/internal/engine"
)

// fundingInputs are the affordability flags shared by schedule and report.
type fundingInputs struct {
	upfront   float64
	monthly   float64
	income    float64
	savePct   float64
	inflation float64
	order     string
}

func (in *fundingInputs) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&in.upfront, "upfront", -1, "one-time upfront investment, GHS (default from config)")
	cmd.Flags().Float64Var(&in.monthly, "monthly", -1, "monthly savings, GHS; overrides --income/--save-pct")
	cmd.Flags().Float64Var(&in.income, "income", -1, "monthly income, GHS (default from config)")
	cmd.Flags().Float64Var(&in.savePct, "save-pct", -1, "percent of income saved monthly (default from config)")
	cmd.Flags().Float64Var(&in.inflation, "inflation", -1, "annual inflation, percent (default from config)")
	cmd.Flags().StringVar(&in.order, "order", "", "comma-separated phase build order (default: BOQ order)")
}

// resolve merges the funding flags with config defaults and derives the
// monthly savings amount.
func (in *fundingInputs) resolve(state appState) (upfront, monthlySavings, inflation float64) {
	cfg := state.Config
	upfront = cfg.DefaultUpfrontCash
	if in.upfront >= 0 {
		upfront = in.upfront
	}
	inflation = cfg.DefaultInflationPct
	if in.inflation >= 0 {
		inflation = in.inflation
	}
	if in.monthly >= 0 {
		monthlySavings = in.monthly
		return upfront, monthlySavings, inflation
	}
	income := cfg.DefaultMonthlyIncome
	if in.income >= 0 {
		income = in.income
	}
	savePct := cfg.DefaultSavePercent
	if in.savePct >= 0 {
		savePct = in.savePct
	}
	return upfront, engine.SavingsFromIncome(income, savePct), inflation
}

// buildOrder parses the --order flag into a phase name list.
func (in *fundingInputs) buildOrder() []string {
	if in.order == "" {
		return nil
	}
	parts := strings.Split(in.order, ",")
	order := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			order = append(order, trimmed)
		}
	}
	return order
}

func newScheduleCmd() *cobra.Command {
	var inputs projectionInputs
	var funding fundingInputs
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Project a phase-by-phase funding timeline",
		Long: `Schedule runs a projection and computes, for each construction phase in
build order, when it can be funded from an upfront lump sum plus monthly
savings, with costs inflated to each phase's start month.`,
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
			phases := engine.ReorderPhases(engine.PhaseTotals(result.Rows), funding.buildOrder())
			upfront, monthlySavings, inflation := funding.resolve(state)
			entries := engine.Schedule(phases, upfront, monthlySavings, inflation)

			printSchedule(cmd, entries, upfront, monthlySavings)
			return nil
		},
	}
	inputs.register(cmd)
	funding.register(cmd)
	return cmd
}

func printSchedule(cmd *cobra.Command, entries []engine.FundingEntry, upfront, monthlySavings float64) {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PHASE\tBASE\tAFTER UPFRONT\tINFLATED\tMONTHS\tSTART\tEND")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%s\t%s\t%s\n",
			e.Phase, e.BaseCost, e.AfterUpfront, e.InflatedCost,
			fmtMonths(e.MonthsNeeded), fmtMonths(e.StartMonth), fmtMonths(e.EndMonth))
	}
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Upfront cash:     GHS %.2f\n", upfront)
	fmt.Fprintf(out, "Monthly savings:  GHS %.2f\n", monthlySavings)
	completion := engine.CompletionMonth(entries)
	if math.IsInf(completion, 1) {
		fmt.Fprintln(out, "Project cannot be funded with current monthly savings; increase savings or use financing.")
		return
	}
	yrs := int(completion) / 12
	mos := int(completion) % 12
	fmt.Fprintf(out, "Total inflated:   GHS %.2f\n", engine.TotalInflated(entries))
	fmt.Fprintf(out, "Completion:       %d yrs %d mos (month %.1f)\n", yrs, mos, completion)
}

func fmtMonths(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.1f", v)
}

func init() {
	RootCmd.AddCommand(newScheduleCmd())
}
