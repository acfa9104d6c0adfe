package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/tiers"
	"github.com/spf13/cobra"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Inspect and resolve pricing tiers",
}

var tiersResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the tier that applies to a spend or unit level",
	RunE:  runTiersResolve,
}

var tiersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the loaded tier tables",
	RunE:  runTiersList,
}

func init() {
	rootCmd.AddCommand(tiersCmd)
	tiersCmd.AddCommand(tiersResolveCmd, tiersListCmd)

	tiersResolveCmd.Flags().StringP("provider", "p", "", "Provider to resolve for")
	tiersResolveCmd.Flags().Float64("spend", 0, "Monthly spend in USD")
	tiersResolveCmd.Flags().Float64("base-cost", 0, "Base cost to apply the volume discount to")
	tiersResolveCmd.Flags().Float64("units", 0, "Requested capacity units for commitment pricing")
	_ = tiersResolveCmd.MarkFlagRequired("provider")
}

func runTiersResolve(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider, _ := cmd.Flags().GetString("provider")
	spend, _ := cmd.Flags().GetFloat64("spend")
	baseCost, _ := cmd.Flags().GetFloat64("base-cost")
	units, _ := cmd.Flags().GetFloat64("units")

	cat, err := initCatalog(cfg)
	if err != nil {
		return err
	}

	if vt, ok := tiers.Resolve(provider, spend, cat.Volume); ok {
		fmt.Printf("Volume tier:     %s (order %d, %.0f%% discount)\n", vt.Name, vt.Order, vt.DiscountPct)
		if baseCost > 0 {
			fmt.Printf("Discounted cost: $%.2f (from $%.2f)\n", tiers.DiscountedCost(baseCost, vt), baseCost)
		}
	} else {
		fmt.Printf("Volume tier:     none for %q at spend %.2f\n", provider, spend)
	}

	if st, ok := tiers.Resolve(provider, spend, cat.Support); ok {
		fmt.Printf("Support plan:    %s ($%.2f/month)\n", st.Name, tiers.SupportCost(st, spend))
	}

	if units > 0 {
		if ct, ok := tiers.Resolve(provider, spend, cat.Commitment); ok {
			fmt.Printf("Commitment:      %s (%s)\n", ct.Name, ct.UnitType)
			fmt.Printf("  Monthly cost:  $%.2f for %.0f-%.0f units\n",
				tiers.CommitmentCost(ct, units), ct.MinUnits, ct.MaxUnits)
			if capacity := tiers.TokenCapacity(ct, units); capacity > 0 {
				fmt.Printf("  Capacity:      %.0f tokens/minute\n", capacity)
			}
		}
	}

	return nil
}

func runTiersList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := initCatalog(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PROVIDER\tTIER\tKIND\tRANGE\tTERMS\n")
	for _, t := range cat.Volume {
		fmt.Fprintf(w, "%s\t%s\tvolume\t%s\t%.0f%% discount\n",
			t.Provider, t.Name, bandRange(t.Band), t.DiscountPct)
	}
	for _, t := range cat.Commitment {
		fmt.Fprintf(w, "%s\t%s\tcommitment\t%.0f-%.0f %s\t$%.2f/unit/month\n",
			t.Provider, t.Name, t.MinUnits, t.MaxUnits, t.UnitType, commitmentMonthlyRate(t))
	}
	for _, t := range cat.Support {
		terms := fmt.Sprintf("$%.0f/month", t.MonthlyBaseCost)
		if t.SpendPct > 0 {
			terms += fmt.Sprintf(" or %.0f%% of spend", t.SpendPct)
		}
		fmt.Fprintf(w, "%s\t%s\tsupport\t%s\t%s\n", t.Provider, t.Name, bandRange(t.Band), terms)
	}
	return w.Flush()
}

func bandRange(b tiers.Band) string {
	if b.Max == 0 {
		return fmt.Sprintf("%.0f+", b.Min)
	}
	return fmt.Sprintf("%.0f-%.0f", b.Min, b.Max)
}

func commitmentMonthlyRate(t tiers.CommitmentTier) float64 {
	if t.MonthlyRatePerUnit > 0 {
		return t.MonthlyRatePerUnit
	}
	return t.HourlyRatePerUnit * 730
}
