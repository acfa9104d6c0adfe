package cli

import (
	"fmt"
	"time"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/forecast"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/model"
	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project monthly and annual usage from recorded history",
	Long: `Analyze the recorded per-day token series, classify the growth
trend and project monthly and annual consumption.`,
	RunE: runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
	forecastCmd.Flags().StringP("provider", "p", "", "Filter by provider")
	forecastCmd.Flags().StringP("model", "m", "", "Filter by model")
	forecastCmd.Flags().Int("days", 30, "How many days of history to analyze")
}

func runForecast(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	providerFilter, _ := cmd.Flags().GetString("provider")
	modelFilter, _ := cmd.Flags().GetString("model")
	days, _ := cmd.Flags().GetInt("days")

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -days).Format(model.DateLayout)
	end := now.AddDate(0, 0, 1).Format(model.DateLayout)

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.QueryRange(cmd.Context(), model.RangeFilter{
		Provider:  providerFilter,
		Model:     modelFilter,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}

	engine := forecast.NewEngine(nil)
	f := engine.Trend(records)

	fmt.Printf("=== Usage Forecast ===\n")
	fmt.Printf("Window:        last %d days (%d days with data)\n", days, f.DaysAnalyzed)
	fmt.Printf("Trend:         %s (%.2f%% avg daily change)\n", f.Direction, f.DailyGrowthRatePct)
	fmt.Printf("Daily Rate:    %.0f tokens/day\n", f.DailyRate)
	fmt.Printf("Monthly:       %.0f tokens\n", f.MonthlyForecast)
	fmt.Printf("Annual:        %.0f tokens\n", f.AnnualForecast)

	if f.DaysAnalyzed < 2 {
		fmt.Printf("\nNot enough history for a trend; record at least two days of usage.\n")
	}

	return nil
}
