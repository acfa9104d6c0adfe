package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/aggregate"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/model"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate usage and cost reports",
	Long: `Aggregate recorded usage into a summary and a ranked breakdown by
provider, model or date for a given date range.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("by", "b", "provider", "Breakdown dimension (provider, model, date)")
	reportCmd.Flags().StringP("provider", "p", "", "Filter by provider")
	reportCmd.Flags().StringP("model", "m", "", "Filter by model")
	reportCmd.Flags().String("start", "", "Start date YYYY-MM-DD (default: first of month)")
	reportCmd.Flags().String("end", "", "End date YYYY-MM-DD, exclusive (default: first of next month)")
	reportCmd.Flags().StringP("currency", "c", "", "Display currency (default from config)")
	reportCmd.Flags().Int("max-items", 0, "Maximum breakdown rows (default from config)")
	reportCmd.Flags().Bool("table", false, "Include per-row daily rate and monthly forecast")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	by, _ := cmd.Flags().GetString("by")
	dim, ok := aggregate.ParseDimension(by)
	if !ok {
		return fmt.Errorf("unknown dimension %q: expected provider, model or date", by)
	}

	providerFilter, _ := cmd.Flags().GetString("provider")
	modelFilter, _ := cmd.Flags().GetString("model")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	displayCurrency, _ := cmd.Flags().GetString("currency")
	maxItems, _ := cmd.Flags().GetInt("max-items")
	withTable, _ := cmd.Flags().GetBool("table")

	if displayCurrency == "" {
		displayCurrency = cfg.Defaults.Currency
	}
	if maxItems == 0 {
		maxItems = cfg.Defaults.MaxItems
	}
	if start == "" || end == "" {
		monthStart, monthEnd := model.MonthBounds(time.Now().UTC())
		if start == "" {
			start = monthStart
		}
		if end == "" {
			end = monthEnd
		}
	}

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

	composer := initComposer(cfg, logger)
	summary := composer.Summarize(cmd.Context(), records, displayCurrency)
	buckets := aggregate.By(dim, records)
	items := composer.Breakdown(buckets, maxItems)

	fmt.Printf("=== LLM Usage Report ===\n")
	fmt.Printf("Period: %s to %s (%d days with data)\n\n", start, end, summary.DaysCovered)
	fmt.Printf("Total Tokens:   %d (in %d / out %d / cached %d)\n",
		summary.TotalTokens, summary.TotalInputTokens, summary.TotalOutputTokens, summary.TotalCachedTokens)
	fmt.Printf("Total Requests: %d\n", summary.TotalRequests)
	if summary.SuccessRatePct > 0 {
		fmt.Printf("Success Rate:   %.2f%%\n", summary.SuccessRatePct)
	}
	if summary.AvgLatencyMs > 0 {
		fmt.Printf("Avg Latency:    %.0f ms (TTFT %.0f ms)\n", summary.AvgLatencyMs, summary.AvgTTFTMs)
	}
	fmt.Printf("Total Cost:     %.2f %s\n", summary.TotalCost, summary.Currency)

	if len(items) > 0 {
		fmt.Printf("\nBy %s:\n", dim)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  RANK\tNAME\tTOKENS\tSHARE\tCOST\n")
		for _, item := range items {
			fmt.Fprintf(w, "  %d\t%s\t%d\t%.2f%%\t$%.4f\n",
				item.Rank, item.Name, item.TotalTokens, item.Percentage, item.Cost)
		}
		w.Flush()
	}

	if withTable {
		rows := composer.TableRows(buckets, summary.DaysCovered)
		if len(rows) > 0 {
			fmt.Printf("\nProjections:\n")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  NAME\tDAILY RATE\tMONTHLY FORECAST\n")
			for _, row := range rows {
				fmt.Fprintf(w, "  %s\t%.0f\t%.0f\n", row.Name, row.DailyRate, row.MonthlyForecast)
			}
			w.Flush()
		}
	}

	return nil
}
