package cli

import (
	"fmt"
	"time"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/model"
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record one day of LLM usage",
	Long: `Record a daily usage row for a provider/model pair. Recording the
same date, provider and model twice merges the counts.`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().String("date", "", "Usage date as YYYY-MM-DD (default: today)")
	recordCmd.Flags().StringP("provider", "p", "", "LLM provider (e.g., openai, anthropic)")
	recordCmd.Flags().StringP("model", "m", "", "Model name (e.g., gpt-4o, claude-sonnet)")
	recordCmd.Flags().Int64("input-tokens", 0, "Number of input tokens")
	recordCmd.Flags().Int64("output-tokens", 0, "Number of output tokens")
	recordCmd.Flags().Int64("cached-tokens", 0, "Number of cached input tokens")
	recordCmd.Flags().Int64("requests", 0, "Number of requests")
	recordCmd.Flags().Int64("successful", 0, "Number of successful requests")
	recordCmd.Flags().Int64("failed", 0, "Number of failed requests")
	recordCmd.Flags().Float64("latency-ms", 0, "Average request latency in milliseconds")
	recordCmd.Flags().Float64("ttft-ms", 0, "Average time to first token in milliseconds")
	recordCmd.Flags().Int64("rate-limit-hits", 0, "Number of rate-limit rejections")
	recordCmd.Flags().Float64("cost", 0, "Billed cost in USD")
	_ = recordCmd.MarkFlagRequired("provider")
	_ = recordCmd.MarkFlagRequired("model")
}

func runRecord(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = time.Now().UTC().Format(model.DateLayout)
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}

	provider, _ := cmd.Flags().GetString("provider")
	modelName, _ := cmd.Flags().GetString("model")
	inputTokens, _ := cmd.Flags().GetInt64("input-tokens")
	outputTokens, _ := cmd.Flags().GetInt64("output-tokens")
	cachedTokens, _ := cmd.Flags().GetInt64("cached-tokens")
	requests, _ := cmd.Flags().GetInt64("requests")
	successful, _ := cmd.Flags().GetInt64("successful")
	failed, _ := cmd.Flags().GetInt64("failed")
	latency, _ := cmd.Flags().GetFloat64("latency-ms")
	ttft, _ := cmd.Flags().GetFloat64("ttft-ms")
	rateLimitHits, _ := cmd.Flags().GetInt64("rate-limit-hits")
	cost, _ := cmd.Flags().GetFloat64("cost")

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	rec := &model.UsageRecord{
		Date:               date,
		Provider:           provider,
		Model:              modelName,
		InputTokens:        inputTokens,
		OutputTokens:       outputTokens,
		CachedTokens:       cachedTokens,
		RequestCount:       requests,
		SuccessfulRequests: successful,
		FailedRequests:     failed,
		AvgLatencyMs:       latency,
		AvgTTFTMs:          ttft,
		RateLimitHits:      rateLimitHits,
		TotalCost:          cost,
	}
	if err := store.UpsertDaily(cmd.Context(), rec); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}

	fmt.Printf("Recorded usage:\n")
	fmt.Printf("  Date:          %s\n", rec.Date)
	fmt.Printf("  Provider:      %s\n", rec.Provider)
	fmt.Printf("  Model:         %s\n", rec.Model)
	fmt.Printf("  Input tokens:  %d\n", rec.InputTokens)
	fmt.Printf("  Output tokens: %d\n", rec.OutputTokens)
	fmt.Printf("  Requests:      %d\n", rec.RequestCount)
	fmt.Printf("  Cost:          $%.6f\n", rec.TotalCost)

	return nil
}
