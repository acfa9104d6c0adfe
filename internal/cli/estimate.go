package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/tiers"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/tokenizer"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [FILE]",
	Short: "Estimate token consumption for prompt text",
	Long: `Estimate how many tokens a prompt consumes for a given model, and
project daily consumption for a call volume. Reads from FILE or stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	estimateCmd.Flags().StringP("provider", "p", "openai", "LLM provider")
	estimateCmd.Flags().StringP("model", "m", "gpt-4o", "Model name")
	estimateCmd.Flags().Int64("calls-per-day", 0, "Project daily tokens for this call volume")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider, _ := cmd.Flags().GetString("provider")
	modelName, _ := cmd.Flags().GetString("model")
	callsPerDay, _ := cmd.Flags().GetInt64("calls-per-day")

	var text []byte
	if len(args) == 1 {
		text, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read prompt file: %w", err)
		}
	} else {
		text, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	count, err := tokenizer.Estimate(string(text), provider, modelName)
	if err != nil {
		return fmt.Errorf("estimate tokens: %w", err)
	}

	fmt.Printf("Tokens per call: %d (%s/%s)\n", count, provider, modelName)

	if callsPerDay > 0 {
		daily := count * callsPerDay
		monthly := daily * 30
		fmt.Printf("Daily tokens:    %d (at %d calls/day)\n", daily, callsPerDay)
		fmt.Printf("Monthly tokens:  %d\n", monthly)

		cat, err := initCatalog(cfg)
		if err != nil {
			return err
		}
		if vt, ok := tiers.Resolve(provider, float64(monthly), cat.Volume); ok {
			fmt.Printf("Volume tier:     %s (%.0f%% discount at this volume)\n", vt.Name, vt.DiscountPct)
		}
	}

	return nil
}
