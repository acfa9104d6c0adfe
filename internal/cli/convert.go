package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ogulcanaydogan/llm-cost-insights/pkg/currency"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert AMOUNT FROM TO",
	Short: "Convert an amount between currencies",
	Long: `Convert a monetary amount between currencies, bridging through USD.
Without --strict, unsupported currencies pass the amount through
unchanged with a warning.`,
	Args: cobra.ExactArgs(3),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().Bool("strict", false, "Fail on unsupported currencies instead of passing through")
	convertCmd.Flags().Bool("audit", false, "Include the effective rate and a trace id")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	from := strings.ToUpper(args[1])
	to := strings.ToUpper(args[2])

	strict, _ := cmd.Flags().GetBool("strict")
	audit, _ := cmd.Flags().GetBool("audit")

	converter := initConverter(cfg, logger)

	if report := converter.Staleness(); report.IsStale {
		fmt.Printf("warning: %s\n", report.Warning)
	}

	if audit {
		result := converter.ConvertWithAudit(cmd.Context(), amount, from, to)
		fmt.Printf("%.2f %s = %.*f %s\n", amount, from, currency.Decimals(to), result.Amount, to)
		fmt.Printf("  Rate:      %.4f\n", result.Rate)
		fmt.Printf("  Timestamp: %s\n", result.Timestamp.Format("2006-01-02 15:04:05 MST"))
		fmt.Printf("  Trace ID:  %s\n", result.ID)
		return nil
	}

	if strict {
		conv, err := converter.ConvertStrict(cmd.Context(), amount, from, to)
		if err != nil {
			return err
		}
		fmt.Printf("%.2f %s = %.*f %s\n", amount, from, currency.Decimals(to), conv.Amount, to)
		return nil
	}

	conv := converter.Convert(cmd.Context(), amount, from, to)
	if conv.Status == currency.StatusUnchanged {
		fmt.Printf("%.2f %s returned unchanged: %s\n", conv.Amount, from, conv.Reason)
		return nil
	}
	fmt.Printf("%.2f %s = %.*f %s\n", amount, from, currency.Decimals(to), conv.Amount, to)
	return nil
}
