package cli

import (
	"log/slog"
	"os"

	"github.com/ogulcanaydogan/llm-cost-insights/internal/config"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/currency"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/forecast"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/report"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/storage"
	"github.com/ogulcanaydogan/llm-cost-insights/pkg/tiers"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lci",
	Short: "LLM Cost Insights - usage aggregation, forecasting and tier resolution",
	Long: `LLM Cost Insights aggregates per-day LLM usage records into ranked
breakdowns, projects monthly and annual consumption, resolves the
pricing tier that applies to a spend level, and converts costs between
currencies.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.lci/config.yaml)")
}

// loadConfig loads the configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger creates a structured logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// initStorage creates a storage backend from config.
func initStorage(cfg *config.Config) (storage.Storage, error) {
	return storage.NewSQLite(cfg.Storage.Path)
}

// initConverter creates a currency converter from config. With no rate
// file configured the converter uses its built-in table.
func initConverter(cfg *config.Config, logger *slog.Logger) *currency.Converter {
	var source currency.RateSource
	if cfg.Rates.Path != "" {
		source = currency.FileRateSource{Path: cfg.Rates.Path}
	}
	return currency.NewConverter(source, logger)
}

// initCatalog loads the tier tables from config, falling back to the
// built-in catalog.
func initCatalog(cfg *config.Config) (tiers.Catalog, error) {
	return tiers.LoadCatalog(cfg.Tiers.Dir)
}

// initComposer creates a fully wired report composer.
func initComposer(cfg *config.Config, logger *slog.Logger) *report.Composer {
	engine := forecast.NewEngine(nil)
	converter := initConverter(cfg, logger)
	return report.NewComposer(engine, converter, nil, logger)
}
