package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/statcompare/internal/config"
	"github.com/sells-group/statcompare/internal/metric"
	"github.com/sells-group/statcompare/pkg/statsapi"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "statcompare",
	Short: "Compare team and player statistics",
	Long:  "Fetches team and player statistics, renders radar, mirrored bar and efficiency views, and runs the stats assistant chat.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", outputTable, "output format (table, json, yaml)")
}

// newClient builds the backend client from the loaded config.
func newClient() statsapi.Client {
	return statsapi.NewClient(
		statsapi.WithBaseURL(cfg.API.BaseURL),
		statsapi.WithTimeout(cfg.API.Timeout()),
		statsapi.WithRateLimit(rate.Limit(cfg.API.RateLimit), cfg.API.RateBurst),
	)
}

// loadCatalog returns the configured metric catalog, or the embedded default.
func loadCatalog() (*metric.Catalog, error) {
	return metric.LoadCatalog(cfg.Metrics.CatalogPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
