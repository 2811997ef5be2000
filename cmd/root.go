package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oceania-analytics/tradedash/internal/config"
	"github.com/oceania-analytics/tradedash/internal/dataset"
)

var (
	cfg         *config.Config
	datasetPath string
)

var rootCmd = &cobra.Command{
	Use:   "tradedash",
	Short: "Trade & logistics dashboard backend",
	Long:  "Loads the Oceania trade/logistics spreadsheet, prepares derived metrics (average LPI, trade per capita), and serves filtered views and KPI aggregates.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if datasetPath != "" {
			cfg.Dataset.Path = datasetPath
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newProvider builds the process-lifetime dataset provider from config.
func newProvider() *dataset.Provider {
	return dataset.NewProvider(cfg.Dataset.Path, dataset.SheetOptions{Name: cfg.Dataset.Sheet})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&datasetPath, "data", "", "dataset path (default from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
