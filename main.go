package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pivolan/mbti_top10/config"
)

var (
	dataFile string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mbti-top10",
	Short: "Top 10 countries by MBTI type ratio",
	Long: `Loads a table of per-country MBTI type ratios and shows, for a chosen type,
the ten countries where it is most common as a bar chart and a table.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "CSV data file (default from DATA_FILE or "+config.DefaultDataFile+")")
	rootCmd.AddCommand(serveCmd, topCmd)
}

func loadConfig() {
	cfg = config.GetConfig()
	if dataFile == "" {
		dataFile = cfg.DataFile
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
