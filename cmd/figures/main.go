package main

import (
	"fmt"
	"os"

	"primegaps/adapters/oeis"
	"primegaps/app"
	"primegaps/internal"
	"primegaps/internal/config"
	"primegaps/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "primegaps-figures",
		Short: "Regenerate figures from the most recent processed CSVs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return regenerate()
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func regenerate() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := internal.NewDefaultLogger()

	// The provider is never called on this path; figures come from disk.
	provider := oeis.NewClient(cfg.Fetch.BaseURL, cfg.Fetch.Timeout, cfg.Fetch.MaxTerms)
	pipeline := app.NewPipeline(cfg, provider, logger)

	path, err := pipeline.RegenerateFigures()
	if err != nil {
		if errors.GetCode(err) == errors.CodeNotFound {
			fmt.Fprintln(os.Stderr, "No processed data files found. Run the analyze command first.")
			os.Exit(1)
		}
		return err
	}

	fmt.Printf("Figures written to %s\n", path)
	return nil
}
