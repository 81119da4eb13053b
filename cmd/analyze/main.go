package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"primegaps/adapters/oeis"
	"primegaps/app"
	"primegaps/internal"
	"primegaps/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "primegaps-analyze",
		Short: "Run the complete prime gap analysis pipeline",
		Long: `Fetches the record gap sequences, computes normalized gaps and rebounds,
sweeps arithmetic progressions, runs the RMT null model, and writes CSVs,
figures and a markdown summary, all stamped with the run timestamp.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.Context())
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAnalysis(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := internal.NewDefaultLogger()

	provider := oeis.NewClient(cfg.Fetch.BaseURL, cfg.Fetch.Timeout, cfg.Fetch.MaxTerms)
	pipeline := app.NewPipeline(cfg, provider, logger)

	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println("SUMMARY STATISTICS")
	fmt.Printf("  Record gaps analyzed: %d\n", len(result.Records))
	fmt.Printf("  Global slope (β): %.6f ± %.6f\n", result.Trend.Slope, result.Trend.SlopeStdErr)
	fmt.Printf("  R² for global trend: %.4f\n", result.Trend.R2)
	fmt.Printf("  Rebound count: %d (%.1f%%)\n", result.Rebounds.Count, result.Rebounds.Percentage)
	fmt.Printf("  Progressions analyzed: %d\n", result.Prog.Total)
	fmt.Printf("  Progressions with β > 0: %d (%.1f%%)\n", result.Prog.PositiveCount, result.Prog.PositivePct)
	if beta := result.Prog.MeanBetaForQ(10); !math.IsNaN(beta) {
		fmt.Printf("  Mean β for q=10: %.6f\n", beta)
	} else {
		fmt.Println("  Mean β for q=10: N/A")
	}
	fmt.Printf("  Expected slope under randomness: %.6f\n", result.RMT.NullSlope)
	fmt.Printf("\nANALYSIS COMPLETED IN %.1f SECONDS\n", result.Elapsed.Seconds())
	for _, file := range result.Files {
		fmt.Printf("  wrote %s\n", file)
	}
	return nil
}
