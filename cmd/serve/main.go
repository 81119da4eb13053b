package main

import (
	"fmt"
	"os"

	"primegaps/internal"
	"primegaps/internal/config"
	"primegaps/ui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "primegaps-serve",
		Short: "Serve the latest analysis results over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := internal.NewDefaultLogger()

	app := ui.NewApp(cfg)
	logger.Info("results viewer listening on :%s", cfg.Server.Port)
	return app.Start()
}
