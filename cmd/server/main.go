package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"persons/internal/platform/config"
	"persons/internal/platform/logger"
)

var rootCmd = &cobra.Command{
	Use:           "persons",
	Short:         "Persons and countries CRUD service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// main wires the CLI. Configuration comes from the environment; business
// logic lives in the internal service packages.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (config.Config, *slog.Logger) {
	cfg := config.FromEnv()
	return cfg, logger.New(cfg.Server.Environment, cfg.Server.LogLevel)
}
