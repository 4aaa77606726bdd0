package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/godyclif/vet/internal/adapters/storage"
	"github.com/godyclif/vet/internal/platform/config"
	"github.com/godyclif/vet/internal/platform/logger"
)

var (
	configPath string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "vetclinic",
	Short: "Veterinary clinic records and public certificate verification",
	Long: `vetclinic runs the clinic API (admin dashboard + public certificate lookup)
and a few maintenance commands.

Configuration comes from an optional YAML file (--config) overridden by
environment variables (PORT, DB_DSN, MONGODB_URI, REDIS_URL, SESSION_SECRET, ...).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for one-shot commands")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap carga config, logger y storage comunes a los comandos.
func bootstrap(ctx context.Context) (*config.Config, logger.Logger, *storage.Repositories, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, err
	}
	return cfg, log, repos, nil
}
