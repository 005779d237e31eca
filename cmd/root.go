package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"inventory.GO/config"
)

// appConfig is loaded once by the root command before any subcommand runs.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:           "inventory",
	Short:         "Inventory schema, seed and denormalization tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}
		appConfig = cfg
		config.InitRedis()
		return nil
	},
}

// Execute runs the root command; SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		config.LogError(config.GetLogger(), "cmd", "Execute", "command failed", os.Args[1:], err)
		stop()
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	db, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}
