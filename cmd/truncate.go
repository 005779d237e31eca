package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventory.GO/config"
	"inventory.GO/core/lock"
	"inventory.GO/service/seed"
)

var truncateCmd = &cobra.Command{
	Use:   "db:truncate",
	Short: "Empty every inventory table",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		release, err := lock.Obtain(cmd.Context(), config.RedisLocker(), lock.SeedKey, appConfig.Seed.LockTTL)
		if err != nil {
			return err
		}
		defer release()

		if err := seed.TruncateAll(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database truncated.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(truncateCmd)
}
