package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"inventory.GO/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply all pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := migration.Up(db); err != nil {
			return err
		}
		return printVersion(cmd, db)
	},
}

var rollbackCmd = &cobra.Command{
	Use:   "db:rollback",
	Short: "Roll back the last schema migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := migration.Down(db); err != nil {
			return err
		}
		return printVersion(cmd, db)
	},
}

func printVersion(cmd *cobra.Command, db *gorm.DB) error {
	v, dirty, err := migration.Version(db)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d (dirty=%t)\n", v, dirty)
	return nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(rollbackCmd)
}
