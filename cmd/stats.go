package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	inventoryRepo "inventory.GO/model/repository/inventory"
)

var statsCmd = &cobra.Command{
	Use:   "db:stats",
	Short: "Print schema version and row counts per inventory table",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := printVersion(cmd, db); err != nil {
			return err
		}
		repo, err := inventoryRepo.NewInventoryRepository(db)
		if err != nil {
			return err
		}
		counts, err := repo.Counts(cmd.Context())
		if err != nil {
			return err
		}
		unresolved, err := repo.UnresolvedItems(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, c := range counts {
			fmt.Fprintf(out, "%-20s %d\n", c.Table+":", c.Rows)
		}
		fmt.Fprintf(out, "%-20s %d\n", "unresolved items:", unresolved)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
