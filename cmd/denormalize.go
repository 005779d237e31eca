package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"inventory.GO/config"
	"inventory.GO/core/lock"
	"inventory.GO/service/seed"
)

var (
	denormRebuild bool
	denormBatch   int
	denormWriter  string
	denormMetrics string
)

var denormalizeCmd = &cobra.Command{
	Use:   "items:denormalize",
	Short: "Flatten items with their category, supplier and warehouse names",
	RunE: func(cmd *cobra.Command, args []string) error {
		batch := appConfig.Seed.BatchSize
		if cmd.Flags().Changed("batch-size") {
			batch = denormBatch
		}
		if batch < 1 || batch > seed.MaxBatchSize {
			return fmt.Errorf("%w: --batch-size must be between 1 and %d", seed.ErrInvalidOptions, seed.MaxBatchSize)
		}
		w, err := writerByName(denormWriter)
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		if _, isCopy := w.(seed.CopyWriter); isCopy && seed.DetectDialect(db) != seed.DialectPostgres {
			return fmt.Errorf("%w: copy writer needs postgres", seed.ErrInvalidOptions)
		}

		release, err := lock.Obtain(cmd.Context(), config.RedisLocker(), lock.SeedKey, appConfig.Seed.LockTTL)
		if err != nil {
			return err
		}
		defer release()

		res, err := seed.Denormalize(cmd.Context(), db, seed.DenormalizeOptions{
			BatchSize: batch,
			Writer:    w,
			Rebuild:   denormRebuild,
			Logger:    config.GetLogger(),
		})
		if denormMetrics != "" {
			m := seed.NewMetrics()
			m.ObserveDenormalize(res, err)
			if werr := m.WriteTextfile(denormMetrics); werr != nil {
				config.GetLogger().WithError(werr).Warn("Writing metrics failed.")
			}
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), `
=== Denormalize Report ===
Items scanned:  %d
Rows written:   %d
Skipped:        %d
Batches:        %d
Rebuild:        %t
Total time:     %s
==========================
`, res.Scanned, res.Written, res.Skipped, res.Batches, denormRebuild, res.Elapsed.Round(time.Millisecond))
		return nil
	},
}

func init() {
	denormalizeCmd.Flags().BoolVar(&denormRebuild, "rebuild", false, "Empty items_denormalized before the pass")
	denormalizeCmd.Flags().IntVar(&denormBatch, "batch-size", seed.DefaultBatchSize, "Items per batch")
	denormalizeCmd.Flags().StringVar(&denormWriter, "writer", "gorm", "Bulk writer: gorm or copy (postgres only)")
	denormalizeCmd.Flags().StringVar(&denormMetrics, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	rootCmd.AddCommand(denormalizeCmd)
}
