package cmd

import (
	"fmt"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"inventory.GO/config"
	"inventory.GO/core/lock"
	"inventory.GO/service/seed"
)

var (
	seedCategories   int
	seedSuppliers    int
	seedWarehouses   int
	seedItems        int
	seedAttributes   int
	seedBatch        int
	seedRandom       uint64
	seedPartial      bool
	seedSkipTruncate bool
	seedAtomic       bool
	seedWriter       string
	seedNoBanner     bool
	seedMetricsFile  string
)

var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Truncate the inventory tables and fill them with synthetic data",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !seedNoBanner {
			fmt.Fprintln(out, figure.NewFigure("inventory", "", true).String())
		}

		opts, err := seedOptions(cmd)
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}

		release, err := lock.Obtain(cmd.Context(), config.RedisLocker(), lock.SeedKey, appConfig.Seed.LockTTL)
		if err != nil {
			return err
		}
		defer release()

		res, err := seed.Run(cmd.Context(), db, opts)
		if res != nil {
			printSeedReport(cmd, res, opts)
		}
		if seedMetricsFile != "" {
			m := seed.NewMetrics()
			m.ObserveRun(res, err)
			if werr := m.WriteTextfile(seedMetricsFile); werr != nil {
				config.GetLogger().WithError(werr).Warn("Writing metrics failed.")
			}
		}
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		return nil
	},
}

// seedOptions starts from the configured targets; flags given on the command line win.
func seedOptions(cmd *cobra.Command) (seed.Options, error) {
	c := appConfig.Seed
	opts := seed.Options{
		Categories: c.Categories,
		Suppliers:  c.Suppliers,
		Warehouses: c.Warehouses,
		Items:      c.Items,
		Attributes: c.Attributes,
		BatchSize:  c.BatchSize,
		Seed:       c.RandomSeed,
		Logger:     config.GetLogger(),
	}
	writer := c.Writer

	f := cmd.Flags()
	overrideInt := func(name string, dst *int, v int) {
		if f.Changed(name) {
			*dst = v
		}
	}
	overrideInt("categories", &opts.Categories, seedCategories)
	overrideInt("suppliers", &opts.Suppliers, seedSuppliers)
	overrideInt("warehouses", &opts.Warehouses, seedWarehouses)
	overrideInt("items", &opts.Items, seedItems)
	overrideInt("attributes", &opts.Attributes, seedAttributes)
	overrideInt("batch-size", &opts.BatchSize, seedBatch)
	if f.Changed("seed") {
		opts.Seed = seedRandom
	}
	if f.Changed("writer") {
		writer = seedWriter
	}
	opts.Partial = seedPartial
	opts.SkipTruncate = seedSkipTruncate
	opts.Atomic = seedAtomic

	w, err := writerByName(writer)
	if err != nil {
		return opts, err
	}
	opts.Writer = w
	return opts, nil
}

func writerByName(name string) (seed.Writer, error) {
	switch name {
	case "", "gorm":
		return seed.GormWriter{}, nil
	case "copy":
		return seed.CopyWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown writer %q (want gorm or copy)", seed.ErrInvalidOptions, name)
	}
}

func printSeedReport(cmd *cobra.Command, res *seed.Result, opts seed.Options) {
	mode := "full"
	if opts.Partial {
		mode = "partial"
	}
	fmt.Fprintf(cmd.OutOrStdout(), `
=== Seed Report ===
Categories:     %d
Suppliers:      %d
Warehouses:     %d
Items:          %d
Attributes:     %d
Denormalized:   %d (skipped=%d)
Batches:        %d (size=%d)
Writer:         %T
Mode:           %s
Seed:           %d
Total time:     %s
`, res.Categories, res.Suppliers, res.Warehouses, res.Items, res.Attributes,
		res.Denormalized, res.Skipped, res.Batches, opts.BatchSize, opts.Writer, mode, res.Seed,
		res.TotalTime.Round(time.Millisecond))
	for _, st := range res.Steps {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %-19s %s\n", st.Name+":", st.Elapsed.Round(time.Millisecond))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "===================")
}

func init() {
	f := seedCmd.Flags()
	f.IntVar(&seedCategories, "categories", seed.DefaultCategories, "Number of categories")
	f.IntVar(&seedSuppliers, "suppliers", seed.DefaultSuppliers, "Number of suppliers")
	f.IntVar(&seedWarehouses, "warehouses", seed.DefaultWarehouses, "Number of warehouses")
	f.IntVar(&seedItems, "items", seed.DefaultItems, "Number of items")
	f.IntVar(&seedAttributes, "attributes", seed.DefaultAttributes, "Number of item attributes")
	f.IntVar(&seedBatch, "batch-size", seed.DefaultBatchSize, "Rows per bulk insert")
	f.Uint64Var(&seedRandom, "seed", 0, "Random seed (0 = time-derived)")
	f.BoolVar(&seedPartial, "partial", false, "Stop after items: no attributes, no denormalization")
	f.BoolVar(&seedSkipTruncate, "skip-truncate", false, "Keep existing rows and append")
	f.BoolVar(&seedAtomic, "atomic", false, "Run the whole seed in one transaction")
	f.StringVar(&seedWriter, "writer", "gorm", "Bulk writer: gorm or copy (postgres only)")
	f.BoolVar(&seedNoBanner, "no-banner", false, "Do not print the banner")
	f.StringVar(&seedMetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	rootCmd.AddCommand(seedCmd)
}
