package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	inventoryEntity "inventory.GO/model/entity/inventory"
)

// DenormalizeOptions configures a denormalization pass.
type DenormalizeOptions struct {
	BatchSize int
	Writer    Writer
	// Rebuild empties items_denormalized before the pass. Without it the pass
	// appends, and a second pass duplicates every row.
	Rebuild bool
	Logger  logrus.FieldLogger
}

// DenormalizeResult holds counters and timing from a pass.
type DenormalizeResult struct {
	Scanned int
	Written int
	// Skipped counts items with a missing category, supplier or warehouse.
	Skipped int
	Batches int
	Elapsed time.Duration
}

// Denormalize walks every item in primary-key order, BatchSize at a time, and
// writes one flattened row per item whose three references resolve.
func Denormalize(ctx context.Context, db *gorm.DB, opts DenormalizeOptions) (*DenormalizeResult, error) {
	start := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.BatchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: batch size %d exceeds %d", ErrInvalidOptions, opts.BatchSize, MaxBatchSize)
	}
	if opts.Writer == nil {
		opts.Writer = GormWriter{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	if opts.Rebuild {
		if err := TruncateDenormalized(ctx, db); err != nil {
			return nil, err
		}
	}

	res := &DenormalizeResult{}
	now := time.Now()
	var (
		items    []inventoryEntity.Item
		writeErr error
	)
	q := db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Preload("Warehouse").
		FindInBatches(&items, opts.BatchSize, func(tx *gorm.DB, batch int) error {
			rows := make([]inventoryEntity.ItemDenormalized, 0, len(items))
			for i := range items {
				res.Scanned++
				row, ok := inventoryEntity.Flatten(&items[i], now)
				if !ok {
					res.Skipped++
					opts.Logger.WithField("item_id", items[i].ID).Debug("item has unresolved references, skipping")
					continue
				}
				rows = append(rows, row)
			}
			if len(rows) == 0 {
				return nil
			}
			if err := opts.Writer.Write(ctx, db, denormalizedRows(rows)); err != nil {
				writeErr = &PhaseError{Phase: PhaseDenormalize, Table: inventoryEntity.ItemDenormalized{}.TableName(), Batch: batch, Err: err}
				return writeErr
			}
			res.Written += len(rows)
			res.Batches++
			return nil
		})
	res.Elapsed = time.Since(start)
	if writeErr != nil {
		return res, writeErr
	}
	if q.Error != nil {
		return res, &PhaseError{Phase: PhaseDenormalize, Table: inventoryEntity.Item{}.TableName(), Err: q.Error}
	}
	return res, nil
}
