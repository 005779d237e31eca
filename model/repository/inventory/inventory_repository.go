package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	inventoryEntity "inventory.GO/model/entity/inventory"
)

type InventoryRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewInventoryRepository(db *gorm.DB) (*InventoryRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &InventoryRepository{db: db, sqlDB: sqlDB}, nil
}

// TableCount is the row count of one inventory table.
type TableCount struct {
	Table string
	Rows  int64
}

// Counts returns row counts for every inventory table, children first.
// Uses raw SQL for minimal overhead
func (r *InventoryRepository) Counts(ctx context.Context) ([]TableCount, error) {
	out := make([]TableCount, 0, len(inventoryEntity.Tables))
	for _, table := range inventoryEntity.Tables {
		var n int64
		// table names come from the fixed entity list, never from input
		if err := r.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out = append(out, TableCount{Table: table, Rows: n})
	}
	return out, nil
}

// UnresolvedItems counts items with a NULL or dangling category, supplier or warehouse.
func (r *InventoryRepository) UnresolvedItems(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		LEFT JOIN warehouses w ON w.id = i.warehouse_id
		WHERE c.id IS NULL OR s.id IS NULL OR w.id IS NULL`
	var n int64
	err := r.sqlDB.QueryRowContext(ctx, query).Scan(&n)
	return n, err
}

// DenormalizedByItemID returns every snapshot row for an item (more than one after repeated passes).
func (r *InventoryRepository) DenormalizedByItemID(ctx context.Context, itemID uint) ([]inventoryEntity.ItemDenormalized, error) {
	var rows []inventoryEntity.ItemDenormalized
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).Order("id").Find(&rows).Error
	return rows, err
}

// AttributesByItemID returns all attribute rows for an item using GORM
func (r *InventoryRepository) AttributesByItemID(ctx context.Context, itemID uint) ([]inventoryEntity.ItemAttribute, error) {
	var rows []inventoryEntity.ItemAttribute
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).Order("id").Find(&rows).Error
	return rows, err
}

// IDs returns the primary keys of model's table in ascending order.
// It only needs a gorm handle, so it also works inside a transaction.
func IDs(ctx context.Context, db *gorm.DB, model interface{}) ([]uint, error) {
	var ids []uint
	err := db.WithContext(ctx).Model(model).Order("id").Pluck("id", &ids).Error
	return ids, err
}
