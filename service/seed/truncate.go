package seed

import (
	"context"
	"strings"

	"gorm.io/gorm"

	inventoryEntity "inventory.GO/model/entity/inventory"
)

// TruncateAll empties every inventory table. Postgres also resets identities;
// MySQL and SQLite delete children first and keep their id counters.
func TruncateAll(ctx context.Context, db *gorm.DB) error {
	if DetectDialect(db) == DialectPostgres {
		stmt := "TRUNCATE TABLE " + strings.Join(inventoryEntity.Tables, ", ") + " RESTART IDENTITY CASCADE"
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return &PhaseError{Phase: PhaseTruncate, Table: "all", Err: err}
		}
		return nil
	}
	for _, table := range inventoryEntity.Tables {
		if err := db.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return &PhaseError{Phase: PhaseTruncate, Table: table, Err: err}
		}
	}
	return nil
}

// TruncateDenormalized empties only the denormalized projection.
func TruncateDenormalized(ctx context.Context, db *gorm.DB) error {
	table := inventoryEntity.ItemDenormalized{}.TableName()
	stmt := "DELETE FROM " + table
	if DetectDialect(db) == DialectPostgres {
		stmt = "TRUNCATE TABLE " + table + " RESTART IDENTITY"
	}
	if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return &PhaseError{Phase: PhaseTruncate, Table: table, Err: err}
	}
	return nil
}
