package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventoryEntity "inventory.GO/model/entity/inventory"
)

// Rows is one chunk of rows bound for a single table.
type Rows interface {
	Table() string
	Columns() []string
	Len() int
	// Values returns row i in Columns order.
	Values(i int) []any
	// Models returns a pointer to the typed slice, for gorm.
	Models() any
}

// Writer performs one bulk insert per call. Callers never pass more than the
// configured batch size.
type Writer interface {
	Write(ctx context.Context, db *gorm.DB, rows Rows) error
}

// GormWriter issues a single multi-row INSERT through gorm.
type GormWriter struct{}

func (GormWriter) Write(ctx context.Context, db *gorm.DB, rows Rows) error {
	if rows.Len() == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Session(&gorm.Session{SkipHooks: true}).
		Omit(clause.Associations).
		Create(rows.Models()).Error
}

// CopyWriter streams each chunk with COPY FROM. Postgres only; it borrows a
// pgx connection from gorm's pool, so it cannot join a gorm transaction.
type CopyWriter struct{}

func (CopyWriter) Write(ctx context.Context, db *gorm.DB, rows Rows) error {
	if rows.Len() == 0 {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("copy %s: %w", rows.Table(), err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("copy %s: acquire conn: %w", rows.Table(), err)
	}
	defer conn.Close()

	return conn.Raw(func(driverConn any) error {
		pc, ok := driverConn.(*stdlib.Conn)
		if !ok {
			return fmt.Errorf("copy %s: driver connection %T is not pgx", rows.Table(), driverConn)
		}
		n, err := pc.Conn().CopyFrom(ctx,
			pgx.Identifier{rows.Table()},
			rows.Columns(),
			pgx.CopyFromSlice(rows.Len(), func(i int) ([]any, error) {
				return rows.Values(i), nil
			}),
		)
		if err != nil {
			return err
		}
		if int(n) != rows.Len() {
			return fmt.Errorf("copy %s: wrote %d of %d rows", rows.Table(), n, rows.Len())
		}
		return nil
	})
}

// rowSet adapts a typed slice to Rows.
type rowSet[T any] struct {
	table   string
	columns []string
	rows    []T
	values  func(*T) []any
}

func (s rowSet[T]) Table() string      { return s.table }
func (s rowSet[T]) Columns() []string  { return s.columns }
func (s rowSet[T]) Len() int           { return len(s.rows) }
func (s rowSet[T]) Values(i int) []any { return s.values(&s.rows[i]) }
func (s rowSet[T]) Models() any        { return &s.rows }

func (s rowSet[T]) slice(lo, hi int) rowSet[T] {
	s.rows = s.rows[lo:hi]
	return s
}

// writeChunked hands rows to w in chunks of at most size rows and returns the
// number of chunks written. It stops at the first failure.
func writeChunked[T any](ctx context.Context, db *gorm.DB, w Writer, set rowSet[T], size int, phase Phase) (int, error) {
	batches := 0
	for lo := 0; lo < set.Len(); lo += size {
		if err := ctx.Err(); err != nil {
			return batches, &PhaseError{Phase: phase, Table: set.table, Batch: batches + 1, Err: err}
		}
		hi := min(lo+size, set.Len())
		if err := w.Write(ctx, db, set.slice(lo, hi)); err != nil {
			return batches, &PhaseError{Phase: phase, Table: set.table, Batch: batches + 1, Err: err}
		}
		batches++
	}
	return batches, nil
}

func nullableID(id *uint) any {
	if id == nil {
		return nil
	}
	return int64(*id)
}

func itemRows(items []inventoryEntity.Item) rowSet[inventoryEntity.Item] {
	return rowSet[inventoryEntity.Item]{
		table:   inventoryEntity.Item{}.TableName(),
		columns: []string{"name", "category_id", "supplier_id", "warehouse_id", "created_at", "updated_at"},
		rows:    items,
		values: func(it *inventoryEntity.Item) []any {
			return []any{it.Name, nullableID(it.CategoryID), nullableID(it.SupplierID), nullableID(it.WarehouseID), it.CreatedAt, it.UpdatedAt}
		},
	}
}

func attributeRows(attrs []inventoryEntity.ItemAttribute) rowSet[inventoryEntity.ItemAttribute] {
	return rowSet[inventoryEntity.ItemAttribute]{
		table:   inventoryEntity.ItemAttribute{}.TableName(),
		columns: []string{"item_id", "attribute_name", "attribute_value", "created_at", "updated_at"},
		rows:    attrs,
		values: func(a *inventoryEntity.ItemAttribute) []any {
			return []any{nullableID(a.ItemID), a.AttributeName, a.AttributeValue, a.CreatedAt, a.UpdatedAt}
		},
	}
}

func denormalizedRows(rows []inventoryEntity.ItemDenormalized) rowSet[inventoryEntity.ItemDenormalized] {
	return rowSet[inventoryEntity.ItemDenormalized]{
		table: inventoryEntity.ItemDenormalized{}.TableName(),
		columns: []string{"name", "item_id", "category_id", "category_name", "supplier_id", "supplier_name",
			"warehouse_id", "warehouse_name", "created_at", "updated_at"},
		rows: rows,
		values: func(d *inventoryEntity.ItemDenormalized) []any {
			return []any{d.Name, int64(d.ItemID), int64(d.CategoryID), d.CategoryName, int64(d.SupplierID), d.SupplierName,
				int64(d.WarehouseID), d.WarehouseName, d.CreatedAt, d.UpdatedAt}
		},
	}
}
