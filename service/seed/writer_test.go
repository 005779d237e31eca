package seed

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	inventoryEntity "inventory.GO/model/entity/inventory"
)

type sizeWriter struct {
	sizes  []int
	failAt int
}

func (w *sizeWriter) Write(_ context.Context, _ *gorm.DB, rows Rows) error {
	w.sizes = append(w.sizes, rows.Len())
	if w.failAt == len(w.sizes) {
		return errors.New("write failed")
	}
	return nil
}

func makeItems(n int) []inventoryEntity.Item {
	items := make([]inventoryEntity.Item, n)
	for i := range items {
		items[i].Name = "item"
	}
	return items
}

func TestWriteChunked_Sizes(t *testing.T) {
	cases := []struct {
		rows, size int
		want       []int
	}{
		{0, 1000, nil},
		{1, 1000, []int{1}},
		{1000, 1000, []int{1000}},
		{2500, 1000, []int{1000, 1000, 500}},
		{7, 3, []int{3, 3, 1}},
	}
	for _, c := range cases {
		w := &sizeWriter{}
		n, err := writeChunked(context.Background(), nil, w, itemRows(makeItems(c.rows)), c.size, PhaseItems)
		if err != nil {
			t.Fatalf("writeChunked(%d, %d): %v", c.rows, c.size, err)
		}
		if n != len(c.want) {
			t.Errorf("writeChunked(%d, %d) batches = %d, want %d", c.rows, c.size, n, len(c.want))
		}
		if len(w.sizes) != len(c.want) {
			t.Fatalf("writeChunked(%d, %d) sizes = %v, want %v", c.rows, c.size, w.sizes, c.want)
		}
		for i := range c.want {
			if w.sizes[i] != c.want[i] {
				t.Errorf("writeChunked(%d, %d) sizes = %v, want %v", c.rows, c.size, w.sizes, c.want)
				break
			}
		}
	}
}

func TestWriteChunked_StopsAtFailedBatch(t *testing.T) {
	w := &sizeWriter{failAt: 2}
	n, err := writeChunked(context.Background(), nil, w, attributeRows(make([]inventoryEntity.ItemAttribute, 50)), 10, PhaseAttributes)
	if n != 1 {
		t.Errorf("batches = %d, want 1", n)
	}
	var pe *PhaseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *PhaseError", err)
	}
	if pe.Batch != 2 || pe.Table != "item_attributes" || !errors.Is(err, ErrBulkInsert) {
		t.Errorf("PhaseError = %+v", pe)
	}
	if len(w.sizes) != 2 {
		t.Errorf("writer called %d times, want 2", len(w.sizes))
	}
}

func TestWriteChunked_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := &sizeWriter{}
	_, err := writeChunked(ctx, nil, w, itemRows(makeItems(5)), 2, PhaseItems)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(w.sizes) != 0 {
		t.Errorf("writer called %d times, want 0", len(w.sizes))
	}
}

func TestRowSet_Values(t *testing.T) {
	cat := uint(4)
	items := []inventoryEntity.Item{{Name: "a", CategoryID: &cat}}
	set := itemRows(items)
	vals := set.Values(0)
	if len(vals) != len(set.Columns()) {
		t.Fatalf("values = %d, columns = %d", len(vals), len(set.Columns()))
	}
	if vals[1] != int64(4) {
		t.Errorf("category_id = %v, want 4", vals[1])
	}
	if vals[2] != nil {
		t.Errorf("supplier_id = %v, want nil", vals[2])
	}
	if got := set.slice(0, 0).Len(); got != 0 {
		t.Errorf("empty slice Len = %d", got)
	}
}

func TestOptionsNormalize(t *testing.T) {
	o, err := Options{}.normalize(DialectSQLite)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if o.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", o.BatchSize, DefaultBatchSize)
	}
	if _, ok := o.Writer.(GormWriter); !ok {
		t.Errorf("Writer = %T, want GormWriter", o.Writer)
	}
	if _, err := (Options{Writer: CopyWriter{}}).normalize(DialectPostgres); err != nil {
		t.Errorf("copy on postgres: %v", err)
	}
	if _, err := (Options{Writer: CopyWriter{}, Atomic: true}).normalize(DialectPostgres); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("copy atomic: err = %v, want ErrInvalidOptions", err)
	}
}
