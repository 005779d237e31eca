package seed_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory.GO/migration"
	inventoryRepo "inventory.GO/model/repository/inventory"
	"inventory.GO/service/seed"
)

var errBoom = errors.New("boom")

func seedDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Temp file DB so every pooled connection sees the same tables
	path := filepath.Join(t.TempDir(), "seed.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	if err := migration.Up(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func smallOptions() seed.Options {
	return seed.Options{
		Categories: 3,
		Suppliers:  4,
		Warehouses: 5,
		Items:      200,
		Attributes: 1500,
		BatchSize:  100,
		Seed:       42,
		Logger:     quietLogger(),
	}
}

func counts(t *testing.T, db *gorm.DB) map[string]int64 {
	t.Helper()
	repo, err := inventoryRepo.NewInventoryRepository(db)
	if err != nil {
		t.Fatalf("NewInventoryRepository: %v", err)
	}
	list, err := repo.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	out := make(map[string]int64, len(list))
	for _, c := range list {
		out[c.Table] = c.Rows
	}
	return out
}

// recordingWriter remembers the size of every bulk insert per table.
type recordingWriter struct {
	mu    sync.Mutex
	sizes map[string][]int
	next  seed.Writer
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{sizes: make(map[string][]int), next: seed.GormWriter{}}
}

func (w *recordingWriter) Write(ctx context.Context, db *gorm.DB, rows seed.Rows) error {
	w.mu.Lock()
	w.sizes[rows.Table()] = append(w.sizes[rows.Table()], rows.Len())
	w.mu.Unlock()
	return w.next.Write(ctx, db, rows)
}

// failingWriter fails the failAt-th write to table and delegates the rest.
type failingWriter struct {
	table  string
	failAt int
	calls  int
	next   seed.Writer
}

func (w *failingWriter) Write(ctx context.Context, db *gorm.DB, rows seed.Rows) error {
	if rows.Table() == w.table {
		w.calls++
		if w.calls == w.failAt {
			return errBoom
		}
	}
	return w.next.Write(ctx, db, rows)
}
