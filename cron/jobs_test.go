package cron

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory.GO/config"
	"inventory.GO/migration"
	"inventory.GO/service/seed"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cron.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := migration.Up(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestDenormalizeRefresh_Rebuilds(t *testing.T) {
	db := testDB(t)
	cfg, err := config.Load(nil)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	_, err = seed.Run(context.Background(), db, seed.Options{
		Categories: 2, Suppliers: 2, Warehouses: 2, Items: 30, Attributes: 10,
		BatchSize: 10, Seed: 1, Logger: quiet,
	})
	if err != nil {
		t.Fatalf("seed.Run: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := DenormalizeRefresh(context.Background(), db, cfg); err != nil {
			t.Fatalf("DenormalizeRefresh %d: %v", i+1, err)
		}
	}
	var n int64
	db.Table("items_denormalized").Count(&n)
	if n != 30 {
		t.Errorf("items_denormalized rows = %d, want 30", n)
	}
}

func TestStartCron_BadSchedule(t *testing.T) {
	Register("badschedule", "not a schedule", func(...string) error { return nil })
	defer Unregister("badschedule")

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	if c, err := StartCron(quiet); err == nil {
		c.Stop()
		t.Fatal("StartCron accepted an invalid schedule")
	}
}

func TestRegisterDefaultJobs(t *testing.T) {
	cfg, err := config.Load([]string{"CRON_DENORMALIZE=@every 5m"})
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	RegisterDefaultJobs(cfg)
	j, ok := Jobs()[DenormalizeRefreshJob]
	if !ok {
		t.Fatalf("%s not registered", DenormalizeRefreshJob)
	}
	if j.Schedule != "@every 5m" {
		t.Errorf("Schedule = %q, want @every 5m", j.Schedule)
	}
	Unregister("none")
}

func TestDenormalizeRefreshJob_ReusesHandle(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "job.db"))
	t.Setenv("GORM_LOG", "off")
	jobDBMu.Lock()
	jobDB = nil
	jobDBMu.Unlock()
	t.Cleanup(func() {
		jobDBMu.Lock()
		defer jobDBMu.Unlock()
		if jobDB != nil {
			if sqlDB, err := jobDB.DB(); err == nil {
				sqlDB.Close()
			}
			jobDB = nil
		}
	})

	cfg, err := config.Load(nil)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	RegisterDefaultJobs(cfg)
	j, ok := Jobs()[DenormalizeRefreshJob]
	Unregister("none")
	if !ok {
		t.Fatalf("%s not registered", DenormalizeRefreshJob)
	}

	db, err := sharedDB()
	if err != nil {
		t.Fatalf("sharedDB: %v", err)
	}
	if err := migration.Up(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for i := 0; i < 20; i++ {
		if err := j.Run(); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}
	again, err := sharedDB()
	if err != nil {
		t.Fatalf("sharedDB: %v", err)
	}
	if again != db {
		t.Error("job opened a new database handle")
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}
	if open := sqlDB.Stats().OpenConnections; open > 2 {
		t.Errorf("open connections = %d after 20 runs, want <= 2", open)
	}
}
