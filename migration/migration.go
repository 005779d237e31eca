// Package migration applies the inventory schema. Postgres and MySQL run the
// embedded SQL files through golang-migrate; SQLite, used for local development
// and tests, is migrated from the gorm entities.
package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"inventory.GO/config"
	inventoryEntity "inventory.GO/model/entity/inventory"
)

//go:embed sql
var files embed.FS

// SchemaVersion is the version the embedded migrations end at.
const SchemaVersion uint = 1

var ErrUnsupportedDialect = errors.New("migration: unsupported dialect")

// Up applies all pending migrations.
func Up(db *gorm.DB) error {
	log := config.GetLogger().WithField("dialect", db.Dialector.Name())
	if db.Dialector.Name() == config.DriverSQLite {
		if err := autoMigrate(db); err != nil {
			return err
		}
		log.Info("Schema migrated.")
		return nil
	}
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	log.Info("Schema migrated.")
	return nil
}

// Down rolls back one migration step.
func Down(db *gorm.DB) error {
	log := config.GetLogger().WithField("dialect", db.Dialector.Name())
	if db.Dialector.Name() == config.DriverSQLite {
		for _, table := range inventoryEntity.Tables {
			if err := db.Migrator().DropTable(table); err != nil {
				return fmt.Errorf("drop %s: %w", table, err)
			}
		}
		log.Info("Schema rolled back.")
		return nil
	}
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	log.Info("Schema rolled back.")
	return nil
}

// Version reports the applied schema version and whether the last migration left the schema dirty.
func Version(db *gorm.DB) (uint, bool, error) {
	if db.Dialector.Name() == config.DriverSQLite {
		for _, table := range inventoryEntity.Tables {
			if !db.Migrator().HasTable(table) {
				return 0, false, nil
			}
		}
		return SchemaVersion, false, nil
	}
	m, err := newMigrate(db)
	if err != nil {
		return 0, false, err
	}
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// newMigrate binds golang-migrate to gorm's pool. The returned instance shares
// the pool, so it is never closed here; closing it would close db as well.
func newMigrate(db *gorm.DB) (*migrate.Migrate, error) {
	dialect := db.Dialector.Name()
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	var driver database.Driver
	switch dialect {
	case config.DriverPostgres:
		driver, err = migratepg.WithInstance(sqlDB, &migratepg.Config{})
	case config.DriverMySQL:
		driver, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("migrate driver: %w", err)
	}

	src, err := iofs.New(files, "sql/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("migrate source: %w", err)
	}
	return migrate.NewWithInstance("iofs", src, dialect, driver)
}

func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(inventoryEntity.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, table := range inventoryEntity.Tables {
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS index_%s_on_id ON %s (id)", table, table)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("index %s: %w", table, err)
		}
	}
	return nil
}
