package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported DB_DRIVER values.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// NewDB opens the store selected by DB_DRIVER (postgres by default).
func NewDB() (*gorm.DB, error) {
	dialector, err := dialectorFromEnv()
	if err != nil {
		return nil, err
	}

	logMode := logger.Warn
	switch os.Getenv("GORM_LOG") {
	case "off":
		logMode = logger.Silent
	case "info":
		logMode = logger.Info
	}

	gormLogger := logger.New(
		GetLogger(), // logrus.Logger satisfies logger.Writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logMode,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		// Bulk inserts are single statements; an implicit transaction per statement buys nothing.
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}
	if os.Getenv("GORM_TRACE") == "true" {
		if pluginErr := db.Use(otelgorm.NewPlugin()); pluginErr != nil {
			GetLogger().Warnf("db connected but failed to install otelgorm plugin: %v", pluginErr)
		}
	}
	return db, nil
}

func dialectorFromEnv() (gorm.Dialector, error) {
	driver := strings.ToLower(os.Getenv("DB_DRIVER"))
	if driver == "" {
		driver = DriverPostgres
	}
	switch driver {
	case DriverPostgres:
		return postgres.Open(PostgresDSN()), nil
	case DriverMySQL:
		return mysql.Open(MySQLDSN()), nil
	case DriverSQLite:
		return sqlite.Open(SQLiteDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want postgres, mysql or sqlite)", driver)
	}
}

// PostgresDSN returns DATABASE_URL or a DSN assembled from POSTGRES_* variables.
func PostgresDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "postgres")
	pass := os.Getenv("POSTGRES_PASSWORD")
	name := envOr("POSTGRES_DB", "inventory_development")
	sslmode := envOr("POSTGRES_SSLMODE", "disable")
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s", host, port, user, pass, name, sslmode)
}

// MySQLDSN returns MYSQL_DSN or a DSN assembled from MYSQL_* variables.
// Migrations need multiStatements=true; set it yourself when supplying MYSQL_DSN.
func MySQLDSN() string {
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		return dsn
	}
	user := os.Getenv("MYSQL_USER")
	pass := os.Getenv("MYSQL_PASS")
	host := os.Getenv("MYSQL_HOST")
	port := envOr("MYSQL_PORT", "3306")
	db := os.Getenv("MYSQL_DB")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local&multiStatements=true", user, pass, host, port, db)
}

// SQLiteDSN returns the SQLite file DSN with foreign keys enforced.
func SQLiteDSN() string {
	path := envOr("SQLITE_PATH", "inventory.db")
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
