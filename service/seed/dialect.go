package seed

import (
	"gorm.io/gorm"
)

// Dialect is the SQL flavour behind a gorm handle.
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectPostgres
	DialectMySQL
	DialectSQLite
)

func (d Dialect) String() string {
	switch d {
	case DialectPostgres:
		return "postgres"
	case DialectMySQL:
		return "mysql"
	case DialectSQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// DetectDialect maps the gorm dialector name to a Dialect.
func DetectDialect(db *gorm.DB) Dialect {
	switch db.Dialector.Name() {
	case "postgres":
		return DialectPostgres
	case "mysql":
		return DialectMySQL
	case "sqlite":
		return DialectSQLite
	default:
		return DialectUnknown
	}
}
