package di

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-seo/internal/runtimeconfig"
)

// OpenDatabase opens the content database with the bun dialect matching cfg.Driver.
func OpenDatabase(ctx context.Context, cfg runtimeconfig.DatabaseConfig) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))

	var dialect schema.Dialect
	switch driver {
	case runtimeconfig.DriverPostgres:
		dialect = pgdialect.New()
	case runtimeconfig.DriverSQLite:
		dialect = sqlitedialect.New()
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrDatabaseDriverUnknown, driver)
	}

	sqldb, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("di: open %s: %w", driver, err)
	}
	if driver == runtimeconfig.DriverSQLite {
		sqldb.SetMaxOpenConns(1)
	}
	db := bun.NewDB(sqldb, dialect)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("di: ping %s: %w", driver, err)
	}
	return db, nil
}
