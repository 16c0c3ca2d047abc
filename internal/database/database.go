// Package database opens the letshang store and brings its schema up to date.
//
// Two drivers are supported: the embedded pure-Go SQLite driver (default,
// one file per installation) and PostgreSQL through pgx. Both share the same
// repositories; only placeholders and the migration set differ.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/letshang/internal/dbx"
	"github.com/dmitrijs2005/letshang/internal/migrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverPgx    = "pgx"
)

// DB is an open database together with its dialect.
type DB struct {
	*sql.DB
	Dialect dbx.Dialect
}

// DialectFor maps a database/sql driver name to a dialect.
func DialectFor(driver string) (dbx.Dialect, error) {
	switch driver {
	case DriverSQLite:
		return dbx.DialectSQLite, nil
	case DriverPgx:
		return dbx.DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open connects to dsn and runs pending migrations.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dialect == dbx.DialectSQLite {
		// single writer; also keeps ":memory:" on one connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{DB: db, Dialect: dialect}, nil
}

// RunMigrations applies the embedded migrations of the given dialect.
// It is safe to call on an up-to-date database.
func RunMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	var gd goose.Dialect
	switch dialect {
	case dbx.DialectSQLite:
		gd = goose.DialectSQLite3
	case dbx.DialectPostgres:
		gd = goose.DialectPostgres
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	fsys, err := fs.Sub(migrations.Migrations, string(dialect))
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	p, err := goose.NewProvider(gd, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
