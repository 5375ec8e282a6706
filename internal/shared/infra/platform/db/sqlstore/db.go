// Package sqlstore es el adaptador relacional común: abre la conexión
// (SQLite o Postgres), traduce Criteria a SQL con squirrel y expone
// Table[T], que cumple pagination.Handle para cualquier entidad.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // Driver de PostgreSQL
	// _ "github.com/mattn/go-sqlite3" // better performance but requires gcc
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DB envuelve *sql.DB recordando el dialecto para elegir placeholders y DDL.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open abre y verifica la conexión. driver: "sqlite" o "postgres".
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	var (
		dialect    Dialect
		driverName string
	)
	switch strings.ToLower(driver) {
	case "", "sqlite", "sqlite3":
		dialect, driverName = SQLite, "sqlite"
	case "postgres", "postgresql", "pgx":
		dialect, driverName = Postgres, "pgx"
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dialect, err)
	}

	// Cada conexión a ":memory:" es una base distinta.
	if dialect == SQLite && isMemoryDSN(dsn) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dialect, err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// OpenInMemory abre una SQLite en memoria, útil para tests y demos.
func OpenInMemory(ctx context.Context) (*DB, error) {
	return Open(ctx, "sqlite", ":memory:")
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// Builder devuelve el constructor de sentencias con el placeholder del dialecto.
func (d *DB) Builder() sq.StatementBuilderType {
	if d.Dialect == Postgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// ---------------- Esquema ----------------

// Schema agrupa el DDL de una tabla para cada dialecto.
type Schema struct {
	SQLite   []string
	Postgres []string
}

// ExecSchema ejecuta el DDL que corresponde al dialecto de la conexión.
func (d *DB) ExecSchema(ctx context.Context, s Schema) error {
	stmts := s.SQLite
	if d.Dialect == Postgres {
		stmts = s.Postgres
	}
	for _, stmt := range stmts {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
