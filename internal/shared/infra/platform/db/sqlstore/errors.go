package sqlstore

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
)

const pgUniqueViolation = "23505"

// mapError traduce las violaciones de unicidad de cada driver a DuplicateError.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &sharedDomain.DuplicateError{Field: pgDuplicateField(pgErr)}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && (liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY) {
		return &sharedDomain.DuplicateError{Field: sqliteDuplicateField(liteErr.Error())}
	}

	return err
}

// Detail: `Key (name)=(foo) already exists.`
func pgDuplicateField(e *pgconn.PgError) string {
	if e.ColumnName != "" {
		return e.ColumnName
	}
	_, rest, ok := strings.Cut(e.Detail, "Key (")
	if !ok {
		return ""
	}
	field, _, _ := strings.Cut(rest, ")")
	if i := strings.Index(field, ","); i >= 0 {
		field = field[:i]
	}
	return strings.TrimSpace(field)
}

// Mensaje: `UNIQUE constraint failed: products.name (2067)`
func sqliteDuplicateField(msg string) string {
	_, rest, ok := strings.Cut(msg, "UNIQUE constraint failed: ")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, " ,("); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndex(rest, "."); i >= 0 {
		rest = rest[i+1:]
	}
	return rest
}
