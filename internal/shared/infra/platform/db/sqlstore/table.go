package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	sharedQuery "github.com/davicafu/hexadmin/internal/shared/infra/platform/query"
)

// Scanner es lo común entre *sql.Row y *sql.Rows.
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Loader completa una relación ("include") sobre los elementos ya leídos.
type Loader[T any] func(ctx context.Context, items []T) error

// Mapper describe cómo se guarda una entidad en una tabla.
type Mapper[T any] struct {
	Entity  string // para mensajes de error: "product not found"
	Table   string
	Key     string // columna de clave primaria
	Columns []string
	// Fields amplía la lista blanca de filtros/orden con alias campo -> columna.
	// Las columnas de Columns siempre están permitidas.
	Fields       map[string]string
	DefaultOrder []sharedQuery.Sort
	Includes     map[string]Loader[T]

	Scan   func(row Scanner) (T, error)
	Values func(item T) map[string]interface{}
	KeyOf  func(item T) interface{}
}

// Table implementa lectura paginada y escritura con outbox para un Mapper.
type Table[T any] struct {
	db     *DB
	m      Mapper[T]
	fields map[string]string
}

func NewTable[T any](db *DB, m Mapper[T]) *Table[T] {
	if m.Key == "" {
		m.Key = "id"
	}
	fields := make(map[string]string, len(m.Columns)+len(m.Fields))
	for _, col := range m.Columns {
		fields[col] = col
	}
	for field, col := range m.Fields {
		fields[field] = col
	}
	return &Table[T]{db: db, m: m, fields: fields}
}

func (t *Table[T]) DB() *DB { return t.db }

// ---------------- Lectura ----------------

func (t *Table[T]) Count(ctx context.Context, filter sharedDomain.Criteria) (int, error) {
	where, err := ToSqlizer(filter, t.fields)
	if err != nil {
		return 0, err
	}

	q := t.db.Builder().Select("COUNT(*)").From(t.m.Table)
	if where != nil {
		q = q.Where(where)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := t.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.m.Table, err)
	}
	return total, nil
}

func (t *Table[T]) FindMany(ctx context.Context, args pagination.FindArgs[sharedDomain.Criteria]) ([]T, error) {
	where, err := ToSqlizer(args.Filter, t.fields)
	if err != nil {
		return nil, err
	}
	sorts := args.OrderBy
	if len(sorts) == 0 {
		sorts = t.m.DefaultOrder
	}
	order, err := OrderClauses(sorts, t.fields, t.m.Key)
	if err != nil {
		return nil, err
	}
	if err := t.checkIncludes(args.Include); err != nil {
		return nil, err
	}

	q := t.db.Builder().Select(t.m.Columns...).From(t.m.Table).OrderBy(order...)
	if where != nil {
		q = q.Where(where)
	}
	if args.Take > 0 {
		q = q.Limit(uint64(args.Take))
	}
	if args.Skip > 0 {
		q = q.Offset(uint64(args.Skip))
	}

	items, err := t.query(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := t.load(ctx, items, args.Include); err != nil {
		return nil, err
	}
	return items, nil
}

// FindOne devuelve el primer elemento que cumple el criterio o ErrNotFound.
func (t *Table[T]) FindOne(ctx context.Context, filter sharedDomain.Criteria, include ...string) (T, error) {
	items, err := t.FindMany(ctx, pagination.FindArgs[sharedDomain.Criteria]{
		Filter:  filter,
		Include: include,
		Take:    1,
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if len(items) == 0 {
		var zero T
		return zero, t.notFound()
	}
	return items[0], nil
}

// Get busca por clave primaria.
func (t *Table[T]) Get(ctx context.Context, id interface{}, include ...string) (T, error) {
	return t.FindOne(ctx, sharedDomain.Eq(t.m.Key, id), include...)
}

// query ejecuta la select y cierra las filas antes de volver: con SQLite en
// memoria solo hay una conexión y los includes necesitan otra consulta.
func (t *Table[T]) query(ctx context.Context, q sq.SelectBuilder) ([]T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.m.Table, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := t.m.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.m.Table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, rows.Close()
}

func (t *Table[T]) checkIncludes(include []string) error {
	for _, name := range include {
		if _, ok := t.m.Includes[name]; !ok {
			return fmt.Errorf("%w: include %s", sharedDomain.ErrInvalidField, name)
		}
	}
	return nil
}

func (t *Table[T]) load(ctx context.Context, items []T, include []string) error {
	if len(items) == 0 {
		return nil
	}
	for _, name := range include {
		if err := t.m.Includes[name](ctx, items); err != nil {
			return fmt.Errorf("include %s: %w", name, err)
		}
	}
	return nil
}

// ---------------- Escritura + Outbox ----------------

// Insert guarda el elemento y, si evt no es nil, su evento en la misma transacción.
func (t *Table[T]) Insert(ctx context.Context, item T, evt *sharedDomain.OutboxEvent) error {
	return t.withTx(ctx, evt, func(tx *sql.Tx) error {
		query, args, err := t.db.Builder().Insert(t.m.Table).SetMap(t.m.Values(item)).ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}

// Update reescribe todas las columnas salvo la clave.
func (t *Table[T]) Update(ctx context.Context, item T, evt *sharedDomain.OutboxEvent) error {
	values := t.m.Values(item)
	delete(values, t.m.Key)

	return t.withTx(ctx, evt, func(tx *sql.Tx) error {
		query, args, err := t.db.Builder().Update(t.m.Table).
			SetMap(values).
			Where(sq.Expr(t.m.Key+" = ?", t.m.KeyOf(item))).
			ToSql()
		if err != nil {
			return err
		}
		return t.execAffecting(ctx, tx, query, args)
	})
}

// Upsert inserta o, si la clave ya existe, reescribe todas las columnas
// salvo la clave y created_at. Requiere ON CONFLICT (SQLite >= 3.24 y Postgres).
func (t *Table[T]) Upsert(ctx context.Context, item T, evt *sharedDomain.OutboxEvent) error {
	values := t.m.Values(item)
	sets := make([]string, 0, len(values))
	for col := range values {
		if col == t.m.Key || col == "created_at" {
			continue
		}
		sets = append(sets, col+" = excluded."+col)
	}
	sort.Strings(sets)

	suffix := "ON CONFLICT (" + t.m.Key + ") DO NOTHING"
	if len(sets) > 0 {
		suffix = "ON CONFLICT (" + t.m.Key + ") DO UPDATE SET " + strings.Join(sets, ", ")
	}

	return t.withTx(ctx, evt, func(tx *sql.Tx) error {
		query, args, err := t.db.Builder().Insert(t.m.Table).SetMap(values).Suffix(suffix).ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}

// Delete borra por clave primaria.
func (t *Table[T]) Delete(ctx context.Context, id interface{}, evt *sharedDomain.OutboxEvent) error {
	return t.withTx(ctx, evt, func(tx *sql.Tx) error {
		query, args, err := t.db.Builder().Delete(t.m.Table).
			Where(sq.Expr(t.m.Key+" = ?", id)).
			ToSql()
		if err != nil {
			return err
		}
		return t.execAffecting(ctx, tx, query, args)
	})
}

func (t *Table[T]) execAffecting(ctx context.Context, tx *sql.Tx, query string, args []interface{}) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if rows == 0 {
		return t.notFound()
	}
	return nil
}

func (t *Table[T]) withTx(ctx context.Context, evt *sharedDomain.OutboxEvent, fn func(tx *sql.Tx) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() // Se ignora si el Commit() es exitoso

	if err := fn(tx); err != nil {
		return mapError(err)
	}
	if evt != nil {
		if err := insertOutboxTx(ctx, t.db, tx, *evt); err != nil {
			return err
		}
	}
	return mapError(tx.Commit())
}

func (t *Table[T]) notFound() error {
	return fmt.Errorf("%s %w", t.m.Entity, sharedDomain.ErrNotFound)
}

// Verificación estática con un tipo cualquiera.
var _ pagination.Handle[int, sharedDomain.Criteria] = (*Table[int])(nil)
