package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	sq "github.com/Masterminds/squirrel"

	activityDomain "github.com/davicafu/hexadmin/internal/activity/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/sqlstore"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
)

var fields = map[string]string{
	"id":                              "id",
	activityDomain.FieldEventType:     "event_type",
	activityDomain.FieldAggregateType: "aggregate_type",
	activityDomain.FieldAggregateID:   "aggregate_id",
	activityDomain.FieldOccurredAt:    "occurred_at",
}

// ActivityRepo guarda la actividad en ClickHouse, pensado para volumen alto.
type ActivityRepo struct {
	db *sql.DB
}

var _ activityDomain.ActivityRepository = (*ActivityRepo)(nil)

func NewActivityRepo(addr string, dbName string) (*ActivityRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &ActivityRepo{db: conn}, nil
}

// NewActivityRepoFromDB permite inyectar una conexión ya abierta.
func NewActivityRepoFromDB(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Close() error {
	return r.db.Close()
}

// InitSchema crea la tabla si no existe. ReplacingMergeTree descarta
// en segundo plano los eventos repetidos con la misma clave de orden.
func (r *ActivityRepo) InitSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS activities (
			id             String,
			event_type     LowCardinality(String),
			aggregate_type LowCardinality(String),
			aggregate_id   String,
			occurred_at    DateTime64(3),
			payload        String
		) ENGINE = ReplacingMergeTree()
		PARTITION BY toYYYYMM(occurred_at)
		ORDER BY (aggregate_type, occurred_at, id)
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// ---------------- Escritura ----------------

func (r *ActivityRepo) Record(ctx context.Context, a *activityDomain.Activity) error {
	return r.RecordBatch(ctx, []*activityDomain.Activity{a})
}

// RecordBatch inserta un lote en una sola transacción; ClickHouse rinde mejor por lotes.
func (r *ActivityRepo) RecordBatch(ctx context.Context, items []*activityDomain.Activity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO activities (id, event_type, aggregate_type, aggregate_id, occurred_at, payload)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range items {
		if _, err := stmt.ExecContext(ctx,
			a.ID,
			a.EventType,
			a.AggregateType,
			a.AggregateID,
			a.OccurredAt,
			string(a.Payload),
		); err != nil {
			return fmt.Errorf("failed to exec statement for activity %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

// ---------------- Lectura ----------------

func (r *ActivityRepo) Count(ctx context.Context, filter sharedDomain.Criteria) (int, error) {
	query, args, err := countQuery(filter)
	if err != nil {
		return 0, err
	}

	var n uint64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *ActivityRepo) FindMany(ctx context.Context, args pagination.FindArgs[sharedDomain.Criteria]) ([]*activityDomain.Activity, error) {
	query, qArgs, err := findQuery(args)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, qArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*activityDomain.Activity{}
	for rows.Next() {
		var (
			a        activityDomain.Activity
			occurred time.Time
			payload  string
		)
		if err := rows.Scan(&a.ID, &a.EventType, &a.AggregateType, &a.AggregateID, &occurred, &payload); err != nil {
			return nil, err
		}
		a.OccurredAt = occurred.UTC()
		if payload != "" {
			a.Payload = []byte(payload)
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func countQuery(filter sharedDomain.Criteria) (string, []interface{}, error) {
	q, err := where(sq.Select("count()").From("activities FINAL"), filter)
	if err != nil {
		return "", nil, err
	}
	return q.ToSql()
}

func findQuery(args pagination.FindArgs[sharedDomain.Criteria]) (string, []interface{}, error) {
	if len(args.Include) > 0 {
		return "", nil, fmt.Errorf("%w: include %v", sharedDomain.ErrInvalidField, args.Include)
	}

	q := sq.Select("id", "event_type", "aggregate_type", "aggregate_id", "occurred_at", "payload").
		From("activities FINAL")
	q, err := where(q, args.Filter)
	if err != nil {
		return "", nil, err
	}

	sorts := args.OrderBy
	if len(sorts) == 0 {
		sorts = activityDomain.DefaultOrder
	}
	order, err := sqlstore.OrderClauses(sorts, fields, "id")
	if err != nil {
		return "", nil, err
	}
	q = q.OrderBy(order...)
	if args.Take > 0 {
		q = q.Limit(uint64(args.Take)).Offset(uint64(args.Skip))
	}
	return q.ToSql()
}

func where(q sq.SelectBuilder, filter sharedDomain.Criteria) (sq.SelectBuilder, error) {
	cond, err := sqlstore.ToClickHouseSqlizer(filter, fields)
	if err != nil {
		return q, err
	}
	if cond != nil {
		q = q.Where(cond)
	}
	return q, nil
}
