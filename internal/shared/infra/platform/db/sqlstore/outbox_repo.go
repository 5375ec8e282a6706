package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
)

// OutboxSchema es la tabla compartida por todos los agregados.
var OutboxSchema = Schema{
	SQLite: []string{`
    CREATE TABLE IF NOT EXISTS outbox (
        id TEXT PRIMARY KEY,
        aggregate_type TEXT NOT NULL,
        aggregate_id TEXT NOT NULL,
        event_type TEXT NOT NULL,
        payload TEXT NOT NULL,
        created_at DATETIME NOT NULL,
        processed INTEGER NOT NULL DEFAULT 0
    )`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox (processed, created_at)`,
	},
	Postgres: []string{`
    CREATE TABLE IF NOT EXISTS outbox (
        id UUID PRIMARY KEY,
        aggregate_type TEXT NOT NULL,
        aggregate_id TEXT NOT NULL,
        event_type TEXT NOT NULL,
        payload JSONB NOT NULL,
        created_at TIMESTAMP WITH TIME ZONE NOT NULL,
        processed BOOLEAN NOT NULL DEFAULT FALSE
    )`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox (processed, created_at)`,
	},
}

// OutboxRepo implementa sharedDomain.OutboxRepository para ambos dialectos.
type OutboxRepo struct {
	db *DB
}

func NewOutboxRepo(db *DB) *OutboxRepo {
	return &OutboxRepo{db: db}
}

// FetchPendingOutbox obtiene los eventos no procesados, del más antiguo al más nuevo.
func (r *OutboxRepo) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	query, args, err := r.db.Builder().
		Select("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at").
		From("outbox").
		Where(sq.Eq{"processed": false}).
		OrderBy("created_at", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []sharedDomain.OutboxEvent
	for rows.Next() {
		var (
			evt          sharedDomain.OutboxEvent
			payloadBytes []byte
		)
		if err := rows.Scan(&evt.ID, &evt.AggregateType, &evt.AggregateID, &evt.EventType, &payloadBytes, &evt.CreatedAt); err != nil {
			return nil, err
		}

		var payload interface{}
		if err := json.Unmarshal(payloadBytes, &payload); err != nil {
			return nil, fmt.Errorf("invalid JSON payload in outbox row %s: %w", evt.ID, err)
		}
		evt.Payload = payload
		events = append(events, evt)
	}

	return events, rows.Err()
}

// MarkOutboxProcessed marca un evento como procesado.
func (r *OutboxRepo) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.db.Builder().
		Update("outbox").
		Set("processed", true).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("outbox event not found: %s", id)
	}
	return nil
}

// ------------------ Helper DRY para insertar en outbox ------------------

func insertOutboxTx(ctx context.Context, db *DB, tx *sql.Tx, evt sharedDomain.OutboxEvent) error {
	payloadBytes, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	query, args, err := db.Builder().
		Insert("outbox").
		Columns("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at", "processed").
		Values(evt.ID, evt.AggregateType, evt.AggregateID, evt.EventType, string(payloadBytes), evt.CreatedAt, false).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// Verificación en tiempo de compilación.
var _ sharedDomain.OutboxRepository = (*OutboxRepo)(nil)
