package sqlrepo

import (
	"context"
	"database/sql"
	"encoding/json"

	activityDomain "github.com/davicafu/hexadmin/internal/activity/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/sqlstore"
)

var Schema = sqlstore.Schema{
	SQLite: []string{`
    CREATE TABLE IF NOT EXISTS activities (
        id TEXT PRIMARY KEY,
        event_type TEXT NOT NULL,
        aggregate_type TEXT NOT NULL,
        aggregate_id TEXT NOT NULL,
        occurred_at DATETIME NOT NULL,
        payload TEXT NULL
    )`,
		`CREATE INDEX IF NOT EXISTS idx_activities_occurred_at ON activities(occurred_at)`,
	},
	Postgres: []string{`
    CREATE TABLE IF NOT EXISTS activities (
        id VARCHAR(64) PRIMARY KEY,
        event_type VARCHAR(100) NOT NULL,
        aggregate_type VARCHAR(100) NOT NULL,
        aggregate_id VARCHAR(100) NOT NULL,
        occurred_at TIMESTAMPTZ NOT NULL,
        payload JSONB NULL
    )`,
		`CREATE INDEX IF NOT EXISTS idx_activities_occurred_at ON activities(occurred_at)`,
	},
}

func InitSchema(ctx context.Context, db *sqlstore.DB) error {
	return db.ExecSchema(ctx, Schema)
}

// ActivityRepo guarda la actividad en la misma base relacional que el resto.
type ActivityRepo struct {
	*sqlstore.Table[*activityDomain.Activity]
}

var _ activityDomain.ActivityRepository = (*ActivityRepo)(nil)

func NewActivityRepo(db *sqlstore.DB) *ActivityRepo {
	return &ActivityRepo{Table: sqlstore.NewTable(db, sqlstore.Mapper[*activityDomain.Activity]{
		Entity:       activityDomain.Kind,
		Table:        "activities",
		Columns:      []string{"id", "event_type", "aggregate_type", "aggregate_id", "occurred_at", "payload"},
		DefaultOrder: activityDomain.DefaultOrder,
		Scan: func(row sqlstore.Scanner) (*activityDomain.Activity, error) {
			var (
				a       activityDomain.Activity
				payload sql.NullString
			)
			if err := row.Scan(&a.ID, &a.EventType, &a.AggregateType, &a.AggregateID, &a.OccurredAt, &payload); err != nil {
				return nil, err
			}
			if payload.Valid {
				a.Payload = json.RawMessage(payload.String)
			}
			return &a, nil
		},
		Values: func(a *activityDomain.Activity) map[string]interface{} {
			var payload interface{}
			if len(a.Payload) > 0 {
				payload = string(a.Payload)
			}
			return map[string]interface{}{
				"id":             a.ID,
				"event_type":     a.EventType,
				"aggregate_type": a.AggregateType,
				"aggregate_id":   a.AggregateID,
				"occurred_at":    a.OccurredAt,
				"payload":        payload,
			}
		},
		KeyOf: func(a *activityDomain.Activity) interface{} { return a.ID },
	})}
}

// Record no escribe en el outbox: la actividad ya es consecuencia de un evento.
func (r *ActivityRepo) Record(ctx context.Context, a *activityDomain.Activity) error {
	return r.Insert(ctx, a, nil)
}
