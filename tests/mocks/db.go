package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/sqlstore"
)

// NewTestDB abre una SQLite en memoria con el outbox y los esquemas indicados.
func NewTestDB(t *testing.T, schemas ...sqlstore.Schema) *sqlstore.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqlstore.OpenInMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.ExecSchema(ctx, sqlstore.OutboxSchema))
	for _, s := range schemas {
		require.NoError(t, db.ExecSchema(ctx, s))
	}
	return db
}

// PendingEvents devuelve los tipos de evento que siguen en el outbox.
func PendingEvents(t *testing.T, db *sqlstore.DB) []string {
	t.Helper()
	events, err := sqlstore.NewOutboxRepo(db).FetchPendingOutbox(context.Background(), 100)
	require.NoError(t, err)

	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.EventType
	}
	return types
}
