package sqlrepo

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/sqlstore"
	tagDomain "github.com/davicafu/hexadmin/internal/tag/domain"
)

var Schema = sqlstore.Schema{
	SQLite: []string{`
    CREATE TABLE IF NOT EXISTS tags (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        created_at DATETIME NOT NULL,
        updated_at DATETIME NOT NULL
    )`},
	Postgres: []string{`
    CREATE TABLE IF NOT EXISTS tags (
        id UUID PRIMARY KEY,
        name VARCHAR(100) NOT NULL UNIQUE,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`},
}

type TagRepo struct {
	*sqlstore.Table[*tagDomain.Tag]
}

var _ tagDomain.TagRepository = (*TagRepo)(nil)

func NewTagRepo(db *sqlstore.DB) *TagRepo {
	return &TagRepo{Table: sqlstore.NewTable(db, sqlstore.Mapper[*tagDomain.Tag]{
		Entity:       tagDomain.Kind,
		Table:        "tags",
		Columns:      []string{"id", "name", "created_at", "updated_at"},
		DefaultOrder: tagDomain.DefaultOrder,
		Scan: func(row sqlstore.Scanner) (*tagDomain.Tag, error) {
			var t tagDomain.Tag
			return &t, row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
		},
		Values: func(t *tagDomain.Tag) map[string]interface{} {
			return map[string]interface{}{
				"id":         t.ID,
				"name":       t.Name,
				"created_at": t.CreatedAt,
				"updated_at": t.UpdatedAt,
			}
		},
		KeyOf: func(t *tagDomain.Tag) interface{} { return t.ID },
	})}
}

func InitSchema(ctx context.Context, db *sqlstore.DB) error {
	return db.ExecSchema(ctx, Schema)
}

func (r *TagRepo) GetByID(ctx context.Context, id uuid.UUID) (*tagDomain.Tag, error) {
	return r.Get(ctx, id)
}

func (r *TagRepo) Create(ctx context.Context, t *tagDomain.Tag, evt sharedDomain.OutboxEvent) error {
	return r.Insert(ctx, t, &evt)
}

func (r *TagRepo) Update(ctx context.Context, t *tagDomain.Tag, evt sharedDomain.OutboxEvent) error {
	return r.Table.Update(ctx, t, &evt)
}

func (r *TagRepo) DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	return r.Delete(ctx, id, &evt)
}
