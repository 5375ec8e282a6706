package sqlrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	blogDomain "github.com/davicafu/hexadmin/internal/blog/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/sqlstore"
)

// Schema asume que la tabla users ya existe.
var Schema = sqlstore.Schema{
	SQLite: []string{`
    CREATE TABLE IF NOT EXISTS blogs (
        id TEXT PRIMARY KEY,
        user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        product_id TEXT NULL,
        title TEXT NOT NULL,
        description TEXT NULL,
        image TEXT NULL,
        tags TEXT NULL,
        created_at DATETIME NOT NULL,
        updated_at DATETIME NOT NULL
    )`,
		`CREATE INDEX IF NOT EXISTS idx_blogs_user_id ON blogs(user_id)`,
	},
	Postgres: []string{`
    CREATE TABLE IF NOT EXISTS blogs (
        id UUID PRIMARY KEY,
        user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        product_id UUID NULL,
        title VARCHAR(191) NOT NULL,
        description TEXT NULL,
        image VARCHAR(191) NULL,
        tags JSONB NULL,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`,
		`CREATE INDEX IF NOT EXISTS idx_blogs_user_id ON blogs(user_id)`,
	},
}

type BlogRepo struct {
	*sqlstore.Table[*blogDomain.Blog]
}

var _ blogDomain.BlogRepository = (*BlogRepo)(nil)

func NewBlogRepo(db *sqlstore.DB) *BlogRepo {
	authors := newAuthorTable(db)

	return &BlogRepo{Table: sqlstore.NewTable(db, sqlstore.Mapper[*blogDomain.Blog]{
		Entity: blogDomain.Kind,
		Table:  "blogs",
		Columns: []string{
			"id", "user_id", "product_id", "title", "description",
			"image", "tags", "created_at", "updated_at",
		},
		DefaultOrder: blogDomain.DefaultOrder,
		Includes: map[string]sqlstore.Loader[*blogDomain.Blog]{
			blogDomain.IncludeUser: sqlstore.BelongsTo(authors,
				func(b *blogDomain.Blog) (uuid.UUID, bool) { return b.UserID, true },
				func(a *blogDomain.Author) uuid.UUID { return a.ID },
				func(b *blogDomain.Blog, a *blogDomain.Author) { b.User = a },
			),
		},
		Scan: scanBlog,
		Values: func(b *blogDomain.Blog) map[string]interface{} {
			return map[string]interface{}{
				"id":          b.ID,
				"user_id":     b.UserID,
				"product_id":  b.ProductID,
				"title":       b.Title,
				"description": b.Description,
				"image":       b.Image,
				"tags":        tagsValue(b.Tags),
				"created_at":  b.CreatedAt,
				"updated_at":  b.UpdatedAt,
			}
		},
		KeyOf: func(b *blogDomain.Blog) interface{} { return b.ID },
	})}
}

// newAuthorTable lee de users sólo las columnas públicas del autor.
func newAuthorTable(db *sqlstore.DB) *sqlstore.Table[*blogDomain.Author] {
	return sqlstore.NewTable(db, sqlstore.Mapper[*blogDomain.Author]{
		Entity:  "user",
		Table:   "users",
		Columns: []string{"id", "username", "email", "first_name", "last_name"},
		Scan: func(row sqlstore.Scanner) (*blogDomain.Author, error) {
			var a blogDomain.Author
			if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName); err != nil {
				return nil, err
			}
			a.FullName = a.Username
			if a.FirstName != "" {
				a.FullName = a.FirstName + " " + a.LastName
			}
			return &a, nil
		},
	})
}

func scanBlog(row sqlstore.Scanner) (*blogDomain.Blog, error) {
	var (
		b         blogDomain.Blog
		productID uuid.NullUUID
		tags      sql.NullString
	)
	if err := row.Scan(&b.ID, &b.UserID, &productID, &b.Title, &b.Description,
		&b.Image, &tags, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if productID.Valid {
		b.ProductID = &productID.UUID
	}
	b.Tags = []string{}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &b.Tags); err != nil {
			return nil, fmt.Errorf("invalid tags JSON for blog %s: %w", b.ID, err)
		}
	}
	return &b, nil
}

func tagsValue(tags []string) interface{} {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

func InitSchema(ctx context.Context, db *sqlstore.DB) error {
	return db.ExecSchema(ctx, Schema)
}

func (r *BlogRepo) GetByID(ctx context.Context, id uuid.UUID, include ...string) (*blogDomain.Blog, error) {
	return r.Get(ctx, id, include...)
}

func (r *BlogRepo) Create(ctx context.Context, b *blogDomain.Blog, evt sharedDomain.OutboxEvent) error {
	return r.Insert(ctx, b, &evt)
}

func (r *BlogRepo) Update(ctx context.Context, b *blogDomain.Blog, evt sharedDomain.OutboxEvent) error {
	return r.Table.Update(ctx, b, &evt)
}

func (r *BlogRepo) DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	return r.Delete(ctx, id, &evt)
}
