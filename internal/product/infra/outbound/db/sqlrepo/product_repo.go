package sqlrepo

import (
	"context"

	"github.com/google/uuid"

	productDomain "github.com/davicafu/hexadmin/internal/product/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/sqlstore"
)

var Schema = sqlstore.Schema{
	SQLite: []string{`
    CREATE TABLE IF NOT EXISTS products (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        description TEXT NULL,
        created_at DATETIME NOT NULL,
        updated_at DATETIME NOT NULL
    )`},
	Postgres: []string{`
    CREATE TABLE IF NOT EXISTS products (
        id UUID PRIMARY KEY,
        name VARCHAR(191) NOT NULL UNIQUE,
        description TEXT NULL,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`},
}

// ProductRepo implementa ProductRepository sobre sqlstore.Table.
type ProductRepo struct {
	*sqlstore.Table[*productDomain.Product]
}

var _ productDomain.ProductRepository = (*ProductRepo)(nil)

func NewProductRepo(db *sqlstore.DB) *ProductRepo {
	return &ProductRepo{Table: sqlstore.NewTable(db, sqlstore.Mapper[*productDomain.Product]{
		Entity:       productDomain.Kind,
		Table:        "products",
		Columns:      []string{"id", "name", "description", "created_at", "updated_at"},
		DefaultOrder: productDomain.DefaultOrder,
		Scan: func(row sqlstore.Scanner) (*productDomain.Product, error) {
			var p productDomain.Product
			return &p, row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
		},
		Values: func(p *productDomain.Product) map[string]interface{} {
			return map[string]interface{}{
				"id":          p.ID,
				"name":        p.Name,
				"description": p.Description,
				"created_at":  p.CreatedAt,
				"updated_at":  p.UpdatedAt,
			}
		},
		KeyOf: func(p *productDomain.Product) interface{} { return p.ID },
	})}
}

// InitSchema crea la tabla si no existe.
func InitSchema(ctx context.Context, db *sqlstore.DB) error {
	return db.ExecSchema(ctx, Schema)
}

func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	return r.Get(ctx, id)
}

func (r *ProductRepo) Create(ctx context.Context, p *productDomain.Product, evt sharedDomain.OutboxEvent) error {
	return r.Insert(ctx, p, &evt)
}

func (r *ProductRepo) Update(ctx context.Context, p *productDomain.Product, evt sharedDomain.OutboxEvent) error {
	return r.Table.Update(ctx, p, &evt)
}

func (r *ProductRepo) DeleteByID(ctx context.Context, id uuid.UUID, evt sharedDomain.OutboxEvent) error {
	return r.Delete(ctx, id, &evt)
}
