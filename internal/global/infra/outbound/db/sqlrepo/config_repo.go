package sqlrepo

import (
	"context"

	globalDomain "github.com/davicafu/hexadmin/internal/global/domain"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/sqlstore"
)

var Schema = sqlstore.Schema{
	SQLite: []string{`
    CREATE TABLE IF NOT EXISTS global_configs (
        id INTEGER PRIMARY KEY,
        phone TEXT NULL,
        email TEXT NULL,
        address TEXT NULL,
        home_title TEXT NULL,
        home_description TEXT NULL,
        about_title TEXT NULL,
        about_description TEXT NULL,
        created_at DATETIME NOT NULL,
        updated_at DATETIME NOT NULL
    )`, `
    CREATE TABLE IF NOT EXISTS provinces (
        id INTEGER PRIMARY KEY,
        name TEXT NOT NULL
    )`, `
    CREATE TABLE IF NOT EXISTS cities (
        id INTEGER PRIMARY KEY,
        province_id INTEGER NOT NULL REFERENCES provinces(id) ON DELETE CASCADE,
        name TEXT NOT NULL
    )`,
		`CREATE INDEX IF NOT EXISTS idx_cities_province_id ON cities(province_id)`,
	},
	Postgres: []string{`
    CREATE TABLE IF NOT EXISTS global_configs (
        id INTEGER PRIMARY KEY,
        phone VARCHAR(50) NULL,
        email VARCHAR(191) NULL,
        address TEXT NULL,
        home_title VARCHAR(191) NULL,
        home_description TEXT NULL,
        about_title VARCHAR(191) NULL,
        about_description TEXT NULL,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`, `
    CREATE TABLE IF NOT EXISTS provinces (
        id BIGINT PRIMARY KEY,
        name VARCHAR(191) NOT NULL
    )`, `
    CREATE TABLE IF NOT EXISTS cities (
        id BIGINT PRIMARY KEY,
        province_id BIGINT NOT NULL REFERENCES provinces(id) ON DELETE CASCADE,
        name VARCHAR(191) NOT NULL
    )`,
		`CREATE INDEX IF NOT EXISTS idx_cities_province_id ON cities(province_id)`,
	},
}

func InitSchema(ctx context.Context, db *sqlstore.DB) error {
	return db.ExecSchema(ctx, Schema)
}

// ConfigRepo guarda la fila única de configuración.
type ConfigRepo struct {
	table *sqlstore.Table[*globalDomain.SiteConfig]
}

var _ globalDomain.ConfigRepository = (*ConfigRepo)(nil)

func NewConfigRepo(db *sqlstore.DB) *ConfigRepo {
	return &ConfigRepo{table: sqlstore.NewTable(db, sqlstore.Mapper[*globalDomain.SiteConfig]{
		Entity: globalDomain.ConfigKind,
		Table:  "global_configs",
		Columns: []string{
			"id", "phone", "email", "address", "home_title", "home_description",
			"about_title", "about_description", "created_at", "updated_at",
		},
		Scan: func(row sqlstore.Scanner) (*globalDomain.SiteConfig, error) {
			var c globalDomain.SiteConfig
			return &c, row.Scan(&c.ID, &c.Phone, &c.Email, &c.Address, &c.HomeTitle,
				&c.HomeDescription, &c.AboutTitle, &c.AboutDescription, &c.CreatedAt, &c.UpdatedAt)
		},
		Values: func(c *globalDomain.SiteConfig) map[string]interface{} {
			return map[string]interface{}{
				"id":                c.ID,
				"phone":             c.Phone,
				"email":             c.Email,
				"address":           c.Address,
				"home_title":        c.HomeTitle,
				"home_description":  c.HomeDescription,
				"about_title":       c.AboutTitle,
				"about_description": c.AboutDescription,
				"created_at":        c.CreatedAt,
				"updated_at":        c.UpdatedAt,
			}
		},
		KeyOf: func(c *globalDomain.SiteConfig) interface{} { return c.ID },
	})}
}

func (r *ConfigRepo) Get(ctx context.Context) (*globalDomain.SiteConfig, error) {
	return r.table.Get(ctx, globalDomain.SiteConfigID)
}

func (r *ConfigRepo) Save(ctx context.Context, c *globalDomain.SiteConfig, evt sharedDomain.OutboxEvent) error {
	return r.table.Upsert(ctx, c, &evt)
}
